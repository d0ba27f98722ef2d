package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
)

type fakeClassifier struct {
	cl  *domain.Classification
	err error
}

func (f *fakeClassifier) Classify(ctx context.Context, image []byte, filename string) (*domain.Classification, error) {
	return f.cl, f.err
}

type fakeFaults struct {
	saved []*faults.Fault
}

func (f *fakeFaults) Save(ctx context.Context, fl *faults.Fault) error {
	f.saved = append(f.saved, fl)
	return nil
}

func (f *fakeFaults) ListRecent(ctx context.Context, limit int) ([]*faults.Fault, error) {
	return f.saved, nil
}

func TestClassifyReturnsRealResult(t *testing.T) {
	want := &domain.Classification{SkinType: "Oily", Disease: "Acne", Confidence: 0.92}
	var real, degraded int
	svc := &Service{
		Classifier: &fakeClassifier{cl: want},
		OnReal:     func() { real++ },
		OnDegraded: func() { degraded++ },
	}

	got := svc.Classify(context.Background(), []byte("img"), "face.jpg")

	assert.Equal(t, want, got)
	assert.False(t, got.Degraded)
	assert.Equal(t, 1, real)
	assert.Equal(t, 0, degraded)
}

func TestClassifyFallsBackOnError(t *testing.T) {
	fr := &fakeFaults{}
	var degraded int
	svc := &Service{
		Classifier: &fakeClassifier{err: errors.New("dial tcp: connection refused")},
		Faults:     fr,
		OnDegraded: func() { degraded++ },
	}

	got := svc.Classify(context.Background(), []byte("img"), "face.jpg")

	assert.Equal(t, string(domain.SkinCombination), got.SkinType)
	assert.Equal(t, 0.85, got.Confidence)
	assert.True(t, got.Degraded)
	assert.Empty(t, got.Disease)
	assert.Equal(t, 1, degraded)

	if assert.Len(t, fr.saved, 1) {
		assert.Equal(t, faults.StageClassifier, fr.saved[0].Stage)
	}
}

func TestClassifyFallbackWithoutFaultRepo(t *testing.T) {
	svc := NewService(&fakeClassifier{err: errors.New("timeout")})
	got := svc.Classify(context.Background(), []byte("img"), "face.jpg")
	assert.True(t, got.Degraded)
}
