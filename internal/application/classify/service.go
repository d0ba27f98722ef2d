package classify

import (
	"context"
	"log"

	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
)

// Fallback classification saat classifier tidak bisa dihubungi.
// Low-information on purpose: "Combination" aman untuk semua orang.
const (
	fallbackSkinType   = string(domain.SkinCombination)
	fallbackConfidence = 0.85
)

// Service adalah gateway ke classifier. Kontrak utamanya: TIDAK PERNAH
// mengembalikan error ke caller — downstream pipeline selalu menerima
// classification yang well-formed, paling buruk fallback degraded.
type Service struct {
	Classifier domain.Classifier
	Faults     faults.Repository

	// observability hooks, di-wire ke metrics counter di main
	OnReal     func()
	OnDegraded func()
}

func NewService(classifier domain.Classifier) *Service {
	return &Service{Classifier: classifier}
}

// Classify satu call bounded, tanpa retry (caller adalah live request).
func (s *Service) Classify(ctx context.Context, image []byte, filename string) *domain.Classification {
	cl, err := s.Classifier.Classify(ctx, image, filename)
	if err != nil {
		log.Printf("classifier unavailable, serving degraded fallback: %v", err)
		if s.OnDegraded != nil {
			s.OnDegraded()
		}
		s.recordFault(ctx, err)
		return &domain.Classification{
			SkinType:   fallbackSkinType,
			Confidence: fallbackConfidence,
			Degraded:   true,
			Raw: map[string]any{
				"note": "classifier unavailable - degraded fallback",
			},
		}
	}

	if s.OnReal != nil {
		s.OnReal()
	}
	return cl
}

func (s *Service) recordFault(ctx context.Context, cause error) {
	if s.Faults == nil {
		return
	}
	f := &faults.Fault{
		Stage:   faults.StageClassifier,
		Message: cause.Error(),
	}
	if err := s.Faults.Save(ctx, f); err != nil {
		log.Printf("failed to record classifier fault: %v", err)
	}
}
