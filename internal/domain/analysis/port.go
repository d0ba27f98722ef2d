package analysis

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound saat record tidak ada atau bukan milik user tersebut.
var ErrNotFound = errors.New("analysis not found")

// Repository port (interface untuk relational persistence).
// Create harus atomic: satu record, satu transaksi.
type Repository interface {
	Create(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID, userID string) (*Analysis, error)
	History(ctx context.Context, userID string) ([]*Analysis, error)
	Stats(ctx context.Context, userID string) (int, *Analysis, error)
	Delete(ctx context.Context, id AnalysisID, userID string) error
}

// MirrorEntry adalah denormalized log entry untuk document store.
type MirrorEntry struct {
	UserID          string
	AnalysisID      string
	Filename        string
	DetectedType    string
	DetectedDisease string
	RawOutput       map[string]any
	CreatedAt       time.Time
}

// Mirror port (document store, best-effort analytics copy).
type Mirror interface {
	Log(ctx context.Context, e *MirrorEntry) error
}

// Classifier port (external ML service).
type Classifier interface {
	Classify(ctx context.Context, image []byte, filename string) (*Classification, error)
}

// ImageStore port untuk simpan uploaded image, balikin URL publik.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}
