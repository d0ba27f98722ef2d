package faults

import "time"

// Stage di pipeline tempat fault terjadi
type Stage string

const (
	StageClassifier Stage = "classifier"
	StageProducts   Stage = "products"
	StageCache      Stage = "cache"
	StageMirror     Stage = "mirror"
	StageStorage    Stage = "storage"
)

// Fault represents a persisted degradation event entry
type Fault struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	AnalysisID  string    `json:"analysis_id,omitempty"`
	Stage       Stage     `json:"stage"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
