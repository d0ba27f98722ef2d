package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
)

// imageLog document shape di collection image_logs
type imageLog struct {
	UserID          string         `bson:"userId"`
	AnalysisID      string         `bson:"analysisId,omitempty"`
	Filename        string         `bson:"filename"`
	DetectedType    string         `bson:"detected_type,omitempty"`
	DetectedDisease string         `bson:"detected_disease,omitempty"`
	RawOutput       map[string]any `bson:"raw_output,omitempty"`
	CreatedAt       time.Time      `bson:"created_at"`
}

// ImageLogRepository mirror analytics ke MongoDB. Append-only; semua
// failure di sini tanggung jawab caller untuk di-swallow.
type ImageLogRepository struct {
	coll *mongo.Collection
}

func NewImageLogRepository(ctx context.Context, client *mongo.Client, database string) (*ImageLogRepository, error) {
	coll := client.Database(database).Collection("image_logs")

	// index untuk query analytics per user + sort by date
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "detected_type", Value: 1}}},
	})
	if err != nil {
		return nil, err
	}
	return &ImageLogRepository{coll: coll}, nil
}

// Log tulis satu mirror entry. Error dikembalikan ke caller; caller yang
// memutuskan untuk swallow (kontraknya best-effort).
func (r *ImageLogRepository) Log(ctx context.Context, e *domain.MirrorEntry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, imageLog{
		UserID:          e.UserID,
		AnalysisID:      e.AnalysisID,
		Filename:        e.Filename,
		DetectedType:    e.DetectedType,
		DetectedDisease: e.DetectedDisease,
		RawOutput:       e.RawOutput,
		CreatedAt:       created,
	})
	return err
}
