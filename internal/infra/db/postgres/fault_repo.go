package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/glowmance/glowmance-backend/internal/domain/faults"
)

// Schema:
//
//	CREATE TABLE pipeline_faults (
//	  id           BIGSERIAL PRIMARY KEY,
//	  user_id      TEXT NOT NULL DEFAULT '-',
//	  analysis_id  TEXT NOT NULL DEFAULT '-',
//	  stage        TEXT NOT NULL,
//	  message      TEXT NOT NULL,
//	  details_json TEXT NOT NULL DEFAULT '',
//	  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type FaultRepository struct{ db *sql.DB }

func NewFaultRepository(db *sql.DB) *FaultRepository { return &FaultRepository{db: db} }

func (r *FaultRepository) Save(ctx context.Context, f *domain.Fault) error {
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	const q = `
INSERT INTO pipeline_faults (user_id, analysis_id, stage, message, details_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(f.UserID), stringOrDash(f.AnalysisID),
		string(f.Stage), f.Message, f.DetailsJSON, created,
	)
	return err
}

func (r *FaultRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Fault, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, analysis_id, stage, message, details_json, created_at
FROM pipeline_faults
ORDER BY created_at DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Fault{}
	for rows.Next() {
		var f domain.Fault
		if err := rows.Scan(&f.ID, &f.UserID, &f.AnalysisID, &f.Stage, &f.Message, &f.DetailsJSON, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
