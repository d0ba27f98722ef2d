package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
)

// Schema:
//
//	CREATE TABLE analysis_history (
//	  id          CHAR(36) PRIMARY KEY,
//	  user_id     CHAR(36) NOT NULL,
//	  image_url   TEXT NOT NULL,
//	  result_json JSON NOT NULL,
//	  created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	  INDEX idx_analysis_user_date (user_id, created_at)
//	);
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create tulis record dalam satu transaksi, sama kontraknya dengan
// versi postgres.
func (r *AnalysisRepository) Create(ctx context.Context, a *domain.Analysis) error {
	raw, err := json.Marshal(a.RawResult)
	if err != nil {
		return fmt.Errorf("marshal result_json: %w", err)
	}

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
		a.CreatedAt = created
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO analysis_history (id, user_id, image_url, result_json, created_at)
VALUES (?,?,?,?,?);`
	if _, err := tx.ExecContext(ctx, q, a.ID, a.UserID, a.ImageURL, raw, created); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Get by ID + owner
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID, userID string) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_url, result_json, created_at
FROM analysis_history
WHERE id=? AND user_id=? LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// History per user, newest first
func (r *AnalysisRepository) History(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_url, result_json, created_at
FROM analysis_history
WHERE user_id=? ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats hitung total + record terbaru
func (r *AnalysisRepository) Stats(ctx context.Context, userID string) (int, *domain.Analysis, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analysis_history WHERE user_id=?;`, userID,
	).Scan(&total); err != nil {
		return 0, nil, err
	}
	if total == 0 {
		return 0, nil, nil
	}

	const q = `
SELECT id, user_id, image_url, result_json, created_at
FROM analysis_history
WHERE user_id=? ORDER BY created_at DESC LIMIT 1;`
	last, err := scanAnalysis(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return total, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return total, last, nil
}

// Delete hard delete by owner
func (r *AnalysisRepository) Delete(ctx context.Context, id domain.AnalysisID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM analysis_history WHERE id=? AND user_id=?;`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var raw []byte
	if err := row.Scan(&a.ID, &a.UserID, &a.ImageURL, &raw, &a.CreatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a.RawResult); err != nil {
			return nil, fmt.Errorf("unmarshal result_json: %w", err)
		}
	}
	a.Flags = domain.FlagsFromRaw(a.RawResult)
	return &a, nil
}
