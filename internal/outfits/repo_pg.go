package outfits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"wardrobe-backend/internal/analysis"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const outfitColumns = `id, user_id, image_url, storage_key, name, tags, analysis_status, analysis_results, created_at, updated_at`

// Create inserts a new outfit row. New rows always start pending with no result.
func (r *PGRepo) Create(ctx context.Context, outfit Outfit) error {
	const query = `
INSERT INTO outfits (id, user_id, image_url, storage_key, name, tags, analysis_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		outfit.ID,
		outfit.UserID,
		outfit.ImageURL,
		outfit.StorageKey,
		outfit.Name,
		outfit.Tags,
		analysis.StatusPending,
		outfit.CreatedAt,
	)
	return err
}

// GetByID returns an outfit by ID.
func (r *PGRepo) GetByID(ctx context.Context, outfitID string) (Outfit, error) {
	query := `SELECT ` + outfitColumns + ` FROM outfits WHERE id = $1 LIMIT 1`

	outfit, err := scanOutfit(r.DB.QueryRowContext(ctx, query, outfitID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Outfit{}, ErrNotFound
		}
		return Outfit{}, err
	}
	return outfit, nil
}

// ListByUser returns all outfits for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Outfit, error) {
	query := `SELECT ` + outfitColumns + ` FROM outfits WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryOutfits(ctx, query, userID)
}

// ListCompletedByUser returns outfits whose analysis has completed, newest
// first. Recommendation prompts use these as wardrobe context.
func (r *PGRepo) ListCompletedByUser(ctx context.Context, userID string) ([]Outfit, error) {
	query := `SELECT ` + outfitColumns + ` FROM outfits
WHERE user_id = $1 AND analysis_status = 'completed'
ORDER BY created_at DESC`
	return r.queryOutfits(ctx, query, userID)
}

// Search matches the query against name, tags, and the stored analysis JSON.
func (r *PGRepo) Search(ctx context.Context, userID, query string) ([]Outfit, error) {
	const stmt = `SELECT ` + outfitColumns + ` FROM outfits
WHERE user_id = $1 AND (
    name ILIKE $2 OR
    tags ILIKE $2 OR
    analysis_results::text ILIKE $2
)
ORDER BY created_at DESC`
	pattern := "%" + query + "%"
	return r.queryOutfits(ctx, stmt, userID, pattern)
}

// SaveTags overwrites the comma-joined tags column.
func (r *PGRepo) SaveTags(ctx context.Context, outfitID, tags string) error {
	const query = `UPDATE outfits SET tags = $1, updated_at = now() WHERE id = $2`

	res, err := r.DB.ExecContext(ctx, query, tags, outfitID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an outfit row; favorites cascade at the schema level.
func (r *PGRepo) Delete(ctx context.Context, outfitID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM outfits WHERE id = $1`, outfitID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAnalysisStatus writes the terminal analysis state in a single
// statement. Zero rows affected means the record was deleted while the
// analysis ran; that is deliberately not an error.
func (r *PGRepo) UpdateAnalysisStatus(ctx context.Context, outfitID, status string, result analysis.Result) error {
	const query = `
UPDATE outfits
SET analysis_status = $1,
    analysis_results = $2,
    updated_at = now()
WHERE id = $3`

	var payload any
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal analysis result: %w", err)
		}
		payload = data
	}

	_, err := r.DB.ExecContext(ctx, query, status, payload, outfitID)
	return err
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOutfit(row rowScanner) (Outfit, error) {
	var o Outfit
	var results sql.NullString
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ImageURL,
		&o.StorageKey,
		&o.Name,
		&o.Tags,
		&o.AnalysisStatus,
		&results,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return Outfit{}, err
	}
	if results.Valid {
		o.AnalysisResult = analysis.Result{}
		if err := json.Unmarshal([]byte(results.String), &o.AnalysisResult); err != nil {
			o.AnalysisResult = nil
		}
	}
	return o, nil
}

func (r *PGRepo) queryOutfits(ctx context.Context, query string, args ...any) ([]Outfit, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Outfit
	for rows.Next() {
		outfit, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, outfit)
	}
	return out, rows.Err()
}
