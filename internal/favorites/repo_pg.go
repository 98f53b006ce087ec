package favorites

import (
	"context"
	"database/sql"
	"encoding/json"

	"wardrobe-backend/internal/analysis"
	"wardrobe-backend/internal/outfits"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Add inserts the favorite; duplicates are absorbed by the primary key.
func (r *PGRepo) Add(ctx context.Context, userID, outfitID string) error {
	const query = `
INSERT INTO favorites (user_id, outfit_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id, outfit_id) DO NOTHING`

	_, err := r.DB.ExecContext(ctx, query, userID, outfitID)
	return err
}

// Remove deletes the favorite.
func (r *PGRepo) Remove(ctx context.Context, userID, outfitID string) error {
	const query = `DELETE FROM favorites WHERE user_id = $1 AND outfit_id = $2`

	res, err := r.DB.ExecContext(ctx, query, userID, outfitID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFavorite reports whether the user has favorited the outfit.
func (r *PGRepo) IsFavorite(ctx context.Context, userID, outfitID string) (bool, error) {
	const query = `SELECT 1 FROM favorites WHERE user_id = $1 AND outfit_id = $2 LIMIT 1`

	var one int
	err := r.DB.QueryRowContext(ctx, query, userID, outfitID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListOutfitsByUser returns the user's favorited outfits, most recently
// favorited first.
func (r *PGRepo) ListOutfitsByUser(ctx context.Context, userID string) ([]outfits.Outfit, error) {
	const query = `
SELECT o.id, o.user_id, o.image_url, o.storage_key, o.name, o.tags, o.analysis_status, o.analysis_results, o.created_at, o.updated_at
FROM favorites f
JOIN outfits o ON o.id = f.outfit_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []outfits.Outfit
	for rows.Next() {
		var o outfits.Outfit
		var results sql.NullString
		if err := rows.Scan(
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
			return nil, err
		}
		if results.Valid {
			o.AnalysisResult = analysis.Result{}
			if err := json.Unmarshal([]byte(results.String), &o.AnalysisResult); err != nil {
				o.AnalysisResult = nil
			}
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
