package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// ContentRepository handles read-only content lookups for quiz assembly.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// ListPublishedBySkill retrieves the active, published content items of a
// skill in (sort_order, content_id) order — the session's display order.
func (r *ContentRepository) ListPublishedBySkill(ctx context.Context, skillID int64) ([]model.Content, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT content_id, skill_id, type, sort_order, status, published_status
		 FROM content
		 WHERE skill_id = $1 AND status = 'active' AND published_status = 'published'
		 ORDER BY sort_order, content_id`, skillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []model.Content
	for rows.Next() {
		var c model.Content
		if err := rows.Scan(&c.ContentID, &c.SkillID, &c.Type, &c.SortOrder, &c.Status, &c.PublishedStatus); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}
