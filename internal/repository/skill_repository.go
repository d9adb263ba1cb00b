package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// SkillRepository handles read-only skill lookups.
type SkillRepository struct {
	pool *pgxpool.Pool
}

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

// GetByID retrieves a skill by its ID. Returns pgx.ErrNoRows if absent.
func (r *SkillRepository) GetByID(ctx context.Context, skillID int64) (*model.Skill, error) {
	var s model.Skill
	err := r.pool.QueryRow(ctx,
		`SELECT skill_id, subject_id, skill_name FROM skills WHERE skill_id = $1`,
		skillID,
	).Scan(&s.SkillID, &s.SubjectID, &s.SkillName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
