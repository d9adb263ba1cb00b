package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// ResultRepository is the append-only sink for durable quiz outcomes.
// Rows are never updated or deleted here.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// InsertQuestionResult records one graded answer.
func (r *ResultRepository) InsertQuestionResult(ctx context.Context, qr *model.QuestionResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_results
		   (user_id, subject_id, skill_id, question_id, type, result, time_limit, time_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING result_id`,
		qr.LearnerID, qr.SubjectID, qr.SkillID, qr.QuestionID, qr.Type,
		qr.Result, qr.TimeLimit, qr.TimeUsed, qr.Timestamp,
	).Scan(&qr.ResultID)
}

// InsertQuizResult records one finalized session aggregate.
func (r *ResultRepository) InsertQuizResult(ctx context.Context, qr *model.QuizResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_results
		   (user_id, subject_id, skill_id, percentage, time_limit, time_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING result_id`,
		qr.LearnerID, qr.SubjectID, qr.SkillID, qr.Percentage,
		qr.TimeLimit, qr.TimeUsed, qr.Timestamp,
	).Scan(&qr.ResultID)
}
