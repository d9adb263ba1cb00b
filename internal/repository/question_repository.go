package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillsprint/skillsprint-backend/internal/model"
)

// QuestionRepository reads the four question bank tables and writes the two
// that carry an authoritative answer column. All reads return the superset
// model.Question row; pgx.ErrNoRows propagates for missing questions.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// PickPublished selects one active, published question of the given type for
// a content item, uniformly at random. Returns pgx.ErrNoRows when the
// content item has no eligible question.
func (r *QuestionRepository) PickPublished(ctx context.Context, qtype model.QuestionType, contentID int64) (*model.Question, error) {
	cond := `content_id = $1 AND status = 'active' AND published_status = 'published'
	         ORDER BY random() LIMIT 1`
	return r.queryOne(ctx, qtype, cond, contentID)
}

// Get retrieves a question by ID from the table matching qtype.
func (r *QuestionRepository) Get(ctx context.Context, qtype model.QuestionType, questionID int64) (*model.Question, error) {
	return r.queryOne(ctx, qtype, `question_id = $1`, questionID)
}

func (r *QuestionRepository) queryOne(ctx context.Context, qtype model.QuestionType, cond string, arg any) (*model.Question, error) {
	switch qtype {
	case model.TypeMultichoice:
		return r.scanMultichoice(r.pool.QueryRow(ctx,
			`SELECT question_id, subject_id, content_id, question_content,
			        option_1, option_2, option_3, option_4,
			        answer, feedback, time_limit, status, published_status
			 FROM multichoice_questions WHERE `+cond, arg))
	case model.TypeNumerical:
		return r.scanNumerical(r.pool.QueryRow(ctx,
			`SELECT question_id, subject_id, content_id, question_content,
			        answer, feedback, time_limit, status, published_status
			 FROM numerical_questions WHERE `+cond, arg))
	case model.TypeMatching:
		return r.scanMatching(r.pool.QueryRow(ctx,
			`SELECT question_id, subject_id, content_id, question_content,
			        category_a_option_1, category_a_option_2, category_a_option_3, category_a_option_4,
			        category_b_option_1, category_b_option_2, category_b_option_3, category_b_option_4,
			        feedback, time_limit, status, published_status
			 FROM matching_questions WHERE `+cond, arg))
	case model.TypeStudyNote:
		return r.scanStudyNote(r.pool.QueryRow(ctx,
			`SELECT question_id, subject_id, content_id, study_note_content,
			        status, published_status
			 FROM study_notes WHERE `+cond, arg))
	default:
		return nil, fmt.Errorf("unknown question type %q", qtype)
	}
}

func (r *QuestionRepository) scanMultichoice(row pgx.Row) (*model.Question, error) {
	q := model.Question{Type: model.TypeMultichoice}
	err := row.Scan(&q.QuestionID, &q.SubjectID, &q.ContentID, &q.QuestionContent,
		&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
		&q.Answer, &q.Feedback, &q.TimeLimit, &q.Status, &q.PublishedStatus)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) scanNumerical(row pgx.Row) (*model.Question, error) {
	q := model.Question{Type: model.TypeNumerical}
	err := row.Scan(&q.QuestionID, &q.SubjectID, &q.ContentID, &q.QuestionContent,
		&q.Answer, &q.Feedback, &q.TimeLimit, &q.Status, &q.PublishedStatus)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) scanMatching(row pgx.Row) (*model.Question, error) {
	q := model.Question{Type: model.TypeMatching}
	err := row.Scan(&q.QuestionID, &q.SubjectID, &q.ContentID, &q.QuestionContent,
		&q.CategoryA[0], &q.CategoryA[1], &q.CategoryA[2], &q.CategoryA[3],
		&q.CategoryB[0], &q.CategoryB[1], &q.CategoryB[2], &q.CategoryB[3],
		&q.Feedback, &q.TimeLimit, &q.Status, &q.PublishedStatus)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) scanStudyNote(row pgx.Row) (*model.Question, error) {
	q := model.Question{Type: model.TypeStudyNote}
	err := row.Scan(&q.QuestionID, &q.SubjectID, &q.ContentID, &q.StudyNoteContent,
		&q.Status, &q.PublishedStatus)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateMultichoice writes back the editable fields of a multichoice question.
func (r *QuestionRepository) UpdateMultichoice(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE multichoice_questions
		 SET question_content = $2, option_1 = $3, option_2 = $4, option_3 = $5, option_4 = $6,
		     answer = $7, feedback = $8, time_limit = $9, published_status = $10
		 WHERE question_id = $1`,
		q.QuestionID, q.QuestionContent,
		q.Options[0], q.Options[1], q.Options[2], q.Options[3],
		q.Answer, q.Feedback, q.TimeLimit, q.PublishedStatus,
	)
	return err
}

// UpdateNumerical writes back the editable fields of a numerical question.
func (r *QuestionRepository) UpdateNumerical(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE numerical_questions
		 SET question_content = $2, answer = $3, feedback = $4, time_limit = $5, published_status = $6
		 WHERE question_id = $1`,
		q.QuestionID, q.QuestionContent, q.Answer, q.Feedback, q.TimeLimit, q.PublishedStatus,
	)
	return err
}
