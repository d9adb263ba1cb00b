package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MembershipRepository answers subject access questions for learners and authors.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// HasLearnerAccess reports whether the user holds an access-code membership
// for the subject.
func (r *MembershipRepository) HasLearnerAccess(ctx context.Context, userID, subjectID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM access_code_memberships WHERE user_id = $1 AND subject_id = $2
		 )`, userID, subjectID,
	).Scan(&exists)
	return exists, err
}

// HasAuthorAccess reports whether the user owns the subject or holds an
// author membership for it.
func (r *MembershipRepository) HasAuthorAccess(ctx context.Context, userID, subjectID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM subjects WHERE subject_id = $2 AND user_id = $1
		   UNION ALL
		   SELECT 1 FROM author_memberships WHERE user_id = $1 AND subject_id = $2
		 )`, userID, subjectID,
	).Scan(&exists)
	return exists, err
}
