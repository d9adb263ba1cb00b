package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skillsprint/skillsprint-backend/internal/model"
	"github.com/skillsprint/skillsprint-backend/internal/sessionstore"
)

// QuestionUpdater writes question edits back to the bank.
type QuestionUpdater interface {
	Get(ctx context.Context, qtype model.QuestionType, questionID int64) (*model.Question, error)
	UpdateMultichoice(ctx context.Context, q *model.Question) error
	UpdateNumerical(ctx context.Context, q *model.Question) error
}

// AuthorAccessChecker verifies an author's subject membership.
type AuthorAccessChecker interface {
	HasAuthorAccess(ctx context.Context, userID, subjectID int64) (bool, error)
}

// QuestionService applies author edits to the question bank. Edits that
// would change the authoritative answer of a question currently sitting in
// someone's live quiz session are rejected, so a learner is never graded
// against an answer that shifted under them mid-quiz.
type QuestionService struct {
	bank        QuestionUpdater
	memberships AuthorAccessChecker
	store       sessionstore.Store
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(bank QuestionUpdater, memberships AuthorAccessChecker, store sessionstore.Store) *QuestionService {
	return &QuestionService{bank: bank, memberships: memberships, store: store}
}

// UpdateMultichoice applies a partial edit to a multichoice question. The
// edited row must keep at least two non-empty options and an answer naming
// one of them. Answer changes are refused while any live session references
// the question.
func (s *QuestionService) UpdateMultichoice(ctx context.Context, authorID, questionID int64, req *model.UpdateMultichoiceQuestionRequest) (*model.Question, error) {
	q, err := s.loadForAuthor(ctx, authorID, model.TypeMultichoice, questionID)
	if err != nil {
		return nil, err
	}

	if req.Answer != nil && !ptrEqual(req.Answer, q.Answer) {
		if err := s.guardAnswerEdit(ctx, questionID, model.TypeMultichoice); err != nil {
			return nil, err
		}
		q.Answer = req.Answer
	}

	if req.QuestionContent != nil {
		q.QuestionContent = *req.QuestionContent
	}
	applyOption(&q.Options[0], req.Option1)
	applyOption(&q.Options[1], req.Option2)
	applyOption(&q.Options[2], req.Option3)
	applyOption(&q.Options[3], req.Option4)
	if req.Feedback != nil {
		q.Feedback = req.Feedback
	}
	if req.TimeLimit != nil {
		q.TimeLimit = req.TimeLimit
	}
	if req.PublishedStatus != nil {
		q.PublishedStatus = *req.PublishedStatus
	}

	if err := validateMultichoice(q); err != nil {
		return nil, err
	}
	if err := s.bank.UpdateMultichoice(ctx, q); err != nil {
		return nil, fmt.Errorf("update multichoice question: %w", err)
	}
	return q, nil
}

// UpdateNumerical applies a partial edit to a numerical question, with the
// same answer-edit guard as multichoice.
func (s *QuestionService) UpdateNumerical(ctx context.Context, authorID, questionID int64, req *model.UpdateNumericalQuestionRequest) (*model.Question, error) {
	q, err := s.loadForAuthor(ctx, authorID, model.TypeNumerical, questionID)
	if err != nil {
		return nil, err
	}

	if req.Answer != nil && !ptrEqual(req.Answer, q.Answer) {
		if err := s.guardAnswerEdit(ctx, questionID, model.TypeNumerical); err != nil {
			return nil, err
		}
		q.Answer = req.Answer
	}

	if req.QuestionContent != nil {
		q.QuestionContent = *req.QuestionContent
	}
	if req.Feedback != nil {
		q.Feedback = req.Feedback
	}
	if req.TimeLimit != nil {
		q.TimeLimit = req.TimeLimit
	}
	if req.PublishedStatus != nil {
		q.PublishedStatus = *req.PublishedStatus
	}

	if err := s.bank.UpdateNumerical(ctx, q); err != nil {
		return nil, fmt.Errorf("update numerical question: %w", err)
	}
	return q, nil
}

// CanEditAnswer reports whether the question's answer is currently editable,
// i.e. no live quiz session references it. Advisory only: the state can
// change between this call and a subsequent update, which re-checks.
func (s *QuestionService) CanEditAnswer(ctx context.Context, authorID, questionID int64, qtype model.QuestionType) (bool, error) {
	if _, err := s.loadForAuthor(ctx, authorID, qtype, questionID); err != nil {
		return false, err
	}
	referenced, err := s.store.ScanForReference(ctx, questionID, qtype)
	if err != nil {
		return false, err
	}
	return !referenced, nil
}

func (s *QuestionService) loadForAuthor(ctx context.Context, authorID int64, qtype model.QuestionType, questionID int64) (*model.Question, error) {
	q, err := s.bank.Get(ctx, qtype, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	ok, err := s.memberships.HasAuthorAccess(ctx, authorID, q.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return q, nil
}

func (s *QuestionService) guardAnswerEdit(ctx context.Context, questionID int64, qtype model.QuestionType) error {
	referenced, err := s.store.ScanForReference(ctx, questionID, qtype)
	if err != nil {
		return err
	}
	if referenced {
		return ErrAnswerLocked
	}
	return nil
}

// validateMultichoice enforces the post-edit shape: at least two non-empty
// options, and the answer naming one of them.
func validateMultichoice(q *model.Question) error {
	names := [4]string{"option_1", "option_2", "option_3", "option_4"}
	nonEmpty := 0
	answerOK := false
	for i, opt := range q.Options {
		if opt != nil && *opt != "" {
			nonEmpty++
			if q.Answer != nil && *q.Answer == names[i] {
				answerOK = true
			}
		}
	}
	if nonEmpty < 2 {
		return ErrTooFewOptions
	}
	if !answerOK {
		return ErrAnswerNotAnOption
	}
	return nil
}

// applyOption writes a provided option through, treating an explicit empty
// string as clearing the slot.
func applyOption(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	*dst = src
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
