package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillsprint/skillsprint-backend/internal/model"
	"github.com/skillsprint/skillsprint-backend/internal/sessionstore"
)

// SkillSource resolves skills to their owning subject.
type SkillSource interface {
	GetByID(ctx context.Context, skillID int64) (*model.Skill, error)
}

// ContentSource lists a skill's quizzable content in display order.
type ContentSource interface {
	ListPublishedBySkill(ctx context.Context, skillID int64) ([]model.Content, error)
}

// QuestionBank is the read-only view of the four question tables.
// Missing rows surface as pgx.ErrNoRows.
type QuestionBank interface {
	PickPublished(ctx context.Context, qtype model.QuestionType, contentID int64) (*model.Question, error)
	Get(ctx context.Context, qtype model.QuestionType, questionID int64) (*model.Question, error)
}

// LearnerAccessChecker verifies a learner's subject membership.
type LearnerAccessChecker interface {
	HasLearnerAccess(ctx context.Context, userID, subjectID int64) (bool, error)
}

// ResultSink is the append-only destination for durable quiz outcomes.
type ResultSink interface {
	InsertQuestionResult(ctx context.Context, qr *model.QuestionResult) error
	InsertQuizResult(ctx context.Context, qr *model.QuizResult) error
}

// QuizService runs the quiz session lifecycle: assembly, replay, grading,
// finalization and abandonment. Session documents live in the session store;
// everything else it touches is read-only except the result sink.
//
// There is no per-key locking: assembly's delete-then-put and grading's
// get-then-put are read-modify-write against the store, last writer wins at
// document granularity. That is the intended contract for a single-learner,
// single-device flow and is not safe for concurrent multi-device use of one
// session.
type QuizService struct {
	skills      SkillSource
	contents    ContentSource
	bank        QuestionBank
	memberships LearnerAccessChecker
	results     ResultSink
	store       sessionstore.Store
	log         zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	skills SkillSource,
	contents ContentSource,
	bank QuestionBank,
	memberships LearnerAccessChecker,
	results ResultSink,
	store sessionstore.Store,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		skills:      skills,
		contents:    contents,
		bank:        bank,
		memberships: memberships,
		results:     results,
		store:       store,
		log:         log,
	}
}

// StartQuiz assembles a fresh quiz session for the learner on a skill: one
// random published question per active published content item, in content
// order. Content items with no eligible question are skipped. Any existing
// session for the same learner/skill pair is discarded unconditionally —
// starting over always throws away unsubmitted progress.
func (s *QuizService) StartQuiz(ctx context.Context, learnerID, skillID int64) ([]model.QuizItem, error) {
	skill, err := s.skills.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}

	ok, err := s.memberships.HasLearnerAccess(ctx, learnerID, skill.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	contents, err := s.contents.ListPublishedBySkill(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	display := make([]model.QuizItem, 0, len(contents))
	attempts := make([]model.QuestionAttempt, 0, len(contents))

	for _, content := range contents {
		q, err := s.bank.PickPublished(ctx, content.Type, content.ContentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue // No eligible question for this content item
			}
			return nil, fmt.Errorf("pick question for content %d: %w", content.ContentID, err)
		}

		display = append(display, buildQuizItem(q, nil))
		attempts = append(attempts, model.QuestionAttempt{
			Type:       q.Type,
			QuestionID: q.QuestionID,
			Result:     nil,
			TimeUsed:   nil,
			TimeLimit:  q.TimeLimit,
		})
	}

	key := model.SessionKey{LearnerID: learnerID, SkillID: skillID}
	if err := s.store.Delete(ctx, key); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, key, attempts); err != nil {
		return nil, err
	}

	return display, nil
}

// QuizStatus replays the learner's in-flight session in stored order, with
// the full question payload per attempt. Attempts whose question has since
// vanished from the bank are skipped.
func (s *QuizService) QuizStatus(ctx context.Context, learnerID, skillID int64) ([]model.QuizItem, error) {
	key := model.SessionKey{LearnerID: learnerID, SkillID: skillID}
	attempts, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	items := make([]model.QuizItem, 0, len(attempts))
	for _, a := range attempts {
		q, err := s.bank.Get(ctx, a.Type, a.QuestionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("get question %d: %w", a.QuestionID, err)
		}
		items = append(items, buildQuizItem(q, &a))
	}
	return items, nil
}

// SubmitAnswer grades one answer against the question bank, appends a durable
// QuestionResult row, then folds the graded attempt into the session
// document, replacing the existing (type, question_id) entry or appending if
// none exists.
//
// The durable write and the session write are deliberately independent: if
// the session document is gone the grade is still recorded (and the call
// fails with ErrSessionNotFound); if the session write fails after the
// durable write, the grade stands while the session may replay as ungraded.
func (s *QuizService) SubmitAnswer(ctx context.Context, learnerID int64, req *model.SubmitAnswerRequest) (*model.QuestionGrade, error) {
	q, err := s.bank.Get(ctx, req.Type, req.QuestionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	result, revealed := gradeAnswer(q, req)

	qr := &model.QuestionResult{
		LearnerID:  learnerID,
		SubjectID:  q.SubjectID,
		SkillID:    req.SkillID,
		QuestionID: req.QuestionID,
		Type:       req.Type,
		Result:     result,
		TimeLimit:  q.TimeLimit,
		TimeUsed:   req.TimeUsed,
		Timestamp:  time.Now(),
	}
	if err := s.results.InsertQuestionResult(ctx, qr); err != nil {
		return nil, fmt.Errorf("insert question result: %w", err)
	}

	key := model.SessionKey{LearnerID: learnerID, SkillID: req.SkillID}
	attempts, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	graded := model.QuestionAttempt{
		Type:       req.Type,
		QuestionID: req.QuestionID,
		Result:     &result,
		TimeUsed:   req.TimeUsed,
		TimeLimit:  q.TimeLimit,
	}
	attempts = replaceOrAppend(attempts, graded)

	if err := s.store.Put(ctx, key, attempts); err != nil {
		return nil, err
	}

	return &model.QuestionGrade{
		QuestionID: req.QuestionID,
		Result:     result,
		Feedback:   q.Feedback,
		Answer:     revealed,
	}, nil
}

// FinalizeQuiz aggregates the session into a durable QuizResult row and
// deletes the session document. The aggregate row is authoritative once
// written: a failed delete is logged and the orphaned document is left to be
// overwritten by the next StartQuiz for the same key.
func (s *QuizService) FinalizeQuiz(ctx context.Context, learnerID, skillID int64) (*model.QuizResult, error) {
	skill, err := s.skills.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}

	key := model.SessionKey{LearnerID: learnerID, SkillID: skillID}
	attempts, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	percentage, timeLimit, timeUsed := aggregate(attempts)
	percentage = math.Round(percentage*100) / 100

	qr := &model.QuizResult{
		LearnerID:  learnerID,
		SubjectID:  skill.SubjectID,
		SkillID:    skillID,
		Percentage: percentage,
		TimeLimit:  timeLimit,
		TimeUsed:   timeUsed,
		Timestamp:  time.Now(),
	}
	if err := s.results.InsertQuizResult(ctx, qr); err != nil {
		return nil, fmt.Errorf("insert quiz result: %w", err)
	}

	if err := s.store.Delete(ctx, key); err != nil {
		// The aggregate row already stands; the orphan self-heals on the
		// next StartQuiz for this key.
		s.log.Warn().Err(err).Str("session", key.String()).
			Msg("Session delete failed after finalization")
	}

	return qr, nil
}

// AbandonQuiz discards the learner's in-flight session without producing a
// result row. QuestionResult rows already written by grading are kept.
func (s *QuizService) AbandonQuiz(ctx context.Context, learnerID, skillID int64) error {
	key := model.SessionKey{LearnerID: learnerID, SkillID: skillID}
	if _, err := s.store.Get(ctx, key); err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.store.Delete(ctx, key)
}

// validMatchingPairs is the fixed pair vocabulary for matching answers:
// "11" pairs slot 1 of category A with slot 1 of category B, and so on.
var validMatchingPairs = map[string]bool{"11": true, "22": true, "33": true, "44": true}

// gradeAnswer scores one submission against the bank row. No partial credit
// anywhere. A missing answer payload for the submitted type grades 0, it is
// not an error. Returns the 0/1 result and the revealed authoritative answer.
func gradeAnswer(q *model.Question, req *model.SubmitAnswerRequest) (int, *string) {
	switch q.Type {
	case model.TypeMultichoice:
		if req.MultichoiceAnswer == nil || q.Answer == nil {
			return 0, q.Answer
		}
		if *req.MultichoiceAnswer != *q.Answer {
			return 0, q.Answer
		}
		return 1, q.Answer

	case model.TypeNumerical:
		if req.NumericalAnswer == nil || q.Answer == nil {
			return 0, q.Answer
		}
		if numericEqual(*q.Answer, *req.NumericalAnswer) {
			return 1, q.Answer
		}
		return 0, q.Answer

	case model.TypeMatching:
		revealed := "11,22,33,44"
		if req.MatchingAnswer == nil {
			return 0, &revealed
		}
		for _, pair := range strings.Split(*req.MatchingAnswer, ",") {
			if !validMatchingPairs[strings.TrimSpace(pair)] {
				return 0, &revealed
			}
		}
		return 1, &revealed

	case model.TypeStudyNote:
		if req.StudyNoteAnswer == nil {
			return 0, nil
		}
		revealed := strconv.Itoa(*req.StudyNoteAnswer)
		if *req.StudyNoteAnswer != 1 {
			return 0, &revealed
		}
		return 1, &revealed
	}
	return 0, nil
}

// numericEqual compares the stored answer with the submission: numerically
// when both parse as numbers, byte-for-byte otherwise. No tolerance band.
func numericEqual(stored, submitted string) bool {
	a, errA := strconv.ParseFloat(strings.TrimSpace(stored), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(submitted), 64)
	if errA == nil && errB == nil {
		return a == b
	}
	return stored == submitted
}

// replaceOrAppend folds a graded attempt into the document, keeping the
// stored order. The (type, question_id) pair is unique per document, so at
// most one entry is replaced.
func replaceOrAppend(attempts []model.QuestionAttempt, graded model.QuestionAttempt) []model.QuestionAttempt {
	for i, a := range attempts {
		if a.Type == graded.Type && a.QuestionID == graded.QuestionID {
			attempts[i] = graded
			return attempts
		}
	}
	return append(attempts, graded)
}

// aggregate reduces a session document to its durable summary.
//
// The percentage deliberately excludes studyNote attempts: acknowledgement
// items carry no right/wrong signal and must not dilute a mixed quiz's
// score. A session consisting only of study notes still gets a completion
// percentage, averaged over its acknowledgements. Null results and null
// times count as zero.
func aggregate(attempts []model.QuestionAttempt) (percentage float64, timeLimit, timeUsed int) {
	var sumScored, sumStudy int
	var countScored, countStudy int

	for _, a := range attempts {
		if a.Type == model.TypeStudyNote {
			sumStudy += intOrZero(a.Result)
			countStudy++
		} else {
			sumScored += intOrZero(a.Result)
			countScored++
		}
		timeLimit += intOrZero(a.TimeLimit)
		timeUsed += intOrZero(a.TimeUsed)
	}

	total := countScored + countStudy
	switch {
	case total == 0:
		percentage = 0
	case countStudy == total:
		percentage = float64(sumStudy) / float64(total)
	default:
		percentage = float64(sumScored) / float64(countScored)
	}
	return percentage, timeLimit, timeUsed
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// buildQuizItem renders the question payload for one display entry. When
// attempt is non-nil (session replay) the graded state rides along. Matching
// questions get a random permutation of their option slots, the same
// permutation for both category columns.
func buildQuizItem(q *model.Question, attempt *model.QuestionAttempt) model.QuizItem {
	item := model.QuizItem{
		Type:       q.Type,
		QuestionID: q.QuestionID,
	}

	switch q.Type {
	case model.TypeMultichoice:
		item.QuestionContent = q.QuestionContent
		item.Option1, item.Option2, item.Option3, item.Option4 = q.Options[0], q.Options[1], q.Options[2], q.Options[3]
		item.TimeLimit = q.TimeLimit

	case model.TypeNumerical:
		item.QuestionContent = q.QuestionContent
		item.TimeLimit = q.TimeLimit

	case model.TypeMatching:
		item.QuestionContent = q.QuestionContent
		perm := rand.Perm(4)
		catA := [4]*string{q.CategoryA[perm[0]], q.CategoryA[perm[1]], q.CategoryA[perm[2]], q.CategoryA[perm[3]]}
		catB := [4]*string{q.CategoryB[perm[0]], q.CategoryB[perm[1]], q.CategoryB[perm[2]], q.CategoryB[perm[3]]}
		item.CategoryAOption1, item.CategoryAOption2, item.CategoryAOption3, item.CategoryAOption4 = catA[0], catA[1], catA[2], catA[3]
		item.CategoryBOption1, item.CategoryBOption2, item.CategoryBOption3, item.CategoryBOption4 = catB[0], catB[1], catB[2], catB[3]
		item.TimeLimit = q.TimeLimit

	case model.TypeStudyNote:
		item.StudyNoteContent = q.StudyNoteContent
	}

	if attempt != nil {
		item.Result = attempt.Result
		item.TimeUsed = attempt.TimeUsed
	}
	return item
}
