package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skillsprint/skillsprint-backend/internal/model"
	"github.com/skillsprint/skillsprint-backend/internal/sessionstore"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type memStore struct {
	docs       map[string][]model.QuestionAttempt
	failGet    error
	failPut    error
	failDelete error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]model.QuestionAttempt)}
}

func (m *memStore) Get(_ context.Context, key model.SessionKey) ([]model.QuestionAttempt, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	doc, ok := m.docs[key.String()]
	if !ok {
		return nil, sessionstore.ErrNotFound
	}
	out := make([]model.QuestionAttempt, len(doc))
	copy(out, doc)
	return out, nil
}

func (m *memStore) Put(_ context.Context, key model.SessionKey, attempts []model.QuestionAttempt) error {
	if m.failPut != nil {
		return m.failPut
	}
	doc := make([]model.QuestionAttempt, len(attempts))
	copy(doc, attempts)
	m.docs[key.String()] = doc
	return nil
}

func (m *memStore) Delete(_ context.Context, key model.SessionKey) error {
	if m.failDelete != nil {
		return m.failDelete
	}
	delete(m.docs, key.String())
	return nil
}

func (m *memStore) ScanForReference(_ context.Context, questionID int64, qtype model.QuestionType) (bool, error) {
	for _, doc := range m.docs {
		for _, a := range doc {
			if a.QuestionID == questionID && a.Type == qtype {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeSkills struct {
	skills map[int64]*model.Skill
}

func (f *fakeSkills) GetByID(_ context.Context, skillID int64) (*model.Skill, error) {
	s, ok := f.skills[skillID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

type fakeContents struct {
	bySkill map[int64][]model.Content
}

func (f *fakeContents) ListPublishedBySkill(_ context.Context, skillID int64) ([]model.Content, error) {
	return f.bySkill[skillID], nil
}

type bankKey struct {
	qtype model.QuestionType
	id    int64
}

type fakeBank struct {
	questions map[bankKey]*model.Question
	byContent map[int64]*model.Question
}

func (f *fakeBank) PickPublished(_ context.Context, qtype model.QuestionType, contentID int64) (*model.Question, error) {
	q, ok := f.byContent[contentID]
	if !ok || q.Type != qtype {
		return nil, pgx.ErrNoRows
	}
	return q, nil
}

func (f *fakeBank) Get(_ context.Context, qtype model.QuestionType, questionID int64) (*model.Question, error) {
	q, ok := f.questions[bankKey{qtype, questionID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return q, nil
}

type fakeMemberships struct {
	learner map[int64]bool // keyed by subject ID
	author  map[int64]bool
}

func (f *fakeMemberships) HasLearnerAccess(_ context.Context, _, subjectID int64) (bool, error) {
	return f.learner[subjectID], nil
}

func (f *fakeMemberships) HasAuthorAccess(_ context.Context, _, subjectID int64) (bool, error) {
	return f.author[subjectID], nil
}

type fakeResults struct {
	questionResults []model.QuestionResult
	quizResults     []model.QuizResult
}

func (f *fakeResults) InsertQuestionResult(_ context.Context, qr *model.QuestionResult) error {
	qr.ResultID = int64(len(f.questionResults) + 1)
	f.questionResults = append(f.questionResults, *qr)
	return nil
}

func (f *fakeResults) InsertQuizResult(_ context.Context, qr *model.QuizResult) error {
	qr.ResultID = int64(len(f.quizResults) + 1)
	f.quizResults = append(f.quizResults, *qr)
	return nil
}

// ─── Fixtures ───────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func mcQuestion(id, contentID int64, answer string, timeLimit int) *model.Question {
	return &model.Question{
		Type:            model.TypeMultichoice,
		QuestionID:      id,
		SubjectID:       10,
		ContentID:       contentID,
		QuestionContent: "pick one",
		Options:         [4]*string{strPtr("a"), strPtr("b"), strPtr("c"), strPtr("d")},
		Answer:          strPtr(answer),
		Feedback:        strPtr("because"),
		TimeLimit:       &timeLimit,
		Status:          "active",
		PublishedStatus: "published",
	}
}

func noteQuestion(id, contentID int64) *model.Question {
	return &model.Question{
		Type:             model.TypeStudyNote,
		QuestionID:       id,
		SubjectID:        10,
		ContentID:        contentID,
		StudyNoteContent: "read this",
		Status:           "active",
		PublishedStatus:  "published",
	}
}

type quizFixture struct {
	svc     *QuizService
	store   *memStore
	results *fakeResults
	bank    *fakeBank
}

func newQuizFixture() *quizFixture {
	store := newMemStore()
	results := &fakeResults{}
	bank := &fakeBank{
		questions: make(map[bankKey]*model.Question),
		byContent: make(map[int64]*model.Question),
	}

	skills := &fakeSkills{skills: map[int64]*model.Skill{
		5: {SkillID: 5, SubjectID: 10, SkillName: "fractions"},
	}}
	contents := &fakeContents{bySkill: map[int64][]model.Content{
		5: {
			{ContentID: 100, SkillID: 5, Type: model.TypeMultichoice, SortOrder: 1},
			{ContentID: 101, SkillID: 5, Type: model.TypeStudyNote, SortOrder: 2},
			{ContentID: 102, SkillID: 5, Type: model.TypeMultichoice, SortOrder: 3},
		},
	}}
	memberships := &fakeMemberships{learner: map[int64]bool{10: true}}

	for _, q := range []*model.Question{
		mcQuestion(1, 100, "option_2", 30),
		noteQuestion(2, 101),
		mcQuestion(3, 102, "option_1", 45),
	} {
		bank.questions[bankKey{q.Type, q.QuestionID}] = q
		bank.byContent[q.ContentID] = q
	}

	svc := NewQuizService(skills, contents, bank, memberships, results, store, zerolog.Nop())
	return &quizFixture{svc: svc, store: store, results: results, bank: bank}
}

func intPtr(n int) *int { return &n }

// ─── StartQuiz ──────────────────────────────────────────────────────────────

func TestStartQuizAssemblesSessionInContentOrder(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()

	items, err := f.svc.StartQuiz(ctx, 7, 5)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].QuestionID != 1 || items[1].QuestionID != 2 || items[2].QuestionID != 3 {
		t.Errorf("items out of content order: %d %d %d",
			items[0].QuestionID, items[1].QuestionID, items[2].QuestionID)
	}
	if items[0].Option2 == nil || *items[0].Option2 != "b" {
		t.Error("multichoice item missing options")
	}
	if items[1].StudyNoteContent != "read this" {
		t.Error("study note item missing content")
	}

	doc := f.store.docs["7_5"]
	if len(doc) != 3 {
		t.Fatalf("expected 3 stored attempts, got %d", len(doc))
	}
	for i, a := range doc {
		if a.Result != nil {
			t.Errorf("attempt %d: fresh session must have nil result", i)
		}
	}
	if doc[0].TimeLimit == nil || *doc[0].TimeLimit != 30 {
		t.Error("time limit not copied from question at assembly")
	}
}

func TestStartQuizDiscardsExistingSession(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()

	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatalf("first StartQuiz: %v", err)
	}
	f.store.docs["7_5"][0].Result = intPtr(1) // Simulate graded progress

	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatalf("second StartQuiz: %v", err)
	}
	if f.store.docs["7_5"][0].Result != nil {
		t.Error("restart must discard graded progress")
	}
}

func TestStartQuizSkillNotFound(t *testing.T) {
	f := newQuizFixture()
	if _, err := f.svc.StartQuiz(context.Background(), 7, 999); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestStartQuizPermissionDenied(t *testing.T) {
	f := newQuizFixture()
	skills := &fakeSkills{skills: map[int64]*model.Skill{
		6: {SkillID: 6, SubjectID: 99, SkillName: "locked"},
	}}
	svc := NewQuizService(skills, &fakeContents{}, f.bank,
		&fakeMemberships{learner: map[int64]bool{}}, f.results, f.store, zerolog.Nop())
	if _, err := svc.StartQuiz(context.Background(), 7, 6); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestStartQuizSkipsContentWithoutQuestions(t *testing.T) {
	f := newQuizFixture()
	delete(f.bank.byContent, 101)

	items, err := f.svc.StartQuiz(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected empty content slot skipped, got %d items", len(items))
	}
}

// ─── SubmitAnswer ───────────────────────────────────────────────────────────

func submitMC(f *quizFixture, t *testing.T, questionID int64, answer string) *model.QuestionGrade {
	t.Helper()
	grade, err := f.svc.SubmitAnswer(context.Background(), 7, &model.SubmitAnswerRequest{
		SkillID:           5,
		QuestionID:        questionID,
		Type:              model.TypeMultichoice,
		TimeUsed:          intPtr(12),
		MultichoiceAnswer: strPtr(answer),
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return grade
}

func TestSubmitAnswerGradesAndRecordsDurably(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	grade := submitMC(f, t, 1, "option_2")
	if grade.Result != 1 {
		t.Errorf("correct answer graded %d", grade.Result)
	}
	if grade.Answer == nil || *grade.Answer != "option_2" {
		t.Error("grade must reveal the authoritative answer")
	}

	if len(f.results.questionResults) != 1 {
		t.Fatalf("expected 1 durable question result, got %d", len(f.results.questionResults))
	}
	qr := f.results.questionResults[0]
	if qr.Result != 1 || qr.QuestionID != 1 || qr.SkillID != 5 || qr.SubjectID != 10 {
		t.Errorf("durable row mismatch: %+v", qr)
	}

	doc := f.store.docs["7_5"]
	if doc[0].Result == nil || *doc[0].Result != 1 {
		t.Error("session attempt not updated in place")
	}
	if doc[0].TimeUsed == nil || *doc[0].TimeUsed != 12 {
		t.Error("time used not folded into session")
	}
	if len(doc) != 3 {
		t.Errorf("grading must replace, not append: %d attempts", len(doc))
	}
}

func TestSubmitAnswerWrongAnswerIsExplicitZero(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	grade := submitMC(f, t, 1, "option_3")
	if grade.Result != 0 {
		t.Errorf("wrong answer graded %d", grade.Result)
	}
	doc := f.store.docs["7_5"]
	if doc[0].Result == nil || *doc[0].Result != 0 {
		t.Error("wrong answer must store explicit 0, not nil")
	}
}

func TestSubmitAnswerMissingPayloadGradesZero(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	grade, err := f.svc.SubmitAnswer(ctx, 7, &model.SubmitAnswerRequest{
		SkillID:    5,
		QuestionID: 1,
		Type:       model.TypeMultichoice,
	})
	if err != nil {
		t.Fatalf("missing payload must grade, not fail: %v", err)
	}
	if grade.Result != 0 {
		t.Errorf("missing payload graded %d", grade.Result)
	}
}

func TestSubmitAnswerAppendsWhenNotInSession(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	// Question 4 exists in the bank but not in the assembled session.
	q := mcQuestion(4, 200, "option_1", 20)
	f.bank.questions[bankKey{model.TypeMultichoice, 4}] = q

	submitMC(f, t, 4, "option_1")
	doc := f.store.docs["7_5"]
	if len(doc) != 4 {
		t.Fatalf("expected appended attempt, got %d", len(doc))
	}
	if doc[3].QuestionID != 4 {
		t.Error("appended attempt must preserve stored order")
	}
}

func TestSubmitAnswerSessionGoneStillRecordsDurably(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()

	_, err := f.svc.SubmitAnswer(ctx, 7, &model.SubmitAnswerRequest{
		SkillID:           5,
		QuestionID:        1,
		Type:              model.TypeMultichoice,
		MultichoiceAnswer: strPtr("option_2"),
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(f.results.questionResults) != 1 {
		t.Error("durable write must precede the session check")
	}
}

func TestSubmitAnswerQuestionNotFound(t *testing.T) {
	f := newQuizFixture()
	_, err := f.svc.SubmitAnswer(context.Background(), 7, &model.SubmitAnswerRequest{
		SkillID:           5,
		QuestionID:        999,
		Type:              model.TypeMultichoice,
		MultichoiceAnswer: strPtr("option_1"),
	})
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
	if len(f.results.questionResults) != 0 {
		t.Error("unknown question must not produce a durable row")
	}
}

// ─── Grading ────────────────────────────────────────────────────────────────

func TestGradeAnswerNumerical(t *testing.T) {
	q := &model.Question{Type: model.TypeNumerical, QuestionID: 1, Answer: strPtr("2.5")}
	tests := []struct {
		name      string
		submitted *string
		want      int
	}{
		{"exact match", strPtr("2.5"), 1},
		{"numeric equivalence", strPtr("2.50"), 1},
		{"wrong value", strPtr("2.51"), 0},
		{"missing payload", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, revealed := gradeAnswer(q, &model.SubmitAnswerRequest{
				Type: model.TypeNumerical, QuestionID: 1, NumericalAnswer: tt.submitted,
			})
			if result != tt.want {
				t.Errorf("got %d, want %d", result, tt.want)
			}
			if revealed == nil || *revealed != "2.5" {
				t.Error("numerical grade must reveal the stored answer")
			}
		})
	}
}

func TestGradeAnswerNumericalNonNumericFallsBackToStringCompare(t *testing.T) {
	q := &model.Question{Type: model.TypeNumerical, QuestionID: 1, Answer: strPtr("1/2")}
	result, _ := gradeAnswer(q, &model.SubmitAnswerRequest{
		Type: model.TypeNumerical, QuestionID: 1, NumericalAnswer: strPtr("1/2"),
	})
	if result != 1 {
		t.Error("identical non-numeric strings must match")
	}
	result, _ = gradeAnswer(q, &model.SubmitAnswerRequest{
		Type: model.TypeNumerical, QuestionID: 1, NumericalAnswer: strPtr("0.5"),
	})
	if result != 0 {
		t.Error("no numeric coercion when the stored answer does not parse")
	}
}

func TestGradeAnswerMatching(t *testing.T) {
	q := &model.Question{Type: model.TypeMatching, QuestionID: 1}
	tests := []struct {
		name      string
		submitted *string
		want      int
	}{
		{"all pairs correct", strPtr("11,22,33,44"), 1},
		{"reordered pairs still correct", strPtr("44,11,33,22"), 1},
		{"one bad pair", strPtr("11,22,99"), 0},
		{"crossed pair", strPtr("12,21,33,44"), 0},
		{"missing payload", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, revealed := gradeAnswer(q, &model.SubmitAnswerRequest{
				Type: model.TypeMatching, QuestionID: 1, MatchingAnswer: tt.submitted,
			})
			if result != tt.want {
				t.Errorf("got %d, want %d", result, tt.want)
			}
			if revealed == nil || *revealed != "11,22,33,44" {
				t.Error("matching grade must reveal the identity pairing")
			}
		})
	}
}

func TestGradeAnswerStudyNote(t *testing.T) {
	q := &model.Question{Type: model.TypeStudyNote, QuestionID: 2}
	result, _ := gradeAnswer(q, &model.SubmitAnswerRequest{
		Type: model.TypeStudyNote, QuestionID: 2, StudyNoteAnswer: intPtr(1),
	})
	if result != 1 {
		t.Error("acknowledged study note must grade 1")
	}
	result, _ = gradeAnswer(q, &model.SubmitAnswerRequest{
		Type: model.TypeStudyNote, QuestionID: 2,
	})
	if result != 0 {
		t.Error("unacknowledged study note must grade 0")
	}
}

// ─── Aggregation ────────────────────────────────────────────────────────────

func TestAggregate(t *testing.T) {
	mc := func(result *int, timeLimit, timeUsed *int) model.QuestionAttempt {
		return model.QuestionAttempt{Type: model.TypeMultichoice, Result: result, TimeLimit: timeLimit, TimeUsed: timeUsed}
	}
	note := func(result *int) model.QuestionAttempt {
		return model.QuestionAttempt{Type: model.TypeStudyNote, Result: result}
	}

	tests := []struct {
		name           string
		attempts       []model.QuestionAttempt
		wantPercentage float64
		wantTimeLimit  int
		wantTimeUsed   int
	}{
		{
			name: "scored questions averaged",
			attempts: []model.QuestionAttempt{
				mc(intPtr(1), intPtr(30), intPtr(10)),
				mc(intPtr(0), intPtr(30), intPtr(25)),
				mc(intPtr(1), intPtr(45), intPtr(40)),
			},
			wantPercentage: 2.0 / 3.0,
			wantTimeLimit:  105,
			wantTimeUsed:   75,
		},
		{
			name: "ungraded counts as zero",
			attempts: []model.QuestionAttempt{
				mc(intPtr(1), intPtr(30), intPtr(10)),
				mc(nil, intPtr(30), nil),
			},
			wantPercentage: 0.5,
			wantTimeLimit:  60,
			wantTimeUsed:   10,
		},
		{
			name: "study notes excluded from mixed sessions",
			attempts: []model.QuestionAttempt{
				mc(intPtr(1), intPtr(30), intPtr(10)),
				note(intPtr(1)),
				mc(intPtr(0), intPtr(30), intPtr(5)),
			},
			wantPercentage: 0.5,
			wantTimeLimit:  60,
			wantTimeUsed:   15,
		},
		{
			name: "perfect score unaffected by unacknowledged note",
			attempts: []model.QuestionAttempt{
				mc(intPtr(1), nil, nil),
				note(intPtr(0)),
			},
			wantPercentage: 1,
		},
		{
			name:           "all study notes averaged over notes",
			attempts:       []model.QuestionAttempt{note(intPtr(1)), note(intPtr(1))},
			wantPercentage: 1,
		},
		{
			name:           "all study notes with one unacknowledged",
			attempts:       []model.QuestionAttempt{note(intPtr(1)), note(nil)},
			wantPercentage: 0.5,
		},
		{
			name:           "empty session",
			attempts:       nil,
			wantPercentage: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentage, timeLimit, timeUsed := aggregate(tt.attempts)
			if percentage != tt.wantPercentage {
				t.Errorf("percentage = %v, want %v", percentage, tt.wantPercentage)
			}
			if timeLimit != tt.wantTimeLimit {
				t.Errorf("timeLimit = %d, want %d", timeLimit, tt.wantTimeLimit)
			}
			if timeUsed != tt.wantTimeUsed {
				t.Errorf("timeUsed = %d, want %d", timeUsed, tt.wantTimeUsed)
			}
		})
	}
}

// ─── FinalizeQuiz ───────────────────────────────────────────────────────────

func TestFinalizeQuizWritesAggregateAndDeletesSession(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}
	submitMC(f, t, 1, "option_2") // correct
	submitMC(f, t, 3, "option_4") // wrong

	result, err := f.svc.FinalizeQuiz(ctx, 7, 5)
	if err != nil {
		t.Fatalf("FinalizeQuiz: %v", err)
	}
	// 2 scored (1 + 0), study note ungraded and excluded.
	if result.Percentage != 0.5 {
		t.Errorf("percentage = %v, want 0.5", result.Percentage)
	}
	if result.SubjectID != 10 || result.SkillID != 5 {
		t.Errorf("aggregate row mismatch: %+v", result)
	}
	if len(f.results.quizResults) != 1 {
		t.Fatal("expected one durable quiz result")
	}
	if _, ok := f.store.docs["7_5"]; ok {
		t.Error("finalize must delete the session document")
	}
}

func TestFinalizeQuizRoundsPercentageToTwoDecimals(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}
	f.bank.questions[bankKey{model.TypeMultichoice, 4}] = mcQuestion(4, 200, "option_1", 20)

	submitMC(f, t, 1, "option_2") // correct
	submitMC(f, t, 3, "option_4") // wrong
	submitMC(f, t, 4, "option_1") // correct, appended

	result, err := f.svc.FinalizeQuiz(ctx, 7, 5)
	if err != nil {
		t.Fatalf("FinalizeQuiz: %v", err)
	}
	if result.Percentage != 0.67 {
		t.Errorf("percentage = %v, want 0.67", result.Percentage)
	}
}

func TestFinalizeQuizKeepsResultWhenDeleteFails(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	f.store.failDelete = &sessionstore.TransientError{Op: "delete", Err: errors.New("conn reset")}
	result, err := f.svc.FinalizeQuiz(ctx, 7, 5)
	if err != nil {
		t.Fatalf("delete failure must not fail finalization: %v", err)
	}
	if result == nil || len(f.results.quizResults) != 1 {
		t.Error("aggregate row must stand despite the failed delete")
	}
}

func TestFinalizeQuizNoSession(t *testing.T) {
	f := newQuizFixture()
	if _, err := f.svc.FinalizeQuiz(context.Background(), 7, 5); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if len(f.results.quizResults) != 0 {
		t.Error("no aggregate row without a session")
	}
}

// ─── QuizStatus / AbandonQuiz ───────────────────────────────────────────────

func TestQuizStatusReplaysGradedState(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}
	submitMC(f, t, 1, "option_2")

	items, err := f.svc.QuizStatus(ctx, 7, 5)
	if err != nil {
		t.Fatalf("QuizStatus: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Result == nil || *items[0].Result != 1 {
		t.Error("graded attempt must replay with its result")
	}
	if items[2].Result != nil {
		t.Error("ungraded attempt must replay without a result")
	}
	if items[0].Option1 == nil {
		t.Error("replay must include the full question payload")
	}
}

func TestQuizStatusSkipsVanishedQuestions(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}
	delete(f.bank.questions, bankKey{model.TypeStudyNote, 2})

	items, err := f.svc.QuizStatus(ctx, 7, 5)
	if err != nil {
		t.Fatalf("QuizStatus: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("vanished question must be skipped, got %d items", len(items))
	}
}

func TestAbandonQuizDeletesWithoutResult(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	if _, err := f.svc.StartQuiz(ctx, 7, 5); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.AbandonQuiz(ctx, 7, 5); err != nil {
		t.Fatalf("AbandonQuiz: %v", err)
	}
	if _, ok := f.store.docs["7_5"]; ok {
		t.Error("abandon must delete the session document")
	}
	if len(f.results.quizResults) != 0 {
		t.Error("abandon must not produce a quiz result")
	}

	if err := f.svc.AbandonQuiz(ctx, 7, 5); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on second abandon, got %v", err)
	}
}
