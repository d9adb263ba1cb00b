package model

import "fmt"

// SessionKey identifies at most one in-flight quiz session per learner per
// skill. Its string form is the store-level document key.
type SessionKey struct {
	LearnerID int64
	SkillID   int64
}

// String serializes the key as "{learner_id}_{skill_id}".
func (k SessionKey) String() string {
	return fmt.Sprintf("%d_%d", k.LearnerID, k.SkillID)
}

// QuestionAttempt is one entry in a session document. Result stays nil until
// the question is graded; a graded-but-wrong answer is an explicit 0, which
// the store encoding keeps distinct from nil.
type QuestionAttempt struct {
	Type       QuestionType `json:"type"`
	QuestionID int64        `json:"question_id"`
	Result     *int         `json:"result"`
	TimeUsed   *int         `json:"time_used"`
	TimeLimit  *int         `json:"time_limit"`
}

// QuizItem is one display entry of a quiz session as returned to the learner.
// Per-type fields are omitted when they do not apply: options for
// multichoice, category columns for matching, note content for study notes.
// Result/TimeUsed are only present when replaying an in-flight session.
type QuizItem struct {
	Type             QuestionType `json:"type"`
	QuestionID       int64        `json:"question_id"`
	QuestionContent  string       `json:"question_content,omitempty"`
	StudyNoteContent string       `json:"study_note_content,omitempty"`
	Option1          *string      `json:"option_1,omitempty"`
	Option2          *string      `json:"option_2,omitempty"`
	Option3          *string      `json:"option_3,omitempty"`
	Option4          *string      `json:"option_4,omitempty"`
	CategoryAOption1 *string      `json:"category_a_option_1,omitempty"`
	CategoryAOption2 *string      `json:"category_a_option_2,omitempty"`
	CategoryAOption3 *string      `json:"category_a_option_3,omitempty"`
	CategoryAOption4 *string      `json:"category_a_option_4,omitempty"`
	CategoryBOption1 *string      `json:"category_b_option_1,omitempty"`
	CategoryBOption2 *string      `json:"category_b_option_2,omitempty"`
	CategoryBOption3 *string      `json:"category_b_option_3,omitempty"`
	CategoryBOption4 *string      `json:"category_b_option_4,omitempty"`
	Result           *int         `json:"result,omitempty"`
	TimeUsed         *int         `json:"time_used,omitempty"`
	TimeLimit        *int         `json:"time_limit,omitempty"`
}

// SubmitAnswerRequest is the payload for grading one question. Exactly one
// of the per-type answer fields is expected; a missing answer for the
// submitted type grades as incorrect rather than failing validation.
type SubmitAnswerRequest struct {
	SkillID           int64        `json:"skill_id" binding:"required"`
	QuestionID        int64        `json:"question_id" binding:"required"`
	Type              QuestionType `json:"type" binding:"required,oneof=multichoiceQuestion matchingQuestion numericalQuestion studyNote"`
	TimeUsed          *int         `json:"time_used" binding:"omitempty,min=0"`
	MultichoiceAnswer *string      `json:"multichoiceAnswer" binding:"omitempty,oneof=option_1 option_2 option_3 option_4"`
	NumericalAnswer   *string      `json:"numericalAnswer" binding:"omitempty,numeric"`
	MatchingAnswer    *string      `json:"matchingAnswer"`
	StudyNoteAnswer   *int         `json:"studyNoteAnswer" binding:"omitempty,eq=1"`
}

// SubmitQuizRequest finalizes the learner's in-flight session on a skill.
type SubmitQuizRequest struct {
	SkillID int64 `json:"skill_id" binding:"required"`
}

// QuestionGrade is the outcome of grading one answer. Answer always reveals
// the authoritative answer, right or wrong.
type QuestionGrade struct {
	QuestionID int64   `json:"question_id"`
	Result     int     `json:"result"`
	Feedback   *string `json:"feedback"`
	Answer     *string `json:"answer"`
}
