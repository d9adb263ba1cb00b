package model

// QuestionType enumerates the four question bank tables.
type QuestionType string

const (
	TypeMultichoice QuestionType = "multichoiceQuestion"
	TypeMatching    QuestionType = "matchingQuestion"
	TypeNumerical   QuestionType = "numericalQuestion"
	TypeStudyNote   QuestionType = "studyNote"
)

// Valid reports whether t names one of the four question bank tables.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultichoice, TypeMatching, TypeNumerical, TypeStudyNote:
		return true
	}
	return false
}

// Question is the superset row shared by the four question bank tables.
// Only the fields relevant to a row's Type are populated: Options for
// multichoice, CategoryA/CategoryB for matching, StudyNoteContent for
// study notes. Answer is nil for matching questions and study notes,
// which have no authoritative answer column.
type Question struct {
	Type             QuestionType `json:"type"`
	QuestionID       int64        `json:"question_id"`
	SubjectID        int64        `json:"subject_id"`
	ContentID        int64        `json:"content_id"`
	QuestionContent  string       `json:"question_content,omitempty"`
	StudyNoteContent string       `json:"study_note_content,omitempty"`
	Options          [4]*string   `json:"-"`
	CategoryA        [4]*string   `json:"-"`
	CategoryB        [4]*string   `json:"-"`
	Answer           *string      `json:"answer,omitempty"`
	Feedback         *string      `json:"feedback,omitempty"`
	TimeLimit        *int         `json:"time_limit,omitempty"`
	Status           string       `json:"status"`
	PublishedStatus  string       `json:"published_status"`
}

// UpdateMultichoiceQuestionRequest is the payload for editing a multichoice
// question. Pointer fields distinguish "not provided" from "set to empty".
type UpdateMultichoiceQuestionRequest struct {
	QuestionContent *string `json:"question_content"`
	Option1         *string `json:"option_1"`
	Option2         *string `json:"option_2"`
	Option3         *string `json:"option_3"`
	Option4         *string `json:"option_4"`
	Feedback        *string `json:"feedback"`
	Answer          *string `json:"answer" binding:"omitempty,oneof=option_1 option_2 option_3 option_4"`
	TimeLimit       *int    `json:"time_limit" binding:"omitempty,min=0"`
	PublishedStatus *string `json:"published_status" binding:"omitempty,oneof=published unpublished"`
}

// UpdateNumericalQuestionRequest is the payload for editing a numerical question.
type UpdateNumericalQuestionRequest struct {
	QuestionContent *string `json:"question_content"`
	Feedback        *string `json:"feedback"`
	Answer          *string `json:"answer" binding:"omitempty,numeric"`
	TimeLimit       *int    `json:"time_limit" binding:"omitempty,min=0"`
	PublishedStatus *string `json:"published_status" binding:"omitempty,oneof=published unpublished"`
}
