package model

import "time"

// QuizResult is one durable row per finalized quiz session. Append-only:
// rows are never updated or deleted by the engine.
type QuizResult struct {
	ResultID   int64     `json:"result_id"`
	LearnerID  int64     `json:"learner_id"`
	SubjectID  int64     `json:"subject_id"`
	SkillID    int64     `json:"skill_id"`
	Percentage float64   `json:"percentage"`
	TimeLimit  int       `json:"time_limit"`
	TimeUsed   int       `json:"time_used"`
	Timestamp  time.Time `json:"timestamp"`
}

// QuestionResult is one durable row per graded answer, written independently
// of the session lifecycle — it survives even when the session is abandoned.
type QuestionResult struct {
	ResultID   int64        `json:"result_id"`
	LearnerID  int64        `json:"learner_id"`
	SubjectID  int64        `json:"subject_id"`
	SkillID    int64        `json:"skill_id"`
	QuestionID int64        `json:"question_id"`
	Type       QuestionType `json:"type"`
	Result     int          `json:"result"`
	TimeLimit  *int         `json:"time_limit"`
	TimeUsed   *int         `json:"time_used"`
	Timestamp  time.Time    `json:"timestamp"`
}
