package service

import "errors"

// Domain errors surfaced by the quiz and question services. Handlers map
// these to stable response codes with errors.Is.
var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrSessionNotFound   = errors.New("no quiz session in progress")
	ErrPermissionDenied  = errors.New("subject membership required")
	ErrAnswerLocked      = errors.New("a quiz session is underway for this question")
	ErrTooFewOptions     = errors.New("a multichoice question needs at least 2 options")
	ErrAnswerNotAnOption = errors.New("answer does not name a non-empty option")
)
