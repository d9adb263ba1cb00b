package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillsprint/skillsprint-backend/internal/middleware"
	"github.com/skillsprint/skillsprint-backend/internal/model"
	"github.com/skillsprint/skillsprint-backend/internal/response"
	"github.com/skillsprint/skillsprint-backend/internal/service"
	"github.com/skillsprint/skillsprint-backend/internal/validator"
)

// QuizHandler handles the learner-facing quiz session endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// StartQuiz godoc
// GET /api/v1/learner/skills/:skill_id/quiz
// Assembles a fresh quiz for the skill, discarding any in-flight session.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	skillID, ok := parseIDParam(c, "skill_id")
	if !ok {
		return
	}

	items, err := h.quizService.StartQuiz(c.Request.Context(), claims.UserID, skillID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": items})
}

// QuizStatus godoc
// GET /api/v1/learner/skills/:skill_id/quiz/status
// Replays the in-flight session with graded state per question.
func (h *QuizHandler) QuizStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	skillID, ok := parseIDParam(c, "skill_id")
	if !ok {
		return
	}

	items, err := h.quizService.QuizStatus(c.Request.Context(), claims.UserID, skillID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": items})
}

// AbandonQuiz godoc
// DELETE /api/v1/learner/skills/:skill_id/quiz
// Discards the in-flight session without producing a quiz result.
func (h *QuizHandler) AbandonQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	skillID, ok := parseIDParam(c, "skill_id")
	if !ok {
		return
	}

	if err := h.quizService.AbandonQuiz(c.Request.Context(), claims.UserID, skillID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// SubmitAnswer godoc
// POST /api/v1/learner/quiz/answers
// Grades one answer and folds it into the session document.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.quizService.SubmitAnswer(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, grade)
}

// SubmitQuiz godoc
// POST /api/v1/learner/quiz/results
// Finalizes the session into a durable quiz result.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quizService.FinalizeQuiz(c.Request.Context(), claims.UserID, req.SkillID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// parseIDParam parses a positive integer path parameter, failing the request
// with INVALID_ID otherwise.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
