package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillsprint/skillsprint-backend/internal/middleware"
	"github.com/skillsprint/skillsprint-backend/internal/model"
	"github.com/skillsprint/skillsprint-backend/internal/response"
	"github.com/skillsprint/skillsprint-backend/internal/service"
	"github.com/skillsprint/skillsprint-backend/internal/validator"
)

// QuestionHandler handles author-facing question bank edits.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// UpdateMultichoice godoc
// PUT /api/v1/author/questions/multichoice/:question_id
// Applies a partial edit; answer changes are refused while any live quiz
// session references the question.
func (h *QuestionHandler) UpdateMultichoice(c *gin.Context) {
	claims := middleware.GetClaims(c)
	questionID, ok := parseIDParam(c, "question_id")
	if !ok {
		return
	}

	var req model.UpdateMultichoiceQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.questionService.UpdateMultichoice(c.Request.Context(), claims.UserID, questionID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// UpdateNumerical godoc
// PUT /api/v1/author/questions/numerical/:question_id
func (h *QuestionHandler) UpdateNumerical(c *gin.Context) {
	claims := middleware.GetClaims(c)
	questionID, ok := parseIDParam(c, "question_id")
	if !ok {
		return
	}

	var req model.UpdateNumericalQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.questionService.UpdateNumerical(c.Request.Context(), claims.UserID, questionID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": q})
}
