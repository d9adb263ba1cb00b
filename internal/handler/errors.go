package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skillsprint/skillsprint-backend/internal/response"
	"github.com/skillsprint/skillsprint-backend/internal/service"
	"github.com/skillsprint/skillsprint-backend/internal/sessionstore"
)

// failFromError maps a service error to its response code and status. Every
// quiz/question handler funnels its error path through here so the mapping
// stays in one place.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSkillNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSkillNotFound)
	case errors.Is(err, service.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrPermissionDenied):
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
	case errors.Is(err, service.ErrAnswerLocked):
		response.Fail(c, http.StatusConflict, response.ErrAnswerLocked)
	case errors.Is(err, service.ErrTooFewOptions), errors.Is(err, service.ErrAnswerNotAnOption):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"answer": err.Error()})
	case sessionstore.IsTransient(err):
		log.Error().Err(err).Msg("Session store unavailable")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
