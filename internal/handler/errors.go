package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/pkg/log"
	"github.com/donorhub/donorhub/pkg/response"
)

// writeDomainError maps a domain error to the matching HTTP response.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		response.Error(c, 504, "TIMEOUT", err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("request failed")
		response.InternalError(c, "internal error")
	}
}
