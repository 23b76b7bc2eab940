package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
	"github.com/sanwar/studentsvc/internal/pkg/apperrors"
	"github.com/sanwar/studentsvc/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the response envelope. Only the
// not-found condition becomes a 404; store failures stay 500 so they are not
// masked as missing resources.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.Failure[*models.Student](err.Error()))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.Failure[*models.Student](err.Error()))
	case errors.Is(err, apperrors.ErrStudentExists):
		c.JSON(http.StatusConflict, dto.Failure[*models.Student](err.Error()))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.Failure[*models.Student]("Internal server error"))
	}
}
