package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/dberrors"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
)

// ErrorHandlerMiddleware turns errors attached to the gin context into
// structured error responses. Controllers call HandleAPIError directly;
// this middleware catches anything pushed via c.Error instead.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			HandleAPIError(c, c.Errors.Last().Err)
		}
	}
}

// HandleAPIError maps an application error to an HTTP status and error body.
func HandleAPIError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status, detail := mapError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Request rejected")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func mapError(err error) (int, *dto.ErrorDetail) {
	var customErr *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrBlobMissing):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeFileMissing, message)
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrDocumentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)
	case errors.Is(err, apperrors.ErrInvalidParameter),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message)
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message)
	case errors.Is(err, apperrors.ErrStorageUnavailable) || dberrors.IsConnectionError(err):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeStorageUnavailable, "Storage backend is unavailable")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}
