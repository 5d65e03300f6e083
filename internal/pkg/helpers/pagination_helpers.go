package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// ParseSkipLimit extracts skip/limit query parameters. Missing parameters use
// defaults; present-but-out-of-range values fail with ErrInvalidParameter
// rather than being clamped.
func ParseSkipLimit(c *gin.Context) (skip, limit int, err error) {
	skipStr := c.DefaultQuery("skip", strconv.Itoa(DefaultSkip))
	skip, convErr := strconv.Atoi(skipStr)
	if convErr != nil {
		return 0, 0, apperrors.NewInvalidParameterError("skip must be an integer")
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, convErr = strconv.Atoi(limitStr)
	if convErr != nil {
		return 0, 0, apperrors.NewInvalidParameterError("limit must be an integer")
	}

	if err := ValidateSkipLimit(skip, limit); err != nil {
		return 0, 0, err
	}

	return skip, limit, nil
}

// ValidateSkipLimit enforces skip >= 0 and 1 <= limit <= 100.
func ValidateSkipLimit(skip, limit int) error {
	if skip < 0 {
		return apperrors.NewInvalidParameterError("skip must be >= 0")
	}
	if limit < MinLimit || limit > MaxLimit {
		return apperrors.NewInvalidParameterError("limit must be between 1 and 100")
	}
	return nil
}
