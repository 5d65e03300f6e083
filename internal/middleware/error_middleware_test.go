package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

func performErrorRequest(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/students/1", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"document not found", apperrors.ErrDocumentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"blob missing", apperrors.ErrBlobMissing, http.StatusNotFound, dto.ErrorCodeFileMissing},
		{"duplicate email", apperrors.ErrDuplicateEmail, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
		{"invalid parameter", apperrors.ErrInvalidParameter, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"storage unavailable", apperrors.ErrStorageUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeStorageUnavailable},
		{"connection error", context.DeadlineExceeded, http.StatusServiceUnavailable, dto.ErrorCodeStorageUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := performErrorRequest(t, tc.err)
			require.Equal(t, tc.wantStatus, rec.Code)
			require.NotNil(t, body.Error)
			require.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	rec, body := performErrorRequest(t, apperrors.NewInvalidParameterError("limit must be between 1 and 100"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	require.Equal(t, "limit must be between 1 and 100", body.Error.Message)
}

func TestBlobMissingIsDistinctFromNotFound(t *testing.T) {
	_, notFound := performErrorRequest(t, apperrors.ErrDocumentNotFound)
	_, blobMissing := performErrorRequest(t, apperrors.ErrBlobMissing)
	require.NotEqual(t, notFound.Error.Code, blobMissing.Error.Code)
}

func TestHandleAPIErrorInternalHidesDetails(t *testing.T) {
	_, body := performErrorRequest(t, errors.New("pq: column does not exist"))
	require.NotContains(t, body.Error.Message, "pq:")
}
