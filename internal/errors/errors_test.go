package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"course not found", ErrCourseNotFound, http.StatusNotFound, "COURSE_NOT_FOUND"},
		{"wrapped course not found", fmt.Errorf("get course: %w", ErrCourseNotFound), http.StatusNotFound, "COURSE_NOT_FOUND"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"already enrolled", ErrAlreadyEnrolled, http.StatusConflict, "ALREADY_ENROLLED"},
		{"user exists", ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"unknown", errors.New("dial tcp 10.0.0.1:3306: connection refused"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_DoesNotLeakInternals(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("Error 1146: Table 'app.courses' doesn't exist"))
	assert.Equal(t, "internal server error", httpErr.ToErrorResponse().Error)
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeUnauthorized, CodeForStatus(http.StatusUnauthorized))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusBadGateway))
	assert.Equal(t, "METHOD_NOT_ALLOWED", CodeForStatus(http.StatusMethodNotAllowed))
}
