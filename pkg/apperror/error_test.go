package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-landing-page/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	err := apperror.Unavailable("Site is loading", cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "Site is loading", err.Error())
	assert.ErrorIs(t, err, cause)

	var appErr *apperror.AppError
	wrapped := error(apperror.BadRequest("bad").WithDetails(map[string]string{"name": "Name is required"}))
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, map[string]string{"name": "Name is required"}, appErr.Details)

	assert.Equal(t, http.StatusInternalServerError, apperror.Internal(cause).Code)
	assert.Equal(t, http.StatusConflict, apperror.Conflict("busy", nil).Code)
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("missing").Code)
}
