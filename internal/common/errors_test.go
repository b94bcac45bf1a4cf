package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatusFromError(ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(ErrBadRequest))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(ErrValidation))
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(ErrConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(ErrSolutionFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(fmt.Errorf("anything else")))
}

func TestHTTPStatusFromWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("pgCourseRepository.FindByID: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(wrapped))
}
