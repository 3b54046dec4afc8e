package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.CodeInvalidArgument, http.StatusBadRequest},
		{apperrors.CodeFailedPrecondition, http.StatusBadRequest},
		{apperrors.CodeNotFound, http.StatusNotFound},
		{apperrors.CodePermissionDenied, http.StatusForbidden},
		{apperrors.CodeConflict, http.StatusConflict},
		{apperrors.CodeInternal, http.StatusInternalServerError},
		{apperrors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.code.HTTPStatus(), "code %s", tc.code)
	}
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := apperrors.NotFound("battle not found")
	wrapped := apperrors.Wrap(fmt.Errorf("loading battle: %w", inner), "load failed")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(wrapped))
	assert.True(t, errors.Is(wrapped, apperrors.NotFound("")))
}

func TestWrap_PlainErrorDefaultsToInternal(t *testing.T) {
	wrapped := apperrors.Wrap(errors.New("pg: connection refused"), "query failed")
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, apperrors.Wrap(nil, "ignored"))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "hero not found", apperrors.MessageOf(apperrors.NotFound("hero not found")))
	assert.Equal(t, "internal server error", apperrors.MessageOf(errors.New("dsn: secret")))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := apperrors.InvalidArgumentf("bad level %d", 0)
	b := apperrors.InvalidArgument("other message")
	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, apperrors.NotFound("x")))
}
