package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageIncludesInternal(t *testing.T) {
	base := New("TEST", "something failed", http.StatusBadRequest)
	wrapped := base.WithInternal(errors.New("disk on fire"))

	require.Equal(t, "something failed: disk on fire", wrapped.Error())
	require.Equal(t, "something failed", base.Error(), "original must remain untouched")
}

func TestFromErrorRecognisesWrappedAppError(t *testing.T) {
	err := fmt.Errorf("handler: %w", ErrNoClinic)

	appErr := FromError(err)
	require.Equal(t, "NO_CLINIC", appErr.Code)
	require.Equal(t, http.StatusConflict, appErr.StatusCode)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, appErr.Code)
	require.EqualError(t, appErr.Unwrap(), "boom")
}

func TestFromErrorNil(t *testing.T) {
	require.Nil(t, FromError(nil))
}

func TestWrapKeepsOriginalForUnwrap(t *testing.T) {
	inner := errors.New("db down")
	appErr := Wrap(inner, "could not save")

	require.ErrorIs(t, appErr, inner)
	require.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
}
