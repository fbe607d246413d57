package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapMessage(t *testing.T) {
	err := Wrap(CodeUpstream, "fred request failed", errors.New("timeout"))
	require.EqualError(t, err, "fred request failed: timeout")

	bare := Wrap(CodeNotFound, "series 'X' not found", nil)
	require.EqualError(t, bare, "series 'X' not found")
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap(CodeNotFound, "missing", nil))
	require.True(t, IsCode(err, CodeNotFound))
	require.False(t, IsCode(err, CodeUpstream))
	require.Equal(t, CodeNotFound, CodeOf(err))
	require.Equal(t, "", CodeOf(errors.New("plain")))
}
