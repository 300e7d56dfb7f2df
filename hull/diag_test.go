package hull

import (
	stderrors "errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hullkit/hull-runtime/errors"
)

func TestCapture_RoundTrip(t *testing.T) {
	c, err := NewCapture()
	require.NoError(t, err)

	_, err = io.WriteString(c.Writer(), "precision error: ")
	require.NoError(t, err)
	_, err = io.WriteString(c.Writer(), "facet drifted\n")
	require.NoError(t, err)

	text, err := c.ReadAndClose()
	require.NoError(t, err)
	assert.Equal(t, "precision error: facet drifted\n", text)
}

func TestCapture_ReadTwice(t *testing.T) {
	c, err := NewCapture()
	require.NoError(t, err)

	_, err = c.ReadAndClose()
	require.NoError(t, err)

	_, err = c.ReadAndClose()
	require.Error(t, err)

	var cerr *errors.ChannelError
	require.True(t, stderrors.As(err, &cerr))
	assert.True(t, stderrors.Is(err, os.ErrClosed))
}

func TestCapture_CloseIdempotent(t *testing.T) {
	c, err := NewCapture()
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestCapture_CloseAfterRead(t *testing.T) {
	c, err := NewCapture()
	require.NoError(t, err)

	_, err = c.ReadAndClose()
	require.NoError(t, err)
	require.NoError(t, c.Close())
}
