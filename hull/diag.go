package hull

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/hullkit/hull-runtime/errors"
)

// Capture is the diagnostic capture channel: a writable destination the
// engine's error output is pointed at, drained when an abort occurs. At
// most one capture is attached to an engine state at any time; the
// protected-call bridge replaces it atomically with the drain.
//
// The destination is a temporary file rather than an in-memory buffer so
// the channel's failure modes (allocation, read-back) surface as real
// I/O errors instead of being silently impossible.
type Capture struct {
	f      *os.File
	closed bool
}

// NewCapture allocates a fresh destination. Failure to allocate is a
// channel error; the caller decides whether that is fatal.
func NewCapture() (*Capture, error) {
	f, err := os.CreateTemp("", "hull-diag-*")
	if err != nil {
		return nil, &errors.ChannelError{Op: "create", Err: err}
	}
	return &Capture{f: f}, nil
}

// Writer returns the destination to install as the engine's error
// output.
func (c *Capture) Writer() io.Writer {
	return c.f
}

// ReadAndClose drains all bytes written since creation, decodes them as
// UTF-8 text, and releases the destination. The capture is unusable
// afterwards.
func (c *Capture) ReadAndClose() (string, error) {
	if c.closed {
		return "", &errors.ChannelError{Op: "read", Err: os.ErrClosed}
	}
	c.closed = true
	defer func() {
		name := c.f.Name()
		c.f.Close()
		os.Remove(name)
	}()

	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return "", &errors.ChannelError{Op: "reopen for reading", Err: err}
	}
	data, err := io.ReadAll(c.f)
	if err != nil {
		return "", &errors.ChannelError{Op: "drain", Err: err}
	}
	if !utf8.Valid(data) {
		return "", &errors.ChannelError{Op: "decode", Err: fmt.Errorf("diagnostic text is not valid UTF-8")}
	}
	return string(data), nil
}

// Close releases the destination without reading it. Closing twice is a
// no-op.
func (c *Capture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	name := c.f.Name()
	err := c.f.Close()
	if rmErr := os.Remove(name); err == nil {
		err = rmErr
	}
	if err != nil {
		return &errors.ChannelError{Op: "close", Err: err}
	}
	return nil
}
