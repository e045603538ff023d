package jsonval

import (
	"io"
	"time"
)

// DeadlineReader is an [io.ReadCloser] that supports setting a read
// deadline, such as [net.Conn]. When the underlying reader of a [Decoder]
// implements it, cancellation and idle timeouts interrupt a blocked read by
// moving the deadline instead of closing the reader.
type DeadlineReader interface {
	io.ReadCloser
	SetReadDeadline(time.Time) error
}

// DeadlineWriter is an [io.WriteCloser] that supports setting a write
// deadline. When the underlying writer of an [Encoder] implements it,
// cancellation and idle timeouts interrupt a blocked write by moving the
// deadline instead of closing the writer.
type DeadlineWriter interface {
	io.WriteCloser
	SetWriteDeadline(time.Time) error
}
