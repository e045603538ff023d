package jsonval

import (
	"context"
	"errors"
	"io"
	"time"
)

// Encoder writes [Value]s to an [io.Writer] as newline-delimited JSON, one
// value per call to [Encoder.Encode].
//
// Use [NewEncoder] to create instances. Encode buffers come from a bounded
// package-level pool, so concurrent encoders cannot grow transient memory
// without bound. An Encoder is not safe for concurrent use.
type Encoder struct {
	w        io.Writer
	t        time.Duration
	maxDepth int
}

// NewEncoder returns a new [Encoder] writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, maxDepth: DefaultMaxDepth}
}

// SetIdleTimeout configures an idle timeout for [Encoder.Encode].
//
// The timeout takes effect only when the underlying writer supports
// interruption: a [DeadlineWriter] has its write deadline moved, otherwise
// an [io.Closer] is closed. A duration of 0 or less disables the timeout.
func (e *Encoder) SetIdleTimeout(t time.Duration) {
	e.t = t
}

// SetMaxDepth overrides [DefaultMaxDepth] for values encoded by this
// Encoder. A depth of 0 or less restores the default.
func (e *Encoder) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}

	e.maxDepth = n
}

// Encode serializes v as [Encode] does and writes it to the stream followed
// by a newline. The context interrupts a blocked write when the writer
// supports it; encoding itself is synchronous and uses ctx only to acquire
// a scratch buffer.
func (e *Encoder) Encode(ctx context.Context, v Value) error {
	res, err := encScratch.Acquire(ctx)
	if err != nil {
		return err
	}

	defer res.Release()

	s := res.Value()

	buf, err := appendValue(s.buf[:0], v, e.maxDepth)
	if err != nil {
		return err
	}

	buf = append(buf, '\n')
	// Keep the grown buffer for the next acquisition.
	s.buf = buf

	if dw, ok := e.w.(DeadlineWriter); ok {
		return e.deadlineWrite(ctx, dw, buf)
	}

	if c, ok := e.w.(io.Closer); ok {
		return e.closeWrite(ctx, c, buf)
	}

	// No way to interrupt a blocked write.
	_, err = e.w.Write(buf)

	return err
}

func (e *Encoder) deadlineWrite(ctx context.Context, dw DeadlineWriter, buf []byte) error {
	dctx, stop := context.WithCancel(ctx)
	defer stop()

	// Fresh deadline per write.
	deadline := time.Time{}
	if e.t > 0 {
		deadline = time.Now().Add(e.t)
	}

	if err := dw.SetWriteDeadline(deadline); err != nil {
		return err
	}

	after := context.AfterFunc(dctx, func() {
		_ = dw.SetWriteDeadline(time.Now())
	})

	_, err := dw.Write(buf)

	if !after() {
		return errors.Join(err, ctx.Err())
	}

	return err
}

func (e *Encoder) closeWrite(ctx context.Context, cw io.Closer, buf []byte) error {
	var dctx context.Context

	var stop context.CancelFunc

	if e.t > 0 {
		dctx, stop = context.WithTimeout(ctx, e.t)
	} else {
		dctx, stop = context.WithCancel(ctx)
	}

	defer stop()

	after := context.AfterFunc(dctx, func() {
		_ = cw.Close()
	})

	_, err := e.w.Write(buf)

	if !after() {
		return errors.Join(err, dctx.Err())
	}

	return err
}

// Close closes the underlying writer if it implements [io.Closer].
func (e *Encoder) Close() error {
	if c, ok := e.w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
