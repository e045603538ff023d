package jsonval

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"
)

// Decoder reads a sequence of JSON values from an [io.Reader], yielding one
// [Value] per call to [Decoder.Decode]. Values in the stream are separated
// by whitespace (newline-delimited JSON works as-is).
//
// Use [NewDecoder] to create instances. A Decoder supports an optional
// per-value read limit ([Decoder.SetLimit]), an idle timeout
// ([Decoder.SetIdleTimeout]) and a nesting bound ([Decoder.SetMaxDepth]).
// It is not safe for concurrent use; the decoded Values are.
type Decoder struct {
	r        io.Reader
	lr       *io.LimitedReader // Non-nil while a read limit is set.
	jd       *json.Decoder
	n        int64
	t        time.Duration
	maxDepth int
}

// NewDecoder returns a new [Decoder] reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, jd: json.NewDecoder(r), maxDepth: DefaultMaxDepth}
}

// SetLimit configures a maximum number of bytes a single value may occupy
// on the wire. A value exceeding the limit fails with [ErrValueTooLarge],
// after which the Decoder is not usable (the stream position is undefined).
// A limit of 0 or less disables the check.
func (d *Decoder) SetLimit(n int64) {
	d.n = n

	if n > 0 {
		d.lr = &io.LimitedReader{R: d.r, N: n}
		d.jd = json.NewDecoder(d.lr)
	} else {
		d.lr = nil
		d.jd = json.NewDecoder(d.r)
	}
}

// SetIdleTimeout configures an idle timeout for [Decoder.Decode].
//
// The timeout takes effect only when the underlying reader supports
// interruption: a [DeadlineReader] has its read deadline moved, otherwise an
// [io.Closer] is closed. A duration of 0 or less disables the timeout.
func (d *Decoder) SetIdleTimeout(t time.Duration) {
	d.t = t
}

// SetMaxDepth overrides [DefaultMaxDepth] for values decoded by this
// Decoder. A depth of 0 or less restores the default.
func (d *Decoder) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}

	d.maxDepth = n
}

// ioErr translates the io errors produced by reading into an exhausted
// limit into [ErrValueTooLarge].
func (d *Decoder) ioErr(err error) error {
	if d.lr != nil && d.lr.N <= 0 {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrValueTooLarge
		}
	}

	return err
}

// cancelDecode runs one raw read under ctx, interrupting a blocked read via
// the reader's deadline when available and via Close otherwise.
func (d *Decoder) cancelDecode(ctx context.Context, cReader io.Closer, raw *json.RawMessage) error {
	var dctx context.Context

	var stop context.CancelFunc

	deadliner, haveDeadline := cReader.(DeadlineReader)

	// Clear any deadline left over from a previous interrupted call.
	if haveDeadline {
		if err := deadliner.SetReadDeadline(time.Time{}); err != nil {
			return err
		}
	}

	if d.t > 0 {
		dctx, stop = context.WithTimeout(ctx, d.t)
	} else {
		dctx, stop = context.WithCancel(ctx)
	}

	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)

	after := context.AfterFunc(dctx, func() {
		defer wg.Done()

		if haveDeadline {
			// A deadline in the past interrupts the read immediately.
			_ = deadliner.SetReadDeadline(time.Now())
			return
		}

		_ = cReader.Close()
	})

	err := d.ioErr(d.jd.Decode(raw))

	if !after() {
		// The interrupt ran; wait for it before touching the reader again.
		wg.Wait()
	}

	if err != nil {
		return errors.Join(err, dctx.Err())
	}

	return dctx.Err()
}

// Decode reads the next JSON value from the stream and returns it as a
// [Value] under the same policies as [Decode]. A cleanly exhausted stream
// returns [io.EOF].
func (d *Decoder) Decode(ctx context.Context) (Value, error) {
	// Each value gets the full read budget.
	if d.lr != nil {
		d.lr.N = d.n
	}

	var raw json.RawMessage

	var err error

	if c, ok := d.r.(io.Closer); ok {
		err = d.cancelDecode(ctx, c, &raw)
	} else {
		// No way to interrupt a blocked read.
		err = d.ioErr(d.jd.Decode(&raw))
	}

	if err != nil {
		switch {
		case errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF),
			errors.Is(err, ErrValueTooLarge),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return Value{}, err
		}

		return Value{}, malformed(err)
	}

	return decodeBytes(raw, d.maxDepth)
}

// Close closes the underlying reader if it implements [io.Closer].
func (d *Decoder) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
