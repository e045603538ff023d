package jsonval

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Sequence(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader("1\n2.5\n\"x\"\n{\"a\":[true]}\n"))

	v, err := dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(Int(1)))

	v, err = dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(Float(2.5)))

	v, err = dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(String("x")))

	v, err = dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(Map(Field("a", List(Bool(true))))))

	_, err = dec.Decode(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoder_Malformed(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`{"a":`))

	_, err := dec.Decode(context.Background())
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestDecoder_DuplicateKey(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`{"a":1,"a":2}`))

	_, err := dec.Decode(context.Background())
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDecoder_SetLimit(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`{"key":"` + strings.Repeat("a", 100) + `"}`))
	dec.SetLimit(10)

	_, err := dec.Decode(context.Background())
	require.ErrorIs(t, err, ErrValueTooLarge)
}

func TestDecoder_LimitResetsPerValue(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader("\"aaaa\"\n\"bbbb\"\n"))
	dec.SetLimit(8)

	v, err := dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(String("aaaa")))

	v, err = dec.Decode(context.Background())
	require.NoError(t, err)
	assert.True(t, v.Equal(String("bbbb")))
}

func TestDecoder_SetMaxDepth(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`[[[1]]]`))
	dec.SetMaxDepth(2)

	_, err := dec.Decode(context.Background())
	require.ErrorIs(t, err, ErrDepthExceeded)

	dec = NewDecoder(strings.NewReader(`[[[1]]]`))
	dec.SetMaxDepth(3)

	_, err = dec.Decode(context.Background())
	require.ErrorIs(t, err, ErrDepthExceeded)

	dec = NewDecoder(strings.NewReader(`[[[1]]]`))
	dec.SetMaxDepth(4)

	_, err = dec.Decode(context.Background())
	require.NoError(t, err)
}

func TestDecoder_ContextCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	dec := NewDecoder(pr)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := dec.Decode(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecoder_IdleTimeout(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	dec := NewDecoder(pr)
	dec.SetIdleTimeout(50 * time.Millisecond)

	start := time.Now()

	_, err := dec.Decode(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDecoder_Close(t *testing.T) {
	t.Parallel()

	// A reader without Close is a no-op.
	dec := NewDecoder(strings.NewReader(`1`))
	require.NoError(t, dec.Close())

	pr, pw := io.Pipe()
	dec = NewDecoder(pr)
	require.NoError(t, dec.Close())

	// The pipe is really closed.
	_, err := pw.Write([]byte(`1`))
	require.Error(t, err)
}

func TestDecoder_ValuesOutliveDecoder(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(strings.NewReader(`{"k":"v"}`))

	v, err := dec.Decode(context.Background())
	require.NoError(t, err)
	require.NoError(t, dec.Close())

	got, ok := v.Get("k")
	require.True(t, ok)

	s, err := got.AsString()
	require.NoError(t, err)
	assert.Equal(t, "v", s)
}
