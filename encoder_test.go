package jsonval

import (
	"bytes"
	"context"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_NewlineDelimited(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	enc := NewEncoder(&buf)

	require.NoError(t, enc.Encode(context.Background(), Int(1)))
	require.NoError(t, enc.Encode(context.Background(), Map(Field("a", Float(2.5)))))
	require.NoError(t, enc.Encode(context.Background(), String("x")))

	assert.Equal(t, "1\n{\"a\":2.5}\n\"x\"\n", buf.String())
}

func TestEncoder_StreamRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	enc := NewEncoder(&buf)

	sent := []Value{
		Null(),
		List(Int(1), Float(1), String("two")),
		Map(Field("nested", Map(Field("deep", Bool(true))))),
	}

	for _, v := range sent {
		require.NoError(t, enc.Encode(context.Background(), v))
	}

	dec := NewDecoder(&buf)

	for _, want := range sent {
		got, err := dec.Decode(context.Background())
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "stream round trip: got %#v, want %#v", got, want)
	}

	_, err := dec.Decode(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestEncoder_UnrepresentableNothingWritten(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	enc := NewEncoder(&buf)

	err := enc.Encode(context.Background(), Float(math.NaN()))
	require.ErrorIs(t, err, ErrUnrepresentableNumber)
	assert.Zero(t, buf.Len(), "a failed encode must not emit partial output")

	err = enc.Encode(context.Background(), Value{})
	require.ErrorIs(t, err, ErrUnrepresentableValue)
	assert.Zero(t, buf.Len())
}

func TestEncoder_SetMaxDepth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	enc := NewEncoder(&buf)
	enc.SetMaxDepth(2)

	require.NoError(t, enc.Encode(context.Background(), List(Int(1))))

	err := enc.Encode(context.Background(), List(List(Int(1))))
	require.ErrorIs(t, err, ErrDepthExceeded)
}

func TestEncoder_ContextCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pr.Close() })

	enc := NewEncoder(pw)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// Nobody reads the pipe, so the write blocks until cancellation
	// closes the writer.
	err := enc.Encode(ctx, String("stuck"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncoder_IdleTimeout(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pr.Close() })

	enc := NewEncoder(pw)
	enc.SetIdleTimeout(50 * time.Millisecond)

	start := time.Now()

	err := enc.Encode(context.Background(), String("stuck"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestEncoder_ConcurrentEncoders(t *testing.T) {
	t.Parallel()

	// Many encoders in flight exercise the bounded scratch pool.
	const workers = 16

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			var buf bytes.Buffer

			enc := NewEncoder(&buf)

			for i := 0; i < 50; i++ {
				if err := enc.Encode(context.Background(), List(Int(int64(i)), String("payload"))); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestEncoder_Close(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	// A writer without Close is a no-op.
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Close())

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pr.Close() })

	enc = NewEncoder(pw)
	require.NoError(t, enc.Close())

	_, err := pw.Write([]byte("x"))
	require.Error(t, err)
}
