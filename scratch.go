package jsonval

import (
	"context"
	"runtime"

	"github.com/jackc/puddle/v2"
)

const scratchInitialSize = 512

// scratchBuffer is a reusable encode buffer. The slice is grown by
// appendValue and kept at its high-water capacity across uses.
type scratchBuffer struct {
	buf []byte
}

// encScratch bounds the transient memory used by concurrent [Encoder.Encode]
// calls: rather than allocating a fresh buffer per call, encoders acquire a
// pooled buffer and block (or fail with the context) when all are in use.
var encScratch = newScratchPool()

func newScratchPool() *puddle.Pool[*scratchBuffer] {
	pool, err := puddle.NewPool[*scratchBuffer](&puddle.Config[*scratchBuffer]{
		Constructor: func(_ context.Context) (*scratchBuffer, error) {
			return &scratchBuffer{buf: make([]byte, 0, scratchInitialSize)}, nil
		},
		Destructor: func(*scratchBuffer) {},
		//nolint:gosec //How many cpus do you think we have? Puddle requires int32.
		MaxSize: int32(min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) * 2),
	})
	// Only fails for a non-positive MaxSize.
	if err != nil {
		panic(err)
	}

	return pool
}
