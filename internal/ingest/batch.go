package ingest

// batchBuffer collects rows until it holds size of them.
type batchBuffer[T any] struct {
	buffer []T
	size   int
}

func newBatchBuffer[T any](size int) *batchBuffer[T] {
	return &batchBuffer[T]{buffer: make([]T, 0, size), size: size}
}

// Add appends item and reports whether the batch is now full.
func (b *batchBuffer[T]) Add(item T) bool {
	b.buffer = append(b.buffer, item)
	return len(b.buffer) >= b.size
}

// GetAndClear hands over the buffered rows and starts a fresh batch. It returns nil
// when nothing is buffered.
func (b *batchBuffer[T]) GetAndClear() []T {
	if len(b.buffer) == 0 {
		return nil
	}
	batch := b.buffer
	b.buffer = make([]T, 0, b.size)
	return batch
}

func (b *batchBuffer[T]) Size() int {
	return len(b.buffer)
}
