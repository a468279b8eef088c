package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBuffer(t *testing.T) {
	b := newBatchBuffer[int](3)
	assert.Nil(t, b.GetAndClear())

	assert.False(t, b.Add(1))
	assert.False(t, b.Add(2))
	assert.True(t, b.Add(3))
	assert.Equal(t, 3, b.Size())

	assert.Equal(t, []int{1, 2, 3}, b.GetAndClear())
	assert.Zero(t, b.Size())

	b.Add(4)
	assert.Equal(t, []int{4}, b.GetAndClear())
}
