package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferMustWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))

	require.Equal(t, "hello world", string(bb.Bytes()))
	require.Equal(t, 11, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 11)
}

func TestByteBufferGrowExtend(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(100)
	require.GreaterOrEqual(t, bb.Cap(), 100)

	require.True(t, bb.Extend(10))
	require.Equal(t, 10, bb.Len())

	bb.ExtendOrGrow(1000)
	require.Equal(t, 1010, bb.Len())
}

func TestByteBufferSetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("abcdef"))
	bb.SetLength(3)
	require.Equal(t, "abc", string(bb.Bytes()))
}

func TestPackagePoolRoundTrip(t *testing.T) {
	bb := Get()
	bb.MustWrite([]byte("payload"))
	require.Equal(t, "payload", string(bb.Bytes()))

	Put(bb)

	bb2 := Get()
	require.Equal(t, 0, bb2.Len(), "pooled buffers must come back reset")
	Put(bb2)
}

func TestPoolDropsOversizedBuffers(t *testing.T) {
	p := NewPool(4, 8)
	bb := p.Get()
	bb.Grow(100)
	require.Greater(t, bb.Cap(), 8)

	p.Put(bb) // oversized: dropped, not recycled

	fresh := p.Get()
	require.LessOrEqual(t, fresh.Cap(), 8)
}
