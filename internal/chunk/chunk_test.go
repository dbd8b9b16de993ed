package chunk

import (
	"testing"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_SetAndAt(t *testing.T) {
	c := New(2, 42, 4, 3)

	assert.Equal(t, 8, c.OriginX())
	assert.Equal(t, block.Air, c.At(1, 1))

	require.True(t, c.Set(1, 1, block.Stone))
	assert.Equal(t, block.Stone, c.At(1, 1))
	assert.Equal(t, block.Stone, c.Blocks[1*4+1])

	assert.False(t, c.Set(4, 0, block.Stone), "column past width is out of bounds")
	assert.False(t, c.Set(0, -1, block.Stone))
	assert.Equal(t, block.Air, c.At(-1, 0))
}

func TestChunk_SetDropsInstance(t *testing.T) {
	c := New(0, 1, 3, 3)
	c.Set(1, 2, block.Storage)
	require.NoError(t, c.SetInstance(1, 2, block.NewInstance(block.Storage, block.KindStorage)))
	require.NotNil(t, c.Instance(1, 2))

	c.Set(1, 2, block.Air)
	assert.Nil(t, c.Instance(1, 2))

	assert.ErrorIs(t, c.SetInstance(9, 9, nil), ErrOutOfBounds)
}

func TestChunk_CloneIsIndependent(t *testing.T) {
	c := New(0, 1, 2, 2)
	c.Set(0, 0, block.Dirt)
	c.Surface[0] = 1

	clone := c.Clone()
	assert.True(t, c.Equal(clone))

	clone.Set(0, 0, block.Stone)
	clone.Surface[0] = 0
	assert.Equal(t, block.Dirt, c.At(0, 0))
	assert.Equal(t, 1, c.Surface[0])
	assert.False(t, c.Equal(clone))
}

func TestChunk_Row(t *testing.T) {
	c := New(0, 1, 3, 2)
	c.Set(0, 1, block.Unbreakable)
	c.Set(2, 1, block.Unbreakable)

	assert.Equal(t, []block.ID{block.Unbreakable, block.Air, block.Unbreakable}, c.Row(1))
	assert.Nil(t, c.Row(2))
}
