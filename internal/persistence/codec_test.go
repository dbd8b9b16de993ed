package persistence

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageChunk() *chunk.Chunk {
	c := chunk.New(3, 42, 3, 2)
	c.Set(0, 1, block.Stone)
	c.Set(1, 1, block.Storage)
	c.Set(2, 1, block.Furnace)

	storage := block.NewInstance(block.Storage, block.KindStorage)
	inv, _ := storage.Inventory()
	inv.SetItems([]block.ItemStack{{Item: "gold_ingot", Count: 4}})
	_ = c.SetInstance(1, 1, storage)

	furnace := block.NewInstance(block.Furnace, block.KindFurnace)
	prog, _ := furnace.Progress()
	prog.SetProgress(0.25)
	_ = c.SetInstance(2, 1, furnace)

	c.Surface = []int{1, 1, 1}
	return c
}

func TestEncode_Layout(t *testing.T) {
	data, err := Encode(storageChunk())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `3`, string(doc["index"]))
	assert.JSONEq(t, `42`, string(doc["seed"]))

	var rows [][]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["rows"], &rows))
	require.Len(t, rows, 2)
	assert.JSONEq(t, `0`, string(rows[0][0]), "plain cells are bare ids")
	assert.JSONEq(t, `8`, string(rows[1][0]))
	assert.JSONEq(t, `{"id":18,"type":"storage","items":[{"item":"gold_ingot","count":4}]}`, string(rows[1][1]))
	assert.JSONEq(t, `{"id":19,"type":"furnace","items":null,"progress":0.25}`, string(rows[1][2]))
}

func TestDecode_RoundTrip(t *testing.T) {
	catalog := block.DefaultCatalog()
	original := storageChunk()

	data, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(data, catalog)
	require.NoError(t, err)

	assert.True(t, original.Equal(decoded))
	assert.Equal(t, original.Surface, decoded.Surface)

	inv, ok := decoded.Instance(1, 1).Inventory()
	require.True(t, ok)
	assert.Equal(t, []block.ItemStack{{Item: "gold_ingot", Count: 4}}, inv.Items())

	prog, ok := decoded.Instance(2, 1).Progress()
	require.True(t, ok)
	assert.Equal(t, 0.25, prog.Progress())
}

func TestDecode_GeneratedChunk(t *testing.T) {
	c := terrain.GenerateChunk(1, 50, 150, 42)
	data, err := Encode(c)
	require.NoError(t, err)

	decoded, err := Decode(data, block.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, c.Blocks, decoded.Blocks)
	assert.Equal(t, c.Surface, decoded.Surface)
}

func TestDecode_UnknownBlockFails(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bare id", doc: `{"index":0,"seed":1,"width":2,"height":1,"rows":[[0,999]]}`},
		{name: "stateful id", doc: `{"index":0,"seed":1,"width":1,"height":1,"rows":[[{"id":999,"type":"storage"}]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), block.DefaultCatalog())
			require.Error(t, err)
			assert.True(t, errors.Is(err, block.ErrUnknownBlock))
			assert.Contains(t, err.Error(), "cell (")
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{`},
		{name: "row count mismatch", doc: `{"index":0,"seed":1,"width":1,"height":2,"rows":[[0]]}`},
		{name: "row width mismatch", doc: `{"index":0,"seed":1,"width":2,"height":1,"rows":[[0]]}`},
		{name: "kind mismatch", doc: `{"index":0,"seed":1,"width":1,"height":1,"rows":[[{"id":18,"type":"furnace"}]]}`},
		{name: "object without id", doc: `{"index":0,"seed":1,"width":1,"height":1,"rows":[[{"type":"storage"}]]}`},
		{name: "string cell", doc: `{"index":0,"seed":1,"width":1,"height":1,"rows":[["stone"]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), block.DefaultCatalog())
			assert.Error(t, err)
		})
	}
}

func TestDecode_RecomputesMissingSurface(t *testing.T) {
	doc := `{"index":0,"seed":1,"width":2,"height":3,"rows":[[0,0],[0,3],[8,8]]}`
	c, err := Decode([]byte(doc), block.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, c.Surface)
}

func TestCompress_RoundTrip(t *testing.T) {
	data, err := Encode(terrain.GenerateChunk(0, 50, 150, 42))
	require.NoError(t, err)

	blob := Compress(data)
	assert.Less(t, len(blob), len(data))

	out, err := Decompress(blob)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = Decompress([]byte("not zstd"))
	assert.Error(t, err)
}
