package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

func TestDecodeJSON_PreservesStructure(t *testing.T) {
	node, err := DecodeJSON([]byte(`[null, [ "x", [[1, "T", null, 2, [[100, [["A"], ["B"]]]]]]], {"z": 1, "a": true}]`))

	require.NoError(t, err)
	require.True(t, node.IsSequence())
	assert.True(t, node.Index(0).IsNull())

	question := node.Index(1).Index(1).Index(0)
	assert.True(t, domain.LooksLikeQuestion(question))

	obj := node.Index(2)
	require.True(t, obj.IsObject())
	assert.Equal(t, []string{"z", "a"}, obj.Keys())
}

func TestDecodeJSON_KeepsNumberLiterals(t *testing.T) {
	node, err := DecodeJSON([]byte(`[1234567890123456789, 2.50]`))

	require.NoError(t, err)
	assert.Equal(t, "1234567890123456789", node.Index(0).Literal())
	id, ok := domain.FieldIDFor(node.Index(0))
	require.True(t, ok)
	assert.Equal(t, "entry.1234567890123456789", id)
}

func TestDecodeJSON_RepairsMalformedInput(t *testing.T) {
	node, err := DecodeJSON([]byte(`[1, 2, 3,]`))

	require.NoError(t, err)
	assert.Equal(t, 3, node.Len())
}

func TestDecodeJSON_Empty(t *testing.T) {
	_, err := DecodeJSON([]byte("  \n"))

	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestDecodeJSON_DuplicateKeysLastWins(t *testing.T) {
	node, err := DecodeJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, node.Keys())
	v, ok := node.Field("a")
	require.True(t, ok)
	f, _ := v.Float()
	assert.InDelta(t, 3.0, f, 1e-9)
}

func TestDecodeDocument_SniffsJSON(t *testing.T) {
	node, err := DecodeDocument([]byte("  [1]"))

	require.NoError(t, err)
	assert.Equal(t, 1, node.Len())
}

func TestDecodeDocument_HTMLPage(t *testing.T) {
	page := `<!doctype html><html><head>
<script>var other = [1];</script>
<script type="text/javascript">var FB_PUBLIC_LOAD_DATA_ = [null,["desc",[[1,"Q",null,0,[[42,null,0]]]]]]
;</script></head><body></body></html>`

	node, err := DecodeDocument([]byte(page))

	require.NoError(t, err)
	assert.True(t, node.Index(1).Index(1).IsSequence())
}

func TestDecodeDocument_HTMLWithoutData(t *testing.T) {
	_, err := DecodeDocument([]byte("<html><body>closed</body></html>"))

	assert.ErrorIs(t, err, domain.ErrMissingInput)
}
