package pathquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teaguesterling/yamlrows/pkg/node"
	"github.com/teaguesterling/yamlrows/pkg/pathquery"
)

func doc(t *testing.T) node.Node {
	t.Helper()
	n, err := node.Decode([]byte(`
store:
  name: corner
  items:
    - 10
    - 20
    - 30
  empty: ~
"odd key": 1
`))
	require.NoError(t, err)
	return n
}

func TestParseRejectsMalformedPaths(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"",
		"store.name",
		".store",
		"$.",
		"$[",
		"$[abc]",
		"$[-1]",
		"$['unterminated]",
		"$x",
	} {
		_, err := pathquery.Parse(expr)
		assert.ErrorIs(t, err, pathquery.ErrInvalidPath, "path %q", expr)
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()
	root := doc(t)

	got, ok, err := pathquery.Extract(root, "$.store.items[2]")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, node.Scalar{Raw: "30"}, got)

	got, ok, err = pathquery.Extract(root, "$['odd key']")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, node.Scalar{Raw: "1"}, got)

	// Root itself.
	got, ok, err = pathquery.Extract(root, "$")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, got)

	for _, expr := range []string{
		"$.store.items[9]",
		"$.store.missing",
		"$.store.name.deeper",
		"$.store.items.key",
	} {
		_, ok, err := pathquery.Extract(root, expr)
		require.NoError(t, err, "path %q", expr)
		assert.False(t, ok, "path %q", expr)
	}
}

func TestExistsCountsResolvedNull(t *testing.T) {
	t.Parallel()
	root := doc(t)

	ok, err := pathquery.Exists(root, "$.store.empty")
	require.NoError(t, err)
	assert.True(t, ok, "resolved null still exists")

	ok, err = pathquery.Exists(root, "$.store.items[9]")
	require.NoError(t, err)
	assert.False(t, ok)
}

// If a path exists, every prefix of it exists too.
func TestExistenceMonotonicity(t *testing.T) {
	t.Parallel()
	root := doc(t)

	full := "$.store.items[1]"
	prefixes := []string{"$", "$.store", "$.store.items"}

	ok, err := pathquery.Exists(root, full)
	require.NoError(t, err)
	require.True(t, ok)
	for _, p := range prefixes {
		ok, err := pathquery.Exists(root, p)
		require.NoError(t, err)
		assert.True(t, ok, "prefix %q", p)
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()
	root := doc(t)

	text, ok, err := pathquery.ExtractText(root, "$.store.name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "corner", text)

	text, ok, err = pathquery.ExtractText(root, "$.store.items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[10, 20, 30]", text)

	_, ok, err = pathquery.ExtractText(root, "$.nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTypeOf(t *testing.T) {
	t.Parallel()
	root := doc(t)

	tests := []struct {
		expr string
		want pathquery.Shape
	}{
		{"$", pathquery.ShapeObject},
		{"$.store.items", pathquery.ShapeArray},
		{"$.store.name", pathquery.ShapeScalar},
		{"$.store.empty", pathquery.ShapeNull},
	}
	for _, tt := range tests {
		shape, ok, err := pathquery.TypeOf(root, tt.expr)
		require.NoError(t, err, "path %q", tt.expr)
		require.True(t, ok)
		assert.Equal(t, tt.want, shape, "path %q", tt.expr)
	}
}

func TestKeysAndArrayLength(t *testing.T) {
	t.Parallel()
	root := doc(t)

	keys, ok, err := pathquery.Keys(root, "$.store")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "items", "empty"}, keys)

	// Not applicable on a sequence.
	_, ok, err = pathquery.Keys(root, "$.store.items")
	require.NoError(t, err)
	assert.False(t, ok)

	n, ok, err := pathquery.ArrayLength(root, "$.store.items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok, err = pathquery.ArrayLength(root, "$.store")
	require.NoError(t, err)
	assert.False(t, ok)
}
