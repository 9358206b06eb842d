package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhero/config"
)

// TestFindLayerByPath tests that the most recently declared defining
// layer wins.
func TestFindLayerByPath(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"v": 1, "only_a": true}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"v": 2}, "/b"))

	id, ok := c.FindLayerByPath("v")
	require.True(t, ok)
	assert.Equal(t, "/b", id)

	id, ok = c.FindLayerByPath("only_a")
	require.True(t, ok)
	assert.Equal(t, "/a", id)

	_, ok = c.FindLayerByPath("missing")
	assert.False(t, ok)
}

// TestFindLayerByPathAndValue tests the last-writer-wins scan over
// matching layers.
func TestFindLayerByPathAndValue(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/b"))
	require.NoError(t, c.Assign(map[string]any{"v": 2}, "/c"))

	id, ok := c.FindLayerByPathAndValue("v", 1)
	require.True(t, ok)
	assert.Equal(t, "/b", id, "later of the two matching layers")

	id, ok = c.FindLayerByPathAndValue("v", 2)
	require.True(t, ok)
	assert.Equal(t, "/c", id)

	_, ok = c.FindLayerByPathAndValue("v", 3)
	assert.False(t, ok)

	_, ok = c.FindLayerByPathAndValue("missing", 1)
	assert.False(t, ok)
}

// TestFindLayerByPathAndValueNumericKinds tests that numeric values
// match across representations.
func TestFindLayerByPathAndValueNumericKinds(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"port": json.Number("3000")}, "/json"))

	id, ok := c.FindLayerByPathAndValue("port", 3000)
	require.True(t, ok)
	assert.Equal(t, "/json", id)

	id, ok = c.FindLayerByPathAndValue("port", float64(3000))
	require.True(t, ok)
	assert.Equal(t, "/json", id)

	_, ok = c.FindLayerByPathAndValue("port", "3000")
	assert.False(t, ok, "strings are not numbers")
}

// TestSequenceSubsetMatch tests partial matching for sequence values.
func TestSequenceSubsetMatch(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"foo": []any{"bar", "baz"}}, "/a"))

	tests := []struct {
		name     string
		expected []any
		found    bool
	}{
		{name: "ProperSubset", expected: []any{"bar"}, found: true},
		{name: "FullMatch", expected: []any{"bar", "baz"}, found: true},
		{name: "OrderIrrelevant", expected: []any{"baz", "bar"}, found: true},
		{name: "EmptyExpected", expected: []any{}, found: true},
		{name: "Superset", expected: []any{"bar", "baz", "qux"}, found: false},
		{name: "DisjointElement", expected: []any{"nope"}, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := c.FindLayerByPathAndValue("foo", tt.expected)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "/a", id)
			}
		})
	}
}

// TestTreePartialMatch tests partial matching for tree values: every
// expected key must be present with a fully equal value.
func TestTreePartialMatch(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{
		"cfg": map[string]any{
			"a": map[string]any{"b": 1, "c": 2},
			"d": 3,
		},
	}, "/a"))

	tests := []struct {
		name     string
		expected map[string]any
		found    bool
	}{
		{name: "SingleKey", expected: map[string]any{"d": 3}, found: true},
		{name: "FullSubtreeValue", expected: map[string]any{"a": map[string]any{"b": 1, "c": 2}}, found: true},
		{name: "NestedValuesCompareInFull", expected: map[string]any{"a": map[string]any{"b": 1}}, found: false},
		{name: "MissingKey", expected: map[string]any{"e": 1}, found: false},
		{name: "WrongValue", expected: map[string]any{"d": 4}, found: false},
		{name: "EmptyExpected", expected: map[string]any{}, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := c.FindLayerByPathAndValue("cfg", tt.expected)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "/a", id)
			}
		})
	}
}

// TestMixedCompositeKindsNeverMatch tests that a sequence never
// matches a tree and vice versa.
func TestMixedCompositeKindsNeverMatch(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{
		"seq":  []any{"a"},
		"tree": map[string]any{"a": 1},
	}, "/a"))

	_, ok := c.FindLayerByPathAndValue("seq", map[string]any{})
	assert.False(t, ok)

	_, ok = c.FindLayerByPathAndValue("tree", []any{})
	assert.False(t, ok)
}

// TestListLayersByPath tests the most-recent-first listing with each
// layer's own recorded value.
func TestListLayersByPath(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"other": true}, "/b"))
	require.NoError(t, c.Assign(map[string]any{"v": 3}, "/c"))

	listed := c.ListLayersByPath("v")
	require.Len(t, listed, 2)
	assert.Equal(t, config.LayerEntry{Identifier: "/c", Value: 3}, listed[0])
	assert.Equal(t, config.LayerEntry{Identifier: "/a", Value: 1}, listed[1])

	assert.Empty(t, c.ListLayersByPath("missing"))
}

// TestListLayersByPathReportsRawValues tests that listings expose
// each layer's pristine value, not the merged view.
func TestListLayersByPathReportsRawValues(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"server": map[string]any{"port": 3000, "host": "x"}}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"server": map[string]any{"port": 8080}}, "/b"))

	listed := c.ListLayersByPath("server")
	require.Len(t, listed, 2)
	assert.Equal(t, map[string]any{"port": 8080}, listed[0].Value, "layer /b never declared host")
	assert.Equal(t, map[string]any{"port": 3000, "host": "x"}, listed[1].Value)
}

// TestReassignedLayerRecency tests the re-add policy across all three
// provenance queries: the forward slot stays put while recency moves.
func TestReassignedLayerRecency(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/b"))
	require.NoError(t, c.Assign(map[string]any{"v": 1}, "/a"))

	id, ok := c.FindLayerByPathAndValue("v", 1)
	require.True(t, ok)
	assert.Equal(t, "/b", id, "declaration slots drive the forward scan")

	id, ok = c.FindLayerByPath("v")
	require.True(t, ok)
	assert.Equal(t, "/a", id, "re-assignment makes /a the most recent")

	listed := c.ListLayersByPath("v")
	require.Len(t, listed, 2)
	assert.Equal(t, "/a", listed[0].Identifier)
	assert.Equal(t, "/b", listed[1].Identifier)
}

// TestProvenanceSeesPristineLayers tests that provenance reflects each
// layer's own tree even after later layers override the merged view.
func TestProvenanceSeesPristineLayers(t *testing.T) {
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{"port": 3000}, "/a"))
	require.NoError(t, c.Assign(map[string]any{"port": 8080}, "/b"))

	merged, _ := c.Find("port")
	assert.Equal(t, 8080, merged)

	id, ok := c.FindLayerByPathAndValue("port", 3000)
	require.True(t, ok)
	assert.Equal(t, "/a", id, "overridden value still attributable to its layer")
}
