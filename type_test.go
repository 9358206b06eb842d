package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhero/config"
)

func typedFixture(t *testing.T) *config.Config {
	t.Helper()
	c := config.New()
	require.NoError(t, c.Assign(map[string]any{
		"name":     "service",
		"port":     3000,
		"ratio":    0.25,
		"enabled":  true,
		"verbose":  "true",
		"count":    json.Number("42"),
		"fraction": json.Number("2.5"),
		"unset":    nil,
	}, ""))
	return c
}

// TestString tests string retrieval and formatting of other scalars.
func TestString(t *testing.T) {
	c := typedFixture(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "PlainString", path: "name", want: "service"},
		{name: "IntFormats", path: "port", want: "3000"},
		{name: "BoolFormats", path: "enabled", want: "true"},
		{name: "JSONNumberFormats", path: "count", want: "42"},
		{name: "NilIsEmpty", path: "unset", want: ""},
		{name: "Missing", path: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.String(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, config.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestInt64 tests integer retrieval across numeric representations.
func TestInt64(t *testing.T) {
	c := typedFixture(t)

	tests := []struct {
		name    string
		path    string
		want    int64
		wantErr bool
	}{
		{name: "NativeInt", path: "port", want: 3000},
		{name: "JSONNumber", path: "count", want: 42},
		{name: "FloatTruncates", path: "ratio", want: 0},
		{name: "FractionalJSONNumber", path: "fraction", want: 2},
		{name: "NonNumericString", path: "name", wantErr: true},
		{name: "Bool", path: "enabled", wantErr: true},
		{name: "Missing", path: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Int64(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestBool tests boolean retrieval including string parsing.
func TestBool(t *testing.T) {
	c := typedFixture(t)

	got, err := c.Bool("enabled")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = c.Bool("verbose")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = c.Bool("port")
	assert.Error(t, err)

	_, err = c.Bool("missing")
	assert.ErrorIs(t, err, config.ErrNotFound)
}

// TestFloat64 tests floating-point retrieval across representations.
func TestFloat64(t *testing.T) {
	c := typedFixture(t)

	tests := []struct {
		name    string
		path    string
		want    float64
		wantErr bool
	}{
		{name: "NativeFloat", path: "ratio", want: 0.25},
		{name: "IntWidens", path: "port", want: 3000},
		{name: "JSONNumber", path: "fraction", want: 2.5},
		{name: "NonNumericString", path: "name", wantErr: true},
		{name: "Missing", path: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Float64(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
