package config

import (
	"encoding/json"
	"reflect"

	"github.com/superhero/config/deep"
)

// FindLayerByPath returns the identifier of the most recently declared
// layer that defines any value at path.
func (c *Config) FindLayerByPath(path string) (string, bool) {
	segments := splitPath(path, c.delims)
	for _, l := range c.layers.reverse() {
		if _, ok := traverse(l.tree, segments); ok {
			return l.identifier, true
		}
	}
	return "", false
}

// FindLayerByPathAndValue returns the identifier of the last layer in
// declaration order whose value at path matches expected. Sequence
// values match when every expected element occurs somewhere in the
// layer's sequence, regardless of order or surplus elements; tree
// values match when every expected key is present with an equal value.
// Mixed composite kinds never match, and scalars compare strictly with
// numeric kinds compared by value.
func (c *Config) FindLayerByPathAndValue(path string, expected any) (string, bool) {
	segments := splitPath(path, c.delims)
	expected = deep.Clone(expected)
	identifier, found := "", false
	for _, l := range c.layers.forward() {
		v, ok := traverse(l.tree, segments)
		if ok && partialMatch(expected, v) {
			identifier, found = l.identifier, true
		}
	}
	return identifier, found
}

// ListLayersByPath returns every layer that defines a value at path,
// most recently declared first, paired with the value each layer
// recorded there.
func (c *Config) ListLayersByPath(path string) []LayerEntry {
	segments := splitPath(path, c.delims)
	entries := make([]LayerEntry, 0, c.layers.count())
	for _, l := range c.layers.reverse() {
		if v, ok := traverse(l.tree, segments); ok {
			entries = append(entries, LayerEntry{Identifier: l.identifier, Value: deep.Clone(v)})
		}
	}
	return entries
}

// partialMatch reports whether actual satisfies expected. Top-level
// sequences use subset containment and top-level trees use key-wise
// equality; nested values always compare in full.
func partialMatch(expected, actual any) bool {
	if em, ok := expected.(map[string]any); ok {
		am, ok := actual.(map[string]any)
		if !ok {
			return false
		}
		for k, ev := range em {
			av, ok := am[k]
			if !ok || !valuesEqual(ev, av) {
				return false
			}
		}
		return true
	}
	if es, ok := expected.([]any); ok {
		as, ok := actual.([]any)
		if !ok {
			return false
		}
		for _, ev := range es {
			found := false
			for _, av := range as {
				if valuesEqual(ev, av) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return valuesEqual(expected, actual)
}

// valuesEqual compares two canonical values in full. Numeric kinds,
// json.Number included, compare by value; sequences compare
// elementwise in order; trees compare key-wise.
func valuesEqual(a, b any) bool {
	if am, ok := a.(map[string]any); ok {
		bm, ok := b.(map[string]any)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valuesEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := numericValue(a); ok {
		bf, bok := numericValue(b)
		return bok && af == bf
	}
	return a == b
}

// numericValue normalizes any numeric kind to float64. Strings are not
// numbers; json.Number is.
func numericValue(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
