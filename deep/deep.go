// Package deep provides clone, merge, and defaulting primitives for
// nested configuration trees built from map[string]any, []any, and
// scalar values.
package deep

import "reflect"

// Clone returns a deep copy of v. Composites are copied recursively,
// with any string-keyed map kind canonicalized to map[string]any and
// any slice or array kind canonicalized to []any, so trees produced by
// different decoders share one shape. Scalars pass through unchanged.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case bool, string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return t
	}
	return cloneReflect(v)
}

// CloneMap returns a deep copy of m. A nil map clones to an empty map
// so callers can extend the result without guarding.
func CloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// cloneReflect canonicalizes map and slice kinds that did not match
// the concrete cases in Clone. Anything else is returned as-is, which
// covers types like json.Number and time.Time.
func cloneReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Clone(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Clone(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// Merge deep-merges src into dst and returns dst, allocating it when
// nil. Keys present in both trees recurse when both values are maps;
// every other collision replaces the destination value wholesale,
// sequences included. Values taken from src are cloned, so later
// mutation of src cannot reach dst.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = Merge(dm, sm)
			continue
		}
		dst[k] = Clone(sv)
	}
	return dst
}

// Defaults layers fallback underneath found and returns a fresh value
// aliasing neither input. When both values are maps or both are
// sequences the merge recurses, found winning every collision and
// fallback supplying missing keys or trailing elements. Any other
// combination yields a clone of found, so a scalar found value
// suppresses a composite fallback entirely.
func Defaults(found, fallback any) any {
	if fm, ok := found.(map[string]any); ok {
		bm, ok := fallback.(map[string]any)
		if !ok {
			return CloneMap(fm)
		}
		out := make(map[string]any, len(fm)+len(bm))
		for k, bv := range bm {
			out[k] = Clone(bv)
		}
		for k, fv := range fm {
			if bv, ok := bm[k]; ok {
				out[k] = Defaults(fv, bv)
			} else {
				out[k] = Clone(fv)
			}
		}
		return out
	}
	if fs, ok := found.([]any); ok {
		bs, ok := fallback.([]any)
		if !ok {
			return Clone(fs)
		}
		n := len(fs)
		if len(bs) > n {
			n = len(bs)
		}
		out := make([]any, n)
		for i := range out {
			switch {
			case i < len(fs) && i < len(bs):
				out[i] = Defaults(fs[i], bs[i])
			case i < len(fs):
				out[i] = Clone(fs[i])
			default:
				out[i] = Clone(bs[i])
			}
		}
		return out
	}
	return Clone(found)
}
