// Package keyvalues decodes the two KeyValues metadata formats the
// backend embeds in product info and stats responses: a binary encoding
// used for package metadata and achievement schemas, and a text
// encoding used for per-app metadata.
package keyvalues

import (
	"fmt"
)

// Object is one level of a parsed KeyValues document. Values are
// strings, integers (int64/uint64), float64s, or nested Objects.
type Object map[string]interface{}

// Child walks the given key path and returns the Object at the end of
// it. The second return is false if any key is missing or a leaf value
// is hit before the path is exhausted.
func (o Object) Child(keys ...string) (Object, bool) {
	cur := o
	for _, k := range keys {
		v, ok := cur[k]
		if !ok {
			return nil, false
		}
		cur, ok = v.(Object)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String walks the key path and returns the leaf rendered as a string.
// Integer and float leaves are formatted; a nested Object at the leaf
// position returns false.
func (o Object) String(keys ...string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	parent, ok := o.Child(keys[:len(keys)-1]...)
	if !ok {
		return "", false
	}
	v, ok := parent[keys[len(keys)-1]]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return fmt.Sprintf("%d", t), true
	case uint64:
		return fmt.Sprintf("%d", t), true
	case float64:
		return fmt.Sprintf("%g", t), true
	}
	return "", false
}

// Int walks the key path and returns the leaf as an integer, parsing
// string leaves that hold decimal digits.
func (o Object) Int(keys ...string) (int64, bool) {
	s, ok := o.String(keys...)
	if !ok {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
