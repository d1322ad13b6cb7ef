package document

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EnsureObject adds an empty object at path when nothing or null is there. An existing
// object is left as is; any other existing value is ErrNotObject.
func EnsureObject(doc *Document, path string) (*Document, bool, error) {
	current := doc.Get(path)
	if current.Exists() && current.Type != gjson.Null {
		if !current.IsObject() {
			return nil, false, fmt.Errorf("%s: %w", path, ErrNotObject)
		}
		return doc, false, nil
	}

	raw, err := sjson.SetRawBytes(doc.raw, path, []byte("{}"))
	if err != nil {
		return nil, false, fmt.Errorf("setting %s: %w", path, err)
	}
	return &Document{raw: raw}, true, nil
}

// SetString sets a single string key, leaving its siblings untouched. When
// the key already holds value the same document is returned unchanged.
func SetString(doc *Document, path, value string) (*Document, bool, error) {
	current := doc.Get(path)
	if current.Type == gjson.String && current.Str == value {
		return doc, false, nil
	}

	raw, err := sjson.SetBytes(doc.raw, path, value)
	if err != nil {
		return nil, false, fmt.Errorf("setting %s: %w", path, err)
	}
	return &Document{raw: raw}, true, nil
}

// Transform is one step of a read-modify-write patch.
type Transform func(*Document) (*Document, bool, error)

// EnsureObjectAt returns a Transform wrapping EnsureObject.
func EnsureObjectAt(path string) Transform {
	return func(d *Document) (*Document, bool, error) { return EnsureObject(d, path) }
}

// SetStringAt returns a Transform wrapping SetString.
func SetStringAt(path, value string) Transform {
	return func(d *Document) (*Document, bool, error) { return SetString(d, path, value) }
}

// Apply runs transforms in order and reports whether any of them changed the
// document. The first error stops the chain.
func Apply(doc *Document, transforms ...Transform) (*Document, bool, error) {
	changed := false
	for _, t := range transforms {
		next, c, err := t(doc)
		if err != nil {
			return nil, false, err
		}
		doc = next
		changed = changed || c
	}
	return doc, changed, nil
}
