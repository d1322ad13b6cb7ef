package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/Brice1994/minimal-chrome-extension/internal/platform"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Document is an immutable JSON object.
type Document struct {
	raw []byte
}

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Parse validates data and wraps it in a Document. The top-level value must
// be an object.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Document{raw: raw}, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document to path, pretty-printed with two-space indentation
// and a trailing newline. Key order is kept.
func Save(path string, doc *Document) error {
	if err := platform.WriteFileAtomic(path, doc.Bytes(), platform.FilePerm); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Bytes returns the formatted document.
func (d *Document) Bytes() []byte {
	out := pretty.PrettyOptions(d.raw, prettyOptions)
	out = bytes.TrimRight(out, "\n")
	return append(out, '\n')
}

// Get returns the value at a path built with Key.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Key joins object keys into a path, escaping characters the path syntax
// treats specially.
func Key(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = escapeKey(p)
	}
	return strings.Join(escaped, ".")
}

func escapeKey(k string) string {
	var b strings.Builder
	for i, r := range k {
		switch r {
		case '.', '*', '?', '|', '#', '\\':
			b.WriteByte('\\')
		case '@', '!':
			if i == 0 {
				b.WriteByte('\\')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
