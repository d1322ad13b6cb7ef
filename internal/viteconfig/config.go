package viteconfig

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Brice1994/minimal-chrome-extension/internal/platform"
)

// ConfigObject locates the opening brace of the exported config object. The
// object may be passed to defineConfig directly, returned from a config
// function, or bound to a variable that is exported.
func ConfigObject(src []byte) (int, error) {
	s := &scanner{src: src}
	for {
		tok, err := s.next()
		if err != nil {
			return -1, err
		}
		switch {
		case tok.kind == tokEOF:
			return -1, ErrNoConfigObject
		case tok.kind == tokIdent && tok.text == "defineConfig":
			if open, ok, err := s.callObject(); err != nil {
				return -1, err
			} else if ok {
				return open, nil
			}
		case tok.kind == tokIdent && tok.text == "export":
			next, err := s.next()
			if err != nil {
				return -1, err
			}
			if next.text != "default" {
				continue
			}
			if open, ok, err := s.objectExpr(); err != nil {
				return -1, err
			} else if ok {
				return open, nil
			}
		}
	}
}

// maxHops bounds how many variable references objectExpr follows.
const maxHops = 4

// callObject consumes the argument list of a call and reports the object its
// first argument evaluates to. Nothing is consumed unless "(" follows.
func (s *scanner) callObject() (int, bool, error) {
	mark := *s
	paren, err := s.next()
	if err != nil {
		return -1, false, err
	}
	if paren.kind != tokPunct || paren.text != "(" {
		*s = mark
		return -1, false, nil
	}
	return s.objectExpr()
}

// objectExpr reads an expression and reports the opening brace of the object
// literal it evaluates to.
func (s *scanner) objectExpr() (int, bool, error) {
	tok, err := s.next()
	if err != nil {
		return -1, false, err
	}
	switch {
	case tok.kind == tokPunct && tok.text == "{":
		return tok.start, true, nil
	case tok.kind == tokPunct && tok.text == "(":
		mark := *s
		if err := s.skipGroup(); err != nil {
			return -1, false, err
		}
		if s.arrow() {
			return s.arrowBody()
		}
		*s = mark
		return s.objectExpr()
	case tok.kind != tokIdent:
		return -1, false, nil
	case tok.text == "defineConfig":
		return s.callObject()
	case tok.text == "async":
		return s.objectExpr()
	case tok.text == "function":
		return s.functionBody()
	case s.arrow():
		return s.arrowBody()
	default:
		return s.resolve(tok.text)
	}
}

// skipGroup consumes tokens up to the bracket closing one already read.
func (s *scanner) skipGroup() error {
	for depth := 1; depth > 0; {
		tok, err := s.next()
		if err != nil {
			return err
		}
		if tok.kind == tokEOF {
			return ErrUnterminated
		}
		if tok.kind != tokPunct {
			continue
		}
		switch tok.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
	}
	return nil
}

// arrow consumes an optional return type annotation and "=>". Nothing is
// consumed when no arrow follows.
func (s *scanner) arrow() bool {
	mark := *s
	depth := 0
	annotated := false
	for {
		tok, err := s.next()
		if err != nil || tok.kind == tokEOF {
			*s = mark
			return false
		}
		if tok.kind != tokPunct {
			if !annotated {
				*s = mark
				return false
			}
			continue
		}
		switch {
		case tok.text == "=" && s.peek(0) == '>':
			if depth == 0 {
				s.pos++
				s.prev = token{kind: tokPunct, text: ">"}
				return true
			}
			s.pos++
		case tok.text == ":" && !annotated:
			annotated = true
		case !annotated:
			*s = mark
			return false
		case tok.text == "(" || tok.text == "[" || tok.text == "{" || tok.text == "<":
			depth++
		case tok.text == ")" || tok.text == "]" || tok.text == "}" || tok.text == ">":
			depth--
		case depth == 0 && (tok.text == ";" || tok.text == "," || tok.text == "="):
			*s = mark
			return false
		}
	}
}

// arrowBody reports the object an arrow function body evaluates to.
func (s *scanner) arrowBody() (int, bool, error) {
	mark := *s
	tok, err := s.next()
	if err != nil {
		return -1, false, err
	}
	if tok.kind == tokPunct && tok.text == "{" {
		return s.blockReturn()
	}
	*s = mark
	return s.objectExpr()
}

// functionBody reads a function expression after the function keyword.
func (s *scanner) functionBody() (int, bool, error) {
	for {
		tok, err := s.next()
		if err != nil {
			return -1, false, err
		}
		switch {
		case tok.kind == tokEOF:
			return -1, false, ErrUnterminated
		case tok.kind == tokPunct && tok.text == "(":
			if err := s.skipGroup(); err != nil {
				return -1, false, err
			}
		case tok.kind == tokPunct && tok.text == "{":
			return s.blockReturn()
		}
	}
}

// blockReturn scans a block whose opening brace was just read and reports
// the object its first top-level return statement yields.
func (s *scanner) blockReturn() (int, bool, error) {
	depth := 0
	for {
		tok, err := s.next()
		if err != nil {
			return -1, false, err
		}
		switch {
		case tok.kind == tokEOF:
			return -1, false, ErrUnterminated
		case tok.kind == tokIdent && tok.text == "return" && depth == 0:
			return s.objectExpr()
		case tok.kind != tokPunct:
		case tok.text == "(" || tok.text == "[" || tok.text == "{":
			depth++
		case tok.text == ")" || tok.text == "]" || tok.text == "}":
			if depth == 0 {
				return -1, false, nil
			}
			depth--
		}
	}
}

// resolve finds the const, let or var declaration of name and reports the
// object its initializer evaluates to.
func (s *scanner) resolve(name string) (int, bool, error) {
	if s.hops >= maxHops {
		return -1, false, nil
	}
	r := &scanner{src: s.src, hops: s.hops + 1}
	for {
		tok, err := r.next()
		if err != nil {
			return -1, false, err
		}
		if tok.kind == tokEOF {
			return -1, false, nil
		}
		if tok.kind != tokIdent || (tok.text != "const" && tok.text != "let" && tok.text != "var") {
			continue
		}
		id, err := r.next()
		if err != nil {
			return -1, false, err
		}
		if id.kind != tokIdent || id.text != name || !r.initializer() {
			continue
		}
		return r.objectExpr()
	}
}

// initializer consumes an optional type annotation and the "=" that starts a
// declaration's value.
func (s *scanner) initializer() bool {
	tok, err := s.next()
	if err != nil || tok.kind != tokPunct {
		return false
	}
	if tok.text == "=" {
		return s.peek(0) != '=' && s.peek(0) != '>'
	}
	if tok.text != ":" {
		return false
	}
	depth := 0
	for {
		tok, err := s.next()
		if err != nil || tok.kind == tokEOF {
			return false
		}
		if tok.kind != tokPunct {
			continue
		}
		switch tok.text {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			depth--
		case "=":
			if s.peek(0) == '>' {
				s.pos++
				s.prev = token{kind: tokPunct, text: ">"}
				continue
			}
			if depth == 0 {
				return true
			}
		case ";", ",":
			if depth == 0 {
				return false
			}
		}
	}
}

// declaresKey reports whether key is used as a property name anywhere in src.
func declaresKey(src []byte, key string) bool {
	s := &scanner{src: src}
	var prev token
	for {
		tok, err := s.next()
		if err != nil || tok.kind == tokEOF {
			return false
		}
		if tok.kind == tokPunct && tok.text == ":" && propertyName(prev) == key {
			return true
		}
		prev = tok
	}
}

func propertyName(tok token) string {
	switch tok.kind {
	case tokIdent:
		return tok.text
	case tokString:
		return tok.text[1 : len(tok.text)-1]
	}
	return ""
}

// TopLevelKeys lists the property names declared directly in the object
// literal opening at open. Computed keys and spreads are skipped.
func TopLevelKeys(src []byte, open int) ([]string, error) {
	s := &scanner{src: src, pos: open + 1}
	depth := 0
	expectKey := true
	var keys []string

	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return nil, fmt.Errorf("config object: %w", ErrUnterminated)
		}

		if tok.kind == tokPunct {
			switch tok.text {
			case "{", "[", "(":
				depth++
				expectKey = false
				continue
			case "}", "]", ")":
				if depth == 0 {
					return keys, nil
				}
				depth--
				continue
			case ",":
				if depth == 0 {
					expectKey = true
					continue
				}
			}
		}

		if depth == 0 && expectKey {
			expectKey = false
			if name := propertyName(tok); name != "" {
				keys = append(keys, name)
			}
		}
	}
}

// HasProperty reports whether the config object declares key at top level.
// When no config object can be located, any property named key counts.
func HasProperty(src []byte, key string) (bool, error) {
	open, err := ConfigObject(src)
	if errors.Is(err, ErrNoConfigObject) && declaresKey(src, key) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	keys, err := TopLevelKeys(src, open)
	if err != nil {
		return false, err
	}
	return slices.Contains(keys, key), nil
}

// SetDefault inserts key: 'value' as the first property of the config object
// unless the object already declares key, in which case src is returned as is.
// A file whose config object cannot be located is also returned as is when it
// declares key somewhere.
func SetDefault(src []byte, key, value string) ([]byte, bool, error) {
	open, err := ConfigObject(src)
	if errors.Is(err, ErrNoConfigObject) && declaresKey(src, key) {
		return src, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	keys, err := TopLevelKeys(src, open)
	if err != nil {
		return nil, false, err
	}
	if slices.Contains(keys, key) {
		return src, false, nil
	}

	insertion := propertyInsertion(src[open+1:], key+": "+quote(value))
	out := make([]byte, 0, len(src)+len(insertion))
	out = append(out, src[:open+1]...)
	out = append(out, insertion...)
	out = append(out, src[open+1:]...)
	return out, true, nil
}

// PatchFile applies SetDefault to the file at path, rewriting it only when
// the property was added.
func PatchFile(path, key, value string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	out, changed, err := SetDefault(src, key, value)
	if err != nil {
		return false, fmt.Errorf("patching %s: %w", path, err)
	}
	if !changed {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := platform.WriteFileAtomic(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// propertyInsertion formats prop to match the layout of the object body that
// follows the opening brace.
func propertyInsertion(body []byte, prop string) string {
	i := 0
	for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\r') {
		i++
	}

	if i < len(body) && body[i] == '\n' {
		j := i + 1
		for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
			j++
		}
		indent := string(body[i+1 : j])
		if j < len(body) && body[j] == '}' {
			indent += "  "
		}
		return "\n" + indent + prop + ","
	}

	if i < len(body) && body[i] == '}' {
		if i == 0 {
			return " " + prop + " "
		}
		return " " + prop
	}
	return " " + prop + ","
}

func quote(v string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
