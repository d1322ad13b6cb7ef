package viteconfig

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokTemplate
	tokRegex
	tokPunct
)

type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

// scanner tokenizes just enough TypeScript to find object boundaries.
type scanner struct {
	src  []byte
	pos  int
	prev token
	hops int
}

func (s *scanner) next() (token, error) {
	s.skipTrivia()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, start: s.pos, end: s.pos}, nil
	}

	start := s.pos
	c := s.src[s.pos]
	kind := tokPunct

	switch {
	case c == '"' || c == '\'':
		if err := s.skipString(c); err != nil {
			return token{}, err
		}
		kind = tokString
	case c == '`':
		if err := s.skipTemplate(); err != nil {
			return token{}, err
		}
		kind = tokTemplate
	case c == '/' && s.regexAllowed():
		if err := s.skipRegex(); err != nil {
			return token{}, err
		}
		kind = tokRegex
	case isIdentStart(c):
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
			s.pos++
		}
		kind = tokIdent
	default:
		s.pos++
	}

	s.prev = token{kind: kind, text: string(s.src[start:s.pos]), start: start, end: s.pos}
	return s.prev, nil
}

// regexAllowed reports whether a slash at the current position starts a
// regex literal rather than a division, judged by the token before it.
func (s *scanner) regexAllowed() bool {
	switch s.prev.kind {
	case tokEOF:
		return true
	case tokPunct:
		return strings.Contains("(,=:[!&|?{;+-*%<>~^", s.prev.text)
	case tokIdent:
		switch s.prev.text {
		case "return", "typeof", "case", "do", "else", "in", "of", "new",
			"delete", "void", "throw", "instanceof", "yield", "await":
			return true
		}
	}
	return false
}

func (s *scanner) skipRegex() error {
	s.pos++
	inClass := false
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.pos++
				for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
					s.pos++
				}
				return nil
			}
		case '\n':
			return ErrUnterminated
		}
		s.pos++
	}
	return ErrUnterminated
}

func (s *scanner) skipTrivia() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '/' && s.peek(1) == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '/' && s.peek(1) == '*':
			s.pos += 2
			for s.pos < len(s.src) && !(s.src[s.pos] == '*' && s.peek(1) == '/') {
				s.pos++
			}
			s.pos += 2
			if s.pos > len(s.src) {
				s.pos = len(s.src)
			}
		default:
			return
		}
	}
}

func (s *scanner) skipString(quote byte) error {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return nil
		case '\n':
			return ErrUnterminated
		default:
			s.pos++
		}
	}
	return ErrUnterminated
}

func (s *scanner) skipTemplate() error {
	s.pos++
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; {
		case c == '\\':
			s.pos += 2
		case c == '`':
			s.pos++
			return nil
		case c == '$' && s.peek(1) == '{':
			s.pos += 2
			s.prev = token{kind: tokPunct, text: "{"}
			for depth := 1; depth > 0; {
				tok, err := s.next()
				if err != nil {
					return err
				}
				switch tok.text {
				case "":
					return ErrUnterminated
				case "{":
					depth++
				case "}":
					depth--
				}
			}
		default:
			s.pos++
		}
	}
	return ErrUnterminated
}

func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
