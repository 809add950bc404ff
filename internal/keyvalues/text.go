package keyvalues

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseText decodes a text KeyValues document of the form
// `"key" { "k" "v" ... }` into an Object. Values are always strings in
// this encoding.
func ParseText(data []byte) (Object, error) {
	lex := &textLexer{input: string(data)}
	root := Object{}
	for {
		tok, ok := lex.next()
		if !ok {
			return root, nil
		}
		if tok.kind != tokenString {
			return nil, errors.Errorf("text keyvalues: expected key at offset %d", tok.offset)
		}
		if err := parseTextValue(lex, root, tok.text); err != nil {
			return nil, err
		}
	}
}

func parseTextValue(lex *textLexer, into Object, key string) error {
	tok, ok := lex.next()
	if !ok {
		return errors.Errorf("text keyvalues: dangling key %q", key)
	}
	switch tok.kind {
	case tokenString:
		into[key] = tok.text
		return nil
	case tokenOpen:
		child := Object{}
		for {
			tok, ok := lex.next()
			if !ok {
				return errors.Errorf("text keyvalues: unterminated block %q", key)
			}
			if tok.kind == tokenClose {
				into[key] = child
				return nil
			}
			if tok.kind != tokenString {
				return errors.Errorf("text keyvalues: expected key at offset %d", tok.offset)
			}
			if err := parseTextValue(lex, child, tok.text); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("text keyvalues: unexpected token at offset %d", tok.offset)
	}
}

type tokenKind int

const (
	tokenString tokenKind = iota
	tokenOpen
	tokenClose
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

type textLexer struct {
	input string
	pos   int
}

func (l *textLexer) next() (token, bool) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/':
			if idx := strings.IndexByte(l.input[l.pos:], '\n'); idx >= 0 {
				l.pos += idx + 1
			} else {
				l.pos = len(l.input)
			}
		case c == '{':
			l.pos++
			return token{kind: tokenOpen, offset: l.pos - 1}, true
		case c == '}':
			l.pos++
			return token{kind: tokenClose, offset: l.pos - 1}, true
		case c == '"':
			return l.quoted()
		default:
			return l.bare()
		}
	}
	return token{}, false
}

func (l *textLexer) quoted() (token, bool) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			next := l.input[l.pos+1]
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteByte(next)
			default:
				sb.WriteByte(c)
				sb.WriteByte(next)
			}
			l.pos += 2
			continue
		}
		if c == '"' {
			l.pos++
			return token{kind: tokenString, text: sb.String(), offset: start}, true
		}
		sb.WriteByte(c)
		l.pos++
	}
	// Unterminated string; treat what we have as the token.
	return token{kind: tokenString, text: sb.String(), offset: start}, true
}

func (l *textLexer) bare() (token, bool) {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '{' || c == '}' || c == '"' {
			break
		}
		l.pos++
	}
	return token{kind: tokenString, text: l.input[start:l.pos], offset: start}, true
}
