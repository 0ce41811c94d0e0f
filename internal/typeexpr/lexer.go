package typeexpr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent    // void, float, opaque, type, x, ...
	tokIntType  // iN
	tokNumber   // decimal literal
	tokName     // %name
	tokEllipsis // ...
	tokPunct    // single-rune punctuation: = * [ ] < > { } ( ) ,
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// lexer produces tokens over a definition script. Comments run from ';' to
// end of line.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (lx *lexer) next() (token, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: lx.line}, nil
	}
	ch := lx.src[lx.pos]
	switch {
	case ch == '%':
		lx.pos++
		start := lx.pos
		for lx.pos < len(lx.src) && isNameRune(rune(lx.src[lx.pos])) {
			lx.pos++
		}
		if lx.pos == start {
			return token{}, fmt.Errorf("line %d: '%%' must be followed by a name", lx.line)
		}
		return token{kind: tokName, text: lx.src[start:lx.pos], line: lx.line}, nil
	case strings.HasPrefix(lx.src[lx.pos:], "..."):
		lx.pos += 3
		return token{kind: tokEllipsis, text: "...", line: lx.line}, nil
	case ch >= '0' && ch <= '9':
		start := lx.pos
		for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
			lx.pos++
		}
		return token{kind: tokNumber, text: lx.src[start:lx.pos], line: lx.line}, nil
	case isNameRune(rune(ch)):
		start := lx.pos
		for lx.pos < len(lx.src) && isNameRune(rune(lx.src[lx.pos])) {
			lx.pos++
		}
		word := lx.src[start:lx.pos]
		if len(word) > 1 && word[0] == 'i' && allDigits(word[1:]) {
			return token{kind: tokIntType, text: word, line: lx.line}, nil
		}
		return token{kind: tokIdent, text: word, line: lx.line}, nil
	case strings.ContainsRune("=*[]<>{}(),", rune(ch)):
		lx.pos++
		return token{kind: tokPunct, text: string(ch), line: lx.line}, nil
	default:
		return token{}, fmt.Errorf("line %d: unexpected character %q", lx.line, ch)
	}
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == '\n':
			lx.line++
			lx.pos++
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.pos++
		case ch == ';':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return
		}
	}
}

func isNameRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
