package parser

import "unicode/utf8"

// Scan converts ER notation source into tokens. Illegal characters are
// collected as *LexError values and still produce an Illegal token, so a
// single pass reports all of them. The last token is always EOF.
func Scan(src string) ([]Token, ErrorList) {
	l := &lexer{src: src, line: 1}
	for !l.atEnd() {
		l.start = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Line: l.line, Kind: EOF})
	return l.tokens, l.errs
}

type lexer struct {
	src    string
	start  int // byte offset of the token being scanned
	pos    int // current byte offset
	line   int // current line (1-based)
	tokens []Token
	errs   ErrorList
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return r
}

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *lexer) emit(kind Kind) {
	l.tokens = append(l.tokens, Token{Line: l.line, Kind: kind, Text: l.src[l.start:l.pos]})
}

func (l *lexer) scanToken() {
	r := l.advance()
	if kind, ok := punctuation[r]; ok {
		l.emit(kind)
		if kind == Newline {
			l.line++
		}
		return
	}

	switch {
	case r == ' ' || r == '\t':
	case r == '_' && l.peek() == '_':
		l.advance()
		l.emit(DoubleUnderscore)
	case isAlpha(r):
		l.identifier()
	default:
		l.errs = append(l.errs, &LexError{Line: l.line, Char: r, Text: l.src[l.start:l.pos]})
		l.emit(Illegal)
	}
}

// identifier consumes letters and underscores, stopping before a "__" so
// that the closing marker of a primary key stays a separate token.
func (l *lexer) identifier() {
	for c := l.peek(); isAlpha(rune(c)); c = l.peek() {
		if c == '_' && l.peekNext() == '_' {
			break
		}
		l.pos++
	}

	if kind, ok := keywords[l.src[l.start:l.pos]]; ok {
		l.emit(kind)
		return
	}
	l.emit(Ident)
}

func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
