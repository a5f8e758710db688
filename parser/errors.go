package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError reports a character that cannot start any token. Text holds the
// source bytes, which differ from Char when the input is not valid UTF-8.
type LexError struct {
	Line int
	Char rune
	Text string
}

func (e *LexError) Error() string {
	if e.Char == utf8.RuneError && len(e.Text) == 1 {
		return fmt.Sprintf("[Line %d] Invalid character: %q.", e.Line, e.Text)
	}
	return fmt.Sprintf("[Line %d] Invalid character: %c.", e.Line, e.Char)
}

// SyntaxError reports a grammar rule that expected one token kind and found another.
type SyntaxError struct {
	Line     int
	Expected Kind
	Got      Kind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[Line %d] Expect token %s, got %s.", e.Line, e.Expected, e.Got)
}

// ErrorList is an ordered list of diagnostics. Its Error text is each
// diagnostic followed by a newline.
type ErrorList []error

func (l ErrorList) Error() string {
	var sb strings.Builder
	for _, err := range l {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Err returns l as an error, or nil when the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Line returns the line a diagnostic refers to, or 0 when unknown.
func Line(err error) int {
	switch e := err.(type) {
	case *LexError:
		return e.Line
	case *SyntaxError:
		return e.Line
	}
	return 0
}
