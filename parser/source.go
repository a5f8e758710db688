package parser

import "strings"

// NormalizeNewlines converts CRLF and lone CR line endings to LF, the only
// line break the lexer accepts.
func NormalizeNewlines(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}
