package introspect

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/lucasefe/erd/parser"
)

var digitNames = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// EntityName derives an entity name from a table name: "order_items"
// becomes "OrderItem".
func EntityName(table string) string {
	return Identifier(inflect.Camelize(inflect.Singularize(table)))
}

// Identifier rewrites s into the notation's identifier alphabet. Digits are
// spelled out, every other character outside [A-Za-z] becomes a single
// underscore, and names that collide with a keyword are lowercased.
//
//	Identifier("address2")    // "address_two"
//	Identifier("created__at") // "created_at"
func Identifier(s string) string {
	var sb strings.Builder
	underscore := false
	sep := func() {
		if !underscore && sb.Len() > 0 {
			sb.WriteByte('_')
			underscore = true
		}
	}
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
			underscore = false
		case r >= '0' && r <= '9':
			sep()
			sb.WriteString(digitNames[r-'0'])
			underscore = false
			sep()
		default:
			sep()
		}
	}

	name := strings.TrimRight(sb.String(), "_")
	if name == "" {
		return "unnamed"
	}
	if parser.IsKeyword(name) {
		return strings.ToLower(name)
	}
	return name
}
