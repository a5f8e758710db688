// Package parser implements the lexer and parser for the ER notation.
//
// The notation declares entities first and relationships second:
//
//	ENTITIES:
//	Person(__id__, name)
//	Student(school) ISA Person
//	Course(__code: text__, title)
//
//	RELATIONSHIPS:
//	AGGREGATION Enrollment IS Student(+), Course(*), Takes [grade]
//	Enrollment, Person(1), Advises IS WEAK
//
// A relationship lists its participants, each with an optional cardinality
// of (1), (+) or (*), and ends with its own name. Attributes between __
// markers are primary keys.
//
// The parser is a hand-rolled recursive-descent parser with two layers:
//
//   - Scan converts source text into tokens and collects every illegal
//     character.
//   - Parse consumes the tokens and builds a schema.Model. By default only
//     the first syntax error is reported; WithErrorPolicy(AllErrors) reports
//     all of them.
//
// Usage:
//
//	model, err := parser.ParseString(src)
//	if err != nil {
//	    fmt.Print(err) // "[Line 3] Expect token ), got IDENT.\n"
//	}
package parser
