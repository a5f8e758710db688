package parser

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the root production of Grammar.
const StartProduction = "Program"

// Grammar describes the ER notation accepted by Parse, written in the EBNF
// dialect of golang.org/x/exp/ebnf.
const Grammar = `Program           = EntityBlock RelationshipBlock .

EntityBlock       = "ENTITIES" ":" newline { Entity newline } .
Entity            = ident "(" [ AttributeList ] ")" [ "ISA" ident ] .
AttributeList     = Attribute { "," Attribute } .
Attribute         = "__" Field "__" | Field .
Field             = ident [ ":" ident ] .

RelationshipBlock = "RELATIONSHIPS" ":" newline { Relationship [ newline ] } .
Relationship      = [ "AGGREGATION" ident "IS" ] Member { "," Member } [ ident ]
                    [ "[" AttributeList "]" ] [ "IS" "WEAK" ] .
Member            = ident [ Cardinality ] .
Cardinality       = "(" ( "1" | "+" | "*" ) ")" .

newline           = "\n" { "\n" } .
ident             = letter { letter } .
letter            = "A" … "Z" | "a" … "z" | "_" .
`

// VerifyGrammar parses Grammar and checks that every production is defined
// and reachable from StartProduction.
func VerifyGrammar() error {
	g, err := ebnf.Parse("erd.ebnf", strings.NewReader(Grammar))
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, StartProduction); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Productions returns the production names of Grammar in sorted order.
func Productions() ([]string, error) {
	g, err := ebnf.Parse("erd.ebnf", strings.NewReader(Grammar))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
