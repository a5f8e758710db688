package parser

import (
	"github.com/lucasefe/erd/schema"
)

// ParseString scans and parses ER notation source. Lexical errors take
// precedence: when any are found the source is not parsed and they are
// returned as an ErrorList.
func ParseString(src string, opts ...Option) (*schema.Model, error) {
	tokens, errs := Scan(src)
	if len(errs) > 0 {
		return nil, errs
	}
	m, errs := Parse(tokens, opts...)
	if len(errs) > 0 {
		return nil, errs
	}
	return m, nil
}

// Parse builds a model from a token sequence produced by Scan. It never
// stops early: on a mismatch the offending token is left in place and the
// remaining rules keep running, so the returned model is only meaningful
// when the error list is empty.
func Parse(tokens []Token, opts ...Option) (*schema.Model, ErrorList) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Line: line, Kind: EOF})
	}

	p := &parser{
		tokens: tokens,
		policy: o.policy,
		model:  &schema.Model{},
		mark:   -1,
	}
	p.program()
	return p.model, p.errs
}

type parser struct {
	tokens []Token
	pos    int
	policy ErrorPolicy
	model  *schema.Model
	errs   ErrorList
	// mark is the error count when the current declaration started, or -1
	// outside a declaration. A declaration reports at most one error.
	mark int
}

func (p *parser) current() Token {
	return p.tokens[p.pos]
}

func (p *parser) match(kind Kind) bool {
	return p.tokens[p.pos].Kind == kind
}

// eat consumes a token of the given kind and returns it. A required
// newline also swallows any blank lines that follow. On a mismatch the
// error is recorded according to the policy, the cursor stays put, and the
// previously consumed token is returned.
func (p *parser) eat(kind Kind) Token {
	if !p.match(kind) {
		p.fail(kind)
		if p.pos == 0 {
			return Token{}
		}
		return p.tokens[p.pos-1]
	}
	p.pos++
	if kind == Newline {
		for p.match(Newline) {
			p.pos++
		}
	}
	return p.tokens[p.pos-1]
}

func (p *parser) fail(expected Kind) {
	if p.policy == FirstError && len(p.errs) > 0 {
		return
	}
	if p.mark >= 0 && len(p.errs) > p.mark {
		return
	}
	tok := p.current()
	p.errs = append(p.errs, &SyntaxError{Line: tok.Line, Expected: expected, Got: tok.Kind})
}

// program = entityBlock relationshipBlock EOF
func (p *parser) program() {
	p.entityBlock()
	p.relationshipBlock()
	p.eat(EOF)
}

// entityBlock = ENTITIES COLON NEWLINE (entity NEWLINE)*
func (p *parser) entityBlock() {
	p.eat(Entities)
	p.eat(Colon)
	p.eat(Newline)
	for p.match(Ident) {
		p.declaration(p.entity, true)
	}
}

// entity = IDENT LPAREN (attribute (COMMA attribute)*)? RPAREN (ISA IDENT)?
func (p *parser) entity() {
	entity := schema.Entity{Name: p.eat(Ident).Text}
	p.eat(LParen)
	if !p.match(RParen) {
		entity.Attributes = p.attributeList()
	}
	p.eat(RParen)
	if p.match(Isa) {
		p.eat(Isa)
		entity.InheritsFrom = p.eat(Ident).Text
	}
	p.model.AddEntity(entity)
}

func (p *parser) attributeList() []schema.Attribute {
	attrs := []schema.Attribute{p.attribute()}
	for p.match(Comma) {
		p.eat(Comma)
		attrs = append(attrs, p.attribute())
	}
	return attrs
}

// attribute = IDENT (COLON IDENT)? | __ IDENT (COLON IDENT)? __
func (p *parser) attribute() schema.Attribute {
	if p.match(DoubleUnderscore) {
		p.eat(DoubleUnderscore)
		attr := p.field()
		p.eat(DoubleUnderscore)
		attr.PrimaryKey = true
		return attr
	}
	return p.field()
}

func (p *parser) field() schema.Attribute {
	attr := schema.Attribute{Name: p.eat(Ident).Text}
	if p.match(Colon) {
		p.eat(Colon)
		attr.Type = p.eat(Ident).Text
	}
	return attr
}

// relationshipBlock = RELATIONSHIPS COLON NEWLINE (relationship NEWLINE?)*
func (p *parser) relationshipBlock() {
	p.eat(Relationships)
	p.eat(Colon)
	p.eat(Newline)
	for p.match(Ident) || p.match(Aggregation) {
		p.declaration(p.relationship, false)
	}
}

// declaration parses one line of a block and consumes the newline that ends
// it; required is false when the line may end at EOF instead. Under
// AllErrors a line that failed, or that is followed by stray tokens, is
// skipped up to its newline so the rest of it is not parsed as a new
// declaration.
func (p *parser) declaration(parse func(), required bool) {
	p.mark = len(p.errs)
	defer func() { p.mark = -1 }()

	parse()

	failed := len(p.errs) > p.mark
	atEnd := p.match(Newline) || (!required && p.match(EOF))
	if p.policy == AllErrors && (failed || !atEnd) {
		if !failed {
			p.fail(Newline)
		}
		p.skipLine()
		if p.match(Newline) {
			p.eat(Newline)
		}
		return
	}
	if required || !p.match(EOF) {
		p.eat(Newline)
	}
}

func (p *parser) skipLine() {
	for !p.match(Newline) && !p.match(EOF) {
		p.pos++
	}
}

// relationship = (AGGREGATION IDENT IS)? member (COMMA member)* IDENT?
//                (LBRACKET attribute (COMMA attribute)* RBRACKET)? (IS WEAK)?
//
// Without a trailing IDENT the last member names the relationship.
func (p *parser) relationship() {
	var alias string
	if p.match(Aggregation) {
		p.eat(Aggregation)
		alias = p.eat(Ident).Text
		p.eat(Is)
	}

	members := []schema.Participant{p.member()}
	for p.match(Comma) {
		p.eat(Comma)
		members = append(members, p.member())
	}

	var rel schema.Relationship
	if p.match(Ident) {
		rel.Name = p.eat(Ident).Text
		rel.Participants = members
	} else {
		if len(members) == 1 {
			p.eat(Comma)
		}
		last := len(members) - 1
		rel.Name = members[last].Entity
		rel.Participants = members[:last]
	}

	if p.match(LBracket) {
		p.eat(LBracket)
		rel.Attributes = p.attributeList()
		p.eat(RBracket)
	}

	if p.match(Is) {
		p.eat(Is)
		p.eat(Weak)
		rel.Weak = true
	}

	p.model.AddRelationship(rel)
	if alias != "" {
		p.model.AddAggregation(alias, rel.Name)
	}
}

// member = IDENT cardinality?
func (p *parser) member() schema.Participant {
	part := schema.Participant{Entity: p.eat(Ident).Text, Cardinality: schema.Star}
	if p.match(LParen) {
		part.Cardinality = p.cardinality()
	}
	return part
}

// cardinality = LPAREN (ONE | PLUS | STAR) RPAREN
func (p *parser) cardinality() schema.Cardinality {
	p.eat(LParen)
	c := schema.Star
	switch {
	case p.match(One):
		p.eat(One)
		c = schema.One
	case p.match(Plus):
		p.eat(Plus)
		c = schema.Plus
	default:
		p.eat(Star)
	}
	p.eat(RParen)
	return c
}
