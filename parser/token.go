package parser

// Kind identifies the type of a lexical token.
type Kind int

const (
	EOF Kind = iota
	Illegal
	LBracket         // [
	RBracket         // ]
	LParen           // (
	RParen           // )
	Comma            // ,
	Colon            // :
	Newline          // \n
	DoubleUnderscore // __
	Ident            // [A-Za-z_]+ not ending in __

	// Keywords (identifier text checked against the keyword map)
	Entities      // ENTITIES
	Relationships // RELATIONSHIPS
	Isa           // ISA
	Is            // IS
	Weak          // WEAK
	Aggregation   // AGGREGATION

	// Cardinality literals
	One  // 1
	Plus // +
	Star // *
)

// kindNames holds the text used for each kind in diagnostics. Newline and
// EOF are escaped so messages stay on one line.
var kindNames = map[Kind]string{
	EOF:              `\0`,
	Illegal:          "ILLEGAL",
	LBracket:         "[",
	RBracket:         "]",
	LParen:           "(",
	RParen:           ")",
	Comma:            ",",
	Colon:            ":",
	Newline:          `\n`,
	DoubleUnderscore: "__",
	Ident:            "IDENT",
	Entities:         "ENTITIES",
	Relationships:    "RELATIONSHIPS",
	Isa:              "ISA",
	Is:               "IS",
	Weak:             "WEAK",
	Aggregation:      "AGGREGATION",
	One:              "1",
	Plus:             "+",
	Star:             "*",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by Scan.
type Token struct {
	Line int
	Kind Kind
	Text string
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"ENTITIES":      Entities,
	"RELATIONSHIPS": Relationships,
	"ISA":           Isa,
	"IS":            Is,
	"WEAK":          Weak,
	"AGGREGATION":   Aggregation,
}

// punctuation maps single-character tokens to their kinds.
var punctuation = map[rune]Kind{
	'[':  LBracket,
	']':  RBracket,
	'(':  LParen,
	')':  RParen,
	',':  Comma,
	':':  Colon,
	'1':  One,
	'+':  Plus,
	'*':  Star,
	'\n': Newline,
}

// IsKeyword reports whether s would be scanned as a reserved word rather
// than an identifier.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
