package erd

import (
	"github.com/lucasefe/erd/generator"
	"github.com/lucasefe/erd/introspect"
	"github.com/lucasefe/erd/parser"
	"github.com/lucasefe/erd/schema"
)

// Format selects the generated diagram language.
type Format = generator.Format

// Supported output formats.
const (
	FormatDOT      = generator.FormatDOT
	FormatMermaid  = generator.FormatMermaid
	FormatNotation = generator.FormatNotation
)

// Config controls parsing, introspection and output.
type Config struct {
	// Format is the output format. Generate defaults to FormatDOT and the
	// connection helpers default to FormatNotation.
	Format Format
	// ErrorPolicy selects first-error-only or all-errors reporting.
	ErrorPolicy parser.ErrorPolicy
	// Schemas lists the database schemas to introspect. Defaults to "public".
	Schemas []string
	// ExcludeTables lists tables to leave out of an introspected model.
	ExcludeTables []string
	// IncludeAllSchemas introspects every non-system schema and overrides Schemas.
	IncludeAllSchemas bool
	// TypeMapper overrides the PostgreSQL datatype hints.
	TypeMapper introspect.TypeMapper
}

func (c *Config) format(fallback Format) Format {
	if c == nil || c.Format == "" {
		return fallback
	}
	return c.Format
}

func (c *Config) parserOptions() []parser.Option {
	if c == nil {
		return nil
	}
	return []parser.Option{parser.WithErrorPolicy(c.ErrorPolicy)}
}

// ToGraphDescription converts ER notation to Graphviz DOT. When the source
// has lexical or syntax errors the error text is returned instead; it always
// starts with "[Line ".
func ToGraphDescription(src string) string {
	return describe(src, FormatDOT)
}

// ToFlowchartDescription converts ER notation to a Mermaid flowchart, with
// the same error contract as ToGraphDescription.
func ToFlowchartDescription(src string) string {
	return describe(src, FormatMermaid)
}

func describe(src string, format Format) string {
	out, err := Generate(src, &Config{Format: format})
	if err != nil {
		return err.Error()
	}
	return out
}

// Parse converts ER notation to a model. Diagnostics are returned as a
// parser.ErrorList.
func Parse(src string, config *Config) (*schema.Model, error) {
	return parser.ParseString(src, config.parserOptions()...)
}

// Generate parses ER notation and renders it in config.Format. A nil config
// renders DOT and reports only the first syntax error.
func Generate(src string, config *Config) (string, error) {
	m, err := Parse(src, config)
	if err != nil {
		return "", err
	}
	return generator.GenerateString(m, config.format(FormatDOT))
}
