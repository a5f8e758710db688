// Package erd converts a small entity-relationship notation into diagram
// source for Graphviz (DOT) and Mermaid.
//
// The notation declares entities, then relationships:
//
//	ENTITIES:
//	Person(__id: int__, name)
//	Student(school) ISA Person
//	Course(__code__)
//
//	RELATIONSHIPS:
//	Student(+), Course, Takes [grade] IS WEAK
//
// # Basic Usage
//
// Render notation as a DOT digraph:
//
//	import "github.com/lucasefe/erd"
//
//	out := erd.ToGraphDescription(src)
//	fmt.Print(out)
//
// ToGraphDescription and ToFlowchartDescription never fail; on invalid input
// they return the diagnostic text, which starts with "[Line ". Use Generate
// when the caller needs to tell the two apart:
//
//	out, err := erd.Generate(src, &erd.Config{Format: erd.FormatMermaid})
//	if err != nil {
//	    var diags parser.ErrorList
//	    errors.As(err, &diags)
//	}
//
// # Configuration
//
// Config selects the output format and how many syntax errors are reported:
//
//	config := &erd.Config{
//	    Format:      erd.FormatDOT,
//	    ErrorPolicy: parser.AllErrors,
//	}
//
// # Reverse Engineering
//
// A PostgreSQL schema can be turned into notation (or a diagram) directly:
//
//	config := &erd.Config{
//	    Schemas:       []string{"public", "auth"},
//	    ExcludeTables: []string{"migrations", "schema_versions"},
//	}
//	src, err := erd.GenerateFromConnectionString(connStr, config)
//
// # Subpackages
//
//   - github.com/lucasefe/erd/schema - Entity, relationship and aggregation types
//   - github.com/lucasefe/erd/parser - Lexer and recursive-descent parser
//   - github.com/lucasefe/erd/generator - DOT, Mermaid and notation output
//   - github.com/lucasefe/erd/introspect - PostgreSQL introspection with functional options
//   - github.com/lucasefe/erd/server - HTTP render service
//   - github.com/lucasefe/erd/lsp - Language server publishing diagnostics
package erd
