// Package generator converts ER models to diagram source.
//
// Three output formats are supported: Graphviz DOT, Mermaid flowcharts and
// the ER notation itself. Each diagram format is built as an intermediate
// representation first (Graph, Flowchart) and serialized last, so the
// structure can be inspected in tests independently of the text.
//
// Basic usage:
//
//	output, err := generator.Generate(model, generator.FormatDOT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(output)
package generator

import (
	"fmt"
	"strings"

	"github.com/lucasefe/erd/schema"
)

// Format selects the generated diagram language.
type Format string

const (
	// FormatDOT is the Graphviz DOT digraph form.
	FormatDOT Format = "dot"
	// FormatMermaid is the Mermaid flowchart form.
	FormatMermaid Format = "mermaid"
	// FormatNotation is the ER notation accepted by the parser.
	FormatNotation Format = "erd"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatMermaid, FormatNotation}

// ParseFormat converts a format name, case-insensitively, to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatDOT, "graphviz", "gv":
		return FormatDOT, nil
	case FormatMermaid, "mmd":
		return FormatMermaid, nil
	case FormatNotation, "notation":
		return FormatNotation, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of dot, mermaid, erd)", name)
}

// ContentType returns the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatMermaid:
		return "text/vnd.mermaid; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatDOT:
		return ".dot"
	case FormatMermaid:
		return ".mmd"
	default:
		return ".erd"
	}
}

// Generate converts a model into diagram source bytes in the given format.
func Generate(m *schema.Model, format Format) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("generate %s: nil model", format)
	}
	switch format {
	case FormatDOT:
		return []byte(DOT(m)), nil
	case FormatMermaid:
		return []byte(Mermaid(m)), nil
	case FormatNotation:
		return []byte(Notation(m)), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// GenerateString is a convenience wrapper that returns the output as a string.
func GenerateString(m *schema.Model, format Format) (string, error) {
	result, err := Generate(m, format)
	if err != nil {
		return "", err
	}
	return string(result), nil
}
