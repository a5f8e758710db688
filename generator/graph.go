package generator

import (
	"strings"
)

// Graph is an intermediate representation of a DOT digraph. Statements are
// kept in insertion order and serialized by String.
type Graph struct {
	// Attrs are written as a single graph[...]; statement after the opening line.
	Attrs []Attr
	Stmts []Stmt
}

// Stmt is a statement inside a graph or subgraph body.
type Stmt interface {
	writeTo(w *lineWriter)
}

// Attr is a single key=value pair.
type Attr struct {
	Key   string
	Value string
	// Quote wraps Value in double quotes.
	Quote bool
}

func (a Attr) String() string {
	if a.Quote {
		return a.Key + `="` + a.Value + `"`
	}
	return a.Key + "=" + a.Value
}

func joinAttrs(attrs []Attr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// Node declares a node. When Table is set the node is drawn as an HTML-like
// table label and Attrs precede the label.
type Node struct {
	ID    string
	Attrs []Attr
	Table *Table
}

// Table is an HTML-like label with a header row and one row per entry.
// The divider is omitted when there are no rows.
type Table struct {
	Header      string
	HeaderColor string
	Rows        []string
}

func (n *Node) writeTo(w *lineWriter) {
	if n.Table == nil {
		w.line(dotID(n.ID) + "[" + joinAttrs(n.Attrs) + "]")
		return
	}

	prefix := ""
	if len(n.Attrs) > 0 {
		prefix = joinAttrs(n.Attrs) + " "
	}
	w.line(dotID(n.ID) + "[" + prefix + `label=<<TABLE ALIGN="CENTER" CELLSPACING="0">`)
	w.indent++
	w.line(`<TR><TD BGCOLOR="` + n.Table.HeaderColor + `" BORDER="0">` + n.Table.Header + `</TD></TR>`)
	if len(n.Table.Rows) > 0 {
		w.line("<HR/>")
		for _, row := range n.Table.Rows {
			w.line(`<TR><TD BORDER="0">` + row + `</TD></TR>`)
		}
	}
	w.indent--
	w.line("</TABLE>>]")
}

// Edge is a directed edge From -> To.
type Edge struct {
	From  string
	To    string
	Attrs []Attr
}

func (e *Edge) writeTo(w *lineWriter) {
	line := dotID(e.From) + " -> " + dotID(e.To)
	if len(e.Attrs) > 0 {
		line += " [" + joinAttrs(e.Attrs) + "]"
	}
	w.line(line)
}

// Subgraph groups statements. EdgeDefaults become an edge[...] line at the
// top of the body; Members are listed as bare "name;" statements.
type Subgraph struct {
	Name         string
	EdgeDefaults []Attr
	Members      []string
	Stmts        []Stmt
}

func (s *Subgraph) writeTo(w *lineWriter) {
	w.line("subgraph " + s.Name + " {")
	w.indent++
	if len(s.EdgeDefaults) > 0 {
		w.line("edge[" + joinAttrs(s.EdgeDefaults) + "]")
	}
	for _, m := range s.Members {
		w.line(dotID(m) + ";")
	}
	for _, stmt := range s.Stmts {
		stmt.writeTo(w)
	}
	w.indent--
	w.line("}")
}

// String serializes the graph as DOT source. The output has no trailing newline.
func (g *Graph) String() string {
	w := &lineWriter{indent: 1}
	w.sb.WriteString("digraph {\n")
	if len(g.Attrs) > 0 {
		w.line("graph[" + joinAttrs(g.Attrs) + "];")
	}
	for _, stmt := range g.Stmts {
		stmt.writeTo(w)
	}
	w.sb.WriteString("}")
	return w.sb.String()
}

// dotKeywords are reserved in DOT regardless of case.
var dotKeywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"strict":   true,
}

// dotID quotes id when it is a DOT keyword and leaves it bare otherwise.
func dotID(id string) string {
	if dotKeywords[strings.ToLower(id)] {
		return `"` + id + `"`
	}
	return id
}

// lineWriter writes indented lines, four spaces per level.
type lineWriter struct {
	sb     strings.Builder
	indent int
}

func (w *lineWriter) line(s string) {
	for i := 0; i < w.indent; i++ {
		w.sb.WriteString("    ")
	}
	w.sb.WriteString(s)
	w.sb.WriteString("\n")
}
