package generator

import (
	"strings"
)

// Flowchart is an intermediate representation of a Mermaid flowchart.
type Flowchart struct {
	Direction  string
	ClassDefs  []ClassDef
	Statements []FlowStmt
}

// FlowStmt is a node declaration or a link.
type FlowStmt interface {
	flowLine() string
}

// ClassDef declares a named style.
type ClassDef struct {
	Name  string
	Style string
}

// Shape selects the bracket pair around a node label.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeDiamond
)

// FlowNode declares a node with a quoted label and an optional class.
type FlowNode struct {
	ID    string
	Label string
	Shape Shape
	Class string
}

func (n *FlowNode) flowLine() string {
	left, right := "[", "]"
	if n.Shape == ShapeDiamond {
		left, right = "{", "}"
	}
	line := flowID(n.ID) + left + `"` + n.Label + `"` + right
	if n.Class != "" {
		line += ":::" + n.Class
	}
	return line
}

// Link connects two nodes. Arrow is the Mermaid link operator such as
// "---", "-->" or "-.->".
type Link struct {
	From  string
	To    string
	Arrow string
	Text  string
}

func (l *Link) flowLine() string {
	arrow := l.Arrow
	if l.Text != "" {
		arrow += "|" + l.Text + "|"
	}
	return flowID(l.From) + " " + arrow + " " + flowID(l.To)
}

// flowKeywords end or start a statement in Mermaid and cannot be node ids.
var flowKeywords = map[string]bool{
	"end":       true,
	"subgraph":  true,
	"graph":     true,
	"flowchart": true,
	"direction": true,
	"class":     true,
	"classDef":  true,
	"click":     true,
	"style":     true,
	"linkStyle": true,
}

// flowID renames a keyword id by appending a digit. Notation identifiers
// never contain digits, so the result cannot collide with another node.
func flowID(id string) string {
	if flowKeywords[id] {
		return id + "0"
	}
	return id
}

// String serializes the flowchart as Mermaid source with a trailing newline.
func (f *Flowchart) String() string {
	var sb strings.Builder
	sb.WriteString("flowchart " + f.Direction + "\n")
	for _, def := range f.ClassDefs {
		sb.WriteString("    classDef " + def.Name + " " + def.Style + "\n")
	}
	for _, stmt := range f.Statements {
		sb.WriteString("    " + stmt.flowLine() + "\n")
	}
	return sb.String()
}
