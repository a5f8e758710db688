package generator

import (
	"strings"

	"github.com/lucasefe/erd/schema"
)

const (
	classEntity       = "entity"
	classRelationship = "relationship"
	classAttribute    = "attribute"
)

// Mermaid renders the model as a Mermaid flowchart.
func Mermaid(m *schema.Model) string {
	return BuildFlowchart(m).String()
}

// BuildFlowchart converts a model into a flowchart. Only names, attribute
// names, inheritance and participation are drawn; cardinalities,
// aggregations and weak markers have no flowchart form and are ignored.
func BuildFlowchart(m *schema.Model) *Flowchart {
	f := &Flowchart{
		Direction: "LR",
		ClassDefs: []ClassDef{
			{Name: classEntity, Style: "fill:" + entityHeaderColor + ",stroke:#333"},
			{Name: classRelationship, Style: "fill:" + relationshipColor + ",stroke:#333"},
			{Name: classAttribute, Style: "fill:#FFFFFF,stroke:#333,stroke-dasharray:3 3"},
		},
	}

	for _, entity := range m.Entities {
		lines := []string{"<b>" + entity.Name + "</b>"}
		for _, attr := range entity.Attributes {
			lines = append(lines, flowchartAttribute(attr))
		}
		f.Statements = append(f.Statements, &FlowNode{
			ID:    entity.Name,
			Label: strings.Join(lines, "<br/>"),
			Class: classEntity,
		})
	}

	for _, entity := range m.Entities {
		if entity.InheritsFrom != "" {
			f.Statements = append(f.Statements, &Link{
				From:  entity.Name,
				To:    entity.InheritsFrom,
				Arrow: "-->",
				Text:  "ISA",
			})
		}
	}

	for _, rel := range m.Relationships {
		f.Statements = append(f.Statements, &FlowNode{
			ID:    rel.Name,
			Label: rel.Name,
			Shape: ShapeDiamond,
			Class: classRelationship,
		})
		for _, attr := range rel.Attributes {
			id := attributeNodeID(rel, attr)
			f.Statements = append(f.Statements,
				&FlowNode{ID: id, Label: flowchartAttribute(attr), Class: classAttribute},
				&Link{From: id, To: rel.Name, Arrow: "-.->"},
			)
		}
	}

	for _, rel := range m.Relationships {
		for i, p := range rel.Participants {
			if i%2 == 0 {
				f.Statements = append(f.Statements, &Link{From: p.Entity, To: rel.Name, Arrow: "---"})
			} else {
				f.Statements = append(f.Statements, &Link{From: rel.Name, To: p.Entity, Arrow: "---"})
			}
		}
	}

	return f
}

// flowchartAttribute renders an attribute name without its datatype hint.
func flowchartAttribute(attr schema.Attribute) string {
	if attr.PrimaryKey {
		return "<u>" + attr.Name + "</u>"
	}
	return attr.Name
}
