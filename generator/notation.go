package generator

import (
	"fmt"
	"strings"

	"github.com/lucasefe/erd/schema"
)

// Notation renders the model back as ER notation. Parsing the result yields
// an equal model, which makes it usable as a canonical formatter.
func Notation(m *schema.Model) string {
	var builder strings.Builder

	builder.WriteString("ENTITIES:\n")
	for _, entity := range m.Entities {
		generateEntity(&builder, entity)
	}

	builder.WriteString("\nRELATIONSHIPS:\n")
	// Aggregations are written in model order. An alias is inlined on its
	// relationship when it is next in that order; any other alias repeats the
	// relationship under an AGGREGATION prefix, which the parser treats as an
	// in-place redeclaration.
	next := 0
	for _, rel := range m.Relationships {
		alias := ""
		if next < len(m.Aggregations) && m.Aggregations[next].Relationship == rel.Name {
			alias = m.Aggregations[next].Alias
			next++
		}
		generateRelationship(&builder, rel, alias)
		for next < len(m.Aggregations) && m.Aggregations[next].Relationship == rel.Name {
			generateRelationship(&builder, rel, m.Aggregations[next].Alias)
			next++
		}
	}
	for _, agg := range m.Aggregations[next:] {
		if rel := m.Relationship(agg.Relationship); rel != nil {
			generateRelationship(&builder, *rel, agg.Alias)
		}
	}

	return builder.String()
}

func generateEntity(builder *strings.Builder, entity schema.Entity) {
	builder.WriteString(fmt.Sprintf("%s(%s)", entity.Name, attributeList(entity.Attributes)))
	if entity.InheritsFrom != "" {
		builder.WriteString(" ISA " + entity.InheritsFrom)
	}
	builder.WriteString("\n")
}

func generateRelationship(builder *strings.Builder, rel schema.Relationship, alias string) {
	if alias != "" {
		builder.WriteString(fmt.Sprintf("AGGREGATION %s IS ", alias))
	}

	members := make([]string, 0, len(rel.Participants)+1)
	for _, p := range rel.Participants {
		if p.Cardinality == schema.Star {
			members = append(members, p.Entity)
		} else {
			members = append(members, fmt.Sprintf("%s(%s)", p.Entity, p.Cardinality))
		}
	}
	members = append(members, rel.Name)
	builder.WriteString(strings.Join(members, ", "))

	if len(rel.Attributes) > 0 {
		builder.WriteString(fmt.Sprintf(" [%s]", attributeList(rel.Attributes)))
	}
	if rel.Weak {
		builder.WriteString(" IS WEAK")
	}
	builder.WriteString("\n")
}

func attributeList(attrs []schema.Attribute) string {
	parts := make([]string, len(attrs))
	for i, attr := range attrs {
		text := attr.Name
		if attr.Type != "" {
			text = fmt.Sprintf("%s: %s", text, attr.Type)
		}
		if attr.PrimaryKey {
			text = "__" + text + "__"
		}
		parts[i] = text
	}
	return strings.Join(parts, ", ")
}
