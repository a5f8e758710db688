// Package schema defines the data structures for representing entity-relationship models.
// These types are produced by the parser and the introspector and consumed by the generators.
package schema

import "fmt"

// Model is the top-level container for a parsed ER diagram.
// Entities, relationships and aggregations keep their declaration order.
type Model struct {
	// Entities contains all declared entities in declaration order.
	Entities []Entity `json:"entities" yaml:"entities"`
	// Relationships contains all declared relationships in declaration order.
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
	// Aggregations maps aliases to the relationship they package.
	Aggregations []Aggregation `json:"aggregations,omitempty" yaml:"aggregations,omitempty"`
}

// Entity represents an entity set with its attributes and optional parent.
type Entity struct {
	// Name is the entity name, unique among entities.
	Name string `json:"name" yaml:"name"`
	// Attributes contains the entity's attributes in declared order.
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// InheritsFrom is the parent entity name of an ISA declaration, or empty.
	// The parent does not have to be declared.
	InheritsFrom string `json:"inheritsFrom,omitempty" yaml:"inheritsFrom,omitempty"`
}

// Attribute represents an entity or relationship attribute.
type Attribute struct {
	// Name is the attribute name.
	Name string `json:"name" yaml:"name"`
	// Type is the optional datatype hint written after a colon.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// PrimaryKey indicates the attribute was written between __ markers.
	PrimaryKey bool `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
}

// Label returns the rendered attribute text. Primary keys are wrapped in
// underline markup and the datatype hint, if any, is appended.
func (a Attribute) Label() string {
	label := a.DisplayName()
	if a.Type != "" {
		label = fmt.Sprintf("%s: %s", label, a.Type)
	}
	return label
}

// DisplayName returns the attribute name with underline markup for primary keys.
func (a Attribute) DisplayName() string {
	if a.PrimaryKey {
		return "<U>" + a.Name + "</U>"
	}
	return a.Name
}

// Relationship represents a relationship set between entities.
type Relationship struct {
	// Name is the relationship name, unique among relationships.
	Name string `json:"name" yaml:"name"`
	// Participants lists the participating entities with their cardinality.
	Participants []Participant `json:"participants" yaml:"participants"`
	// Attributes contains the relationship's own attributes.
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// Weak marks a relationship declared with IS WEAK.
	Weak bool `json:"weak,omitempty" yaml:"weak,omitempty"`
}

// Participant is one entity taking part in a relationship.
type Participant struct {
	// Entity is the participating entity name or an aggregation alias.
	Entity string `json:"entity" yaml:"entity"`
	// Cardinality is the participation marker, Star when omitted.
	Cardinality Cardinality `json:"cardinality" yaml:"cardinality"`
}

// Aggregation packages a relationship so it can participate in another one.
type Aggregation struct {
	// Alias is the name used to reference the aggregation.
	Alias string `json:"alias" yaml:"alias"`
	// Relationship is the name of the packaged relationship.
	Relationship string `json:"relationship" yaml:"relationship"`
}

// AddEntity appends e, or replaces an entity of the same name in place.
func (m *Model) AddEntity(e Entity) {
	for i := range m.Entities {
		if m.Entities[i].Name == e.Name {
			m.Entities[i] = e
			return
		}
	}
	m.Entities = append(m.Entities, e)
}

// AddRelationship appends r, or replaces a relationship of the same name in place.
// A relationship that was once weak stays weak.
func (m *Model) AddRelationship(r Relationship) {
	for i := range m.Relationships {
		if m.Relationships[i].Name == r.Name {
			r.Weak = r.Weak || m.Relationships[i].Weak
			m.Relationships[i] = r
			return
		}
	}
	m.Relationships = append(m.Relationships, r)
}

// AddAggregation records alias as packaging the named relationship.
func (m *Model) AddAggregation(alias, relationship string) {
	for i := range m.Aggregations {
		if m.Aggregations[i].Alias == alias {
			m.Aggregations[i].Relationship = relationship
			return
		}
	}
	m.Aggregations = append(m.Aggregations, Aggregation{Alias: alias, Relationship: relationship})
}

// Entity returns the entity with the given name, or nil.
func (m *Model) Entity(name string) *Entity {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return &m.Entities[i]
		}
	}
	return nil
}

// Relationship returns the relationship with the given name, or nil.
func (m *Model) Relationship(name string) *Relationship {
	for i := range m.Relationships {
		if m.Relationships[i].Name == name {
			return &m.Relationships[i]
		}
	}
	return nil
}

// Aggregation returns the relationship packaged under alias.
func (m *Model) Aggregation(alias string) (string, bool) {
	for _, a := range m.Aggregations {
		if a.Alias == alias {
			return a.Relationship, true
		}
	}
	return "", false
}
