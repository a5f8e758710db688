package introspect

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/lucasefe/erd/schema"
)

// entityNames resolves table names, bare or schema-qualified, to the entity
// names chosen for them.
type entityNames map[string]string

func (n entityNames) lookup(table string) string {
	if name, ok := n[table]; ok {
		return name
	}
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		table = table[i+1:]
	}
	return EntityName(table)
}

func (n entityNames) assign(tables []table) {
	taken := make(map[string]bool)
	for _, t := range tables {
		name := EntityName(t.name)
		if taken[name] {
			name = Identifier(inflect.Camelize(t.schema)) + name
		}
		taken[name] = true
		n[t.schema+"."+t.name] = name
		if _, ok := n[t.name]; !ok {
			n[t.name] = name
		}
	}
}

// buildModel maps catalog tables onto the ER model. Junction tables, those
// whose primary key covers two or more foreign keys, become relationships
// between the referenced entities. Every other table becomes an entity, and
// each of its foreign keys becomes a relationship in which the referencing
// entity participates once and the referenced one any number of times.
func buildModel(tables []table) (*schema.Model, entityNames) {
	names := make(entityNames)
	names.assign(tables)

	m := &schema.Model{}
	used := make(map[string]bool)

	for _, t := range tables {
		if isJunction(t) {
			continue
		}
		name := names.lookup(t.schema + "." + t.name)
		used[name] = true
		m.AddEntity(schema.Entity{Name: name, Attributes: attributes(t.columns, nil)})
	}

	for _, t := range tables {
		from := names.lookup(t.schema + "." + t.name)

		if isJunction(t) {
			if used[from] {
				log().Warningf("skipping junction table %s.%s: name %s already used", t.schema, t.name, from)
				continue
			}
			used[from] = true

			rel := schema.Relationship{Name: from}
			fkColumns := make(map[string]bool)
			for _, fk := range t.foreignKeys {
				rel.Participants = append(rel.Participants, schema.Participant{
					Entity:      names.lookup(fk.toSchema + "." + fk.toTable),
					Cardinality: schema.Star,
				})
				for _, col := range fk.columns {
					fkColumns[col] = true
				}
			}
			rel.Attributes = attributes(t.columns, fkColumns)
			m.AddRelationship(rel)
			continue
		}

		for _, fk := range t.foreignKeys {
			to := names.lookup(fk.toSchema + "." + fk.toTable)
			name := from + to
			if used[name] {
				name += "By" + Identifier(inflect.Camelize(strings.Join(fk.columns, "_")))
			}
			if used[name] {
				log().Warningf("skipping foreign key %s on %s.%s: name %s already used", fk.name, t.schema, t.name, name)
				continue
			}
			used[name] = true

			m.AddRelationship(schema.Relationship{
				Name: name,
				Participants: []schema.Participant{
					{Entity: from, Cardinality: schema.One},
					{Entity: to, Cardinality: schema.Star},
				},
			})
		}
	}

	return m, names
}

func isJunction(t table) bool {
	if len(t.foreignKeys) < 2 {
		return false
	}
	primaryKey := make(map[string]bool)
	for _, col := range t.columns {
		if col.primaryKey {
			primaryKey[col.name] = true
		}
	}
	for _, fk := range t.foreignKeys {
		for _, col := range fk.columns {
			if !primaryKey[col] {
				return false
			}
		}
	}
	return true
}

// attributes converts columns to attributes, leaving out the skipped ones.
func attributes(columns []column, skip map[string]bool) []schema.Attribute {
	var attrs []schema.Attribute
	for _, col := range columns {
		if skip[col.name] {
			continue
		}
		attr := schema.Attribute{Name: Identifier(col.name), PrimaryKey: col.primaryKey}
		if col.dataType != "" {
			attr.Type = Identifier(col.dataType)
		}
		attrs = append(attrs, attr)
	}
	return attrs
}
