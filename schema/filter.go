package schema

// FilterEntities removes the named entities from the model, together with every
// relationship in which one of them participates and every aggregation of such a
// relationship. It returns a new Model; the original is not modified.
func FilterEntities(m *Model, excludeEntities []string) *Model {
	excludeMap := make(map[string]bool)
	for _, name := range excludeEntities {
		excludeMap[name] = true
	}

	filtered := &Model{
		Entities:      make([]Entity, 0, len(m.Entities)),
		Relationships: make([]Relationship, 0, len(m.Relationships)),
	}

	for _, entity := range m.Entities {
		if !excludeMap[entity.Name] {
			filtered.Entities = append(filtered.Entities, entity)
		}
	}

	dropped := make(map[string]bool)
	for _, rel := range m.Relationships {
		keep := true
		for _, p := range rel.Participants {
			if excludeMap[p.Entity] {
				keep = false
				break
			}
		}
		if keep {
			filtered.Relationships = append(filtered.Relationships, rel)
		} else {
			dropped[rel.Name] = true
		}
	}

	for _, agg := range m.Aggregations {
		if !dropped[agg.Relationship] {
			filtered.Aggregations = append(filtered.Aggregations, agg)
		}
	}

	return filtered
}

// FilterRelationships removes the named relationships and their aggregations.
// It returns a new Model; the original is not modified.
func FilterRelationships(m *Model, excludeRelationships []string) *Model {
	excludeMap := make(map[string]bool)
	for _, name := range excludeRelationships {
		excludeMap[name] = true
	}

	filtered := &Model{
		Entities:      m.Entities,
		Relationships: make([]Relationship, 0, len(m.Relationships)),
	}

	for _, rel := range m.Relationships {
		if !excludeMap[rel.Name] {
			filtered.Relationships = append(filtered.Relationships, rel)
		}
	}

	for _, agg := range m.Aggregations {
		if !excludeMap[agg.Relationship] {
			filtered.Aggregations = append(filtered.Aggregations, agg)
		}
	}

	return filtered
}
