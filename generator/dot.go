package generator

import (
	"github.com/lucasefe/erd/schema"
)

const (
	entityHeaderColor = "#CBEDF9"
	relationshipColor = "#E6F9FE"
)

// Names of the edge subgraphs, in output order.
const (
	SubgraphUndirected      = "Undirected"
	SubgraphDirected        = "Directed"
	SubgraphParticipation   = "Participation"
	SubgraphDashed          = "Dashed"
	SubgraphGeneralizations = "Generalizations"
)

// DOT renders the model as a Graphviz digraph.
func DOT(m *schema.Model) string {
	return BuildGraph(m).String()
}

// BuildGraph converts a model into a DOT graph. Entities become table nodes,
// relationships become diamonds, aggregations become clusters, and edges are
// split into five subgraphs by kind so each group can be styled at once.
func BuildGraph(m *schema.Model) *Graph {
	g := &Graph{
		// compound edges are needed for lhead into aggregation clusters
		Attrs: []Attr{{Key: "compound", Value: "true"}},
	}

	for _, entity := range m.Entities {
		g.Stmts = append(g.Stmts, entityNode(entity))
	}

	for _, rel := range m.Relationships {
		g.Stmts = append(g.Stmts, relationshipNode(rel))
		for _, attr := range rel.Attributes {
			g.Stmts = append(g.Stmts, &Node{
				ID: attributeNodeID(rel, attr),
				Attrs: []Attr{
					{Key: "shape", Value: "rect"},
					{Key: "label", Value: attr.Label(), Quote: true},
				},
			})
		}
	}

	for _, agg := range m.Aggregations {
		cluster := &Subgraph{Name: clusterName(agg.Alias)}
		cluster.Members = append(cluster.Members, agg.Relationship)
		if rel := m.Relationship(agg.Relationship); rel != nil {
			for _, p := range rel.Participants {
				cluster.Members = append(cluster.Members, p.Entity)
			}
		}
		g.Stmts = append(g.Stmts, cluster)
	}

	g.Stmts = append(g.Stmts,
		&Subgraph{
			Name:         SubgraphUndirected,
			EdgeDefaults: []Attr{{Key: "dir", Value: "none"}},
			Stmts:        participantEdges(m, schema.Star),
		},
		&Subgraph{
			Name:  SubgraphDirected,
			Stmts: participantEdges(m, schema.One),
		},
		&Subgraph{
			Name: SubgraphParticipation,
			EdgeDefaults: []Attr{
				{Key: "dir", Value: "none"},
				{Key: "color", Value: "black:invis:black", Quote: true},
			},
			Stmts: participantEdges(m, schema.Plus),
		},
		&Subgraph{
			Name: SubgraphDashed,
			EdgeDefaults: []Attr{
				{Key: "dir", Value: "none"},
				{Key: "style", Value: "dashed"},
			},
			Stmts: attributeEdges(m),
		},
		&Subgraph{
			Name:         SubgraphGeneralizations,
			EdgeDefaults: []Attr{{Key: "arrowhead", Value: "onormal", Quote: true}},
			Stmts:        generalizationEdges(m),
		},
	)

	return g
}

func entityNode(entity schema.Entity) *Node {
	table := &Table{Header: entity.Name, HeaderColor: entityHeaderColor}
	for _, attr := range entity.Attributes {
		table.Rows = append(table.Rows, attr.Label())
	}
	return &Node{
		ID: entity.Name,
		Attrs: []Attr{
			{Key: "shape", Value: "none"},
			{Key: "margin", Value: "0"},
		},
		Table: table,
	}
}

func relationshipNode(rel schema.Relationship) *Node {
	attrs := []Attr{
		{Key: "shape", Value: "diamond"},
		{Key: "style", Value: "filled"},
		{Key: "fillcolor", Value: relationshipColor, Quote: true},
		{Key: "label", Value: rel.Name, Quote: true},
	}
	if rel.Weak {
		attrs = append(attrs, Attr{Key: "peripheries", Value: "2"})
	}
	return &Node{ID: rel.Name, Attrs: attrs}
}

// participantEdges connects every relationship to its participants of the
// given cardinality. Participants that name an aggregation point at the
// aggregated relationship and end at the cluster border. Other participants
// alternate direction by their position in the relationship, which keeps
// arrowheads from piling up on one side of the diamond.
func participantEdges(m *schema.Model, c schema.Cardinality) []Stmt {
	var stmts []Stmt
	for _, rel := range m.Relationships {
		for i, p := range rel.Participants {
			if p.Cardinality != c {
				continue
			}
			if target, ok := m.Aggregation(p.Entity); ok {
				stmts = append(stmts, &Edge{
					From:  rel.Name,
					To:    target,
					Attrs: []Attr{{Key: "lhead", Value: clusterName(p.Entity)}},
				})
				continue
			}
			if i%2 == 0 {
				edge := &Edge{From: p.Entity, To: rel.Name}
				if c == schema.One {
					// the arrowhead belongs on the entity side
					edge.Attrs = []Attr{{Key: "dir", Value: "back"}}
				}
				stmts = append(stmts, edge)
			} else {
				stmts = append(stmts, &Edge{From: rel.Name, To: p.Entity})
			}
		}
	}
	return stmts
}

func attributeEdges(m *schema.Model) []Stmt {
	var stmts []Stmt
	for _, rel := range m.Relationships {
		for _, attr := range rel.Attributes {
			stmts = append(stmts, &Edge{From: attributeNodeID(rel, attr), To: rel.Name})
		}
	}
	return stmts
}

func generalizationEdges(m *schema.Model) []Stmt {
	var stmts []Stmt
	for _, entity := range m.Entities {
		if entity.InheritsFrom != "" {
			stmts = append(stmts, &Edge{From: entity.Name, To: entity.InheritsFrom})
		}
	}
	return stmts
}

func attributeNodeID(rel schema.Relationship, attr schema.Attribute) string {
	return rel.Name + "_" + attr.Name
}

func clusterName(alias string) string {
	return "cluster_" + alias
}
