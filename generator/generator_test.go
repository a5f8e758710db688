package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasefe/erd/parser"
	"github.com/lucasefe/erd/schema"
)

func parse(t *testing.T, src string) *schema.Model {
	t.Helper()
	m, err := parser.ParseString(src)
	require.NoError(t, err)
	return m
}

func TestDOTFullOutput(t *testing.T) {
	m := parse(t, "ENTITIES:\nA(__id__, name)\nB()\nC() ISA A\nRELATIONSHIPS:\nA(1),B,R [since]\n")

	expected := `digraph {
    graph[compound=true];
    A[shape=none margin=0 label=<<TABLE ALIGN="CENTER" CELLSPACING="0">
        <TR><TD BGCOLOR="#CBEDF9" BORDER="0">A</TD></TR>
        <HR/>
        <TR><TD BORDER="0"><U>id</U></TD></TR>
        <TR><TD BORDER="0">name</TD></TR>
    </TABLE>>]
    B[shape=none margin=0 label=<<TABLE ALIGN="CENTER" CELLSPACING="0">
        <TR><TD BGCOLOR="#CBEDF9" BORDER="0">B</TD></TR>
    </TABLE>>]
    C[shape=none margin=0 label=<<TABLE ALIGN="CENTER" CELLSPACING="0">
        <TR><TD BGCOLOR="#CBEDF9" BORDER="0">C</TD></TR>
    </TABLE>>]
    R[shape=diamond style=filled fillcolor="#E6F9FE" label="R"]
    R_since[shape=rect label="since"]
    subgraph Undirected {
        edge[dir=none]
        R -> B
    }
    subgraph Directed {
        A -> R [dir=back]
    }
    subgraph Participation {
        edge[dir=none color="black:invis:black"]
    }
    subgraph Dashed {
        edge[dir=none style=dashed]
        R_since -> R
    }
    subgraph Generalizations {
        edge[arrowhead="onormal"]
        C -> A
    }
}`
	assert.Equal(t, expected, DOT(m))
}

func TestDOTSingleEntityShape(t *testing.T) {
	out := DOT(parse(t, "ENTITIES:\nPerson(name)\nRELATIONSHIPS:\n"))

	assert.True(t, strings.HasPrefix(out, "digraph {"))
	assert.Equal(t, 1, strings.Count(out, "<TABLE"))
	assert.NotContains(t, out, "->")
	for _, name := range []string{"Undirected", "Directed", "Participation", "Dashed", "Generalizations"} {
		assert.Contains(t, out, "subgraph "+name+" {")
	}
}

func TestDOTEntityWithoutAttributesOmitsDivider(t *testing.T) {
	out := DOT(&schema.Model{Entities: []schema.Entity{{Name: "Empty"}}})
	assert.NotContains(t, out, "<HR/>")
}

func TestDOTDatatypeHints(t *testing.T) {
	out := DOT(parse(t, "ENTITIES:\nA(__id: int__, name: text)\nRELATIONSHIPS:\nA,B,R [since: date]\n"))

	expectedContains := []string{
		`<TR><TD BORDER="0"><U>id</U>: int</TD></TR>`,
		`<TR><TD BORDER="0">name: text</TD></TR>`,
		`R_since[shape=rect label="since: date"]`,
		"R_since -> R",
	}
	for _, expected := range expectedContains {
		assert.Contains(t, out, expected)
	}
}

func TestDOTPrimaryKeyAttributeNodeID(t *testing.T) {
	out := DOT(parse(t, "ENTITIES:\nRELATIONSHIPS:\nA,B,R [__code__]\n"))
	assert.Contains(t, out, `R_code[shape=rect label="<U>code</U>"]`)
	assert.Contains(t, out, "R_code -> R")
}

func TestDOTWeakRelationship(t *testing.T) {
	weak := DOT(parse(t, "ENTITIES:\nRELATIONSHIPS:\nA,B,R IS WEAK\n"))
	strong := DOT(parse(t, "ENTITIES:\nRELATIONSHIPS:\nA,B,R\n"))

	assert.Contains(t, weak, `R[shape=diamond style=filled fillcolor="#E6F9FE" label="R" peripheries=2]`)
	assert.Equal(t, strong, strings.Replace(weak, " peripheries=2", "", 1))
}

func TestDOTCardinalityDefaultMatchesStar(t *testing.T) {
	implicit := DOT(parse(t, "ENTITIES:\nRELATIONSHIPS:\nA,B,R\n"))
	explicit := DOT(parse(t, "ENTITIES:\nRELATIONSHIPS:\nA(*),B(*),R\n"))
	assert.Equal(t, explicit, implicit)
}

func TestDOTAlternatingDirection(t *testing.T) {
	tests := []struct {
		name        string
		cardinality string
		subgraph    string
		expected    []Edge
	}{
		{
			name:        "star",
			cardinality: "*",
			subgraph:    SubgraphUndirected,
			expected: []Edge{
				{From: "P", To: "R"},
				{From: "R", To: "Q"},
				{From: "Zed", To: "R"},
				{From: "R", To: "Aa"},
			},
		},
		{
			name:        "one",
			cardinality: "1",
			subgraph:    SubgraphDirected,
			expected: []Edge{
				{From: "P", To: "R", Attrs: []Attr{{Key: "dir", Value: "back"}}},
				{From: "R", To: "Q"},
				{From: "Zed", To: "R", Attrs: []Attr{{Key: "dir", Value: "back"}}},
				{From: "R", To: "Aa"},
			},
		},
		{
			name:        "plus",
			cardinality: "+",
			subgraph:    SubgraphParticipation,
			expected: []Edge{
				{From: "P", To: "R"},
				{From: "R", To: "Q"},
				{From: "Zed", To: "R"},
				{From: "R", To: "Aa"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := "(" + tt.cardinality + ")"
			m := parse(t, "ENTITIES:\nRELATIONSHIPS:\nP"+c+",Q"+c+",Zed"+c+",Aa"+c+",R\n")
			g := BuildGraph(m)

			sub := findSubgraph(t, g, tt.subgraph)
			var got []Edge
			for _, stmt := range sub.Stmts {
				got = append(got, *stmt.(*Edge))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDOTAlternationIsPerRelationship(t *testing.T) {
	m := parse(t, "ENTITIES:\nRELATIONSHIPS:\nA,B,C,R1\nD,E,R2\n")
	sub := findSubgraph(t, BuildGraph(m), SubgraphUndirected)

	var lines []string
	for _, stmt := range sub.Stmts {
		e := stmt.(*Edge)
		lines = append(lines, e.From+"->"+e.To)
	}
	assert.Equal(t, []string{"A->R1", "R1->B", "C->R1", "D->R2", "R2->E"}, lines)
}

func TestDOTAggregation(t *testing.T) {
	src := "ENTITIES:\nX()\nY()\nZ()\nRELATIONSHIPS:\nAGGREGATION AggR1 IS X,Y,R1\nAggR1,Z(1),R2\n"
	out := DOT(parse(t, src))

	assert.Contains(t, out, "    subgraph cluster_AggR1 {\n        R1;\n        X;\n        Y;\n    }\n")
	assert.Contains(t, out, "R2 -> R1 [lhead=cluster_AggR1]")
	assert.NotContains(t, out, "AggR1 -> R2")
	assert.NotContains(t, out, "R2 -> AggR1")
	// Z is at index 1 in a ONE pass
	assert.Contains(t, out, "R2 -> Z\n")
}

func TestDOTAggregationEdgeIgnoresAlternation(t *testing.T) {
	src := "ENTITIES:\nRELATIONSHIPS:\nAGGREGATION G IS X,Y,R1\nZ(1),G(1),R2\n"
	sub := findSubgraph(t, BuildGraph(parse(t, src)), SubgraphDirected)
	require.Len(t, sub.Stmts, 2)
	assert.Equal(t, &Edge{From: "Z", To: "R2", Attrs: []Attr{{Key: "dir", Value: "back"}}}, sub.Stmts[0])
	assert.Equal(t, &Edge{From: "R2", To: "R1", Attrs: []Attr{{Key: "lhead", Value: "cluster_G"}}}, sub.Stmts[1])
}

func TestDOTInheritanceCycleTerminates(t *testing.T) {
	out := DOT(parse(t, "ENTITIES:\nA() ISA B\nB() ISA A\nRELATIONSHIPS:\n"))
	assert.Contains(t, out, "A -> B")
	assert.Contains(t, out, "B -> A")
}

func findSubgraph(t *testing.T, g *Graph, name string) *Subgraph {
	t.Helper()
	for _, stmt := range g.Stmts {
		if sub, ok := stmt.(*Subgraph); ok && sub.Name == name {
			return sub
		}
	}
	t.Fatalf("subgraph %s not found", name)
	return nil
}

func TestMermaidFullOutput(t *testing.T) {
	m := parse(t, "ENTITIES:\nPerson(__id: int__, name)\nStudent(school) ISA Person\nRELATIONSHIPS:\nStudent(1),Person(+),Course,Takes [grade: int] IS WEAK\n")

	expected := `flowchart LR
    classDef entity fill:#CBEDF9,stroke:#333
    classDef relationship fill:#E6F9FE,stroke:#333
    classDef attribute fill:#FFFFFF,stroke:#333,stroke-dasharray:3 3
    Person["<b>Person</b><br/><u>id</u><br/>name"]:::entity
    Student["<b>Student</b><br/>school"]:::entity
    Student -->|ISA| Person
    Takes{"Takes"}:::relationship
    Takes_grade["grade"]:::attribute
    Takes_grade -.-> Takes
    Student --- Takes
    Takes --- Person
    Course --- Takes
`
	assert.Equal(t, expected, Mermaid(m))
}

func TestMermaidIgnoresAggregationAndCardinality(t *testing.T) {
	withExtras := Mermaid(parse(t, "ENTITIES:\nRELATIONSHIPS:\nAGGREGATION G IS X(1),Y(+),R IS WEAK\n"))
	plain := Mermaid(parse(t, "ENTITIES:\nRELATIONSHIPS:\nX,Y,R\n"))
	assert.Equal(t, plain, withExtras)
}

func TestNotationRoundTrip(t *testing.T) {
	src := "ENTITIES:\nPerson(__id: int__, name)\nStudent() ISA Person\n\nRELATIONSHIPS:\n" +
		"AGGREGATION Enrollment IS Student(+), Course, Takes [__since: date__]\n" +
		"Enrollment, Person(1), Advises IS WEAK\n"
	m := parse(t, src)

	out := Notation(m)
	assert.Equal(t, src, out)
	assert.Equal(t, m, parse(t, out))
}

func TestNotationKeepsEveryAggregation(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "two aliases for one relationship",
			src:      "ENTITIES:\nRELATIONSHIPS:\nAGGREGATION X IS A,B,R\nAGGREGATION Y IS A,B,R\nX,C,S\nY,D,T\n",
			expected: "ENTITIES:\n\nRELATIONSHIPS:\nAGGREGATION X IS A, B, R\nAGGREGATION Y IS A, B, R\nX, C, S\nY, D, T\n",
		},
		{
			name:     "aliases declared out of relationship order",
			src:      "ENTITIES:\nRELATIONSHIPS:\nA,B,R\nAGGREGATION Z IS C,D,S\nAGGREGATION X IS A,B,R\n",
			expected: "ENTITIES:\n\nRELATIONSHIPS:\nA, B, R\nAGGREGATION Z IS C, D, S\nAGGREGATION X IS A, B, R\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parse(t, tt.src)

			out := Notation(m)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, m, parse(t, out))
		})
	}
}

func TestDOTQuotesKeywordIDs(t *testing.T) {
	out := DOT(parse(t, "ENTITIES:\nNode(__id__)\nEdge(__id__)\nRELATIONSHIPS:\nNode, Edge, Graph\nAGGREGATION Strict IS Node, Edge, Subgraph\nStrict, Edge, Uses\n"))

	assert.Contains(t, out, `    "Node"[shape=none margin=0 label=<`)
	assert.Contains(t, out, `    "Edge"[shape=none margin=0 label=<`)
	assert.Contains(t, out, `    "Graph"[shape=diamond`)
	assert.Contains(t, out, `"Node" -> "Graph"`)
	assert.Contains(t, out, `"Graph" -> "Edge"`)
	assert.Contains(t, out, `"Subgraph";`)
	assert.NotContains(t, out, "    Node[")
	assert.NotContains(t, out, "Node -> ")

	plain := DOT(parse(t, "ENTITIES:\nNodes()\nRELATIONSHIPS:\nNodes, B, R\n"))
	assert.Contains(t, plain, "    Nodes[shape=none")
	assert.Contains(t, plain, "Nodes -> R")
}

func TestMermaidRenamesKeywordIDs(t *testing.T) {
	out := Mermaid(parse(t, "ENTITIES:\nend(x)\nEnd()\nRELATIONSHIPS:\nend, End, class\n"))

	assert.Contains(t, out, `    end0["<b>end</b><br/>x"]:::entity`)
	assert.Contains(t, out, `    End["<b>End</b>"]:::entity`)
	assert.Contains(t, out, `    class0{"class"}:::relationship`)
	assert.Contains(t, out, "    end0 --- class0\n")
	assert.Contains(t, out, "    class0 --- End\n")
	assert.NotContains(t, out, "    end[")
}

func TestGenerate(t *testing.T) {
	m := parse(t, "ENTITIES:\nA()\nRELATIONSHIPS:\n")

	for _, format := range Formats {
		result, err := GenerateString(m, format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, result)
	}

	_, err := Generate(m, Format("svg"))
	assert.Error(t, err)

	_, err = Generate(nil, FormatDOT)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
	}{
		{"dot", FormatDOT},
		{"GraphViz", FormatDOT},
		{" mermaid ", FormatMermaid},
		{"mmd", FormatMermaid},
		{"erd", FormatNotation},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, got)
	}

	_, err := ParseFormat("png")
	assert.Error(t, err)
}
