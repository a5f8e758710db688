package erd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasefe/erd/parser"
	"github.com/lucasefe/erd/schema"
)

func TestToGraphDescriptionEmptyModel(t *testing.T) {
	expected := `digraph {
    graph[compound=true];
    subgraph Undirected {
        edge[dir=none]
    }
    subgraph Directed {
    }
    subgraph Participation {
        edge[dir=none color="black:invis:black"]
    }
    subgraph Dashed {
        edge[dir=none style=dashed]
    }
    subgraph Generalizations {
        edge[arrowhead="onormal"]
    }
}`
	assert.Equal(t, expected, ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\n"))
}

func TestToGraphDescriptionSingleEntity(t *testing.T) {
	out := ToGraphDescription("ENTITIES:\nPerson(name)\nRELATIONSHIPS:\n")

	assert.True(t, strings.HasPrefix(out, "digraph"))
	assert.Equal(t, 1, strings.Count(out, "shape=none margin=0 label=<<TABLE"))
	assert.Equal(t, 5, strings.Count(out, "subgraph "))
	assert.NotContains(t, out, " -> ")
}

func TestPrimaryKeyMarkupInBothFormats(t *testing.T) {
	src := "ENTITIES:\nPerson(__id__, name)\nRELATIONSHIPS:\n"

	assert.Contains(t, ToGraphDescription(src), "<U>id</U>")
	assert.Contains(t, ToFlowchartDescription(src), "<u>id</u>")
}

func TestReversedDeclaration(t *testing.T) {
	m, err := Parse("ENTITIES:\nRELATIONSHIPS:\nA(1),B(*)Owns\n", nil)
	require.NoError(t, err)

	require.Len(t, m.Relationships, 1)
	rel := m.Relationships[0]
	assert.Equal(t, "Owns", rel.Name)
	assert.Equal(t, []schema.Participant{
		{Entity: "A", Cardinality: schema.One},
		{Entity: "B", Cardinality: schema.Star},
	}, rel.Participants)
}

func TestAggregationSubstitution(t *testing.T) {
	out := ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\nAGGREGATION AggR1 IS X,Y,R1\nAggR1,Z,R2\n")

	assert.Contains(t, out, "R2 -> R1 [lhead=cluster_AggR1]")
	assert.NotRegexp(t, `AggR1 ->|-> AggR1`, out)
}

func TestWeakFlag(t *testing.T) {
	weak := ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\nA,B,R IS WEAK\n")
	strong := ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\nA,B,R\n")

	assert.Contains(t, weak, "peripheries=2")
	assert.Equal(t, strong, strings.Replace(weak, " peripheries=2", "", 1))
}

func TestLexicalErrorAggregation(t *testing.T) {
	out := ToGraphDescription("ENTITIES:\nA(#)\nRELATIONSHIPS:\n$\n")
	assert.Equal(t, "[Line 2] Invalid character: #.\n[Line 4] Invalid character: $.\n", out)

	out = ToFlowchartDescription("ENTITIES:\nA(#)\nRELATIONSHIPS:\n$\n")
	assert.Equal(t, "[Line 2] Invalid character: #.\n[Line 4] Invalid character: $.\n", out)
}

func TestFirstErrorWins(t *testing.T) {
	src := "ENTITIES:\nA(x y)\nB(p q)\nRELATIONSHIPS:\n"

	assert.Equal(t, "[Line 2] Expect token ), got IDENT.\n", ToGraphDescription(src))

	_, err := Generate(src, &Config{ErrorPolicy: parser.AllErrors})
	require.Error(t, err)
	assert.Greater(t, strings.Count(err.Error(), "[Line "), 1)
	assert.Contains(t, err.Error(), "[Line 3]")
}

func TestAlternationIgnoresNames(t *testing.T) {
	a := ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\nP,Q,S,T,R\n")
	b := ToGraphDescription("ENTITIES:\nRELATIONSHIPS:\nZulu,Alpha,Mike,Bravo,R\n")

	for _, line := range []string{"P -> R", "R -> Q", "S -> R", "R -> T"} {
		assert.Contains(t, a, line)
	}
	for _, line := range []string{"Zulu -> R", "R -> Alpha", "Mike -> R", "R -> Bravo"} {
		assert.Contains(t, b, line)
	}
}

func TestGenerateFormats(t *testing.T) {
	src := "ENTITIES:\nA()\nRELATIONSHIPS:\n"

	out, err := Generate(src, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph {"))

	out, err = Generate(src, &Config{Format: FormatMermaid})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "flowchart LR"))

	out, err = Generate(src, &Config{Format: FormatNotation})
	require.NoError(t, err)
	assert.Equal(t, "ENTITIES:\nA()\n\nRELATIONSHIPS:\n", out)

	_, err = Generate(src, &Config{Format: "png"})
	assert.Error(t, err)
}

func TestGenerateReturnsErrorList(t *testing.T) {
	_, err := Generate("ENTITIES:\nA(\n", nil)
	require.Error(t, err)

	var diags parser.ErrorList
	require.True(t, errors.As(err, &diags))
	require.Len(t, diags, 1)
	assert.Equal(t, 2, parser.Line(diags[0]))
}

func TestConcurrentGenerate(t *testing.T) {
	const n = 32

	sources := make([]string, n)
	expected := make([]string, n)
	for i := range sources {
		sources[i] = fmt.Sprintf("ENTITIES:\nE%s(__id__)\nRELATIONSHIPS:\nE%s(1),F,R%s\n", letters(i), letters(i), letters(i))
		if i%5 == 0 {
			sources[i] = fmt.Sprintf("ENTITIES:\nE%s(#)\nRELATIONSHIPS:\n", letters(i))
		}
		expected[i] = ToGraphDescription(sources[i])
	}

	results := make([]string, n)
	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ToGraphDescription(sources[i])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, expected, results)
}

// letters spells i in base 26 so generated names stay valid identifiers.
func letters(i int) string {
	s := string(rune('a' + i%26))
	if i >= 26 {
		s = letters(i/26-1) + s
	}
	return s
}
