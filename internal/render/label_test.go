package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/queryviz/core/internal/models"
)

func TestBuildDOT(t *testing.T) {
	t.Run("emits graph attributes and one statement per node and edge", func(t *testing.T) {
		dot := BuildDOT(simpleGraph())

		assert.Contains(t, dot, "digraph {")
		assert.Contains(t, dot, "rankdir=LR")
		assert.Contains(t, dot, "bgcolor=transparent")
		assert.Contains(t, dot, `"users" [label=`)
		assert.Contains(t, dot, `"orders" [label=`)
		assert.Contains(t, dot, `"users" -> "orders"`)
		assert.Contains(t, dot, "INNER JOIN")
	})

	t.Run("cycles the palette by node index", func(t *testing.T) {
		g := models.NewSQLGraph()
		for i := 0; i < len(nodeColors)+1; i++ {
			g.AddTable(string(rune('a' + i)))
		}

		dot := BuildDOT(g)

		// The ninth node wraps around to the first color.
		assert.Equal(t, 2, strings.Count(dot, nodeColors[0]))
	})

	t.Run("output is deterministic", func(t *testing.T) {
		g := simpleGraph()

		first := BuildDOT(g)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, BuildDOT(g))
		}
	})
}

func TestNodeLabel(t *testing.T) {
	t.Run("wildcard column collapses to all columns", func(t *testing.T) {
		node := &models.TableNode{Name: "users", Columns: []string{"*"}}

		label := nodeLabel(node)

		assert.Contains(t, label, "(all columns)")
		assert.NotContains(t, label, "• *")
	})

	t.Run("lists up to five columns then summarizes", func(t *testing.T) {
		node := &models.TableNode{
			Name:    "users",
			Columns: []string{"a", "b", "c", "d", "e", "f", "g"},
		}

		label := nodeLabel(node)

		assert.Contains(t, label, "• e")
		assert.NotContains(t, label, "• f")
		assert.Contains(t, label, "... and 2 more")
	})

	t.Run("lists up to three filters then summarizes", func(t *testing.T) {
		node := &models.TableNode{
			Name:    "users",
			Filters: []string{"a = 1", "b = 2", "c = 3", "d = 4"},
		}

		label := nodeLabel(node)

		assert.Contains(t, label, "WHERE:")
		assert.Contains(t, label, "c = 3")
		assert.NotContains(t, label, "d = 4")
		assert.Contains(t, label, "... and 1 more")
	})

	t.Run("long filters are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		node := &models.TableNode{Name: "users", Filters: []string{long}}

		label := nodeLabel(node)

		assert.Contains(t, label, strings.Repeat("x", 40)+"...")
		assert.NotContains(t, label, strings.Repeat("x", 41))
	})

	t.Run("aggregation adds a group by marker", func(t *testing.T) {
		node := &models.TableNode{Name: "users", HasAggregation: true}

		assert.Contains(t, nodeLabel(node), "[GROUP BY]")
	})

	t.Run("bare node is just name and separator", func(t *testing.T) {
		node := &models.TableNode{Name: "users"}

		assert.Equal(t, "users\n"+labelSep, nodeLabel(node))
	})
}

func TestEdgeLabel(t *testing.T) {
	t.Run("includes join type and truncated condition", func(t *testing.T) {
		edge := models.JoinEdge{
			JoinType:  models.JoinLeft,
			Condition: strings.Repeat("c", 50),
		}

		label := edgeLabel(edge)

		assert.True(t, strings.HasPrefix(label, "LEFT JOIN\n"))
		assert.Contains(t, label, strings.Repeat("c", 30)+"...")
	})

	t.Run("unknown join type is used verbatim", func(t *testing.T) {
		edge := models.JoinEdge{JoinType: "CROSS", Condition: ""}

		assert.Equal(t, "CROSS", edgeLabel(edge))
	})

	t.Run("empty condition omits the second line", func(t *testing.T) {
		edge := models.JoinEdge{JoinType: models.JoinInner}

		assert.Equal(t, "INNER JOIN", edgeLabel(edge))
	})
}

func TestEscapeDotString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{"two\nlines", `two\nlines`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeDotString(tt.in), tt.in)
	}
}
