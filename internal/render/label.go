package render

import (
	"fmt"
	"strings"

	"github.com/queryviz/core/internal/models"
)

// Soft palette cycled over table nodes by insertion index.
var nodeColors = []string{
	"#7dd3fc", // sky
	"#a5f3fc", // cyan
	"#bbf7d0", // green
	"#fde047", // yellow
	"#fdba74", // orange
	"#f9a8d4", // pink
	"#c4b5fd", // violet
	"#e0e7ff", // indigo
}

// Separator line between sections inside a node label.
const labelSep = "────────────────"

const (
	maxLabelColumns  = 5
	maxLabelFilters  = 3
	filterTextLimit  = 40
	edgeConditionMax = 30
)

var joinTypeLabels = map[string]string{
	models.JoinInner: "INNER JOIN",
	models.JoinLeft:  "LEFT JOIN",
	models.JoinRight: "RIGHT JOIN",
	models.JoinFull:  "FULL JOIN",
}

// BuildDOT generates deterministic DOT source for the graph: left-to-right
// layout, rounded filled boxes, one node per table in insertion order, one
// edge per join in discovery order.
func BuildDOT(graph *models.SQLGraph) string {
	var b strings.Builder

	b.WriteString("digraph {\n")
	b.WriteString("\trankdir=LR\n")
	b.WriteString("\tbgcolor=transparent\n")
	b.WriteString("\tnode [shape=box style=\"rounded,filled\" fontname=Helvetica fontsize=11]\n")
	b.WriteString("\tedge [fontsize=10 fontcolor=\"#94a3b8\" color=\"#64748b\" penwidth=1.5]\n")

	for idx, name := range graph.NodeNames() {
		node := graph.Nodes[name]
		color := nodeColors[idx%len(nodeColors)]
		fmt.Fprintf(&b, "\t\"%s\" [label=\"%s\" fillcolor=\"%s\"]\n",
			escapeDotString(name), escapeDotString(nodeLabel(node)), color)
	}

	for _, edge := range graph.Edges {
		fmt.Fprintf(&b, "\t\"%s\" -> \"%s\" [label=\"%s\"]\n",
			escapeDotString(edge.FromTable), escapeDotString(edge.ToTable),
			escapeDotString(edgeLabel(edge)))
	}

	b.WriteString("}\n")
	return b.String()
}

// nodeLabel builds the multi-line plain-text label for a table node:
// name, selected columns, WHERE fragments, and a GROUP BY marker.
func nodeLabel(node *models.TableNode) string {
	lines := []string{node.Name, labelSep}

	if len(node.Columns) > 0 {
		if containsColumn(node.Columns, "*") {
			lines = append(lines, "(all columns)")
		} else {
			for i, col := range node.Columns {
				if i == maxLabelColumns {
					lines = append(lines, fmt.Sprintf("  ... and %d more", len(node.Columns)-maxLabelColumns))
					break
				}
				lines = append(lines, "  • "+col)
			}
		}
	}

	if len(node.Filters) > 0 {
		lines = append(lines, labelSep, "WHERE:")
		for i, filter := range node.Filters {
			if i == maxLabelFilters {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(node.Filters)-maxLabelFilters))
				break
			}
			lines = append(lines, "  "+truncate(filter, filterTextLimit))
		}
	}

	if node.HasAggregation {
		lines = append(lines, labelSep, "[GROUP BY]")
	}

	return strings.Join(lines, "\n")
}

// edgeLabel builds the label for a join edge: join type plus the condition,
// truncated to keep the diagram readable.
func edgeLabel(edge models.JoinEdge) string {
	label, ok := joinTypeLabels[edge.JoinType]
	if !ok {
		label = edge.JoinType
	}
	if edge.Condition != "" {
		label += "\n" + truncate(edge.Condition, edgeConditionMax)
	}
	return label
}

// escapeDotString escapes a value for use inside a double-quoted DOT string.
// Newlines become DOT \n escapes so labels stay multi-line.
func escapeDotString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func containsColumn(columns []string, column string) bool {
	for _, c := range columns {
		if c == column {
			return true
		}
	}
	return false
}
