package parser

import (
	"strings"

	"github.com/queryviz/core/internal/models"
)

// BuildGraph resolves a parsed query into a graph of table nodes and join
// edges. It is total: malformed pieces degrade by omission, so unmatched
// owners are dropped rather than reported as errors.
func BuildGraph(parsed *models.ParsedQuery) *models.SQLGraph {
	graph := models.NewSQLGraph()

	for _, table := range parsed.Tables {
		graph.AddTable(table)
	}

	addJoins(parsed, graph)

	// Case-insensitive lookup from lowercase table name to the node's
	// original-case name, built once per invocation.
	nodeLookup := make(map[string]string, len(graph.NodeNames()))
	for _, name := range graph.NodeNames() {
		nodeLookup[strings.ToLower(name)] = name
	}

	for _, owner := range parsed.ColumnOwners {
		columns := parsed.SelectedColumns[owner]
		switch owner {
		case models.OwnerWildcard:
			for _, name := range graph.NodeNames() {
				node := graph.Nodes[name]
				node.Columns = append(node.Columns, "*")
			}
		case models.OwnerUnknown:
			if first := graph.FirstNode(); first != nil {
				for _, col := range columns {
					first.AddColumn(col)
				}
			}
		default:
			if name, ok := nodeLookup[strings.ToLower(owner)]; ok {
				for _, col := range columns {
					graph.Nodes[name].AddColumn(col)
				}
			}
		}
	}

	for _, owner := range parsed.FilterOwners {
		fragments := parsed.Filters[owner]
		if owner == models.OwnerGlobal {
			if first := graph.FirstNode(); first != nil {
				for _, fragment := range fragments {
					first.AddFilter(fragment)
				}
			}
			continue
		}
		if name, ok := nodeLookup[strings.ToLower(owner)]; ok {
			for _, fragment := range fragments {
				graph.Nodes[name].AddFilter(fragment)
			}
		}
	}

	for _, item := range parsed.GroupBy {
		if table, _, ok := strings.Cut(item, "."); ok {
			if name, matched := nodeLookup[strings.ToLower(strings.TrimSpace(table))]; matched {
				graph.Nodes[name].SetAggregation(true)
			}
			continue
		}
		// Bare column: mark the first table and stop processing further
		// group-by items. Only the first bare item triggers this fallback.
		if first := graph.FirstNode(); first != nil {
			first.SetAggregation(true)
		}
		break
	}

	return graph
}

// addJoins adds an edge per join record, resolving each join's source table
// from its condition where possible and falling back to the most recently
// added table otherwise (sequential joins).
func addJoins(parsed *models.ParsedQuery, graph *models.SQLGraph) {
	addedSet := make(map[string]bool, len(parsed.Tables))
	addedList := make([]string, 0, len(parsed.Tables))
	for _, table := range parsed.Tables {
		addedSet[table] = true
		addedList = append(addedList, table)
	}

	for _, join := range parsed.Joins {
		toTable := strings.TrimSpace(join.Table)
		if toTable == "" {
			continue
		}

		fromTable := ""
		for _, ref := range tableRefPattern.FindAllStringSubmatch(join.Condition, -1) {
			if table := ref[1]; addedSet[table] && table != toTable {
				fromTable = table
				break
			}
		}
		if fromTable == "" && len(addedList) > 0 {
			fromTable = addedList[len(addedList)-1]
		}
		if fromTable == "" {
			continue
		}

		graph.AddJoin(fromTable, toTable, join.Type, join.Condition)
		if !addedSet[toTable] {
			addedSet[toTable] = true
			addedList = append(addedList, toTable)
		}
	}
}
