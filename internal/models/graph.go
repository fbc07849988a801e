package models

// TableNode is a single table in the query graph, carrying the columns
// selected from it, the WHERE fragments attributed to it, and whether it
// participates in a GROUP BY.
type TableNode struct {
	Name           string   `json:"name"`
	Columns        []string `json:"columns"`
	Filters        []string `json:"filters"`
	HasAggregation bool     `json:"has_aggregation"`
}

// AddColumn appends a selected column unless the node already has it.
// First-seen order is preserved.
func (n *TableNode) AddColumn(column string) {
	for _, c := range n.Columns {
		if c == column {
			return
		}
	}
	n.Columns = append(n.Columns, column)
}

// AddFilter appends a WHERE condition fragment unless the node already has it.
func (n *TableNode) AddFilter(condition string) {
	for _, f := range n.Filters {
		if f == condition {
			return
		}
	}
	n.Filters = append(n.Filters, condition)
}

// SetAggregation marks whether this table appears in a GROUP BY clause.
func (n *TableNode) SetAggregation(hasAgg bool) {
	n.HasAggregation = hasAgg
}

// JoinEdge is a directed edge between two table nodes.
type JoinEdge struct {
	FromTable string `json:"from_table"`
	ToTable   string `json:"to_table"`
	JoinType  string `json:"join_type"`
	Condition string `json:"condition"`
}

// SQLGraph is the node/edge representation of a parsed query. It is built
// once per query submission and discarded after rendering.
type SQLGraph struct {
	Nodes map[string]*TableNode
	Edges []JoinEdge

	order []string
}

func NewSQLGraph() *SQLGraph {
	return &SQLGraph{Nodes: make(map[string]*TableNode)}
}

// AddTable inserts a node for the given table name. Inserting a name that
// already exists is a no-op returning the existing node.
func (g *SQLGraph) AddTable(name string) *TableNode {
	if node, ok := g.Nodes[name]; ok {
		return node
	}
	node := &TableNode{Name: name}
	g.Nodes[name] = node
	g.order = append(g.order, name)
	return node
}

// AddJoin appends an edge, creating both endpoint nodes if absent.
func (g *SQLGraph) AddJoin(fromTable, toTable, joinType, condition string) {
	g.AddTable(fromTable)
	g.AddTable(toTable)
	g.Edges = append(g.Edges, JoinEdge{
		FromTable: fromTable,
		ToTable:   toTable,
		JoinType:  joinType,
		Condition: condition,
	})
}

// NodeNames returns the table names in insertion order.
func (g *SQLGraph) NodeNames() []string {
	return g.order
}

// FirstNode returns the first inserted node, or nil for an empty graph.
func (g *SQLGraph) FirstNode() *TableNode {
	if len(g.order) == 0 {
		return nil
	}
	return g.Nodes[g.order[0]]
}
