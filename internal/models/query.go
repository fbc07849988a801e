// Package models defines the core data structures for query visualization.
// It includes the parsed query representation and the graph model built from it.
package models

// Owner keys used to group selected columns and filters when a table
// cannot be attributed directly.
const (
	OwnerWildcard = "*"        // SELECT *, applies to every table
	OwnerUnknown  = "_unknown" // column with no table prefix
	OwnerGlobal   = "_global"  // WHERE fragment referencing no table
)

// Join types recognized in the source query. A join without an explicit
// qualifier defaults to INNER.
const (
	JoinInner = "INNER"
	JoinLeft  = "LEFT"
	JoinRight = "RIGHT"
	JoinFull  = "FULL"
)

type ParsedQuery struct {
	Tables          []string            `json:"tables"`
	Joins           []Join              `json:"joins"`
	SelectedColumns map[string][]string `json:"selected_columns"`
	Filters         map[string][]string `json:"filters"`
	GroupBy         []string            `json:"group_by,omitempty"`

	// ColumnOwners and FilterOwners record the order in which owner keys
	// first appeared in the query text. Go maps do not preserve insertion
	// order, and the graph builder must distribute columns and filters in
	// a reproducible order.
	ColumnOwners []string `json:"-"`
	FilterOwners []string `json:"-"`
}

type Join struct {
	Type      string `json:"type"`
	Table     string `json:"table"`
	Condition string `json:"condition"`
}

// AddColumn appends a column under the given owner key, tracking the owner's
// first appearance. Columns are kept in the order they appear in the query.
func (q *ParsedQuery) AddColumn(owner, column string) {
	if q.SelectedColumns == nil {
		q.SelectedColumns = make(map[string][]string)
	}
	if _, ok := q.SelectedColumns[owner]; !ok {
		q.ColumnOwners = append(q.ColumnOwners, owner)
	}
	q.SelectedColumns[owner] = append(q.SelectedColumns[owner], column)
}

// AddFilter appends a WHERE fragment under the given owner key, skipping
// fragments that owner already holds (exact string match).
func (q *ParsedQuery) AddFilter(owner, fragment string) {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}
	existing, ok := q.Filters[owner]
	if !ok {
		q.FilterOwners = append(q.FilterOwners, owner)
	}
	for _, f := range existing {
		if f == fragment {
			return
		}
	}
	q.Filters[owner] = append(existing, fragment)
}
