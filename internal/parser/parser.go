// Package parser turns raw SQL SELECT text into a normalized intermediate
// representation and resolves it into a table/join graph. Parsing is
// best-effort: each clause is scanned independently and malformed segments
// produce partial results instead of aborting the whole parse.
package parser

import (
	"regexp"
	"strings"

	"github.com/queryviz/core/internal/models"
)

// tableRefPattern matches a table.column reference and captures the table.
var tableRefPattern = regexp.MustCompile(`(\w+)\.\w+`)

// dotSpacing collapses whitespace around dots so reassembled token text
// reads "users.active" instead of "users . active".
var dotSpacing = regexp.MustCompile(`\s*\.\s*`)

// ParseSQL parses a SQL SELECT query into its structural description:
// tables, joins, selected columns, filters, and grouping. It fails with
// ErrEmptyQuery for blank input, an UnsupportedError for constructs outside
// the supported subset, and a ParseError when the text yields no
// interpretable clauses at all.
func ParseSQL(sql string) (*models.ParsedQuery, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, ErrEmptyQuery
	}

	if err := checkUnsupportedFeatures(sql); err != nil {
		return nil, err
	}

	tokens := tokenize(sql)
	if len(tokens) == 0 {
		return nil, &ParseError{Reason: "query produced no tokens"}
	}

	q := &models.ParsedQuery{
		Tables:          []string{},
		Joins:           []models.Join{},
		SelectedColumns: make(map[string][]string),
		Filters:         make(map[string][]string),
	}

	q.Tables = extractTables(tokens)
	q.Joins = extractJoins(sql, tokens)
	extractSelectedColumns(tokens, q)
	extractFilters(tokens, q)
	q.GroupBy = extractGroupBy(tokens)

	// Joined tables are part of the table list, in join order.
	for _, join := range q.Joins {
		if !containsString(q.Tables, join.Table) {
			q.Tables = append(q.Tables, join.Table)
		}
	}

	if len(q.Tables) == 0 && len(q.Joins) == 0 && len(q.SelectedColumns) == 0 &&
		len(q.Filters) == 0 && q.GroupBy == nil {
		return nil, &ParseError{Reason: "no interpretable SQL clauses found"}
	}

	return q, nil
}

// extractTables finds the base table of each FROM clause. Aliases are not
// tracked: the first name after FROM is the table, anything after it is
// someone else's problem (the join scan picks up join-introduced tables).
func extractTables(tokens []token) []string {
	tables := []string{}

	for i := 0; i < len(tokens); i++ {
		if !tokens[i].isKeyword("FROM") {
			continue
		}
		for j := i + 1; j < len(tokens); j++ {
			t := tokens[j]
			if t.isKeyword("WHERE", "GROUP", "ORDER", "HAVING", "LIMIT", "INNER", "LEFT", "RIGHT", "FULL") {
				break
			}
			if t.kind == tokenName {
				if name := strings.TrimSpace(t.value); name != "" && !containsString(tables, name) {
					tables = append(tables, name)
				}
				break
			}
		}
	}

	return tables
}

// extractSelectedColumns scans the tokens between SELECT and FROM and groups
// column names by owning table. Function calls such as COUNT(...) are
// skipped entirely, including an optional trailing AS alias.
func extractSelectedColumns(tokens []token, q *models.ParsedQuery) {
	i := 0
	for i < len(tokens) && !tokens[i].isKeyword("SELECT") {
		i++
	}
	i++

	for i < len(tokens) {
		t := tokens[i]

		if t.isKeyword("FROM") {
			break
		}
		if t.value == "," {
			i++
			continue
		}
		if t.kind == tokenWildcard {
			if _, ok := q.SelectedColumns[models.OwnerWildcard]; !ok {
				q.AddColumn(models.OwnerWildcard, "*")
			}
			i++
			continue
		}
		if t.kind == tokenName {
			if i+1 < len(tokens) && tokens[i+1].value == "(" {
				i = skipFunctionCall(tokens, i+1)
				continue
			}
			if i+1 < len(tokens) && tokens[i+1].value == "." {
				// table.column; anything but a plain name after the dot
				// contributes nothing.
				if i+2 < len(tokens) && tokens[i+2].kind == tokenName {
					q.AddColumn(t.value, tokens[i+2].value)
				}
				i += 3
				continue
			}
			q.AddColumn(models.OwnerUnknown, t.value)
		}
		i++
	}
}

// skipFunctionCall advances past a parenthesized expression starting at the
// opening paren, plus an optional AS alias, and returns the next position.
func skipFunctionCall(tokens []token, j int) int {
	depth := 0
	for ; j < len(tokens); j++ {
		if tokens[j].value == "(" {
			depth++
		} else if tokens[j].value == ")" {
			depth--
			if depth == 0 {
				j++
				break
			}
		}
	}
	if j < len(tokens) && tokens[j].isKeyword("AS") {
		j++
		if j < len(tokens) && tokens[j].kind == tokenName {
			j++
		}
	}
	return j
}

// extractFilters collects the WHERE clause, normalizes whitespace around
// dots, splits it on top-level AND/OR, and attributes each fragment to every
// table it references. Fragments referencing no table go to the global owner.
func extractFilters(tokens []token, q *models.ParsedQuery) {
	i := 0
	for i < len(tokens) && !tokens[i].isKeyword("WHERE") {
		i++
	}
	if i == len(tokens) {
		return
	}

	var conditionTokens []token
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].isKeyword("GROUP", "ORDER", "HAVING", "LIMIT") {
			break
		}
		conditionTokens = append(conditionTokens, tokens[j])
	}
	if len(conditionTokens) == 0 {
		return
	}

	clause := dotSpacing.ReplaceAllString(joinTokenText(conditionTokens), ".")

	for _, fragment := range splitBoolOps(clause) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		refs := tableRefPattern.FindAllStringSubmatch(fragment, -1)
		if len(refs) == 0 {
			q.AddFilter(models.OwnerGlobal, fragment)
			continue
		}
		seen := make(map[string]bool)
		for _, ref := range refs {
			table := ref[1]
			if seen[table] {
				continue
			}
			seen[table] = true
			q.AddFilter(table, fragment)
		}
	}
}

// splitBoolOps splits a condition string on AND/OR at parenthesis depth
// zero. The input has single-space token separation, so the operators
// always appear as " AND " / " OR ".
func splitBoolOps(clause string) []string {
	var fragments []string
	upper := strings.ToUpper(clause)
	depth := 0
	start := 0

	for i := 0; i < len(clause); {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			if strings.HasPrefix(upper[i:], " AND ") {
				fragments = append(fragments, clause[start:i])
				i += len(" AND ")
				start = i
				continue
			}
			if strings.HasPrefix(upper[i:], " OR ") {
				fragments = append(fragments, clause[start:i])
				i += len(" OR ")
				start = i
				continue
			}
		}
		i++
	}

	return append(fragments, clause[start:])
}

// extractGroupBy collects GROUP BY items until a terminating clause keyword.
// Items are either "table.column" (kept qualified) or a bare column name.
// Returns nil when the query has no GROUP BY items.
func extractGroupBy(tokens []token) []string {
	i := 0
	found := false
	for i < len(tokens) {
		t := tokens[i]
		if t.kind == tokenKeyword && strings.HasPrefix(strings.ToUpper(t.value), "GROUP") {
			i++
			if i < len(tokens) && tokens[i].isKeyword("BY") {
				i++
			}
			found = true
			break
		}
		i++
	}
	if !found {
		return nil
	}

	var cols []string
	for i < len(tokens) {
		t := tokens[i]

		if t.isKeyword("ORDER", "HAVING", "LIMIT") {
			break
		}
		if t.value == "," {
			i++
			continue
		}
		if t.kind == tokenName {
			if i+1 < len(tokens) && tokens[i+1].value == "." {
				if i+2 < len(tokens) && tokens[i+2].kind == tokenName {
					cols = append(cols, t.value+"."+tokens[i+2].value)
				}
				i += 3
				continue
			}
			cols = append(cols, t.value)
		}
		i++
	}

	if len(cols) == 0 {
		return nil
	}
	return cols
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
