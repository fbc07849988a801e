package parser

import (
	"regexp"
	"strings"

	"github.com/queryviz/core/internal/models"
)

// joinHeaderPattern matches "[INNER|LEFT|RIGHT|FULL] JOIN <table> ON " in the
// original query text, preserving the table's case.
var joinHeaderPattern = regexp.MustCompile(`(?i)\b(INNER|LEFT|RIGHT|FULL)?\s+JOIN\s+(\w+)\s+ON\s+`)

// clauseBoundaryPattern finds the clause keyword that terminates a join
// condition in raw text.
var clauseBoundaryPattern = regexp.MustCompile(`(?i)\s+(?:WHERE|GROUP|ORDER|HAVING|LIMIT)\b`)

// extractJoins extracts join clauses using two strategies: a scan over the
// original text, which is authoritative when it matches anything, and a
// token-level walk as fallback.
func extractJoins(sql string, tokens []token) []models.Join {
	if joins := extractJoinsFromText(sql); len(joins) > 0 {
		return joins
	}
	return extractJoinsFromTokens(tokens)
}

// extractJoinsFromText scans the raw SQL for join clauses. The condition is
// everything between ON and the next clause keyword (or end of string),
// including any further JOIN text in between, which therefore folds into the
// preceding join's condition.
func extractJoinsFromText(sql string) []models.Join {
	var joins []models.Join
	pos := 0

	for pos < len(sql) {
		loc := joinHeaderPattern.FindStringSubmatchIndex(sql[pos:])
		if loc == nil {
			break
		}

		joinType := models.JoinInner
		if loc[2] >= 0 {
			joinType = strings.ToUpper(sql[pos+loc[2] : pos+loc[3]])
		}
		table := sql[pos+loc[4] : pos+loc[5]]

		condStart := pos + loc[1]
		condEnd := len(sql)
		if b := clauseBoundaryPattern.FindStringIndex(sql[condStart:]); b != nil {
			condEnd = condStart + b[0]
		}

		if condition := strings.TrimSpace(sql[condStart:condEnd]); condition != "" {
			joins = append(joins, models.Join{Type: joinType, Table: table, Condition: condition})
		}
		pos = condEnd
	}

	return joins
}

// extractJoinsFromTokens walks the token stream for join clauses. The
// condition accumulates tokens after ON, tracking parenthesis depth so a
// clause keyword inside parentheses does not terminate it early. A join
// without an ON clause yields an empty condition.
func extractJoinsFromTokens(tokens []token) []models.Join {
	joins := []models.Join{}
	i := 0

	for i < len(tokens) {
		t := tokens[i]

		var joinType string
		switch {
		case t.isKeyword("INNER", "LEFT", "RIGHT", "FULL") && i+1 < len(tokens) && tokens[i+1].isKeyword("JOIN"):
			joinType = strings.ToUpper(t.value)
			i += 2
		case t.isKeyword("JOIN"):
			joinType = models.JoinInner
			i++
		default:
			i++
			continue
		}

		table := ""
		for i < len(tokens) {
			if tokens[i].kind == tokenName {
				table = tokens[i].value
				i++
				break
			}
			i++
		}
		if table == "" {
			continue
		}

		condition := ""
		for i < len(tokens) {
			if tokens[i].isKeyword("ON") {
				i++
				var parts []token
				depth := 0
				for i < len(tokens) {
					switch tokens[i].value {
					case "(":
						depth++
					case ")":
						depth--
					}
					if depth == 0 && tokens[i].isClauseKeyword() {
						break
					}
					parts = append(parts, tokens[i])
					i++
				}
				condition = dotSpacing.ReplaceAllString(joinTokenText(parts), ".")
				break
			}
			if tokens[i].isClauseKeyword() {
				break
			}
			i++
		}

		joins = append(joins, models.Join{Type: joinType, Table: table, Condition: condition})
	}

	return joins
}
