package parser

import "regexp"

// The feature gate screens raw query text for constructs the structural
// parser cannot handle. Detection is pattern-based, not grammar-aware: the
// WHERE-subquery pattern in particular may both over- and under-reject
// contrived inputs (a parenthesized SELECT directly after `=` is let
// through, EXISTS (SELECT ...) is rejected).
var unsupportedFeatures = []struct {
	pattern *regexp.Regexp
	feature string
}{
	{regexp.MustCompile(`(?i)\bWITH\s+\w+\s+AS\s*\(`), "CTEs (WITH clauses) are not supported"},
	{regexp.MustCompile(`(?i)\bUNION\s+(ALL\s+)?SELECT\b`), "UNION / UNION ALL are not supported"},
	{regexp.MustCompile(`(?i)\bOVER\s*\(`), "window functions (OVER) are not supported"},
	{regexp.MustCompile(`(?i)FROM\s*\([^)]*SELECT`), "subqueries in FROM clause are not supported"},
	{regexp.MustCompile(`(?i)WHERE\s+[^=]*\([^)]*SELECT`), "subqueries in WHERE clause are not supported"},
}

// checkUnsupportedFeatures rejects queries using constructs outside the
// supported SELECT subset, each with a distinct human-readable reason.
func checkUnsupportedFeatures(sql string) error {
	for _, f := range unsupportedFeatures {
		if f.pattern.MatchString(sql) {
			return &UnsupportedError{Feature: f.feature}
		}
	}
	return nil
}
