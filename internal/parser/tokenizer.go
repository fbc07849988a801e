package parser

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenKeyword tokenKind = iota
	tokenName
	tokenNumber
	tokenString
	tokenWildcard
	tokenPunct
)

// token is one element of the flat token stream the clause scans walk over.
// Values keep their original case; keyword recognition is case-insensitive.
type token struct {
	kind  tokenKind
	value string
}

var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "GROUP": true, "BY": true,
	"ORDER": true, "HAVING": true, "LIMIT": true, "OFFSET": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"OUTER": true, "CROSS": true, "ON": true, "AS": true,
	"AND": true, "OR": true, "NOT": true, "IN": true, "IS": true,
	"NULL": true, "LIKE": true, "BETWEEN": true, "DISTINCT": true,
	"UNION": true, "ALL": true, "WITH": true, "OVER": true, "EXISTS": true,
	"ASC": true, "DESC": true,
}

// Multi-character comparison operators are lexed as single tokens so that
// reassembled condition strings read naturally.
var twoCharOps = map[string]bool{
	"<=": true, ">=": true, "<>": true, "!=": true, "==": true,
}

// tokenize splits query text into a flat token stream. Whitespace is
// dropped; everything else survives with its original spelling.
func tokenize(sql string) []token {
	var tokens []token
	runes := []rune(sql)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '\'' || r == '"':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			if j < len(runes) {
				j++ // include closing quote
			}
			tokens = append(tokens, token{kind: tokenString, value: string(runes[i:j])})
			i = j

		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			if j < len(runes) && runes[j] == '.' && j+1 < len(runes) && unicode.IsDigit(runes[j+1]) {
				j++
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, value: string(runes[i:j])})
			i = j

		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			kind := tokenName
			if keywords[strings.ToUpper(word)] {
				kind = tokenKeyword
			}
			tokens = append(tokens, token{kind: kind, value: word})
			i = j

		case r == '*':
			tokens = append(tokens, token{kind: tokenWildcard, value: "*"})
			i++

		default:
			if i+1 < len(runes) && twoCharOps[string(runes[i:i+2])] {
				tokens = append(tokens, token{kind: tokenPunct, value: string(runes[i : i+2])})
				i += 2
				break
			}
			tokens = append(tokens, token{kind: tokenPunct, value: string(r)})
			i++
		}
	}

	return tokens
}

// isKeyword reports whether the token is a keyword matching any of the given
// upper-case names.
func (t token) isKeyword(names ...string) bool {
	if t.kind != tokenKeyword {
		return false
	}
	upper := strings.ToUpper(t.value)
	for _, name := range names {
		if upper == name {
			return true
		}
	}
	return false
}

// isClauseKeyword reports whether the token terminates a clause scan
// (WHERE, GROUP, ORDER, HAVING, LIMIT).
func (t token) isClauseKeyword() bool {
	return t.isKeyword("WHERE", "GROUP", "ORDER", "HAVING", "LIMIT")
}

// joinTokenText reassembles token values into a single condition string.
func joinTokenText(tokens []token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.value
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
