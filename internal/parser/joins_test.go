package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryviz/core/internal/models"
)

func TestExtractJoinsFromText(t *testing.T) {
	t.Run("extracts a qualified join with its condition", func(t *testing.T) {
		joins := extractJoinsFromText("SELECT * FROM users LEFT JOIN orders ON users.id = orders.user_id WHERE users.active = 1")

		require.Len(t, joins, 1)
		assert.Equal(t, models.JoinLeft, joins[0].Type)
		assert.Equal(t, "orders", joins[0].Table)
		assert.Equal(t, "users.id = orders.user_id", joins[0].Condition)
	})

	t.Run("unqualified join defaults to INNER", func(t *testing.T) {
		joins := extractJoinsFromText("SELECT * FROM users JOIN orders ON users.id = orders.user_id")

		require.Len(t, joins, 1)
		assert.Equal(t, models.JoinInner, joins[0].Type)
	})

	t.Run("condition runs to end of string without a trailing clause", func(t *testing.T) {
		joins := extractJoinsFromText("SELECT * FROM users JOIN orders ON users.id = orders.user_id")

		require.Len(t, joins, 1)
		assert.Equal(t, "users.id = orders.user_id", joins[0].Condition)
	})

	t.Run("condition stops at the next clause keyword", func(t *testing.T) {
		joins := extractJoinsFromText("SELECT * FROM users JOIN orders ON users.id = orders.user_id GROUP BY users.name")

		require.Len(t, joins, 1)
		assert.Equal(t, "users.id = orders.user_id", joins[0].Condition)
	})

	t.Run("a second join folds into the first condition", func(t *testing.T) {
		joins := extractJoinsFromText("SELECT * FROM a JOIN b ON a.x = b.x JOIN c ON b.y = c.y")

		require.Len(t, joins, 1)
		assert.Equal(t, "b", joins[0].Table)
		assert.Equal(t, "a.x = b.x JOIN c ON b.y = c.y", joins[0].Condition)
	})

	t.Run("join without ON yields nothing", func(t *testing.T) {
		assert.Empty(t, extractJoinsFromText("SELECT * FROM a JOIN b"))
	})

	t.Run("join type matching is case insensitive", func(t *testing.T) {
		joins := extractJoinsFromText("select * from users left join orders on users.id = orders.user_id")

		require.Len(t, joins, 1)
		assert.Equal(t, models.JoinLeft, joins[0].Type)
	})
}

func TestExtractJoinsFromTokens(t *testing.T) {
	t.Run("extracts join with normalized condition", func(t *testing.T) {
		tokens := tokenize("SELECT * FROM users INNER JOIN orders ON users.id = orders.user_id WHERE users.active = 1")

		joins := extractJoinsFromTokens(tokens)

		require.Len(t, joins, 1)
		assert.Equal(t, models.JoinInner, joins[0].Type)
		assert.Equal(t, "orders", joins[0].Table)
		assert.Equal(t, "users.id = orders.user_id", joins[0].Condition)
	})

	t.Run("join without ON yields an empty condition", func(t *testing.T) {
		tokens := tokenize("SELECT * FROM a JOIN b")

		joins := extractJoinsFromTokens(tokens)

		require.Len(t, joins, 1)
		assert.Equal(t, "b", joins[0].Table)
		assert.Equal(t, "", joins[0].Condition)
	})

	t.Run("parenthesized condition is kept intact", func(t *testing.T) {
		tokens := tokenize("SELECT * FROM a JOIN b ON fn ( a.x , b.y ) = 1")

		joins := extractJoinsFromTokens(tokens)

		require.Len(t, joins, 1)
		assert.Equal(t, "fn ( a.x , b.y ) = 1", joins[0].Condition)
	})
}

func TestExtractJoins(t *testing.T) {
	t.Run("text strategy is authoritative when it matches", func(t *testing.T) {
		sql := "SELECT * FROM users INNER JOIN orders ON users.id = orders.user_id"

		joins := extractJoins(sql, tokenize(sql))
		fromText := extractJoinsFromText(sql)

		assert.Equal(t, fromText, joins)
	})

	t.Run("both strategies agree on a standard join", func(t *testing.T) {
		sql := "SELECT * FROM users INNER JOIN orders ON users.id = orders.user_id"

		assert.Equal(t, extractJoinsFromText(sql), extractJoinsFromTokens(tokenize(sql)))
	})

	t.Run("falls back to tokens for aliased joins", func(t *testing.T) {
		sql := "SELECT * FROM users u INNER JOIN orders o ON u.id = o.user_id"

		assert.Empty(t, extractJoinsFromText(sql))

		joins := extractJoins(sql, tokenize(sql))
		require.Len(t, joins, 1)
		assert.Equal(t, "orders", joins[0].Table)
		assert.Equal(t, "u.id = o.user_id", joins[0].Condition)
	})

	t.Run("falls back to tokens when ON is missing", func(t *testing.T) {
		sql := "SELECT * FROM a JOIN b"

		joins := extractJoins(sql, tokenize(sql))

		require.Len(t, joins, 1)
		assert.Equal(t, models.JoinInner, joins[0].Type)
	})
}
