package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInsertInto(t *testing.T) {
	p := NewParser(Options{})

	t.Run("multi row insert", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO t VALUES (1,'a'),(2,'b');")
		require.NotNil(t, ins)
		assert.Equal(t, "t", ins.TableName)
		require.Len(t, ins.Rows, 2)
		assert.Equal(t, []any{int64(1), "a"}, ins.Rows[0])
		assert.Equal(t, []any{int64(2), "b"}, ins.Rows[1])
	})

	t.Run("column list is tolerated", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO `t` (`a`, `b`) VALUES (1, 2)")
		require.NotNil(t, ins)
		require.Len(t, ins.Rows, 1)
		assert.Equal(t, []any{int64(1), int64(2)}, ins.Rows[0])
	})

	t.Run("export tool prefix is stripped", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO `SERVMASK_PREFIX_posts` VALUES (1)")
		require.NotNil(t, ins)
		assert.Equal(t, "posts", ins.TableName)
	})

	t.Run("typed values", func(t *testing.T) {
		ins := p.ParseInsertInto(`INSERT INTO t VALUES (NULL, 5, 5.5, 'O\'Brien', CURRENT_TIMESTAMP)`)
		require.NotNil(t, ins)
		require.Len(t, ins.Rows, 1)
		assert.Equal(t, []any{nil, int64(5), 5.5, "O'Brien", "CURRENT_TIMESTAMP"}, ins.Rows[0])
	})

	t.Run("row boundary sequence inside a string does not split rows", func(t *testing.T) {
		ins := p.ParseInsertInto(`INSERT INTO t VALUES ('),(', 1),(2, 'x')`)
		require.NotNil(t, ins)
		require.Len(t, ins.Rows, 2)
		assert.Equal(t, []any{"),(", int64(1)}, ins.Rows[0])
		assert.Equal(t, []any{int64(2), "x"}, ins.Rows[1])
	})

	t.Run("nested parens inside a row", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO t VALUES ((1,2), 3)")
		require.NotNil(t, ins)
		require.Len(t, ins.Rows, 1)
		assert.Equal(t, []any{"(1,2)", int64(3)}, ins.Rows[0])
	})

	t.Run("empty row groups are dropped", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO t VALUES (),(7)")
		require.NotNil(t, ins)
		require.Len(t, ins.Rows, 1)
		assert.Equal(t, []any{int64(7)}, ins.Rows[0])
	})

	t.Run("values spanning joined lines", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO t VALUES (1, 'first line second line'), (2, 'c')")
		require.NotNil(t, ins)
		assert.Len(t, ins.Rows, 2)
	})

	t.Run("case insensitive keywords", func(t *testing.T) {
		ins := p.ParseInsertInto("insert into t values (1)")
		require.NotNil(t, ins)
		assert.Equal(t, "t", ins.TableName)
	})

	t.Run("missing VALUES yields nothing", func(t *testing.T) {
		assert.Nil(t, p.ParseInsertInto("INSERT INTO t SET a = 1"))
	})

	t.Run("no rows still returns the table name", func(t *testing.T) {
		ins := p.ParseInsertInto("INSERT INTO t VALUES ;")
		require.NotNil(t, ins)
		assert.Empty(t, ins.Rows)
	})
}
