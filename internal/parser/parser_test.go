package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqj/internal/core"
)

func dispatch(t *testing.T, p *Parser, st *State, reg *core.Registry, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if !p.ParseStatement(stmt, st, reg) {
			return
		}
	}
}

func TestParseStatement(t *testing.T) {
	t.Run("create then insert accumulates rows", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		dispatch(t, p, st, reg,
			"CREATE TABLE t (a INT, b VARCHAR(10));",
			"INSERT INTO t VALUES (1,'a'),(2,'b');",
		)

		ti, ok := reg.Get("t")
		require.True(t, ok)
		require.Len(t, ti.Data, 2)
		assert.Equal(t, core.Record{"a": int64(1), "b": "a"}, ti.Data[0])
		assert.Equal(t, core.Record{"a": int64(2), "b": "b"}, ti.Data[1])
		assert.Equal(t, "t", st.CurrentTable)
		assert.Equal(t, 2, st.ProcessedStatements)
	})

	t.Run("orphan insert is silently dropped", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		ok := p.ParseStatement("INSERT INTO ghost VALUES (1);", st, reg)
		assert.True(t, ok)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("recreate replaces schema and clears rows", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		dispatch(t, p, st, reg,
			"CREATE TABLE t (a INT);",
			"INSERT INTO t VALUES (1);",
			"CREATE TABLE t (x TEXT, y TEXT);",
		)

		ti, ok := reg.Get("t")
		require.True(t, ok)
		assert.Empty(t, ti.Data)
		require.Len(t, ti.Columns, 2)
		assert.Equal(t, "x", ti.Columns[0].Name)
	})

	t.Run("short rows assign only present positions", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		dispatch(t, p, st, reg,
			"CREATE TABLE t (a INT, b INT, c INT);",
			"INSERT INTO t VALUES (1,2);",
		)

		ti, _ := reg.Get("t")
		require.Len(t, ti.Data, 1)
		assert.Equal(t, core.Record{"a": int64(1), "b": int64(2)}, ti.Data[0])
	})

	t.Run("extra values beyond the schema are dropped", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		dispatch(t, p, st, reg,
			"CREATE TABLE t (a INT);",
			"INSERT INTO t VALUES (1,2,3);",
		)

		ti, _ := reg.Get("t")
		require.Len(t, ti.Data, 1)
		assert.Equal(t, core.Record{"a": int64(1)}, ti.Data[0])
	})

	t.Run("drop table is ignored", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		dispatch(t, p, st, reg,
			"CREATE TABLE t (a INT);",
			"INSERT INTO t VALUES (1);",
			"DROP TABLE t;",
		)

		ti, ok := reg.Get("t")
		require.True(t, ok)
		assert.Len(t, ti.Data, 1)
	})

	t.Run("transaction keywords toggle state case sensitively", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		p.ParseStatement("START TRANSACTION;", st, reg)
		assert.True(t, st.InsideTransaction)
		p.ParseStatement("COMMIT;", st, reg)
		assert.False(t, st.InsideTransaction)

		p.ParseStatement("start transaction;", st, reg)
		assert.False(t, st.InsideTransaction, "lowercase form is not recognized")
	})

	t.Run("unknown statements are no-ops", func(t *testing.T) {
		p := NewParser(Options{})
		reg := core.NewRegistry()
		st := &State{}

		assert.True(t, p.ParseStatement("SET NAMES utf8mb4;", st, reg))
		assert.True(t, p.ParseStatement("", st, reg))
		assert.Equal(t, 2, st.ProcessedStatements)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("statement limit is a hard ceiling on attempts", func(t *testing.T) {
		p := NewParser(Options{StatementLimit: 2})
		reg := core.NewRegistry()
		st := &State{}

		assert.True(t, p.ParseStatement("CREATE TABLE t (a INT);", st, reg))
		assert.True(t, p.ParseStatement("INSERT INTO t VALUES (1);", st, reg))
		assert.False(t, p.ParseStatement("INSERT INTO t VALUES (2);", st, reg))

		// Data from the statements under the limit is still there.
		ti, ok := reg.Get("t")
		require.True(t, ok)
		assert.Len(t, ti.Data, 1)
		assert.Equal(t, 3, st.ProcessedStatements)
	})

	t.Run("repeated runs produce identical registries", func(t *testing.T) {
		stmts := []string{
			"CREATE TABLE t (a INT, b VARCHAR(10));",
			"INSERT INTO t VALUES (1,'a'),(2,'b');",
			"CREATE TABLE u (x TEXT);",
			"INSERT INTO u VALUES ('hello');",
		}
		run := func() *core.Registry {
			p := NewParser(Options{})
			reg := core.NewRegistry()
			st := &State{}
			dispatch(t, p, st, reg, stmts...)
			return reg
		}
		first := run()
		second := run()
		assert.Equal(t, first.Names(), second.Names())
		assert.Equal(t, first.Tables(), second.Tables())
	})
}
