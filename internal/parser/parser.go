// Package parser converts raw SQL dump statements into typed table schemas
// and row records. It deliberately avoids a full SQL grammar: real-world
// dumps produced by export tools are messy, occasionally truncated and full
// of vendor prefixes, so the parser works with boundary scanning and regular
// expressions and silently ignores whatever it cannot match.
package parser

import (
	"strings"

	"go.uber.org/zap"

	"sqj/internal/core"
)

// State tracks dispatch progress across statements. InsideTransaction and
// CurrentTable are recorded for observability only; they do not gate or
// alter parsing behavior.
type State struct {
	ProcessedStatements int
	InsideTransaction   bool
	CurrentTable        string
}

// Options configures a Parser.
type Options struct {
	// SkipUnparsable suppresses diagnostics for statements that fail to parse.
	// The statements are dropped either way.
	SkipUnparsable bool
	// StatementLimit caps the number of statements attempted. Zero means no
	// limit. The ceiling applies to statements attempted, not applied.
	StatementLimit int
	// Logger receives diagnostics for dropped statements. Defaults to a nop
	// logger, keeping the parser silent in library use.
	Logger *zap.Logger
}

// Parser dispatches dump statements to the schema and insert parsers.
// Its parse methods are pure computations over in-memory strings; all
// accumulated state lives in the State and Registry passed by the caller.
type Parser struct {
	opts Options
	log  *zap.Logger
}

// NewParser creates a parser with the given options.
func NewParser(opts Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{opts: opts, log: log}
}

// ParseStatement classifies one fully-assembled statement and applies at most
// one side effect to the registry. It returns false once the configured
// statement limit has been exceeded; the over-limit statement itself is not
// processed.
func (p *Parser) ParseStatement(stmt string, st *State, reg *core.Registry) bool {
	st.ProcessedStatements++
	if p.opts.StatementLimit > 0 && st.ProcessedStatements > p.opts.StatementLimit {
		return false
	}

	stmt = strings.TrimSpace(stmt)
	switch {
	case stmt == "":
	case strings.HasPrefix(stmt, "START TRANSACTION"):
		st.InsideTransaction = true
	case strings.HasPrefix(stmt, "COMMIT"):
		st.InsideTransaction = false
	case hasFoldPrefix(stmt, "DROP TABLE"):
		// DROP does not discard already-converted data.
	case hasFoldPrefix(stmt, "CREATE TABLE"):
		if t := p.ParseCreateTable(stmt); t != nil {
			reg.Put(t)
			st.CurrentTable = t.TableName
		}
	case hasFoldPrefix(stmt, "INSERT INTO"):
		ins := p.ParseInsertInto(stmt)
		if ins == nil {
			break
		}
		t, ok := reg.Get(ins.TableName)
		if !ok {
			// Inserts into unregistered tables are dropped on purpose.
			break
		}
		for _, row := range ins.Rows {
			t.AppendRow(row)
		}
	}
	return true
}

func (p *Parser) diag(msg, stmt string) {
	if p.opts.SkipUnparsable {
		return
	}
	p.log.Warn(msg, zap.String("statement", truncateStmt(stmt, 120)))
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func truncateStmt(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
