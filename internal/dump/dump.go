// Package dump reads table schemas and row data directly from a live MySQL
// database, producing the same registry the text parser produces so both
// input paths share the output serializers.
package dump

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sqj/internal/core"
)

// Options configures a Dumper.
type Options struct {
	// DSN is the MySQL connection string.
	DSN string
	// Tables restricts the dump to the named tables. Empty means every base
	// table in the connected schema.
	Tables []string
}

// Dumper connects to a database and converts its tables into a registry.
type Dumper struct {
	db   *sql.DB
	opts Options
	log  *zap.Logger
}

// NewDumper creates a dumper with the given options.
func NewDumper(opts Options, log *zap.Logger) *Dumper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dumper{opts: opts, log: log}
}

// Connect establishes the database connection and pings it to verify.
func (d *Dumper) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", d.opts.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return fmt.Errorf("failed to ping database: %w", pingErr)
	}
	d.db = db
	return nil
}

// Close closes the database connection. Safe to call without a prior Connect.
func (d *Dumper) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Dump reads every selected table and returns the accumulated registry.
func (d *Dumper) Dump(ctx context.Context) (*core.Registry, error) {
	tables := d.opts.Tables
	if len(tables) == 0 {
		var err error
		tables, err = d.listTables(ctx)
		if err != nil {
			return nil, err
		}
	}

	reg := core.NewRegistry()
	for _, name := range tables {
		t, err := d.dumpTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to dump table %q: %w", name, err)
		}
		d.log.Info("dumped table",
			zap.String("table", name),
			zap.Int("records", len(t.Data)))
		reg.Put(t)
	}
	return reg, nil
}

func (d *Dumper) listTables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (d *Dumper) dumpTable(ctx context.Context, name string) (*core.TableInfo, error) {
	columns, err := d.tableColumns(ctx, name)
	if err != nil {
		return nil, err
	}

	t := core.NewTableInfo(name, columns)
	rows, err := d.db.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		values := make([]any, len(cols))
		for i, v := range raw {
			values[i] = normalizeValue(v)
		}
		t.AppendRow(values)
	}
	return t, rows.Err()
}

func (d *Dumper) tableColumns(ctx context.Context, table string) ([]core.ColumnDefinition, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT column_name, column_type, is_nullable, extra
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	defer rows.Close()

	columns := []core.ColumnDefinition{}
	for rows.Next() {
		var name, colType, nullable, extra string
		if err := rows.Scan(&name, &colType, &nullable, &extra); err != nil {
			return nil, err
		}
		columns = append(columns, core.ColumnDefinition{
			Name: name,
			Type: columnDeclaration(colType, nullable, extra),
		})
	}
	return columns, rows.Err()
}

// columnDeclaration reassembles the verbatim-style type string the text
// parser would have produced for the same column.
func columnDeclaration(colType, nullable, extra string) string {
	decl := colType
	if nullable == "NO" {
		decl += " NOT NULL"
	}
	if extra != "" {
		decl += " " + strings.ToUpper(extra)
	}
	return decl
}

// normalizeValue maps driver scan results onto the parser's value domain:
// nil, int64, float64 or string.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	default:
		return v
	}
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
