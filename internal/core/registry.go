// Package core contains the single source of truth for converted dump data.
// It provides the structured representation of tables, columns and rows that
// the parser accumulates and the output serializers consume.
package core

import (
	"bytes"
	"encoding/json"
)

// ColumnDefinition is one column of a table schema. Type carries the verbatim
// remainder of the source declaration (including constraints like NOT NULL or
// AUTO_INCREMENT); it is not decomposed further.
type ColumnDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Record is one row of typed column-name/value pairs. Values are nil, int64,
// float64 or string.
type Record map[string]any

// TableInfo holds the schema and accumulated row data for one table.
type TableInfo struct {
	TableName string             `json:"tableName"`
	Columns   []ColumnDefinition `json:"columns"`
	Data      []Record           `json:"data"`
}

// NewTableInfo creates an empty table with the given schema.
func NewTableInfo(name string, columns []ColumnDefinition) *TableInfo {
	return &TableInfo{
		TableName: name,
		Columns:   columns,
		Data:      []Record{},
	}
}

// AppendRow zips values positionally against the declared columns and appends
// the resulting record. A row shorter than the schema assigns only the present
// positions; values beyond the column count are dropped.
func (t *TableInfo) AppendRow(values []any) {
	rec := make(Record, len(t.Columns))
	for i, v := range values {
		if i >= len(t.Columns) {
			break
		}
		rec[t.Columns[i].Name] = v
	}
	t.Data = append(t.Data, rec)
}

// Registry maps table names to their accumulated schema and row data.
// Iteration order is insertion order; keys are unique. It is mutated
// exclusively by the single-threaded dispatch sequence and needs no locking.
type Registry struct {
	order  []string
	tables map[string]*TableInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*TableInfo),
	}
}

// Put inserts a table, or replaces the existing entry of the same name.
// A replace resets columns and accumulated data but keeps the table's
// original position in iteration order.
func (r *Registry) Put(t *TableInfo) {
	if _, ok := r.tables[t.TableName]; !ok {
		r.order = append(r.order, t.TableName)
	}
	r.tables[t.TableName] = t
}

// Get returns the table with the given name, if present.
func (r *Registry) Get(name string) (*TableInfo, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Has reports whether a table with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the table names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Tables returns the registered tables in insertion order.
func (r *Registry) Tables() []*TableInfo {
	out := make([]*TableInfo, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// TotalRecords returns the number of accumulated rows across all tables.
func (r *Registry) TotalRecords() int {
	total := 0
	for _, t := range r.tables {
		total += len(t.Data)
	}
	return total
}

// Reset discards all registered tables.
func (r *Registry) Reset() {
	r.order = nil
	r.tables = make(map[string]*TableInfo)
}

// MarshalJSON encodes the registry as a JSON object keyed by table name,
// preserving insertion order instead of the alphabetical order a plain map
// would produce.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.tables[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
