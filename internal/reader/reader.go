// Package reader assembles complete SQL statements from dump text. The
// parser only ever sees whole statements; this package owns the line-level
// rules: a statement ends at a line whose trimmed form ends with ";", lines
// join with a single space, and blank or "--" comment lines are skipped
// before accumulation.
package reader

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single dump line. Export tools emit multi-row INSERT
// statements on one line, so the default bufio limit is far too small.
const maxLineSize = 16 * 1024 * 1024

// StatementScanner reads an input stream incrementally and yields one
// assembled statement per Scan call, in source order.
type StatementScanner struct {
	sc   *bufio.Scanner
	stmt string
}

// NewStatementScanner creates a scanner over r.
func NewStatementScanner(r io.Reader) *StatementScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &StatementScanner{sc: sc}
}

// Scan advances to the next complete statement, returning false at end of
// input. Trailing text without a terminating ";" is yielded as a final
// statement.
func (s *StatementScanner) Scan() bool {
	var parts []string
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		parts = append(parts, line)
		if strings.HasSuffix(line, ";") {
			s.stmt = strings.Join(parts, " ")
			return true
		}
	}
	if len(parts) > 0 {
		s.stmt = strings.Join(parts, " ")
		return true
	}
	return false
}

// Statement returns the statement assembled by the last successful Scan.
func (s *StatementScanner) Statement() string {
	return s.stmt
}

// Err returns the first error encountered while reading the input.
func (s *StatementScanner) Err() error {
	return s.sc.Err()
}

// SplitStatements splits whole dump text into statements with the same
// assembly rules as StatementScanner. Convenient for inputs already held in
// memory.
func SplitStatements(content string) []string {
	var stmts []string
	sc := NewStatementScanner(strings.NewReader(content))
	for sc.Scan() {
		stmts = append(stmts, sc.Statement())
	}
	return stmts
}
