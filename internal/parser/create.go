package parser

import (
	"regexp"
	"strings"

	"sqj/internal/core"
)

// exportPrefix is a historical artifact of the All-in-One WP Migration export
// format; table names carrying it are normalized by stripping it.
const exportPrefix = "SERVMASK_PREFIX_"

var (
	createTableRe = regexp.MustCompile("(?is)^CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[`\"']?([^`\"'\\s(]+)")
	columnDefRe   = regexp.MustCompile("(?s)^`?([^`\\s]+)`?\\s+(.+)$")
)

// ParseCreateTable extracts the table name and ordered column definitions
// from a CREATE TABLE statement. It returns nil when the table name cannot
// be found or the statement has no parenthesized column body; the dropped
// statement is logged unless diagnostics are suppressed.
func (p *Parser) ParseCreateTable(stmt string) *core.TableInfo {
	m := createTableRe.FindStringSubmatch(stmt)
	open := strings.Index(stmt, "(")
	closing := strings.LastIndex(stmt, ")")
	if m == nil || open < 0 || closing < open {
		p.diag("skipping unparsable CREATE TABLE", stmt)
		return nil
	}

	name := strings.TrimPrefix(m[1], exportPrefix)
	body := stmt[open+1 : closing]

	columns := []core.ColumnDefinition{}
	for _, seg := range splitColumnSegments(body) {
		seg = strings.TrimSpace(seg)
		if skipColumnSegment(seg) {
			continue
		}
		cm := columnDefRe.FindStringSubmatch(seg)
		if cm == nil {
			continue
		}
		columns = append(columns, core.ColumnDefinition{
			Name: cm[1],
			Type: strings.TrimSuffix(strings.TrimSpace(cm[2]), ","),
		})
	}

	return core.NewTableInfo(name, columns)
}

// splitColumnSegments splits the column body on commas at paren depth 0 only,
// so types like DECIMAL(10,2) or ENUM('a','b') stay in one segment.
func splitColumnSegments(body string) []string {
	var segs []string
	var buf strings.Builder
	depth := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			segs = append(segs, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteByte(c)
	}
	segs = append(segs, buf.String())
	return segs
}

// skipColumnSegment reports whether a column-body segment is a comment or a
// constraint/option clause rather than a column definition.
func skipColumnSegment(seg string) bool {
	if seg == "" || strings.HasPrefix(seg, "--") {
		return true
	}
	for _, prefix := range []string{"PRIMARY KEY", "KEY ", "UNIQUE KEY", "FOREIGN KEY"} {
		if hasFoldPrefix(seg, prefix) {
			return true
		}
	}
	return strings.Contains(strings.ToUpper(seg), "ENGINE=")
}
