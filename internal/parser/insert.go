package parser

import (
	"regexp"
	"strings"
)

var insertIntoRe = regexp.MustCompile("(?is)^INSERT\\s+INTO\\s+[`\"']?([^`\"'\\s(]+)[`\"']?\\s*(?:\\([^)]*\\)\\s*)?VALUES\\s*(.*)$")

// InsertData is the outcome of parsing one INSERT INTO statement: the
// normalized table name and one value slice per row group, in source order.
type InsertData struct {
	TableName string
	Rows      [][]any
}

// ParseInsertInto extracts the table name and typed row values from an
// INSERT INTO statement. It returns nil when the statement does not match
// the INSERT shape; rows that tokenize to nothing are dropped.
func (p *Parser) ParseInsertInto(stmt string) *InsertData {
	m := insertIntoRe.FindStringSubmatch(stmt)
	if m == nil {
		p.diag("skipping unparsable INSERT INTO", stmt)
		return nil
	}

	rows := [][]any{}
	for _, group := range splitRowGroups(m[2]) {
		tokens := TokenizeValues(group)
		if len(tokens) == 0 {
			continue
		}
		values := make([]any, 0, len(tokens))
		for _, tok := range tokens {
			values = append(values, NormalizeLiteral(tok))
		}
		rows = append(rows, values)
	}

	return &InsertData{
		TableName: strings.TrimPrefix(m[1], exportPrefix),
		Rows:      rows,
	}
}

// splitRowGroups splits a VALUES clause into the interiors of its
// parenthesized row groups. It reuses the tokenizer's quote and depth rules
// in a single pass: a group starts when depth leaves 0 and ends when depth
// returns to 0, so a literal "),(" inside a quoted string cannot break a row
// apart. Text between groups (commas, whitespace, the trailing ";") is
// skipped.
func splitRowGroups(s string) []string {
	var groups []string
	var buf strings.Builder
	depth := 0
	inString := false
	var stringChar byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if depth == 0 {
			if c == '(' {
				depth = 1
			}
			continue
		}
		if inString {
			buf.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				buf.WriteByte(s[i])
				continue
			}
			if c == stringChar {
				inString = false
			}
			continue
		}
		switch c {
		case '\'', '"':
			inString = true
			stringChar = c
			buf.WriteByte(c)
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				groups = append(groups, buf.String())
				buf.Reset()
			} else {
				buf.WriteByte(c)
			}
		default:
			buf.WriteByte(c)
		}
	}
	return groups
}
