package parser

import "strings"

// TokenizeValues splits the interior of one row's value list on top-level
// commas. Single- and double-quoted strings are opaque spans (a backslash
// escapes the next character, so \' and \" do not terminate the string), as
// are balanced (...) and {...} groups. Quote state suppresses depth tracking:
// parens inside a string do not nest. The final buffer is flushed only when
// non-empty.
func TokenizeValues(s string) []string {
	var tokens []string
	var buf strings.Builder
	inString := false
	var stringChar byte
	depth := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			buf.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				buf.WriteByte(s[i])
				continue
			}
			if c == stringChar {
				inString = false
			}
		case c == '\'' || c == '"':
			inString = true
			stringChar = c
			buf.WriteByte(c)
		case c == '(' || c == '{':
			depth++
			buf.WriteByte(c)
		case (c == ')' || c == '}') && depth > 0:
			depth--
			buf.WriteByte(c)
		case c == ',' && depth == 0:
			tokens = append(tokens, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}
	return tokens
}
