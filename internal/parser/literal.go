package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	intLiteralRe   = regexp.MustCompile(`^-?\d+$`)
	floatLiteralRe = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// NormalizeLiteral converts one raw value token into a typed value, in this
// exact precedence: NULL (case-insensitive) becomes nil; a token wrapped in
// matching single or double quotes becomes a string with the outer quotes
// stripped and \' and \" unescaped (no other escape sequences are
// interpreted); integer and decimal literals become int64 and float64; and
// anything else is returned verbatim as a string, which keeps bare words and
// malformed literals instead of rejecting them.
func NormalizeLiteral(token string) any {
	s := strings.TrimSpace(token)

	if strings.EqualFold(s, "NULL") {
		return nil
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			inner := s[1 : len(s)-1]
			inner = strings.ReplaceAll(inner, `\'`, `'`)
			inner = strings.ReplaceAll(inner, `\"`, `"`)
			return inner
		}
	}

	if intLiteralRe.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	if floatLiteralRe.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}
