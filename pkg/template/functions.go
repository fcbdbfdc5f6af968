package template

import (
	"encoding/json"
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
)

// formatValue converts a looked-up JSON value to its template string form.
// Empty collections render as the empty string so emptiness rules can test
// them the same way they test absent values.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		if len(v) == 0 {
			return ""
		}
		return marshalValue(v)
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		return marshalValue(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func marshalValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// unquote removes surrounding single or double quotes if present.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// callArgs checks whether expr is a call of the named function and, if so,
// returns its comma-separated arguments.
func callArgs(expr, name string) ([]string, bool) {
	inner, ok := strings.CutPrefix(expr, name+"(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return nil, false
	}
	return splitArgs(strings.TrimSuffix(inner, ")")), true
}

// splitArgs splits comma-separated arguments, respecting quoted strings
// and nested parentheses so time expressions can be passed as arguments.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	depth := 0
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			current.WriteByte(ch)
			if ch == quoteChar {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case ch == '(':
			depth++
			current.WriteByte(ch)
		case ch == ')':
			depth--
			current.WriteByte(ch)
		case ch == ',' && depth == 0:
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

func textprotoCanonical(key string) string {
	return textproto.CanonicalMIMEHeaderKey(key)
}
