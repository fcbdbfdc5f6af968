// Package template renders response bodies and rule arguments against a
// per-request context of request data, time helpers, and the ephemeral
// keyed store.
//
// Templates substitute {{expression}} patterns. Supported expressions:
//
//	{{request.params.id}}            path parameter
//	{{request.query.env}}            first query value
//	{{request.headers.X-Api-Key}}    first header value
//	{{request.json.user.name}}       dot path into the JSON body
//	{{request.jsonpath($.items[0])}} JSONPath into the JSON body
//	{{session.token}}                ephemeral store read
//	{{uuid}}                         random UUID v4
//	{{now}}                          current UTC time, RFC 3339
//	{{now + hours(2) - minutes(5)}}  duration arithmetic
//	{{in_tz(now, "Europe/Athens")}}  timezone conversion
//	{{naive(now)}}                   drop the offset
//	{{format(now + days(1), "2006-01-02")}}
package template

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/jp"
)

// Engine renders template strings. It is stateless and safe for
// concurrent use; all per-request data lives in the Context.
type Engine struct{}

// New creates a template engine.
func New() *Engine {
	return &Engine{}
}

// exprRegex matches {{expression}} patterns with optional whitespace.
var exprRegex = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// timeChainRegex matches "now" optionally followed by +/- duration calls,
// e.g. "now + hours(2) - minutes(30)".
var timeChainRegex = regexp.MustCompile(`^now(?:\(\))?((?:\s*[+-]\s*[a-z]+\(\s*-?\d+(?:\.\d+)?\s*\))*)\s*$`)

// durTermRegex extracts one signed duration call from a time chain.
var durTermRegex = regexp.MustCompile(`([+-])\s*([a-z]+)\(\s*(-?\d+(?:\.\d+)?)\s*\)`)

const naiveLayout = "2006-01-02T15:04:05"

// Render evaluates all {{expression}} patterns in the template against the
// given context. The first failing expression aborts rendering with a
// categorized *Error.
func (e *Engine) Render(tmpl string, ctx *Context) (string, error) {
	var b strings.Builder
	last := 0

	for _, m := range exprRegex.FindAllStringSubmatchIndex(tmpl, -1) {
		literal := tmpl[last:m[0]]
		if i := strings.Index(literal, "{{"); i >= 0 {
			return "", syntaxErr(literal[i:], "unclosed expression")
		}
		b.WriteString(literal)

		expr := strings.TrimSpace(tmpl[m[2]:m[3]])
		if expr == "" {
			return "", syntaxErr("{{}}", "empty expression")
		}
		val, err := e.evaluate(expr, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
		last = m[1]
	}

	rest := tmpl[last:]
	if i := strings.Index(rest, "{{"); i >= 0 {
		return "", syntaxErr(rest[i:], "unclosed expression")
	}
	b.WriteString(rest)
	return b.String(), nil
}

// evaluate resolves a single expression to its string value.
func (e *Engine) evaluate(expr string, ctx *Context) (string, error) {
	switch expr {
	case "uuid", "uuid()":
		return uuid.New().String(), nil
	case "now", "now()":
		return time.Now().UTC().Format(time.RFC3339), nil
	}

	// Time arithmetic chains: now + hours(2) - minutes(5)
	if timeChainRegex.MatchString(expr) {
		t, err := e.evalTime(expr)
		if err != nil {
			return "", err
		}
		return t.Format(time.RFC3339), nil
	}

	// Wrappers around time expressions.
	if inner, ok := callArgs(expr, "format"); ok {
		return e.evalFormat(expr, inner)
	}
	if inner, ok := callArgs(expr, "in_tz"); ok {
		t, err := e.evalInTz(expr, inner)
		if err != nil {
			return "", err
		}
		return t.Format(time.RFC3339), nil
	}
	if inner, ok := callArgs(expr, "naive"); ok {
		if len(inner) != 1 {
			return "", syntaxErr(expr, "naive takes one argument")
		}
		t, err := e.evalTime(inner[0])
		if err != nil {
			return "", err
		}
		return t.Format(naiveLayout), nil
	}

	if path, ok := strings.CutPrefix(expr, "request.jsonpath("); ok && strings.HasSuffix(path, ")") {
		return e.evalJSONPath(expr, unquote(strings.TrimSuffix(path, ")")), ctx)
	}

	if rest, ok := strings.CutPrefix(expr, "request."); ok {
		return e.evalRequest(expr, rest, ctx)
	}

	if key, ok := strings.CutPrefix(expr, "session."); ok {
		if ctx == nil || ctx.Store == nil {
			return "", nil
		}
		// Absent or expired keys render empty, not as errors.
		val, _ := ctx.Store.Lookup(ctx.Namespace, key)
		return val, nil
	}

	// A bare "now..." that failed the chain regex is a malformed time
	// expression rather than an unknown name.
	if strings.HasPrefix(expr, "now") {
		return "", syntaxErr(expr, "malformed time expression")
	}

	return "", undefinedErr(expr)
}

// evalTime resolves a time-valued sub-expression: a now chain, in_tz, or
// naive wrapper.
func (e *Engine) evalTime(expr string) (time.Time, error) {
	expr = strings.TrimSpace(expr)

	if inner, ok := callArgs(expr, "in_tz"); ok {
		return e.evalInTz(expr, inner)
	}
	if inner, ok := callArgs(expr, "naive"); ok {
		if len(inner) != 1 {
			return time.Time{}, syntaxErr(expr, "naive takes one argument")
		}
		t, err := e.evalTime(inner[0])
		if err != nil {
			return time.Time{}, err
		}
		// Re-bind the wall-clock fields without an offset.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}

	m := timeChainRegex.FindStringSubmatch(expr)
	if m == nil {
		if strings.HasPrefix(expr, "now") {
			return time.Time{}, syntaxErr(expr, "malformed time expression")
		}
		return time.Time{}, undefinedErr(expr)
	}

	t := time.Now().UTC()
	for _, term := range durTermRegex.FindAllStringSubmatch(m[1], -1) {
		sign := 1
		if term[1] == "-" {
			sign = -1
		}
		n, err := strconv.ParseFloat(term[3], 64)
		if err != nil {
			return time.Time{}, syntaxErr(expr, "bad duration amount "+term[3])
		}

		switch term[2] {
		case "seconds":
			t = t.Add(time.Duration(float64(sign) * n * float64(time.Second)))
		case "minutes":
			t = t.Add(time.Duration(float64(sign) * n * float64(time.Minute)))
		case "hours":
			t = t.Add(time.Duration(float64(sign) * n * float64(time.Hour)))
		case "days":
			t = t.AddDate(0, 0, sign*int(n))
		case "weeks":
			t = t.AddDate(0, 0, sign*7*int(n))
		case "months":
			t = t.AddDate(0, sign*int(n), 0)
		case "years":
			t = t.AddDate(sign*int(n), 0, 0)
		default:
			return time.Time{}, undefinedErr(term[2])
		}
	}
	return t, nil
}

// evalFormat handles format(<time expression>, "layout").
func (e *Engine) evalFormat(expr string, args []string) (string, error) {
	if len(args) != 2 {
		return "", syntaxErr(expr, "format takes a time expression and a layout")
	}
	t, err := e.evalTime(args[0])
	if err != nil {
		return "", err
	}
	return t.Format(unquote(args[1])), nil
}

// evalInTz handles in_tz(<time expression>, "zone").
func (e *Engine) evalInTz(expr string, args []string) (time.Time, error) {
	if len(args) != 2 {
		return time.Time{}, syntaxErr(expr, "in_tz takes a time expression and a zone name")
	}
	t, err := e.evalTime(args[0])
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(unquote(args[1]))
	if err != nil {
		return time.Time{}, renderErr(expr, "unknown timezone "+unquote(args[1]))
	}
	return t.In(loc), nil
}

// evalRequest resolves request.* lookups. Missing map keys render empty;
// unknown request fields are undefined references.
func (e *Engine) evalRequest(expr, rest string, ctx *Context) (string, error) {
	if ctx == nil {
		return "", nil
	}

	field, key, _ := strings.Cut(rest, ".")
	switch field {
	case "params":
		return ctx.Request.Params[key], nil
	case "query":
		if vals, ok := ctx.Request.Query[key]; ok && len(vals) > 0 {
			return vals[0], nil
		}
		return "", nil
	case "headers":
		canonical := textprotoCanonical(key)
		if vals, ok := ctx.Request.Headers[canonical]; ok && len(vals) > 0 {
			return vals[0], nil
		}
		return "", nil
	case "json":
		return jsonDotPath(ctx.Request.JSON, key), nil
	}
	return "", undefinedErr(expr)
}

// evalJSONPath resolves request.jsonpath($.a.b[0]) expressions using full
// JSONPath syntax against the parsed JSON body.
func (e *Engine) evalJSONPath(expr, path string, ctx *Context) (string, error) {
	parsed, err := jp.ParseString(path)
	if err != nil {
		return "", syntaxErr(expr, "invalid JSONPath "+path)
	}
	if ctx == nil {
		return "", nil
	}
	results := parsed.Get(ctx.Request.JSON)
	if len(results) == 0 {
		return "", nil
	}
	return formatValue(results[0]), nil
}

// jsonDotPath walks a dot path through the parsed JSON body.
// Array elements are addressable by numeric index.
func jsonDotPath(body any, path string) string {
	if path == "" {
		return formatValue(body)
	}

	current := body
	for _, part := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[part]
			if !ok {
				return ""
			}
			current = val
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(v) {
				return ""
			}
			current = v[idx]
		default:
			return ""
		}
	}
	return formatValue(current)
}
