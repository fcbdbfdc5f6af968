package endpoint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/reflectd/pkg/actions"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// paramSegmentRegex matches a {name} path parameter segment.
var paramSegmentRegex = regexp.MustCompile(`^\{[A-Za-z_][A-Za-z0-9_]*\}$`)

// Validate checks the endpoint definition. Call after Normalize.
func (e *Endpoint) Validate() error {
	if !e.Method.IsValid() {
		return &ValidationError{Field: "method", Message: fmt.Sprintf("unsupported method %q", string(e.Method))}
	}
	if err := validatePath(e.Path); err != nil {
		return err
	}

	for i, r := range e.Responses {
		if err := r.validate(); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Field = fmt.Sprintf("responses[%d].%s", i, verr.Field)
			}
			return err
		}
	}
	return nil
}

func validatePath(path string) error {
	if path == "" || !strings.HasPrefix(path, "/") {
		return &ValidationError{Field: "path", Message: "path must start with /"}
	}
	if path == "/" {
		return nil
	}
	for _, seg := range strings.Split(path[1:], "/") {
		if seg == "" {
			return &ValidationError{Field: "path", Message: "path has an empty segment"}
		}
		if strings.ContainsAny(seg, "{}") && !paramSegmentRegex.MatchString(seg) {
			return &ValidationError{Field: "path", Message: fmt.Sprintf("malformed parameter segment %q", seg)}
		}
	}
	return nil
}

func (r *Response) validate() error {
	if r.StatusCode < 100 || r.StatusCode > 599 {
		return &ValidationError{Field: "statusCode", Message: fmt.Sprintf("status code %d out of range", r.StatusCode)}
	}

	for i, rule := range r.Rules {
		if !rule.Operator.IsValid() {
			return &ValidationError{
				Field:   fmt.Sprintf("rules[%d].operator", i),
				Message: fmt.Sprintf("unknown operator %q", string(rule.Operator)),
			}
		}
		if got, want := len(rule.Arguments), rule.Operator.Arity(); got != want {
			return &ValidationError{
				Field:   fmt.Sprintf("rules[%d].arguments", i),
				Message: fmt.Sprintf("%s takes %d arguments, got %d", rule.Operator, want, got),
			}
		}
	}

	for i, a := range r.Actions {
		if err := a.validate(); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Field = fmt.Sprintf("actions[%d].%s", i, verr.Field)
			}
			return err
		}
	}
	return nil
}

func (a *Action) validate() error {
	if !a.Kind.IsValid() {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown action kind %q", string(a.Kind))}
	}

	switch a.Kind {
	case actions.KindDelay:
		if len(a.Arguments) != 1 {
			return &ValidationError{Field: "arguments", Message: "DELAY takes one seconds argument"}
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(a.Arguments[0]), 64); err != nil {
			return &ValidationError{Field: "arguments", Message: fmt.Sprintf("DELAY argument %q is not numeric", a.Arguments[0])}
		}
	case actions.KindCallback:
		if !hasKeyToken(a.Arguments, "url") {
			return &ValidationError{Field: "arguments", Message: "CALLBACK needs a url=... argument"}
		}
	case actions.KindStore:
		if len(a.Arguments) != 2 {
			return &ValidationError{Field: "arguments", Message: "STORE takes a key and a value"}
		}
	}
	return nil
}

func hasKeyToken(args []string, key string) bool {
	for _, arg := range args {
		if k, _, found := strings.Cut(arg, "="); found && k == key {
			return true
		}
	}
	return false
}
