// Package endpoint defines the configuration model: endpoints keyed by
// method and path, each owning an ordered list of candidate responses with
// their rules and actions.
package endpoint

import (
	"strings"

	"github.com/getmockd/reflectd/pkg/actions"
	"github.com/getmockd/reflectd/pkg/rules"
)

// Method is an HTTP method an endpoint can be registered under.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// Methods lists the supported HTTP methods.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}

// IsValid reports whether m is a supported method.
func (m Method) IsValid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// Endpoint is a registered mock target. Its (method, path) pair is unique
// within a store. The path is a routable template of fixed segments and
// {named} parameters, stored with a leading slash and matched
// case-insensitively on the fixed segments.
type Endpoint struct {
	// ID is a unique identifier, assigned on creation (prefixed ID)
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is a human-readable label, display only
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Method Method `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`

	// Responses are the candidate replies, in declared order
	Responses []*Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Response is one candidate reply for an endpoint, guarded by rules and
// followed by actions.
type Response struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	StatusCode  int    `json:"statusCode" yaml:"statusCode"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`

	// Content is a template string rendered per request
	Content string `json:"content" yaml:"content"`

	// IsActive toggles visibility to matching; nil means active
	IsActive *bool `json:"isActive,omitempty" yaml:"isActive,omitempty"`

	// Rules guard selection; all must hold for the response to qualify
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Actions run after the response is selected and rendered
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`

	// Tags are free-form labels for filtering in the admin API
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Rule is a templated condition over rendered arguments.
type Rule struct {
	Operator  rules.Operator `json:"operator" yaml:"operator"`
	Arguments []string       `json:"arguments" yaml:"arguments"`
}

// Action is a side effect attached to a response.
type Action struct {
	Kind      actions.Kind `json:"kind" yaml:"kind"`
	Arguments []string     `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Active reports whether the response participates in matching.
func (r *Response) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// Normalize canonicalizes an endpoint in place: the method is upper-cased,
// the path gains a leading slash and loses any trailing one, and responses
// get their defaults (status 200, JSON content type).
func (e *Endpoint) Normalize() {
	e.Method = Method(strings.ToUpper(string(e.Method)))

	e.Path = strings.TrimSpace(e.Path)
	if !strings.HasPrefix(e.Path, "/") {
		e.Path = "/" + e.Path
	}
	if len(e.Path) > 1 {
		e.Path = strings.TrimSuffix(e.Path, "/")
	}

	for _, r := range e.Responses {
		if r.StatusCode == 0 {
			r.StatusCode = 200
		}
		if r.ContentType == "" {
			r.ContentType = "application/json"
		}
	}
}

// ScoringRules converts the response's rules to the evaluator's form.
func (r *Response) ScoringRules() []rules.ScoringRule {
	out := make([]rules.ScoringRule, len(r.Rules))
	for i, rule := range r.Rules {
		out[i] = rules.ScoringRule{Operator: rule.Operator, Arguments: rule.Arguments}
	}
	return out
}

// ExecutableActions converts the response's actions to the executor's form.
func (r *Response) ExecutableActions() []actions.Action {
	out := make([]actions.Action, len(r.Actions))
	for i, a := range r.Actions {
		out[i] = actions.Action{Kind: a.Kind, Arguments: a.Arguments}
	}
	return out
}
