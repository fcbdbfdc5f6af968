package rules

import (
	"fmt"

	"github.com/getmockd/reflectd/pkg/template"
)

// ScoringRule is one condition attached to a response. Arguments are
// template strings rendered against the request before comparison.
type ScoringRule struct {
	Operator  Operator
	Arguments []string
}

// Result is the outcome of scoring one rule set. A disqualified result
// means at least one rule failed; a qualified result scores the number of
// rules that held.
type Result struct {
	Qualified bool
	Score     int
}

// Score evaluates a rule set against the request context. Rules short
// circuit: the first failing rule disqualifies the set. A set with no
// rules always qualifies with score zero. Errors here are evaluation
// failures (bad operator, arity mismatch, non-numeric ordering argument,
// template error in an argument), distinct from a rule merely not holding.
func Score(eng *template.Engine, ctx *template.Context, ruleSet []ScoringRule) (Result, error) {
	for _, r := range ruleSet {
		if !r.Operator.IsValid() {
			return Result{}, fmt.Errorf("unknown operator %q", string(r.Operator))
		}
		if len(r.Arguments) != r.Operator.Arity() {
			return Result{}, fmt.Errorf("operator %s takes %d arguments, got %d", r.Operator, r.Operator.Arity(), len(r.Arguments))
		}

		rendered := make([]string, len(r.Arguments))
		for i, arg := range r.Arguments {
			val, err := eng.Render(arg, ctx)
			if err != nil {
				return Result{}, fmt.Errorf("rule argument %q: %w", arg, err)
			}
			rendered[i] = val
		}

		ok, err := r.Operator.Apply(rendered)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{Qualified: false}, nil
		}
	}
	return Result{Qualified: true, Score: len(ruleSet)}, nil
}
