// Package rules scores candidate responses against request data. Each
// response carries a list of rules; a response whose rules all hold
// qualifies with a score equal to its rule count, and the highest score
// wins with ties broken uniformly at random.
package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a comparison applied to rendered rule arguments.
type Operator string

const (
	OpEqual            Operator = "EQUAL"
	OpNotEqual         Operator = "NOT_EQUAL"
	OpLessThan         Operator = "LESS_THAN"
	OpLessThanEqual    Operator = "LESS_THAN_EQUAL"
	OpGreaterThan      Operator = "GREATER_THAN"
	OpGreaterThanEqual Operator = "GREATER_THAN_EQUAL"
	OpIsEmpty          Operator = "IS_EMPTY"
	OpIsNotEmpty       Operator = "IS_NOT_EMPTY"
	OpContains         Operator = "CONTAINS"
	OpNotContains      Operator = "NOT_CONTAINS"
)

// Operators lists every supported operator, for validation messages.
var Operators = []Operator{
	OpEqual, OpNotEqual,
	OpLessThan, OpLessThanEqual,
	OpGreaterThan, OpGreaterThanEqual,
	OpIsEmpty, OpIsNotEmpty,
	OpContains, OpNotContains,
}

// IsValid reports whether o is a known operator.
func (o Operator) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual,
		OpLessThan, OpLessThanEqual,
		OpGreaterThan, OpGreaterThanEqual,
		OpIsEmpty, OpIsNotEmpty,
		OpContains, OpNotContains:
		return true
	}
	return false
}

// Arity returns the number of arguments the operator takes.
func (o Operator) Arity() int {
	switch o {
	case OpIsEmpty, OpIsNotEmpty:
		return 1
	default:
		return 2
	}
}

// Apply evaluates the operator against already-rendered arguments.
// Ordering operators compare numerically; arguments that do not parse as
// numbers are evaluation errors, not mismatches.
func (o Operator) Apply(args []string) (bool, error) {
	if len(args) != o.Arity() {
		return false, fmt.Errorf("operator %s takes %d arguments, got %d", o, o.Arity(), len(args))
	}

	switch o {
	case OpEqual:
		return args[0] == args[1], nil
	case OpNotEqual:
		return args[0] != args[1], nil
	case OpIsEmpty:
		return args[0] == "", nil
	case OpIsNotEmpty:
		return args[0] != "", nil
	case OpContains:
		return strings.Contains(args[0], args[1]), nil
	case OpNotContains:
		return !strings.Contains(args[0], args[1]), nil
	case OpLessThan, OpLessThanEqual, OpGreaterThan, OpGreaterThanEqual:
		a, err := parseNumber(args[0])
		if err != nil {
			return false, err
		}
		b, err := parseNumber(args[1])
		if err != nil {
			return false, err
		}
		switch o {
		case OpLessThan:
			return a < b, nil
		case OpLessThanEqual:
			return a <= b, nil
		case OpGreaterThan:
			return a > b, nil
		default:
			return a >= b, nil
		}
	}
	return false, fmt.Errorf("unknown operator %q", string(o))
}

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("argument %q is not numeric", s)
	}
	return n, nil
}
