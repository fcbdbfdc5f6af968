package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		args []string
		want bool
	}{
		{"equal match", OpEqual, []string{"a", "a"}, true},
		{"equal mismatch", OpEqual, []string{"a", "b"}, false},
		{"equal is case sensitive", OpEqual, []string{"A", "a"}, false},
		{"not equal", OpNotEqual, []string{"a", "b"}, true},
		{"less than", OpLessThan, []string{"1", "2"}, true},
		{"less than equal boundary", OpLessThanEqual, []string{"2", "2"}, true},
		{"less than fails on equal", OpLessThan, []string{"2", "2"}, false},
		{"greater than", OpGreaterThan, []string{"3.5", "3"}, true},
		{"greater than equal", OpGreaterThanEqual, []string{"3", "3"}, true},
		{"numeric not lexicographic", OpLessThan, []string{"9", "10"}, true},
		{"negative numbers", OpGreaterThan, []string{"-1", "-2"}, true},
		{"is empty", OpIsEmpty, []string{""}, true},
		{"is empty on value", OpIsEmpty, []string{"x"}, false},
		{"is not empty", OpIsNotEmpty, []string{"x"}, true},
		{"contains", OpContains, []string{"hello world", "lo wo"}, true},
		{"contains miss", OpContains, []string{"hello", "xyz"}, false},
		{"not contains", OpNotContains, []string{"hello", "xyz"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatorApplyErrors(t *testing.T) {
	_, err := OpLessThan.Apply([]string{"abc", "1"})
	assert.Error(t, err)

	_, err = OpGreaterThan.Apply([]string{"1", ""})
	assert.Error(t, err)

	_, err = OpEqual.Apply([]string{"only one"})
	assert.Error(t, err)

	_, err = OpIsEmpty.Apply([]string{"a", "b"})
	assert.Error(t, err)
}

func TestOperatorArity(t *testing.T) {
	assert.Equal(t, 1, OpIsEmpty.Arity())
	assert.Equal(t, 1, OpIsNotEmpty.Arity())
	for _, op := range []Operator{OpEqual, OpNotEqual, OpLessThan, OpLessThanEqual, OpGreaterThan, OpGreaterThanEqual, OpContains, OpNotContains} {
		assert.Equal(t, 2, op.Arity(), string(op))
	}
}

func TestOperatorIsValid(t *testing.T) {
	for _, op := range Operators {
		assert.True(t, op.IsValid(), string(op))
	}
	assert.False(t, Operator("MATCHES").IsValid())
	assert.False(t, Operator("").IsValid())
}
