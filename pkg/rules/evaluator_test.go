package rules

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/reflectd/pkg/template"
)

func scoringContext() *template.Context {
	query := url.Values{"tier": {"gold"}, "count": {"7"}}
	body := map[string]any{"user": map[string]any{"name": "alice"}}
	return template.NewContext(map[string]string{"id": "42"}, query, body, nil)
}

func TestScoreAllRulesHold(t *testing.T) {
	eng := template.New()
	res, err := Score(eng, scoringContext(), []ScoringRule{
		{Operator: OpEqual, Arguments: []string{"{{request.query.tier}}", "gold"}},
		{Operator: OpGreaterThan, Arguments: []string{"{{request.query.count}}", "5"}},
		{Operator: OpIsNotEmpty, Arguments: []string{"{{request.params.id}}"}},
	})
	require.NoError(t, err)
	assert.True(t, res.Qualified)
	assert.Equal(t, 3, res.Score)
}

func TestScoreOneRuleFailsDisqualifies(t *testing.T) {
	eng := template.New()
	res, err := Score(eng, scoringContext(), []ScoringRule{
		{Operator: OpEqual, Arguments: []string{"{{request.query.tier}}", "gold"}},
		{Operator: OpEqual, Arguments: []string{"{{request.params.id}}", "over 9000"}},
	})
	require.NoError(t, err)
	assert.False(t, res.Qualified)
	assert.Equal(t, 0, res.Score)
}

func TestScoreEmptyRuleSetQualifiesAtZero(t *testing.T) {
	eng := template.New()
	res, err := Score(eng, scoringContext(), nil)
	require.NoError(t, err)
	assert.True(t, res.Qualified)
	assert.Equal(t, 0, res.Score)
}

func TestScoreMissingValueWithIsEmpty(t *testing.T) {
	eng := template.New()
	// An absent query parameter renders empty, so IS_EMPTY holds.
	res, err := Score(eng, scoringContext(), []ScoringRule{
		{Operator: OpIsEmpty, Arguments: []string{"{{request.query.absent}}"}},
	})
	require.NoError(t, err)
	assert.True(t, res.Qualified)
}

func TestScoreEvaluationErrors(t *testing.T) {
	eng := template.New()
	ctx := scoringContext()

	_, err := Score(eng, ctx, []ScoringRule{
		{Operator: OpLessThan, Arguments: []string{"{{request.query.tier}}", "5"}},
	})
	assert.Error(t, err, "non-numeric ordering argument")

	_, err = Score(eng, ctx, []ScoringRule{
		{Operator: Operator("BOGUS"), Arguments: []string{"a", "b"}},
	})
	assert.Error(t, err, "unknown operator")

	_, err = Score(eng, ctx, []ScoringRule{
		{Operator: OpEqual, Arguments: []string{"a"}},
	})
	assert.Error(t, err, "arity mismatch")

	_, err = Score(eng, ctx, []ScoringRule{
		{Operator: OpEqual, Arguments: []string{"{{no.such.ref}}", "x"}},
	})
	assert.Error(t, err, "template error in argument")
}
