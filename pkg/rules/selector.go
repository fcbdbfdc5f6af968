package rules

import (
	"errors"
	"math/rand/v2"

	"github.com/getmockd/reflectd/pkg/template"
)

// ErrNoneQualified is returned by SelectBest when every candidate rule
// set is disqualified.
var ErrNoneQualified = errors.New("no candidate qualified")

// SelectBest scores every candidate rule set and returns the index of the
// winner. The candidate with the highest score wins; ties are broken
// uniformly at random so equally specific responses alternate across
// requests. An evaluation error in any candidate aborts selection.
func SelectBest(eng *template.Engine, ctx *template.Context, candidates [][]ScoringRule) (int, error) {
	best := -1
	var winners []int

	for i, ruleSet := range candidates {
		res, err := Score(eng, ctx, ruleSet)
		if err != nil {
			return -1, err
		}
		if !res.Qualified {
			continue
		}
		switch {
		case best < 0 || res.Score > best:
			best = res.Score
			winners = append(winners[:0], i)
		case res.Score == best:
			winners = append(winners, i)
		}
	}

	switch len(winners) {
	case 0:
		return -1, ErrNoneQualified
	case 1:
		return winners[0], nil
	default:
		return winners[rand.IntN(len(winners))], nil
	}
}
