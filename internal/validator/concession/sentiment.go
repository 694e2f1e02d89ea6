package concession

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"dataquality/internal/domain"
	"dataquality/internal/validator"
)

const (
	RuleKeySentimentRange = "range.sentiment_score"

	DefaultSentimentMin = -2.0
	DefaultSentimentMax = 2.0
)

// SentimentScoreValidator checks that the score lies in the closed interval [lo, hi].
// NaN is never in range.
func SentimentScoreValidator(lo, hi float64) *BuiltinValidator {
	return &BuiltinValidator{
		key:  RuleKeySentimentRange,
		name: "Range: Sentiment Score",
		fn: func(_ context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
			score := rec.SentimentScore()
			if math.IsNaN(score) || score < lo || score > hi {
				return validator.Fail(fmt.Sprintf(
					"Sentiment Score (%s) is outside the required range of %s to %s.",
					fmtScore(score), fmtScore(lo), fmtScore(hi),
				)), nil
			}
			return validator.Pass(), nil
		},
	}
}

func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
