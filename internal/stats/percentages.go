package stats

import (
	"fmt"
	"slices"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/tally"
)

// CalcPercentages turns a global tally into a probability model.
// Each innings' denominator is its delivery count; an innings with no deliveries is rejected
// rather than producing NaN percentages.
func CalcPercentages(t tally.Tally) (Model, error) {
	model := make(Model, len(cricket.InningsLabels))

	for _, label := range cricket.InningsLabels {
		counts := t[label]
		total := counts.Total()
		if total == 0 {
			return nil, fmt.Errorf("%w: %s has no deliveries to derive percentages from",
				cricket.ErrInvalidInput, label)
		}

		outcomes := make([]cricket.Outcome, 0, len(counts))
		for o := range counts {
			outcomes = append(outcomes, o)
		}
		slices.SortFunc(outcomes, cricket.CompareOutcomes)

		percentages := make([]float64, len(outcomes))
		for i, o := range outcomes {
			percentages[i] = float64(counts[o]) / float64(total) * 100
		}

		model[label] = Distribution{Outcomes: outcomes, Percentages: percentages}
	}

	return model, nil
}
