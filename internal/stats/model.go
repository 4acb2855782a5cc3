package stats

import (
	"fmt"
	"math"

	"cricket-mcs/internal/cricket"
)

// SumTolerance is how far an innings' percentages may drift from 100 and still form a valid model.
const SumTolerance = 1e-6

// Distribution holds one innings' outcomes and their likelihoods as parallel slices.
// Outcomes are ordered run-ascending with the wicket last.
type Distribution struct {
	Outcomes    []cricket.Outcome `json:"outcomes"`
	Percentages []float64         `json:"percentages"`
}

// Percentage returns the likelihood of o, or 0 if the distribution does not contain it.
func (d Distribution) Percentage(o cricket.Outcome) float64 {
	for i, candidate := range d.Outcomes {
		if candidate == o {
			return d.Percentages[i]
		}
	}
	return 0
}

// Sum returns the total of all percentages.
func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, p := range d.Percentages {
		sum += p
	}
	return sum
}

// Model maps an innings label to its outcome distribution. It is never modified after it is built.
type Model map[string]Distribution

// Validate checks that both innings are present and every distribution is a usable probability table.
func (m Model) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: probability model is empty", cricket.ErrInvalidInput)
	}

	for _, label := range cricket.InningsLabels {
		d, ok := m[label]
		if !ok {
			return fmt.Errorf("%w: probability model has no %q", cricket.ErrInvalidInput, label)
		}
		if err := d.validate(label); err != nil {
			return err
		}
	}
	return nil
}

func (d Distribution) validate(label string) error {
	if len(d.Outcomes) == 0 {
		return fmt.Errorf("%w: %s has no outcomes", cricket.ErrInvalidInput, label)
	}
	if len(d.Outcomes) != len(d.Percentages) {
		return fmt.Errorf("%w: %s has %d outcomes but %d percentages",
			cricket.ErrInvalidInput, label, len(d.Outcomes), len(d.Percentages))
	}

	seen := make(map[cricket.Outcome]bool, len(d.Outcomes))
	for i, o := range d.Outcomes {
		if seen[o] {
			return fmt.Errorf("%w: %s lists outcome %s twice", cricket.ErrInvalidInput, label, o)
		}
		seen[o] = true

		p := d.Percentages[i]
		if math.IsNaN(p) || p < 0 || p > 100 {
			return fmt.Errorf("%w: %s outcome %s has percentage %v outside [0,100]",
				cricket.ErrInvalidInput, label, o, p)
		}
	}

	if sum := d.Sum(); math.Abs(sum-100) > SumTolerance {
		return fmt.Errorf("%w: %s percentages sum to %v, not 100", cricket.ErrInvalidInput, label, sum)
	}
	return nil
}

// DefaultModel returns the outcome table precomputed from the Cricsheet T20 international archive.
// It lets the simulator run without downloading and tallying the dataset.
func DefaultModel() Model {
	return Model{
		cricket.FirstInnings: {
			Outcomes: []cricket.Outcome{0, 1, 2, 3, 4, 5, 6, 7, cricket.Wicket},
			Percentages: []float64{
				35.145020640954186, 38.679679756513494, 7.779320333592528,
				0.6020417357757628, 9.027121913451493, 0.21675504844033147,
				2.9793390222495137, 0.023694547250598202, 5.5470270017720855,
			},
		},
		cricket.SecondInnings: {
			Outcomes: []cricket.Outcome{0, 1, 2, 3, 4, 5, 6, 7, 8, cricket.Wicket},
			Percentages: []float64{
				37.52718545619692, 37.60215956761667, 6.85279038765335,
				0.5120947140315126, 8.95695937890898, 0.2067171322696014,
				2.770910044769136, 0.013702840207265246, 0.00019575486010378924,
				5.557284723486473,
			},
		},
	}
}
