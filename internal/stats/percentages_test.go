package stats

import (
	"errors"
	"math"
	"testing"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/tally"
)

func TestCalcPercentages_RoundTrip(t *testing.T) {
	counts := tally.Counts{0: 10, 1: 5, cricket.Wicket: 2}
	tl := tally.Tally{
		cricket.FirstInnings:  counts,
		cricket.SecondInnings: counts,
	}

	model, err := CalcPercentages(tl)
	if err != nil {
		t.Fatalf("CalcPercentages failed: %v", err)
	}

	d := model[cricket.FirstInnings]
	wantOutcomes := []cricket.Outcome{0, 1, cricket.Wicket}
	if len(d.Outcomes) != len(wantOutcomes) {
		t.Fatalf("Expected %d outcomes, got %v", len(wantOutcomes), d.Outcomes)
	}
	for i, o := range wantOutcomes {
		if d.Outcomes[i] != o {
			t.Errorf("Outcome %d: expected %s, got %s", i, o, d.Outcomes[i])
		}
	}

	wantPct := []float64{58.8235294117647, 29.4117647058823, 11.7647058823529}
	for i, p := range wantPct {
		if math.Abs(d.Percentages[i]-p) > 1e-9 {
			t.Errorf("Percentage %d: expected %.10f, got %.10f", i, p, d.Percentages[i])
		}
	}
}

func TestCalcPercentages_SumsToHundred(t *testing.T) {
	tl := tally.Tally{
		cricket.FirstInnings:  {0: 3517, 1: 3871, 2: 778, 3: 61, 4: 903, 5: 22, 6: 298, 7: 3, cricket.Wicket: 555},
		cricket.SecondInnings: {0: 1, 1: 1, 2: 1, cricket.Wicket: 7},
	}

	model, err := CalcPercentages(tl)
	if err != nil {
		t.Fatalf("CalcPercentages failed: %v", err)
	}

	for _, label := range cricket.InningsLabels {
		if sum := model[label].Sum(); math.Abs(sum-100) > 1e-9 {
			t.Errorf("%s percentages sum to %.12f", label, sum)
		}
	}
	if err := model.Validate(); err != nil {
		t.Errorf("derived model failed validation: %v", err)
	}
}

func TestCalcPercentages_WicketSortsLast(t *testing.T) {
	tl := tally.Tally{
		cricket.FirstInnings:  {cricket.Wicket: 50, 6: 1, 0: 1, 4: 1},
		cricket.SecondInnings: {cricket.Wicket: 1, 12: 1},
	}

	model, err := CalcPercentages(tl)
	if err != nil {
		t.Fatalf("CalcPercentages failed: %v", err)
	}

	for _, label := range cricket.InningsLabels {
		outcomes := model[label].Outcomes
		last := outcomes[len(outcomes)-1]
		if !last.IsWicket() {
			t.Errorf("%s: expected wicket last, got %v", label, outcomes)
		}
		for i := 1; i < len(outcomes)-1; i++ {
			if outcomes[i-1] >= outcomes[i] {
				t.Errorf("%s: run outcomes not ascending: %v", label, outcomes)
			}
		}
	}
}

func TestCalcPercentages_ZeroDeliveries(t *testing.T) {
	tests := []struct {
		name  string
		tally tally.Tally
	}{
		{"EmptyTally", tally.New()},
		{"EmptySecondInnings", tally.Tally{
			cricket.FirstInnings:  {1: 4},
			cricket.SecondInnings: {},
		}},
		{"MissingSecondInnings", tally.Tally{
			cricket.FirstInnings: {1: 4},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := CalcPercentages(tt.tally)
			if !errors.Is(err, cricket.ErrInvalidInput) {
				t.Fatalf("Expected ErrInvalidInput, got %v", err)
			}
			if model != nil {
				t.Errorf("Expected no model, got %v", model)
			}
		})
	}
}
