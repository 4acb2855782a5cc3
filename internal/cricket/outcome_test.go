package cricket

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareOutcomes_WicketLast(t *testing.T) {
	outcomes := []Outcome{Wicket, 6, 0, 4, 1, Wicket, 2}
	slices.SortFunc(outcomes, CompareOutcomes)
	assert.Equal(t, []Outcome{0, 1, 2, 4, 6, Wicket, Wicket}, outcomes)
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		in      string
		want    Outcome
		wantErr bool
	}{
		{"W", Wicket, false},
		{"0", 0, false},
		{"6", 6, false},
		{"-1", 0, true},
		{"wide", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutcome(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcomeJSON(t *testing.T) {
	data, err := json.Marshal([]Outcome{0, 4, Wicket})
	require.NoError(t, err)
	assert.JSONEq(t, `[0, 4, "W"]`, string(data))

	var back []Outcome
	require.NoError(t, json.Unmarshal([]byte(`[1, "2", "W"]`), &back))
	assert.Equal(t, []Outcome{1, 2, Wicket}, back)

	keyed, err := json.Marshal(map[Outcome]int{Wicket: 2, 1: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"W": 2, "1": 5}`, string(keyed))
}

func TestDeliveryOutcome(t *testing.T) {
	assert.Equal(t, Wicket, Delivery{Runs: 1, Wicket: true}.Outcome())
	assert.Equal(t, Outcome(4), Delivery{Runs: 4}.Outcome())
}
