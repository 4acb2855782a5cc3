// Package tally counts delivery outcomes per innings and folds per-match counts into a global tally.
package tally

import (
	"fmt"
	"iter"

	"cricket-mcs/internal/cricket"

	"github.com/rs/zerolog/log"
)

// Counts maps an outcome to the number of deliveries that produced it. Absent keys count as zero.
type Counts map[cricket.Outcome]int

// Total returns the number of deliveries represented by c.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Tally maps an innings label to its outcome counts.
type Tally map[string]Counts

// New returns an empty tally with both innings present.
func New() Tally {
	t := make(Tally, len(cricket.InningsLabels))
	for _, label := range cricket.InningsLabels {
		t[label] = make(Counts)
	}
	return t
}

// Clone returns a deep copy of t.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for label, counts := range t {
		c := make(Counts, len(counts))
		for o, n := range counts {
			c[o] = n
		}
		out[label] = c
	}
	return out
}

// Deliveries returns the total deliveries tallied for an innings.
func (t Tally) Deliveries(label string) int {
	return t[label].Total()
}

// ComputeMatch tallies the outcomes of every delivery in the first two innings of m.
// Innings the match does not have are skipped.
func ComputeMatch(m cricket.Match) (Tally, error) {
	t := New()
	for idx, label := range cricket.InningsLabels {
		inn, ok := m.InningsAt(idx)
		if !ok {
			continue
		}
		if inn.Label != label {
			return nil, fmt.Errorf("%w: match %s: innings %d is labelled %q, expected %q",
				cricket.ErrInvalidInput, m.ID, idx+1, inn.Label, label)
		}

		counts := t[label]
		for i, d := range inn.Deliveries {
			if d.Runs < 0 {
				return nil, fmt.Errorf("%w: match %s %s: delivery %d has negative runs %d",
					cricket.ErrInvalidInput, m.ID, label, i, d.Runs)
			}
			counts[d.Outcome()]++
		}
	}
	return t, nil
}

// Merge adds the match tally into a copy of global and returns the copy. Neither argument is modified.
// Only the two fixed innings are merged; a missing innings in either tally is treated as empty.
func Merge(global, match Tally) Tally {
	out := global.Clone()
	for _, label := range cricket.InningsLabels {
		if out[label] == nil {
			out[label] = make(Counts)
		}
		for o, n := range match[label] {
			out[label][o] += n
		}
	}
	return out
}

// Fold reduces a match sequence into a global tally. It stops at the first supplier or tally error
// and returns the tally accumulated so far with the number of matches folded.
func Fold(matches iter.Seq2[cricket.Match, error]) (Tally, int, error) {
	global := New()
	folded := 0
	for m, err := range matches {
		if err != nil {
			return global, folded, err
		}

		mt, err := ComputeMatch(m)
		if err != nil {
			return global, folded, err
		}
		global = Merge(global, mt)
		folded++

		log.Debug().Str("match", m.ID).Str("date", m.Date()).Msg("Match tallied")
	}

	log.Info().
		Int("matches", folded).
		Int("first_innings_balls", global.Deliveries(cricket.FirstInnings)).
		Int("second_innings_balls", global.Deliveries(cricket.SecondInnings)).
		Msg("Global tally built")
	return global, folded, nil
}
