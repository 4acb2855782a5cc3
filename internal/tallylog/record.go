// Package tallylog persists per-match outcome tallies so a model rebuild only parses new matches.
package tallylog

import (
	"cmp"
	"strconv"

	"cricket-mcs/internal/tally"
)

// FileName is the JSONL file the store reads and writes inside its cache directory.
const FileName = "tallies.jsonl"

// Record is one tallied match.
type Record struct {
	MatchID string      `json:"match_id"`
	Dates   []string    `json:"dates,omitempty"`
	Tally   tally.Tally `json:"tally"`
}

// compareRecords orders records by numeric match id, falling back to string order for non-numeric ids.
func compareRecords(a, b Record) int {
	ai, aerr := strconv.Atoi(a.MatchID)
	bi, berr := strconv.Atoi(b.MatchID)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a.MatchID, b.MatchID)
}
