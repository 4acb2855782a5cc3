package tallylog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/tally"
)

func record(id string, first tally.Counts) Record {
	t := tally.New()
	for o, n := range first {
		t[cricket.FirstInnings][o] = n
	}
	return Record{MatchID: id, Dates: []string{"2020-01-01"}, Tally: t}
}

func TestStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1 := NewStore()
	store1.Append(
		record("1002", tally.Counts{cricket.Runs(1): 3}),
		record("999", tally.Counts{cricket.Runs(4): 1, cricket.Wicket: 2}),
	)
	if err := store1.Save(tmpDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, FileName)); err != nil {
		t.Fatalf("Tally log does not exist: %v", err)
	}

	store2 := NewStore()
	if err := store2.Load(tmpDir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := store2.Records()
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].MatchID != "999" || got[1].MatchID != "1002" {
		t.Errorf("Expected numeric id order [999 1002], got [%s %s]", got[0].MatchID, got[1].MatchID)
	}
	if n := got[0].Tally[cricket.FirstInnings][cricket.Wicket]; n != 2 {
		t.Errorf("Expected 2 wickets after reload, got %d", n)
	}
	if n := got[0].Tally[cricket.FirstInnings][cricket.Runs(4)]; n != 1 {
		t.Errorf("Expected 1 four after reload, got %d", n)
	}
}

func TestStore_AppendDedupes(t *testing.T) {
	s := NewStore()
	if added := s.Append(record("1", tally.Counts{cricket.Runs(0): 1})); added != 1 {
		t.Fatalf("Expected 1 added, got %d", added)
	}
	if added := s.Append(record("1", tally.Counts{cricket.Runs(6): 9})); added != 0 {
		t.Errorf("Expected duplicate to be ignored, got %d added", added)
	}
	if !s.Has("1") || s.Has("2") {
		t.Errorf("Has reported wrong membership")
	}
	if s.Count() != 1 {
		t.Errorf("Expected count 1, got %d", s.Count())
	}
	if n := s.Global()[cricket.FirstInnings][cricket.Runs(6)]; n != 0 {
		t.Errorf("Duplicate tally leaked into global: %d sixes", n)
	}
}

func TestStore_Global(t *testing.T) {
	s := NewStore()
	s.Append(
		record("1", tally.Counts{cricket.Runs(0): 10, cricket.Runs(1): 5}),
		record("2", tally.Counts{cricket.Runs(1): 5, cricket.Wicket: 2}),
	)

	g := s.Global()
	first := g[cricket.FirstInnings]
	if first[cricket.Runs(0)] != 10 || first[cricket.Runs(1)] != 10 || first[cricket.Wicket] != 2 {
		t.Errorf("Unexpected global tally: %v", first)
	}
	if g.Deliveries(cricket.SecondInnings) != 0 {
		t.Errorf("Expected empty second innings, got %d", g.Deliveries(cricket.SecondInnings))
	}
}

func TestStore_LoadSkipsBadLines(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"match_id":"5","tally":{"1st innings":{"0":3,"W":1},"2nd innings":{}}}
not json
{"tally":{}}
{"match_id":"6","tally":{"1st innings":{"2":1},"2nd innings":{"1":4}}}
`
	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.Load(tmpDir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Count() != 2 {
		t.Fatalf("Expected 2 valid records, got %d", s.Count())
	}
	g := s.Global()
	if g[cricket.FirstInnings][cricket.Wicket] != 1 || g[cricket.SecondInnings][cricket.Runs(1)] != 4 {
		t.Errorf("Unexpected global tally after load: %v", g)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore()
	if err := s.Load(t.TempDir()); err != nil {
		t.Fatalf("Missing file should not be an error: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Expected empty store")
	}
}

func TestStore_Ingest(t *testing.T) {
	matches := []cricket.Match{
		{ID: "1", Innings: []cricket.Innings{{Label: cricket.FirstInnings, Deliveries: []cricket.Delivery{
			{Innings: cricket.FirstInnings, Runs: 4},
			{Innings: cricket.FirstInnings, Runs: 1, Wicket: true},
		}}}},
		{ID: "2", Innings: []cricket.Innings{{Label: "2nd innings"}}},
	}
	seq := func(yield func(cricket.Match, error) bool) {
		for _, m := range matches {
			if !yield(m, nil) {
				return
			}
		}
	}

	s := NewStore()
	added, err := s.Ingest(seq)
	if !errors.Is(err, cricket.ErrInvalidInput) {
		t.Fatalf("Expected invalid input for mislabelled innings, got %v", err)
	}
	if added != 1 || !s.Has("1") || s.Has("2") {
		t.Errorf("Expected only match 1 ingested, added=%d", added)
	}
	first := s.Global()[cricket.FirstInnings]
	if first[cricket.Runs(4)] != 1 || first[cricket.Wicket] != 1 {
		t.Errorf("Unexpected tally: %v", first)
	}
}
