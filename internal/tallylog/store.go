package tallylog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/tally"

	"github.com/rs/zerolog/log"
)

// Store provides thread-safe storage for per-match tallies, ordered by match id.
type Store struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]struct{}
}

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]struct{})}
}

// Append adds records whose match id is not yet stored and returns how many were added.
func (s *Store) Append(records ...Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, r := range records {
		if _, ok := s.index[r.MatchID]; ok {
			continue
		}
		s.index[r.MatchID] = struct{}{}
		s.records = append(s.records, r)
		added++
	}

	if added > 0 {
		slices.SortStableFunc(s.records, compareRecords)
	}
	return added
}

// Has reports whether a tally for the match is stored.
func (s *Store) Has(matchID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[matchID]
	return ok
}

// Count returns the number of stored matches.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the stored records in match id order.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Global folds every stored match tally into one global tally.
func (s *Store) Global() tally.Tally {
	s.mu.RLock()
	defer s.mu.RUnlock()

	global := tally.New()
	for _, r := range s.records {
		global = tally.Merge(global, r.Tally)
	}
	return global
}

// Ingest tallies every match the sequence yields and appends it. It stops at the first error;
// matches appended before the error stay in the store.
func (s *Store) Ingest(matches iter.Seq2[cricket.Match, error]) (int, error) {
	added := 0
	for m, err := range matches {
		if err != nil {
			return added, err
		}
		mt, err := tally.ComputeMatch(m)
		if err != nil {
			return added, err
		}
		added += s.Append(Record{MatchID: m.ID, Dates: m.Dates, Tally: mt})
		log.Debug().Str("match", m.ID).Strs("dates", m.Dates).Msg("Match tallied")
	}
	log.Info().Int("added", added).Int("total", s.Count()).Msg("Match tallies ingested")
	return added, nil
}

// Load reads records from the JSONL file in cacheDir. A missing file is not an error.
func (s *Store) Load(cacheDir string) error {
	path := filepath.Join(cacheDir, FileName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open tally log: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			log.Warn().Err(err).Str("path", path).Int("line", line).Msg("Skipping invalid JSON line in tally log")
			continue
		}
		if r.MatchID == "" {
			log.Warn().Str("path", path).Int("line", line).Msg("Skipping tally record without match id")
			continue
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading tally log: %w", err)
	}

	added := s.Append(records...)
	log.Info().Str("path", path).Int("count", added).Msg("Loaded match tallies from cache")
	return nil
}

// Save writes all records to the JSONL file in cacheDir, replacing it atomically.
func (s *Store) Save(cacheDir string) error {
	records := s.Records()
	if len(records) == 0 {
		return nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(cacheDir, FileName)
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp tally log: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)

	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode tally for match %s: %w", r.MatchID, err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename tally log: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(records)).Msg("Match tallies saved to cache")
	return nil
}
