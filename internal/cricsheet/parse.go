// Package cricsheet supplies typed match records from the Cricsheet ball-by-ball YAML archive.
package cricsheet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cricket-mcs/internal/cricket"

	"gopkg.in/yaml.v3"
)

type rawMatch struct {
	Info    rawInfo                 `yaml:"info"`
	Innings []map[string]rawInnings `yaml:"innings"`
}

type rawInfo struct {
	Dates []string `yaml:"dates"`
}

type rawInnings struct {
	Team       string                   `yaml:"team"`
	Deliveries []map[string]rawDelivery `yaml:"deliveries"`
}

type rawDelivery struct {
	Runs    *rawRuns    `yaml:"runs"`
	Wicket  yaml.Node   `yaml:"wicket"`
	Wickets []yaml.Node `yaml:"wickets"`
}

type rawRuns struct {
	Total *int `yaml:"total"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// NormaliseDate converts a YAML date scalar to YYYY-MM-DD. Values in no known layout are returned trimmed.
func NormaliseDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// ParseFile reads and parses one match file; the match id is the file's numeric stem.
func ParseFile(path string) (cricket.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cricket.Match{}, fmt.Errorf("failed to read match file: %w", err)
	}
	id, err := MatchID(path)
	if err != nil {
		return cricket.Match{}, err
	}
	return Parse(id, data)
}

// Parse decodes a Cricsheet YAML document into a typed match. Every delivery must carry runs.total.
func Parse(id string, data []byte) (cricket.Match, error) {
	var raw rawMatch
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cricket.Match{}, fmt.Errorf("%w: match %s: %v", cricket.ErrInvalidInput, id, err)
	}

	m := cricket.Match{ID: id, Dates: make([]string, 0, len(raw.Info.Dates))}
	for _, d := range raw.Info.Dates {
		m.Dates = append(m.Dates, NormaliseDate(d))
	}

	for pos, entry := range raw.Innings {
		if len(entry) != 1 {
			return cricket.Match{}, fmt.Errorf("%w: match %s: innings %d has %d labels, expected 1",
				cricket.ErrInvalidInput, id, pos+1, len(entry))
		}
		for label, inn := range entry {
			parsed, err := parseInnings(id, label, inn)
			if err != nil {
				return cricket.Match{}, err
			}
			m.Innings = append(m.Innings, parsed)
		}
	}

	return m, nil
}

func parseInnings(id, label string, inn rawInnings) (cricket.Innings, error) {
	out := cricket.Innings{Label: label, Deliveries: make([]cricket.Delivery, 0, len(inn.Deliveries))}

	for i, entry := range inn.Deliveries {
		if len(entry) != 1 {
			return cricket.Innings{}, fmt.Errorf("%w: match %s %s: delivery %d has %d keys, expected 1",
				cricket.ErrInvalidInput, id, label, i, len(entry))
		}
		for ball, d := range entry {
			if d.Runs == nil || d.Runs.Total == nil {
				return cricket.Innings{}, fmt.Errorf("%w: match %s %s: delivery %s has no runs.total",
					cricket.ErrInvalidInput, id, label, ball)
			}
			out.Deliveries = append(out.Deliveries, cricket.Delivery{
				Innings: label,
				Runs:    *d.Runs.Total,
				Wicket:  d.Wicket.Kind != 0 || len(d.Wickets) > 0,
			})
		}
	}
	return out, nil
}
