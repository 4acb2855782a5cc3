package engine

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/stats"

	"gopkg.in/yaml.v3"
)

// FirstMatchID is the id given to the first generated match.
const FirstMatchID = 9000001

type GeneratorConfig struct {
	Scenario string // "balanced", "batting" or "bowling"
	Count    int
	Balls    int
	Seed     int64
	Start    time.Time
}

type yamlMatch struct {
	Info    yamlInfo                 `yaml:"info"`
	Innings []map[string]yamlInnings `yaml:"innings"`
}

type yamlInfo struct {
	MatchType string   `yaml:"match_type"`
	Dates     []string `yaml:"dates"`
	Teams     []string `yaml:"teams"`
}

type yamlInnings struct {
	Team       string                    `yaml:"team"`
	Deliveries []map[string]yamlDelivery `yaml:"deliveries"`
}

type yamlDelivery struct {
	Runs   yamlRuns    `yaml:"runs"`
	Wicket *yamlWicket `yaml:"wicket,omitempty"`
}

type yamlRuns struct {
	Batsman int `yaml:"batsman"`
	Extras  int `yaml:"extras"`
	Total   int `yaml:"total"`
}

type yamlWicket struct {
	Kind string `yaml:"kind"`
}

// Generate plays Count synthetic matches ball by ball from a scenario-skewed version of the built-in model.
func Generate(cfg GeneratorConfig) ([]cricket.Match, error) {
	if cfg.Count <= 0 || cfg.Balls <= 0 {
		return nil, fmt.Errorf("%w: count and balls must be positive", cricket.ErrInvalidInput)
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}

	model, err := scenarioModel(cfg.Scenario)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	matches := make([]cricket.Match, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		m := cricket.Match{
			ID:    fmt.Sprintf("%d", FirstMatchID+i),
			Dates: []string{cfg.Start.AddDate(0, 0, i).Format("2006-01-02")},
		}

		first := playInnings(rng, model[cricket.FirstInnings], cricket.FirstInnings, cfg.Balls, -1)
		second := playInnings(rng, model[cricket.SecondInnings], cricket.SecondInnings, cfg.Balls, runs(first))
		m.Innings = []cricket.Innings{first, second}
		matches = append(matches, m)
	}
	return matches, nil
}

// scenarioModel reweights the built-in model: "batting" favours boundaries, "bowling" favours wickets and dots.
func scenarioModel(scenario string) (stats.Model, error) {
	model := stats.DefaultModel()

	var boost map[cricket.Outcome]float64
	switch scenario {
	case "", "balanced":
		return model, nil
	case "batting":
		boost = map[cricket.Outcome]float64{cricket.Runs(4): 1.5, cricket.Runs(6): 1.8, cricket.Wicket: 0.7}
	case "bowling":
		boost = map[cricket.Outcome]float64{cricket.Runs(0): 1.3, cricket.Wicket: 1.6, cricket.Runs(6): 0.6}
	default:
		return nil, fmt.Errorf("%w: unknown scenario %q", cricket.ErrInvalidInput, scenario)
	}

	for label, dist := range model {
		sum := 0.0
		for i, o := range dist.Outcomes {
			if f, ok := boost[o]; ok {
				dist.Percentages[i] *= f
			}
			sum += dist.Percentages[i]
		}
		for i := range dist.Percentages {
			dist.Percentages[i] = dist.Percentages[i] * 100 / sum
		}
		model[label] = dist
	}
	return model, nil
}

// playInnings draws one outcome per ball until the balls run out, ten wickets fall or target is passed.
// A negative target means no chase.
func playInnings(rng *rand.Rand, dist stats.Distribution, label string, balls, target int) cricket.Innings {
	inn := cricket.Innings{Label: label}
	total, wickets := 0, 0
	for b := 0; b < balls && wickets < cricket.MaxWickets; b++ {
		o := draw(rng, dist)
		d := cricket.Delivery{Innings: label}
		if o.IsWicket() {
			d.Wicket = true
			wickets++
		} else {
			d.Runs = o.Runs()
			total += d.Runs
		}
		inn.Deliveries = append(inn.Deliveries, d)
		if target >= 0 && total > target {
			break
		}
	}
	return inn
}

func draw(rng *rand.Rand, dist stats.Distribution) cricket.Outcome {
	u := rng.Float64() * 100
	cumulative := 0.0
	for i, o := range dist.Outcomes {
		cumulative += dist.Percentages[i]
		if u <= cumulative {
			return o
		}
	}
	return dist.Outcomes[len(dist.Outcomes)-1]
}

func runs(inn cricket.Innings) int {
	total := 0
	for _, d := range inn.Deliveries {
		total += d.Runs
	}
	return total
}

// Save writes each match to <outDir>/<id>.yaml in the Cricsheet layout.
func Save(outDir string, matches []cricket.Match) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for _, m := range matches {
		data, err := yaml.Marshal(toYAML(m))
		if err != nil {
			return fmt.Errorf("failed to encode match %s: %w", m.ID, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, m.ID+".yaml"), data, 0644); err != nil {
			return fmt.Errorf("failed to write match %s: %w", m.ID, err)
		}
	}
	return nil
}

func toYAML(m cricket.Match) yamlMatch {
	out := yamlMatch{
		Info: yamlInfo{MatchType: "T20", Dates: m.Dates, Teams: []string{"Home XI", "Away XI"}},
	}
	for i, inn := range m.Innings {
		yi := yamlInnings{Team: out.Info.Teams[i%2]}
		for b, d := range inn.Deliveries {
			yd := yamlDelivery{Runs: yamlRuns{Batsman: d.Runs, Total: d.Runs}}
			if d.Wicket {
				yd.Wicket = &yamlWicket{Kind: "bowled"}
			}
			key := fmt.Sprintf("%d.%d", b/6, b%6+1)
			yi.Deliveries = append(yi.Deliveries, map[string]yamlDelivery{key: yd})
		}
		out.Innings = append(out.Innings, map[string]yamlInnings{inn.Label: yi})
	}
	return out
}
