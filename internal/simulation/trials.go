package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Summary aggregates many independent simulated matches.
type Summary struct {
	Trials         int     `json:"trials"`
	Balls          int     `json:"balls"`
	Seed           int64   `json:"seed"`
	Workers        int     `json:"workers"`
	FirstWins      int     `json:"first_innings_wins"`
	SecondWins     int     `json:"second_innings_wins"`
	Ties           int     `json:"ties"`
	Chases         int     `json:"early_chases"`
	SecondWinShare float64 `json:"second_innings_win_share"`
	MedianRuns1    float64 `json:"median_runs1"`
	MedianRuns2    float64 `json:"median_runs2"`
	P85Runs1       int     `json:"p85_runs1"`
	P85Runs2       int     `json:"p85_runs2"`
	MeanWickets1   float64 `json:"mean_wickets1"`
	MeanWickets2   float64 `json:"mean_wickets2"`
}

// RunTrials plays trials independent matches. Work is split across workers goroutines, each with
// its own generator derived from the engine seed, so a fixed seed and worker count give a fixed summary.
func (e *Engine) RunTrials(ctx context.Context, balls, trials, workers int) (Summary, error) {
	if trials <= 0 {
		return Summary{}, fmt.Errorf("%w: number of trials must be positive, got %d", cricket.ErrInvalidInput, trials)
	}
	if err := e.validate(balls); err != nil {
		return Summary{}, err
	}
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	results := make([]Result, trials)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		rng := rand.New(rand.NewSource(e.seed + int64(w)))
		g.Go(func() error {
			for i := w; i < trials; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = e.play(rng, balls)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("simulation trials interrupted: %w", err)
	}

	summary := summarize(results)
	summary.Balls = balls
	summary.Seed = e.seed
	summary.Workers = workers

	log.Info().
		Int("trials", summary.Trials).
		Int("first_wins", summary.FirstWins).
		Int("second_wins", summary.SecondWins).
		Int("ties", summary.Ties).
		Msg("Simulation trials complete")
	return summary, nil
}

func summarize(results []Result) Summary {
	s := Summary{Trials: len(results)}
	runs1 := make([]int, len(results))
	runs2 := make([]int, len(results))
	wkts1 := make([]int, len(results))
	wkts2 := make([]int, len(results))

	for i, r := range results {
		runs1[i], wkts1[i], runs2[i], wkts2[i] = r.Scores()
		switch r.Winner() {
		case cricket.FirstInnings:
			s.FirstWins++
		case cricket.SecondInnings:
			s.SecondWins++
		default:
			s.Ties++
		}
		if r.Chased {
			s.Chases++
		}
	}

	if s.Trials > 0 {
		s.SecondWinShare = float64(s.SecondWins) / float64(s.Trials)
	}
	s.MedianRuns1 = stats.MedianInt(runs1)
	s.MedianRuns2 = stats.MedianInt(runs2)
	s.P85Runs1 = stats.PercentileInt(runs1, 0.85)
	s.P85Runs2 = stats.PercentileInt(runs2, 0.85)
	s.MeanWickets1 = stats.MeanInt(wkts1)
	s.MeanWickets2 = stats.MeanInt(wkts2)
	return s
}
