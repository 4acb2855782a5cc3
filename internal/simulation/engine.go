package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/stats"

	"github.com/rs/zerolog/log"
)

// DefaultBalls is the length of a T20 innings.
const DefaultBalls = 120

// Tie is reported as the winner when both innings finish level.
const Tie = "tie"

// Engine plays simulated matches from a probability model.
type Engine struct {
	model        stats.Model
	rng          *rand.Rand
	seed         int64
	policy       WicketPolicy
	stopAtAllOut bool
}

// Result holds the final score of one simulated match.
type Result struct {
	Runs1          int  `json:"runs1"`
	Wickets1       int  `json:"wickets1"`
	Runs2          int  `json:"runs2"`
	Wickets2       int  `json:"wickets2"`
	Balls1         int  `json:"balls1"`
	Balls2         int  `json:"balls2"`
	Chased         bool `json:"chased"`
	RefusedWickets int  `json:"refused_wickets,omitempty"`
}

// Scores returns (runs1, wickets1, runs2, wickets2).
func (r Result) Scores() (int, int, int, int) {
	return r.Runs1, r.Wickets1, r.Runs2, r.Wickets2
}

// Winner names the innings with more runs, or Tie.
func (r Result) Winner() string {
	switch {
	case r.Runs1 > r.Runs2:
		return cricket.FirstInnings
	case r.Runs2 > r.Runs1:
		return cricket.SecondInnings
	default:
		return Tie
	}
}

func (r Result) String() string {
	return fmt.Sprintf("%d/%d vs %d/%d", r.Runs1, r.Wickets1, r.Runs2, r.Wickets2)
}

// NewEngine creates an engine seeded from the clock using the faithful wicket policy.
func NewEngine(model stats.Model) *Engine {
	seed := time.Now().UnixNano()
	return &Engine{
		model:  model,
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		policy: WicketOnWalk,
	}
}

// SetSeed makes subsequent runs reproducible.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the seed the engine's generators derive from.
func (e *Engine) Seed() int64 {
	return e.seed
}

// SetWicketPolicy selects how the wicket outcome takes part in a ball's draw.
func (e *Engine) SetWicketPolicy(p WicketPolicy) {
	e.policy = p
}

// SetStopAtAllOut ends an innings once ten wickets have fallen instead of bowling out the full allocation.
func (e *Engine) SetStopAtAllOut(stop bool) {
	e.stopAtAllOut = stop
}

// WicketPolicy returns the configured wicket policy.
func (e *Engine) WicketPolicy() WicketPolicy {
	return e.policy
}

// Simulate plays one match of up to balls deliveries per innings.
// The model and arguments are validated before any random number is drawn.
func (e *Engine) Simulate(balls int) (Result, error) {
	if err := e.validate(balls); err != nil {
		return Result{}, err
	}
	return e.play(e.rng, balls), nil
}

// Simulate plays one match against model with a clock-seeded engine.
func Simulate(model stats.Model, balls int) (Result, error) {
	return NewEngine(model).Simulate(balls)
}

func (e *Engine) validate(balls int) error {
	if balls <= 0 {
		return fmt.Errorf("%w: number of balls must be positive, got %d", cricket.ErrInvalidInput, balls)
	}
	if err := e.policy.Validate(); err != nil {
		return err
	}
	return e.model.Validate()
}

// play runs the two innings in order. The second innings stops as soon as it passes the first.
func (e *Engine) play(rng *rand.Rand, balls int) Result {
	var sides [2]inningsState
	var res Result

	for i, label := range cricket.InningsLabels {
		st := &sides[i]
		st.label = label
		dist := e.model[label]

		for ball := 0; ball < balls; ball++ {
			if e.stopAtAllOut && st.allOut() {
				break
			}
			e.bowl(rng, dist, st)
			st.balls++

			if i == 1 && sides[1].runs > sides[0].runs {
				res.Chased = true
				break
			}
		}

		if st.refused > 0 {
			log.Debug().Str("innings", label).Int("refused", st.refused).Err(st.exhausted()).
				Msg("Wicket draws refused after all out")
		}
	}

	res.Runs1, res.Wickets1, res.Balls1 = sides[0].runs, sides[0].wickets, sides[0].balls
	res.Runs2, res.Wickets2, res.Balls2 = sides[1].runs, sides[1].wickets, sides[1].balls
	res.RefusedWickets = sides[0].refused + sides[1].refused
	return res
}

// bowl draws u in [0,100) and walks the sorted outcomes with a running cumulative percentage.
func (e *Engine) bowl(rng *rand.Rand, dist stats.Distribution, st *inningsState) {
	u := rng.Float64() * 100
	cumulative := 0.0

	for j, o := range dist.Outcomes {
		p := dist.Percentages[j]

		if o.IsWicket() {
			// An all-out side skips the wicket without consuming a slot.
			if st.guardWicket() != nil {
				continue
			}
			if e.policy == WicketOnDraw {
				cumulative += p
				if u <= cumulative {
					st.wickets++
					return
				}
				continue
			}
			st.wickets++
			continue
		}

		cumulative += p
		if u <= cumulative {
			st.runs += o.Runs()
			return
		}
	}
}
