package simulation

import (
	"fmt"

	"cricket-mcs/internal/cricket"
)

// inningsState is the running score of one innings during a single simulation.
type inningsState struct {
	label   string
	runs    int
	wickets int
	balls   int
	refused int
}

func (s *inningsState) allOut() bool {
	return s.wickets >= cricket.MaxWickets
}

// guardWicket refuses a wicket once the side is all out and counts the refusal.
func (s *inningsState) guardWicket() error {
	if s.allOut() {
		s.refused++
		return s.exhausted()
	}
	return nil
}

func (s *inningsState) exhausted() error {
	return fmt.Errorf("%w: %s already has %d wickets", cricket.ErrExhaustedState, s.label, s.wickets)
}
