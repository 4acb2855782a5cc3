package simulation

import (
	"fmt"
	"strings"

	"cricket-mcs/internal/cricket"
)

// WicketPolicy decides how the wicket outcome competes with run outcomes on a ball.
type WicketPolicy string

const (
	// WicketOnWalk takes a wicket whenever the cumulative walk reaches the wicket outcome,
	// without testing the draw against it. With the wicket sorted last it is only reached
	// when the draw exceeds every run outcome's slot.
	WicketOnWalk WicketPolicy = "walk"
	// WicketOnDraw gives the wicket its own cumulative slot, exactly like a run outcome.
	WicketOnDraw WicketPolicy = "draw"
)

// ParseWicketPolicy reads a policy name; an empty string selects WicketOnWalk.
func ParseWicketPolicy(s string) (WicketPolicy, error) {
	p := WicketPolicy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return WicketOnWalk, nil
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate rejects unknown policy names.
func (p WicketPolicy) Validate() error {
	switch p {
	case WicketOnWalk, WicketOnDraw:
		return nil
	}
	return fmt.Errorf("%w: unknown wicket policy %q (want %q or %q)", cricket.ErrInvalidInput, p, WicketOnWalk, WicketOnDraw)
}
