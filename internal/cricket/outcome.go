package cricket

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
)

// WicketSymbol is the label used for a dismissal in tallies and models.
const WicketSymbol = "W"

// Outcome is either a non-negative run total or the wicket marker.
type Outcome int

// Wicket is the dismissal outcome.
const Wicket Outcome = -1

// Runs returns the outcome for a ball that scored n runs.
func Runs(n int) Outcome {
	return Outcome(n)
}

// IsWicket reports whether o is the dismissal outcome.
func (o Outcome) IsWicket() bool {
	return o == Wicket
}

// Runs returns the runs carried by o; a wicket carries none.
func (o Outcome) Runs() int {
	if o.IsWicket() {
		return 0
	}
	return int(o)
}

func (o Outcome) String() string {
	if o.IsWicket() {
		return WicketSymbol
	}
	return strconv.Itoa(int(o))
}

// ParseOutcome reads "W" or a non-negative integer.
func ParseOutcome(s string) (Outcome, error) {
	if s == WicketSymbol {
		return Wicket, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: outcome %q is neither %q nor a run total", ErrInvalidInput, s, WicketSymbol)
	}
	return Runs(n), nil
}

// CompareOutcomes orders run totals ascending and places the wicket after every run total.
func CompareOutcomes(a, b Outcome) int {
	switch {
	case a.IsWicket() && b.IsWicket():
		return 0
	case a.IsWicket():
		return 1
	case b.IsWicket():
		return -1
	}
	return cmp.Compare(a, b)
}

// MarshalJSON writes runs as a number and the wicket as "W".
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.IsWicket() {
		return []byte(`"` + WicketSymbol + `"`), nil
	}
	return []byte(strconv.Itoa(int(o))), nil
}

// UnmarshalJSON accepts a run total (number or numeric string) or "W".
func (o *Outcome) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.UnmarshalText([]byte(s))
	}
	return o.UnmarshalText(data)
}

// MarshalText is used when an Outcome is a map key.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses the text form written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
