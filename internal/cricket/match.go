// Package cricket holds the typed ball-by-ball records shared by the ingestion, tally and simulation layers.
package cricket

// Innings labels, in batting order. Only these two innings are tallied and simulated.
const (
	FirstInnings  = "1st innings"
	SecondInnings = "2nd innings"
)

// InningsLabels lists the innings in batting order.
var InningsLabels = [2]string{FirstInnings, SecondInnings}

// MaxWickets is the number of dismissals that ends a side's batting.
const MaxWickets = 10

// Delivery is one ball bowled and its recorded result.
type Delivery struct {
	Innings string `json:"innings"`
	Runs    int    `json:"runs"`
	Wicket  bool   `json:"wicket,omitempty"`
}

// Outcome classifies the delivery. A dismissal wins over any runs scored on the same ball.
func (d Delivery) Outcome() Outcome {
	if d.Wicket {
		return Wicket
	}
	return Runs(d.Runs)
}

// Innings is one side's batting turn.
type Innings struct {
	Label      string     `json:"label"`
	Deliveries []Delivery `json:"deliveries"`
}

// Match is a single parsed match record.
type Match struct {
	ID      string    `json:"id"`
	Dates   []string  `json:"dates"`
	Innings []Innings `json:"innings"`
}

// Date returns the first playing day (YYYY-MM-DD) or an empty string.
func (m Match) Date() string {
	if len(m.Dates) == 0 {
		return ""
	}
	return m.Dates[0]
}

// InningsAt returns the innings at the given batting position, if the match has one.
func (m Match) InningsAt(idx int) (Innings, bool) {
	if idx < 0 || idx >= len(m.Innings) {
		return Innings{}, false
	}
	return m.Innings[idx], true
}
