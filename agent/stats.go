package agent

import (
	"math"
	"time"
)

// Stats accumulates distance traveled by payload band. Totals only grow.
type Stats struct {
	Empty   float64 `json:"empty"`
	Partial float64 `json:"partial"`
	Full    float64 `json:"full"`
}

// Add books distance under the band for payload: 0 is empty, full is
// full, anything else is partial.
func (s *Stats) Add(payload, full int, distance float64) {
	if distance <= 0 {
		return
	}
	switch payload {
	case 0:
		s.Empty += distance
	case full:
		s.Full += distance
	default:
		s.Partial += distance
	}
}

func (s Stats) Total() float64 { return s.Empty + s.Partial + s.Full }

// Report is the end-of-harvest summary a drone emits once.
type Report struct {
	Team           string    `json:"team"`
	Drone          int       `json:"drone"`
	Representative int       `json:"representative"`
	Tick           int       `json:"tick"`
	Distance       Stats     `json:"distance"`
	FullPct        int       `json:"fullPct"`
	PartialPct     int       `json:"partialPct"`
	EmptyPct       int       `json:"emptyPct"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewReport rounds each band's share of s to a whole percentage.
func NewReport(team string, drone, representative, tick int, s Stats) Report {
	r := Report{
		Team:           team,
		Drone:          drone,
		Representative: representative,
		Tick:           tick,
		Distance:       s,
		CreatedAt:      time.Now().UTC(),
	}
	if total := s.Total(); total > 0 {
		r.FullPct = percent(s.Full, total)
		r.PartialPct = percent(s.Partial, total)
		r.EmptyPct = percent(s.Empty, total)
	}
	return r
}

func percent(part, total float64) int {
	return int(math.RoundToEven(part * 100 / total))
}
