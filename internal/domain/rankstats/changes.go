package rankstats

import "sort"

// SignificantChangeThreshold marks a mover as significant when the absolute
// day-over-day delta reaches this many positions.
const SignificantChangeThreshold = 10

// DefaultTopN is the number of movers exposed per direction.
const DefaultTopN = 10

// Change is one keyword's day-over-day position delta. Change keeps the
// statistics sign convention: positive = improved (lower rank number).
type Change struct {
	TrackedID        string `json:"tracked_id"`
	Keyword          string `json:"keyword"`
	Country          string `json:"country"`
	PreviousPosition int    `json:"previous_position"`
	CurrentPosition  int    `json:"current_position"`
	Change           int    `json:"change"`
}

// Significant reports whether the delta crosses the alerting threshold.
func (c Change) Significant() bool {
	abs := c.Change
	if abs < 0 {
		abs = -abs
	}
	return abs >= SignificantChangeThreshold
}

type changeKey struct {
	trackedID string
	keyword   string
	country   string
}

// DetectChanges compares two adjacent daily snapshots, matched by
// (tracked id, keyword, country). Only entries ranked on both sides are
// compared: a transition through "not ranked" has no meaningful numeric
// delta and is excluded. Zero deltas are dropped. The result is sorted
// ascending by change, worst drops first.
func DetectChanges(today, yesterday []Observation) []Change {
	previous := make(map[changeKey]int, len(yesterday))
	for _, o := range yesterday {
		if o.Position > 0 {
			previous[changeKey{o.TrackedID, o.Keyword, o.Country}] = o.Position
		}
	}

	changes := make([]Change, 0, len(today))
	for _, o := range today {
		if o.Position <= 0 {
			continue
		}
		prev, ok := previous[changeKey{o.TrackedID, o.Keyword, o.Country}]
		if !ok {
			continue
		}
		delta := prev - o.Position
		if delta == 0 {
			continue
		}
		changes = append(changes, Change{
			TrackedID:        o.TrackedID,
			Keyword:          o.Keyword,
			Country:          o.Country,
			PreviousPosition: prev,
			CurrentPosition:  o.Position,
			Change:           delta,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Change < changes[j].Change
	})
	return changes
}

// TopMovers splits a detected change list into the n most positive and n
// most negative deltas. Gainers come back best-first, losers worst-first.
func TopMovers(changes []Change, n int) (gainers, losers []Change) {
	if n <= 0 {
		n = DefaultTopN
	}

	for _, c := range changes {
		if c.Change < 0 {
			losers = append(losers, c)
		}
	}
	if len(losers) > n {
		losers = losers[:n]
	}

	for i := len(changes) - 1; i >= 0; i-- {
		if changes[i].Change > 0 {
			gainers = append(gainers, changes[i])
		}
		if len(gainers) == n {
			break
		}
	}

	return gainers, losers
}

// SignificantMovers filters a change list down to significant deltas,
// preserving order.
func SignificantMovers(changes []Change) []Change {
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c.Significant() {
			out = append(out, c)
		}
	}
	return out
}
