// Package rankstats computes aggregate and trend statistics over
// time-ordered keyword rank observations, and diffs adjacent daily
// snapshots for mover alerts. Position 0 means "not ranked" throughout:
// excluded from averages and deltas, but still a valid current position.
package rankstats

import "time"

// Observation is one time-stamped rank measurement for a tracked keyword.
type Observation struct {
	TrackedID    string
	Keyword      string
	Country      string
	Date         time.Time
	Position     int // 0 = not ranked, 1..N = ranked at N
	Traffic      *int
	SearchVolume *int
	Difficulty   *float64
	CPC          *float64
}

// Trend is a coarse classification of a position series.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// Statistics is the derived view over an ordered observation series.
// A zero-value Statistics with HasData=false is the valid "no statistics
// yet" state for an empty series; it is not an error.
type Statistics struct {
	HasData             bool     `json:"has_data"`
	Count               int      `json:"count"`
	AveragePosition     *float64 `json:"average_position,omitempty"`
	BestPosition        *int     `json:"best_position,omitempty"`
	WorstPosition       *int     `json:"worst_position,omitempty"`
	CurrentPosition     *int     `json:"current_position,omitempty"`
	PreviousPosition    *int     `json:"previous_position,omitempty"`
	PositionChange      *int     `json:"position_change,omitempty"`
	AverageTraffic      *float64 `json:"average_traffic,omitempty"`
	AverageSearchVolume *float64 `json:"average_search_volume,omitempty"`
	Trend               Trend    `json:"trend"`
	DaysTracked         int      `json:"days_tracked"`
}

// Compute derives Statistics from a series ordered by date ascending.
//
// Average, best, and worst cover only ranked observations (position > 0);
// an all-unranked series yields nil for all three rather than zero.
// PositionChange is previous - current, so a positive change is an
// improvement (the keyword moved to a lower rank number). The delta is
// only reported when both endpoints are ranked; a transition through
// "not ranked" is not a meaningful numeric delta.
func Compute(series []Observation) Statistics {
	if len(series) == 0 {
		return Statistics{Trend: TrendInsufficientData}
	}

	stats := Statistics{
		HasData:     true,
		Count:       len(series),
		DaysTracked: daysTracked(series),
	}

	positions := make([]int, 0, len(series))
	for _, o := range series {
		if o.Position > 0 {
			positions = append(positions, o.Position)
		}
	}

	if len(positions) > 0 {
		sum, best, worst := 0, positions[0], positions[0]
		for _, p := range positions {
			sum += p
			if p < best {
				best = p
			}
			if p > worst {
				worst = p
			}
		}
		avg := float64(sum) / float64(len(positions))
		stats.AveragePosition = &avg
		stats.BestPosition = &best
		stats.WorstPosition = &worst
	}

	current := series[len(series)-1].Position
	stats.CurrentPosition = &current
	if len(series) >= 2 {
		previous := series[len(series)-2].Position
		stats.PreviousPosition = &previous
		if previous > 0 && current > 0 {
			change := previous - current
			stats.PositionChange = &change
		}
	}

	stats.AverageTraffic = averageOf(series, func(o Observation) *int { return o.Traffic })
	stats.AverageSearchVolume = averageOf(series, func(o Observation) *int { return o.SearchVolume })
	stats.Trend = classifyTrend(positions)

	return stats
}

// classifyTrend fits an ordinary-least-squares line of position against its
// 0-based index over the ranked positions. Position numbers grow as rank
// worsens, so a positive slope is a decline.
func classifyTrend(positions []int) Trend {
	n := len(positions)
	if n < 2 {
		return TrendInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range positions {
		x, y := float64(i), float64(p)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)

	switch {
	case slope > 0:
		return TrendDeclining
	case slope < 0:
		return TrendImproving
	default:
		return TrendStable
	}
}

// daysTracked is the inclusive calendar-day span of the series, minimum 1.
func daysTracked(series []Observation) int {
	first := dateOf(series[0].Date)
	last := dateOf(series[len(series)-1].Date)
	days := int(last.Sub(first).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func averageOf(series []Observation, field func(Observation) *int) *float64 {
	sum, count := 0, 0
	for _, o := range series {
		if v := field(o); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := float64(sum) / float64(count)
	return &avg
}
