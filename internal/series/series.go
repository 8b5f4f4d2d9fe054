// Package series normalizes heterogeneous upstream time series into a
// common period/value shape and merges pairs of series for comparison
// charts. Periods are plain strings (a year or an ISO date); ordering
// is lexicographic, which matches chronological order for both forms.
package series

import "sort"

// Point is a single observation in a period-indexed series.
type Point struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// MergedPoint is one row of a two-sided comparison series. A nil side
// means the source had no observation for that period, so charts can
// gap it rather than draw a zero.
type MergedPoint struct {
	Period    string   `json:"period"`
	Primary   *float64 `json:"primary,omitempty"`
	Secondary *float64 `json:"secondary,omitempty"`
}

// Merge combines two independently fetched series keyed by period.
// Either input may be empty; periods may be disjoint or overlap
// partially. The result is ordered ascending by period regardless of
// input order.
func Merge(primary, secondary []Point) []MergedPoint {
	byPeriod := make(map[string]*MergedPoint, len(primary)+len(secondary))

	for _, p := range primary {
		v := p.Value
		byPeriod[p.Period] = &MergedPoint{Period: p.Period, Primary: &v}
	}
	for _, p := range secondary {
		v := p.Value
		if row, ok := byPeriod[p.Period]; ok {
			row.Secondary = &v
			continue
		}
		byPeriod[p.Period] = &MergedPoint{Period: p.Period, Secondary: &v}
	}

	merged := make([]MergedPoint, 0, len(byPeriod))
	for _, row := range byPeriod {
		merged = append(merged, *row)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Period < merged[j].Period
	})
	return merged
}

// SortAscending orders a series ascending by period in place.
func SortAscending(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period < points[j].Period
	})
}

// Tail returns the last n points of a series, or the whole series when
// it has fewer than n points.
func Tail(points []Point, n int) []Point {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
