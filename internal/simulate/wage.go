package simulate

import "math"

// WageEntry is one year of salary history. Entries are assumed to be
// sequential years with the last entry being "today".
type WageEntry struct {
	Label  string  `json:"label"`
	Salary float64 `json:"salary"`
}

// WagePoint restates one salary entry in today's prices.
type WagePoint struct {
	Label     string  `json:"label"`
	Nominal   float64 `json:"nominal"`
	Real      float64 `json:"real"`
	RealIndex float64 `json:"realIndex"` // real value relative to the first entry's nominal salary
}

// RealWageSeries expresses each salary in today's prices by compounding
// a constant inflation rate over the years between the entry and the
// final entry. An empty history yields an empty series.
func RealWageSeries(entries []WageEntry, inflationRate float64) []WagePoint {
	n := len(entries)
	if n == 0 {
		return nil
	}

	baseline := entries[0].Salary
	if baseline == 0 {
		baseline = 1
	}

	points := make([]WagePoint, 0, n)
	for i, e := range entries {
		yearsToToday := float64(n - 1 - i)
		real := e.Salary * math.Pow(1+inflationRate, yearsToToday)
		points = append(points, WagePoint{
			Label:     e.Label,
			Nominal:   e.Salary,
			Real:      real,
			RealIndex: real / baseline,
		})
	}
	return points
}
