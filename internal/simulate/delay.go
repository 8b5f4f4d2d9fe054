package simulate

// DelayInput holds the parameters for a delayed-start comparison.
// DelayYears must already be clamped to [0, TotalYears-1] by the
// caller. AnnualReturn is a fractional rate.
type DelayInput struct {
	MonthlyContribution float64 `json:"monthlyContribution"`
	TotalYears          int     `json:"totalYears"`
	DelayYears          int     `json:"delayYears"`
	AnnualReturn        float64 `json:"annualReturn"`
}

// DelayPoint is one sampled year of the early/late comparison.
type DelayPoint struct {
	Year  int     `json:"year"`
	Early float64 `json:"early"`
	Late  float64 `json:"late"`
}

// CompareDelayedStart runs two parallel monthly accumulators over the
// full horizon: one contributing from month 0, the other withholding
// contributions until the delay has passed while still compounding any
// accrued balance. Each month adds the contribution first and then
// applies growth.
func CompareDelayedStart(in DelayInput) []DelayPoint {
	months := in.TotalYears * 12
	delayMonths := in.DelayYears * 12
	rMonthly := in.AnnualReturn / 12

	points := make([]DelayPoint, 0, in.TotalYears+1)
	points = append(points, DelayPoint{Year: 0})

	early, late := 0.0, 0.0
	for m := 0; m < months; m++ {
		early = (early + in.MonthlyContribution) * (1 + rMonthly)
		if m >= delayMonths {
			late = (late + in.MonthlyContribution) * (1 + rMonthly)
		} else {
			late = late * (1 + rMonthly)
		}

		if (m+1)%12 == 0 {
			points = append(points, DelayPoint{
				Year:  (m + 1) / 12,
				Early: early,
				Late:  late,
			})
		}
	}
	return points
}

// CostOfDelay is the final-year gap between the early and late
// accumulators. Non-negative for non-negative contributions and
// returns.
func CostOfDelay(points []DelayPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	final := points[len(points)-1]
	return final.Early - final.Late
}
