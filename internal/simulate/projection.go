package simulate

// ProjectionInput holds the parameters for a monthly contribution
// projection. PortfolioReturn and InflationRate are annual fractional
// rates; both are divided by 12 for the monthly step.
type ProjectionInput struct {
	Years               int     `json:"years"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	PortfolioReturn     float64 `json:"portfolioReturn"`
	InflationRate       float64 `json:"inflationRate"`
}

// ProjectionPoint is one sampled year of a projection.
type ProjectionPoint struct {
	Year          int     `json:"year"`
	Nominal       float64 `json:"nominal"`
	Real          float64 `json:"real"`
	Contributions float64 `json:"contributions"`
}

// Milestones marks the years at which a projection crosses its
// psychologically interesting thresholds. A nil entry means the
// milestone was not reached within the horizon.
type Milestones struct {
	BreakevenYear          *int `json:"breakevenYear"`
	GrowthBeatsContribYear *int `json:"growthBeatsContribYear"`
}

// ProjectPortfolio simulates a portfolio built from monthly
// contributions. Each month the balance grows by PortfolioReturn/12 and
// then receives one contribution; the price level compounds at
// InflationRate/12 from 1.0. A point is emitted every 12th month,
// including month 0.
func ProjectPortfolio(in ProjectionInput) []ProjectionPoint {
	months := in.Years * 12
	rMonthly := in.PortfolioReturn / 12
	inflMonthly := in.InflationRate / 12

	balance := 0.0
	priceLevel := 1.0
	contributed := 0.0

	points := make([]ProjectionPoint, 0, in.Years+1)
	for m := 0; m <= months; m++ {
		if m > 0 {
			balance = balance*(1+rMonthly) + in.MonthlyContribution
			contributed += in.MonthlyContribution
			priceLevel *= 1 + inflMonthly
		}

		if m%12 == 0 {
			real := balance
			if priceLevel > 0 {
				real = balance / priceLevel
			}
			points = append(points, ProjectionPoint{
				Year:          m / 12,
				Nominal:       balance,
				Real:          real,
				Contributions: contributed,
			})
		}
	}
	return points
}

// FindMilestones scans a projection for the first year the balance
// covers the money paid in, and the first year compound growth alone
// exceeds total contributions. Year 0 is skipped: an empty portfolio
// trivially "covers" zero contributions.
func FindMilestones(points []ProjectionPoint) Milestones {
	var ms Milestones
	for i := range points {
		p := points[i]
		if p.Year == 0 {
			continue
		}
		if ms.BreakevenYear == nil && p.Nominal >= p.Contributions {
			year := p.Year
			ms.BreakevenYear = &year
		}
		if ms.GrowthBeatsContribYear == nil && p.Nominal-p.Contributions >= p.Contributions {
			year := p.Year
			ms.GrowthBeatsContribYear = &year
		}
	}
	return ms
}
