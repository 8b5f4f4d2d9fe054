package simulate

import (
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// ════════════════════════════════════════════════════════════════════
// Lump-sum scenario
// ════════════════════════════════════════════════════════════════════

func TestComputeScenarioWorkedExample(t *testing.T) {
	result := ComputeScenario(ScenarioInput{
		StartingAmount: 1000,
		Years:          10,
		InflationRate:  0.05,
		BankRate:       0.005,
		InvestReturn:   0.06,
	})

	if !almostEqual(result.FutureCash, 1051.14, 0.01) {
		t.Errorf("FutureCash = %.4f, want ~1051.14", result.FutureCash)
	}
	if !almostEqual(result.RealCash, 645.16, 0.05) {
		t.Errorf("RealCash = %.4f, want ~645.16", result.RealCash)
	}
	if !almostEqual(result.PriceMultiplier, 1.6289, 0.0001) {
		t.Errorf("PriceMultiplier = %.4f, want ~1.6289", result.PriceMultiplier)
	}
	if !almostEqual(result.NeededToMatchToday, 1628.89, 0.01) {
		t.Errorf("NeededToMatchToday = %.4f, want ~1628.89", result.NeededToMatchToday)
	}
	if result.RealLossCash >= 0 {
		t.Errorf("RealLossCash = %.4f, want negative when inflation outpaces the bank rate", result.RealLossCash)
	}
	if !almostEqual(result.RealGainInvestVsCash, result.RealInvest-result.RealCash, 1e-9) {
		t.Errorf("RealGainInvestVsCash inconsistent: %.4f", result.RealGainInvestVsCash)
	}
}

func TestComputeScenarioZeroRates(t *testing.T) {
	result := ComputeScenario(ScenarioInput{
		StartingAmount: 500,
		Years:          5,
	})

	if result.FutureCash != 500 || result.RealCash != 500 {
		t.Errorf("zero rates should leave the amount untouched: %+v", result)
	}
	if result.PriceMultiplier != 1 {
		t.Errorf("PriceMultiplier = %f, want 1", result.PriceMultiplier)
	}
}

func TestCompoundGrowthMonotoneInYears(t *testing.T) {
	prev := 0.0
	for years := 1; years <= 40; years++ {
		result := ComputeScenario(ScenarioInput{
			StartingAmount: 1000,
			Years:          years,
			BankRate:       0.03,
		})
		if result.FutureCash < prev {
			t.Fatalf("FutureCash decreased at year %d: %f < %f", years, result.FutureCash, prev)
		}
		prev = result.FutureCash
	}
}

// ════════════════════════════════════════════════════════════════════
// Monthly contribution projection
// ════════════════════════════════════════════════════════════════════

func TestProjectPortfolioSamplesEveryYear(t *testing.T) {
	points := ProjectPortfolio(ProjectionInput{
		Years:               25,
		MonthlyContribution: 300,
		PortfolioReturn:     0.06,
		InflationRate:       0.03,
	})

	if len(points) != 26 {
		t.Fatalf("expected 26 points (years 0..25), got %d", len(points))
	}
	for i, p := range points {
		if p.Year != i {
			t.Errorf("point %d has year %d", i, p.Year)
		}
	}
	if points[0].Nominal != 0 || points[0].Contributions != 0 {
		t.Errorf("year 0 should be empty: %+v", points[0])
	}

	// 12 contributions of 300 per year.
	if !almostEqual(points[1].Contributions, 3600, 1e-9) {
		t.Errorf("year 1 contributions = %f, want 3600", points[1].Contributions)
	}
	// With a positive return the balance outgrows the paid-in total.
	final := points[len(points)-1]
	if final.Nominal <= final.Contributions {
		t.Errorf("final nominal %f should exceed contributions %f", final.Nominal, final.Contributions)
	}
	// Inflation deflation keeps real below nominal.
	if final.Real >= final.Nominal {
		t.Errorf("real %f should be below nominal %f under inflation", final.Real, final.Nominal)
	}
}

func TestProjectPortfolioZeroContribution(t *testing.T) {
	for _, rate := range []float64{0, 0.05, 0.25} {
		points := ProjectPortfolio(ProjectionInput{
			Years:               10,
			MonthlyContribution: 0,
			PortfolioReturn:     rate,
			InflationRate:       0.04,
		})
		for _, p := range points {
			if p.Nominal != 0 || p.Real != 0 {
				t.Errorf("return %.2f year %d: series should be flat at 0, got %+v", rate, p.Year, p)
			}
		}
	}
}

func TestProjectPortfolioNominalMonotone(t *testing.T) {
	points := ProjectPortfolio(ProjectionInput{
		Years:               30,
		MonthlyContribution: 100,
		PortfolioReturn:     0.05,
	})
	for i := 1; i < len(points); i++ {
		if points[i].Nominal < points[i-1].Nominal {
			t.Fatalf("nominal decreased at year %d", points[i].Year)
		}
	}
}

func TestFindMilestones(t *testing.T) {
	// A strong return reaches both milestones inside the horizon.
	points := ProjectPortfolio(ProjectionInput{
		Years:               40,
		MonthlyContribution: 200,
		PortfolioReturn:     0.08,
	})
	ms := FindMilestones(points)
	if ms.BreakevenYear == nil {
		t.Fatal("expected a breakeven year")
	}
	if *ms.BreakevenYear != 1 {
		// Growth-then-contribute means the balance covers contributions
		// from the first sampled year with any non-negative return.
		t.Errorf("breakeven year = %d, want 1", *ms.BreakevenYear)
	}
	if ms.GrowthBeatsContribYear == nil {
		t.Fatal("expected growth to beat contributions within 40 years at 8%")
	}
	if *ms.GrowthBeatsContribYear <= 1 {
		t.Errorf("growth-beats-contributions year = %d, want later than year 1", *ms.GrowthBeatsContribYear)
	}

	// Zero return never lets growth overtake contributions.
	flat := ProjectPortfolio(ProjectionInput{
		Years:               10,
		MonthlyContribution: 200,
	})
	ms = FindMilestones(flat)
	if ms.GrowthBeatsContribYear != nil {
		t.Errorf("zero return should never hit the growth milestone, got year %d", *ms.GrowthBeatsContribYear)
	}
}

// ════════════════════════════════════════════════════════════════════
// Allocation engine
// ════════════════════════════════════════════════════════════════════

func TestNormalizeWeightsSumsTo100(t *testing.T) {
	raw := Weights{
		"devEquities": 40,
		"emEquities":  20,
		"globalBonds": 10,
		"corpBonds":   5,
		"cash":        3,
		"crypto":      2,
	}
	normalized := NormalizeWeights(raw)

	var sum float64
	for _, v := range normalized {
		sum += v
	}
	if !almostEqual(sum, 100, 1e-9) {
		t.Errorf("normalized weights sum to %f, want 100", sum)
	}
}

func TestNormalizeWeightsIdempotent(t *testing.T) {
	once := NormalizeWeights(Presets["balanced"])
	twice := NormalizeWeights(once)

	for key, v := range once {
		if !almostEqual(twice[key], v, 1e-9) {
			t.Errorf("re-normalizing changed %s: %f -> %f", key, v, twice[key])
		}
	}
}

func TestNormalizeWeightsAllZero(t *testing.T) {
	raw := Weights{"devEquities": 0, "cash": 0}
	normalized := NormalizeWeights(raw)

	for key, v := range normalized {
		if v != 0 {
			t.Errorf("all-zero input should stay zero, got %s = %f", key, v)
		}
	}
}

func TestRiskScoreAllCash(t *testing.T) {
	weights := NormalizeWeights(Weights{"cash": 100})

	if vol := BlendedVolatility(weights); !almostEqual(vol, 0.01, 1e-9) {
		t.Errorf("blended volatility = %f, want 0.01", vol)
	}
	// Raw score 0.5, clamped up to the floor of 1.
	score := RiskScore(weights)
	if score != 1 {
		t.Errorf("risk score = %f, want 1 (clamped)", score)
	}
	if got := ClassifyRisk(score); got != RiskConservative {
		t.Errorf("classification = %s, want %s", got, RiskConservative)
	}
}

func TestClassifyRiskBoundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{1, RiskConservative},
		{4.999, RiskConservative},
		{5.0, RiskBalanced},
		{8.499, RiskBalanced},
		{8.5, RiskAggressive},
		{10, RiskAggressive},
	}

	for _, tt := range tests {
		if got := ClassifyRisk(tt.score); got != tt.expected {
			t.Errorf("ClassifyRisk(%v) = %s, want %s", tt.score, got, tt.expected)
		}
	}
}

func TestPresetOrdering(t *testing.T) {
	conservative := RiskScore(NormalizeWeights(Presets["conservative"]))
	balanced := RiskScore(NormalizeWeights(Presets["balanced"]))
	aggressive := RiskScore(NormalizeWeights(Presets["aggressive"]))

	if !(conservative < balanced && balanced < aggressive) {
		t.Errorf("preset risk ordering broken: %f, %f, %f", conservative, balanced, aggressive)
	}
}

func TestNetReturnFloorsAtZero(t *testing.T) {
	if got := NetReturn(0.05, 0.005); !almostEqual(got, 0.045, 1e-9) {
		t.Errorf("NetReturn = %f, want 0.045", got)
	}
	if got := NetReturn(0.01, 0.05); got != 0 {
		t.Errorf("NetReturn should floor at 0, got %f", got)
	}
}

func TestDrawdowns(t *testing.T) {
	weights := NormalizeWeights(Weights{"devEquities": 100})
	dd := Drawdowns(weights)

	if !almostEqual(dd.Mild, -0.09, 1e-9) {
		t.Errorf("Mild = %f, want -0.09", dd.Mild)
	}
	if !almostEqual(dd.Rough, -0.18, 1e-9) {
		t.Errorf("Rough = %f, want -0.18", dd.Rough)
	}
	if !almostEqual(dd.Crash, -0.30, 1e-9) {
		t.Errorf("Crash = %f, want -0.30", dd.Crash)
	}
}

func TestLostToFees(t *testing.T) {
	in := ProjectionInput{
		Years:               20,
		MonthlyContribution: 300,
		InflationRate:       0.03,
	}
	grossIn, netIn := in, in
	grossIn.PortfolioReturn = 0.06
	netIn.PortfolioReturn = 0.055

	lost := LostToFees(ProjectPortfolio(grossIn), ProjectPortfolio(netIn))
	if lost <= 0 {
		t.Errorf("fee drag should be positive, got %f", lost)
	}

	// Identical projections lose nothing.
	same := ProjectPortfolio(grossIn)
	if got := LostToFees(same, same); got != 0 {
		t.Errorf("identical projections should lose 0, got %f", got)
	}
}

// ════════════════════════════════════════════════════════════════════
// Delayed start comparator
// ════════════════════════════════════════════════════════════════════

func TestCompareDelayedStartNoDelay(t *testing.T) {
	points := CompareDelayedStart(DelayInput{
		MonthlyContribution: 200,
		TotalYears:          30,
		DelayYears:          0,
		AnnualReturn:        0.07,
	})

	if len(points) != 31 {
		t.Fatalf("expected 31 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Early != p.Late {
			t.Errorf("year %d: no delay should keep series identical, early %f late %f", p.Year, p.Early, p.Late)
		}
	}
	if CostOfDelay(points) != 0 {
		t.Errorf("cost of zero delay should be 0")
	}
}

func TestCompareDelayedStartGap(t *testing.T) {
	points := CompareDelayedStart(DelayInput{
		MonthlyContribution: 200,
		TotalYears:          30,
		DelayYears:          5,
		AnnualReturn:        0.07,
	})

	// During the delay the late accumulator stays at zero.
	for _, p := range points[:6] {
		if p.Year <= 5 && p.Late != 0 {
			t.Errorf("year %d: late accumulator should still be 0, got %f", p.Year, p.Late)
		}
	}
	// The early accumulator never falls behind.
	for _, p := range points {
		if p.Late > p.Early {
			t.Errorf("year %d: late overtook early (%f > %f)", p.Year, p.Late, p.Early)
		}
	}
	if cost := CostOfDelay(points); cost <= 0 {
		t.Errorf("delayed start should cost money, got %f", cost)
	}
}

func TestCompareDelayedStartZeroContribution(t *testing.T) {
	points := CompareDelayedStart(DelayInput{
		TotalYears:   10,
		DelayYears:   3,
		AnnualReturn: 0.05,
	})
	for _, p := range points {
		if p.Early != 0 || p.Late != 0 {
			t.Errorf("zero contributions should stay flat: %+v", p)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Basket & wages
// ════════════════════════════════════════════════════════════════════

func TestProjectBasket(t *testing.T) {
	items := []BasketItem{
		{Name: "Groceries", Price: 150, Quantity: 1},
		{Name: "Rent", Price: 900, Quantity: 1},
		{Name: "Transport", Price: 80, Quantity: 1},
	}

	points := ProjectBasket(items, 0.05, 10)
	if len(points) != 11 {
		t.Fatalf("expected 11 points, got %d", len(points))
	}
	if !almostEqual(points[0].Monthly, 1130, 1e-9) {
		t.Errorf("year 0 monthly = %f, want 1130", points[0].Monthly)
	}
	if !almostEqual(points[0].Yearly, 1130*12, 1e-9) {
		t.Errorf("year 0 yearly = %f", points[0].Yearly)
	}
	want := 1130 * math.Pow(1.05, 10)
	if !almostEqual(points[10].Monthly, want, 1e-6) {
		t.Errorf("year 10 monthly = %f, want %f", points[10].Monthly, want)
	}
}

func TestProjectBasketClampsYears(t *testing.T) {
	points := ProjectBasket([]BasketItem{{Price: 10, Quantity: 1}}, 0.02, 0)
	if len(points) != 2 {
		t.Errorf("years below 1 should be treated as 1, got %d points", len(points))
	}
}

func TestRealWageSeries(t *testing.T) {
	entries := []WageEntry{
		{Label: "2021", Salary: 24000},
		{Label: "2022", Salary: 26000},
		{Label: "2023", Salary: 28000},
		{Label: "2024", Salary: 30000},
	}

	points := RealWageSeries(entries, 0.04)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	// The last entry is "today": real equals nominal.
	last := points[3]
	if !almostEqual(last.Real, 30000, 1e-9) {
		t.Errorf("today's real wage = %f, want 30000", last.Real)
	}
	// Older salaries are inflated up to today's prices.
	first := points[0]
	want := 24000 * math.Pow(1.04, 3)
	if !almostEqual(first.Real, want, 1e-6) {
		t.Errorf("first real wage = %f, want %f", first.Real, want)
	}
	if !almostEqual(first.RealIndex, want/24000, 1e-9) {
		t.Errorf("first real index = %f", first.RealIndex)
	}
}

func TestRealWageSeriesEmpty(t *testing.T) {
	if got := RealWageSeries(nil, 0.05); got != nil {
		t.Errorf("empty history should yield nil, got %+v", got)
	}
}
