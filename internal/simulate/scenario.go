// Package simulate implements the deterministic financial projection
// engine behind the simulators: lump-sum inflation scenarios, monthly
// contribution projections, multi-asset allocation blending, delayed
// start comparisons, basket costing, and real wage restatement.
//
// Every function here is pure: results depend only on the inputs, no
// rounding happens during simulation, and callers are responsible for
// clamping inputs to their documented UI ranges before calling in.
package simulate

import "math"

// ScenarioInput holds the parameters for a single lump-sum scenario.
// Rates are fractional (0.05 = 5%). Years must be >= 1; passing a
// smaller value is a caller bug and the output is unspecified.
type ScenarioInput struct {
	StartingAmount float64 `json:"startingAmount"`
	Years          int     `json:"years"`
	InflationRate  float64 `json:"inflationRate"`
	BankRate       float64 `json:"bankRate"`
	InvestReturn   float64 `json:"investReturn"`
}

// ScenarioResult is the full set of derived values for a scenario.
type ScenarioResult struct {
	FutureCash           float64 `json:"futureCash"`
	RealCash             float64 `json:"realCash"`
	FutureInvest         float64 `json:"futureInvest"`
	RealInvest           float64 `json:"realInvest"`
	RealLossCash         float64 `json:"realLossCash"`
	RealGainInvestVsCash float64 `json:"realGainInvestVsCash"`
	PriceMultiplier      float64 `json:"priceMultiplier"`
	NeededToMatchToday   float64 `json:"neededToMatchToday"`
}

// ComputeScenario compares holding a lump sum in cash versus investing
// it, both deflated by inflation over the horizon.
func ComputeScenario(in ScenarioInput) ScenarioResult {
	years := float64(in.Years)

	gInflation := math.Pow(1+in.InflationRate, years)
	gCash := math.Pow(1+in.BankRate, years)
	gInvest := math.Pow(1+in.InvestReturn, years)

	futureCash := in.StartingAmount * gCash
	realCash := futureCash / gInflation

	futureInvest := in.StartingAmount * gInvest
	realInvest := futureInvest / gInflation

	return ScenarioResult{
		FutureCash:           futureCash,
		RealCash:             realCash,
		FutureInvest:         futureInvest,
		RealInvest:           realInvest,
		RealLossCash:         realCash - in.StartingAmount,
		RealGainInvestVsCash: realInvest - realCash,
		PriceMultiplier:      gInflation,
		NeededToMatchToday:   in.StartingAmount * gInflation,
	}
}
