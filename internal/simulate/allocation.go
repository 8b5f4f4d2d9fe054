package simulate

import "github.com/zaskhakhalfani/finance-lab/pkg/utils"

// AssetClass describes one entry of the fixed allocation catalog.
// ExpectedReturn and Volatility are annual fractional rates.
type AssetClass struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Description    string  `json:"description"`
	ExpectedReturn float64 `json:"expectedReturn"`
	Volatility     float64 `json:"volatility"`
}

// AssetClasses is the six-entry catalog the allocation engine works
// over. It is static configuration: never mutated at runtime.
var AssetClasses = []AssetClass{
	{
		Key:            "devEquities",
		Label:          "Developed market stocks",
		Description:    "Large companies in the US, UK, Europe, Japan.",
		ExpectedReturn: 0.07,
		Volatility:     0.15,
	},
	{
		Key:            "emEquities",
		Label:          "Emerging market stocks",
		Description:    "Faster-growing economies like India, Brazil, Indonesia.",
		ExpectedReturn: 0.09,
		Volatility:     0.20,
	},
	{
		Key:            "globalBonds",
		Label:          "Global government bonds",
		Description:    "Typically steadier than stocks; lower return.",
		ExpectedReturn: 0.03,
		Volatility:     0.06,
	},
	{
		Key:            "corpBonds",
		Label:          "Corporate bonds",
		Description:    "Loans to companies, slightly more risk and return than government bonds.",
		ExpectedReturn: 0.04,
		Volatility:     0.08,
	},
	{
		Key:            "cash",
		Label:          "Cash & savings",
		Description:    "Cash, savings accounts, money market funds.",
		ExpectedReturn: 0.015,
		Volatility:     0.01,
	},
	{
		Key:            "crypto",
		Label:          "Crypto (experimental)",
		Description:    "Very high risk, speculative. Only for money you can afford to lose.",
		ExpectedReturn: 0.15,
		Volatility:     0.60,
	},
}

// Weights maps asset class keys to slider values. Raw weights need not
// sum to anything in particular; NormalizeWeights rescales them.
type Weights map[string]float64

// Presets are the three starting allocations offered by the UI,
// keyed the same way as AssetClasses. They sum to 100 already but are
// re-normalized before use anyway.
var Presets = map[string]Weights{
	"conservative": {
		"devEquities": 20,
		"emEquities":  5,
		"globalBonds": 45,
		"corpBonds":   20,
		"cash":        8,
		"crypto":      2,
	},
	"balanced": {
		"devEquities": 35,
		"emEquities":  10,
		"globalBonds": 25,
		"corpBonds":   18,
		"cash":        10,
		"crypto":      2,
	},
	"aggressive": {
		"devEquities": 55,
		"emEquities":  20,
		"globalBonds": 5,
		"corpBonds":   5,
		"cash":        5,
		"crypto":      10,
	},
}

// riskScoreDivisor maps a blended volatility of 20% to a risk score of
// 10 before clamping.
const riskScoreDivisor = 0.2

// RiskProfile labels for ClassifyRisk.
const (
	RiskConservative = "Conservative"
	RiskBalanced     = "Balanced"
	RiskAggressive   = "Aggressive"
)

// NormalizeWeights rescales raw weights so they sum to exactly 100.
// An all-zero weight set is returned as an unchanged copy rather than
// dividing by zero.
func NormalizeWeights(raw Weights) Weights {
	var sum float64
	for _, v := range raw {
		sum += v
	}

	out := make(Weights, len(AssetClasses))
	if sum == 0 {
		for k, v := range raw {
			out[k] = v
		}
		return out
	}

	factor := 100 / sum
	for _, asset := range AssetClasses {
		out[asset.Key] = raw[asset.Key] * factor
	}
	return out
}

// ExpectedReturn is the weight-blended annual return of the catalog.
// Weights are interpreted as percentages of 100.
func ExpectedReturn(weights Weights) float64 {
	var ret float64
	for _, asset := range AssetClasses {
		ret += weights[asset.Key] / 100 * asset.ExpectedReturn
	}
	return ret
}

// BlendedVolatility is the weight-blended annual volatility.
func BlendedVolatility(weights Weights) float64 {
	var vol float64
	for _, asset := range AssetClasses {
		vol += weights[asset.Key] / 100 * asset.Volatility
	}
	return vol
}

// RiskScore maps blended volatility onto a 1..10 scale.
func RiskScore(weights Weights) float64 {
	score := BlendedVolatility(weights) / riskScoreDivisor * 10
	return utils.Clamp(score, 1, 10)
}

// ClassifyRisk buckets a risk score into a profile label. The
// intervals are half-open: exactly 5.0 is Balanced, exactly 8.5 is
// Aggressive.
func ClassifyRisk(score float64) string {
	switch {
	case score < 5:
		return RiskConservative
	case score < 8.5:
		return RiskBalanced
	default:
		return RiskAggressive
	}
}

// NetReturn deducts an annual fee rate from the expected return,
// floored at zero.
func NetReturn(expectedReturn, feeRate float64) float64 {
	net := expectedReturn - feeRate
	if net < 0 {
		return 0
	}
	return net
}

// DrawdownSnapshot illustrates mild, rough and crash scenarios as
// fixed multiples of blended volatility. The multipliers are
// illustrative, not statistically derived.
type DrawdownSnapshot struct {
	Mild  float64 `json:"mild"`
	Rough float64 `json:"rough"`
	Crash float64 `json:"crash"`
}

// Drawdowns computes the drawdown snapshot for a weight set.
func Drawdowns(weights Weights) DrawdownSnapshot {
	vol := BlendedVolatility(weights)
	return DrawdownSnapshot{
		Mild:  -(vol * 0.6),
		Rough: -(vol * 1.2),
		Crash: -(vol * 2.0),
	}
}

// LostToFees is the nominal final-value gap between a fee-free and a
// fee-charged projection, floored at zero.
func LostToFees(withoutFees, withFees []ProjectionPoint) float64 {
	if len(withoutFees) == 0 || len(withFees) == 0 {
		return 0
	}
	gap := withoutFees[len(withoutFees)-1].Nominal - withFees[len(withFees)-1].Nominal
	if gap < 0 {
		return 0
	}
	return gap
}
