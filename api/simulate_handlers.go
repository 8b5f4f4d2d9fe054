package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/zaskhakhalfani/finance-lab/internal/simulate"
	"github.com/zaskhakhalfani/finance-lab/pkg/utils"
)

// The calculators are pure and perform no validation, so every
// handler here clamps inputs to the documented slider ranges before
// calling in.

func queryFloat(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// ParseFloat accepts "NaN" and "Inf", which would poison the
		// calculators and make the response unencodable.
		return def
	}
	return v
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// scenarioResponse is the body for GET /api/v1/simulate/scenario.
type scenarioResponse struct {
	Inputs simulate.ScenarioInput  `json:"inputs"`
	Result simulate.ScenarioResult `json:"result"`
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	in := simulate.ScenarioInput{
		StartingAmount: utils.Clamp(queryFloat(r, "startingAmount", 1000), 100, 20000),
		Years:          clampInt(queryInt(r, "years", 10), 1, 40),
		InflationRate:  utils.Clamp(queryFloat(r, "inflationRate", 0.05), 0, 0.12),
		BankRate:       utils.Clamp(queryFloat(r, "bankRate", 0.005), 0, 0.06),
		InvestReturn:   utils.Clamp(queryFloat(r, "investReturn", 0.06), 0, 0.12),
	}

	writeJSON(w, http.StatusOK, scenarioResponse{
		Inputs: in,
		Result: simulate.ComputeScenario(in),
	})
}

// projectionResponse is the body for GET /api/v1/simulate/projection.
type projectionResponse struct {
	Points     []simulate.ProjectionPoint `json:"points"`
	Milestones simulate.Milestones        `json:"milestones"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	in := simulate.ProjectionInput{
		Years:               clampInt(queryInt(r, "years", 20), 5, 50),
		MonthlyContribution: utils.Clamp(queryFloat(r, "monthlyContribution", 200), 0, 2000),
		PortfolioReturn:     utils.Clamp(queryFloat(r, "portfolioReturn", 0.06), 0, 0.15),
		InflationRate:       utils.Clamp(queryFloat(r, "inflationRate", 0.025), 0, 0.08),
	}

	points := simulate.ProjectPortfolio(in)
	writeJSON(w, http.StatusOK, projectionResponse{
		Points:     points,
		Milestones: simulate.FindMilestones(points),
	})
}

// AllocationRequest is the body for POST /api/v1/simulate/allocation.
// Either Preset names one of the built-in mixes or Weights carries raw
// slider values per asset key.
type AllocationRequest struct {
	Preset              string           `json:"preset,omitempty"`
	Weights             simulate.Weights `json:"weights,omitempty"`
	FeeRate             float64          `json:"feeRate"`
	Years               int              `json:"years"`
	MonthlyContribution float64          `json:"monthlyContribution"`
	InflationRate       float64          `json:"inflationRate"`
}

// allocationResponse is the full portfolio readout.
type allocationResponse struct {
	Weights        simulate.Weights           `json:"weights"`
	ExpectedReturn float64                    `json:"expectedReturn"`
	Volatility     float64                    `json:"volatility"`
	RiskScore      float64                    `json:"riskScore"`
	RiskLabel      string                     `json:"riskLabel"`
	NetReturn      float64                    `json:"netReturn"`
	Drawdowns      simulate.DrawdownSnapshot  `json:"drawdowns"`
	Points         []simulate.ProjectionPoint `json:"points"`
	Milestones     simulate.Milestones        `json:"milestones"`
	LostToFees     float64                    `json:"lostToFees"`
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	var req AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}

	raw := req.Weights
	if req.Preset != "" {
		preset, ok := simulate.Presets[req.Preset]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown preset: %s", req.Preset))
			return
		}
		raw = preset
	}
	if len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "Request must include 'weights' or a 'preset'.")
		return
	}

	clamped := make(simulate.Weights, len(raw))
	for key, weight := range raw {
		clamped[key] = utils.Clamp(weight, 0, 80)
	}

	weights := simulate.NormalizeWeights(clamped)
	expected := simulate.ExpectedReturn(weights)
	score := simulate.RiskScore(weights)
	feeRate := utils.Clamp(req.FeeRate, 0, 0.02)
	net := simulate.NetReturn(expected, feeRate)

	years := clampInt(req.Years, 5, 50)
	monthly := utils.Clamp(req.MonthlyContribution, 0, 2000)
	inflation := utils.Clamp(req.InflationRate, 0, 0.08)

	points := simulate.ProjectPortfolio(simulate.ProjectionInput{
		Years:               years,
		MonthlyContribution: monthly,
		PortfolioReturn:     net,
		InflationRate:       inflation,
	})
	noFeePoints := simulate.ProjectPortfolio(simulate.ProjectionInput{
		Years:               years,
		MonthlyContribution: monthly,
		PortfolioReturn:     expected,
		InflationRate:       inflation,
	})

	writeJSON(w, http.StatusOK, allocationResponse{
		Weights:        weights,
		ExpectedReturn: expected,
		Volatility:     simulate.BlendedVolatility(weights),
		RiskScore:      score,
		RiskLabel:      simulate.ClassifyRisk(score),
		NetReturn:      net,
		Drawdowns:      simulate.Drawdowns(weights),
		Points:         points,
		Milestones:     simulate.FindMilestones(points),
		LostToFees:     simulate.LostToFees(noFeePoints, points),
	})
}

// delayResponse is the body for GET /api/v1/simulate/delay.
type delayResponse struct {
	Points      []simulate.DelayPoint `json:"points"`
	CostOfDelay float64               `json:"costOfDelay"`
}

func (s *Server) handleDelay(w http.ResponseWriter, r *http.Request) {
	totalYears := clampInt(queryInt(r, "totalYears", 30), 5, 50)
	in := simulate.DelayInput{
		MonthlyContribution: utils.Clamp(queryFloat(r, "monthlyContribution", 200), 0, 2000),
		TotalYears:          totalYears,
		DelayYears:          clampInt(queryInt(r, "delayYears", 5), 0, totalYears-1),
		AnnualReturn:        utils.Clamp(queryFloat(r, "annualReturn", 0.07), 0, 0.2),
	}

	points := simulate.CompareDelayedStart(in)
	writeJSON(w, http.StatusOK, delayResponse{
		Points:      points,
		CostOfDelay: simulate.CostOfDelay(points),
	})
}

// BasketRequest is the body for POST /api/v1/simulate/basket.
type BasketRequest struct {
	Items         []simulate.BasketItem `json:"items"`
	InflationRate float64               `json:"inflationRate"`
	Years         int                   `json:"years"`
}

// basketResponse is the projected basket cost.
type basketResponse struct {
	TotalToday float64                `json:"totalToday"`
	Points     []simulate.BasketPoint `json:"points"`
}

func (s *Server) handleBasket(w http.ResponseWriter, r *http.Request) {
	var req BasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}

	items := make([]simulate.BasketItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Price < 0 {
			item.Price = 0
		}
		if item.Quantity < 0 {
			item.Quantity = 0
		}
		items = append(items, item)
	}

	inflation := utils.Clamp(req.InflationRate, 0, 0.5)
	years := clampInt(req.Years, 1, 30)

	writeJSON(w, http.StatusOK, basketResponse{
		TotalToday: simulate.BasketTotal(items),
		Points:     simulate.ProjectBasket(items, inflation, years),
	})
}

// RealWageRequest is the body for POST /api/v1/simulate/real-wage.
type RealWageRequest struct {
	Entries       []simulate.WageEntry `json:"entries"`
	InflationRate float64              `json:"inflationRate"`
}

// realWageResponse restates the salary history in today's prices.
type realWageResponse struct {
	Points []simulate.WagePoint `json:"points"`
}

func (s *Server) handleRealWage(w http.ResponseWriter, r *http.Request) {
	var req RealWageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}

	entries := make([]simulate.WageEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Salary < 0 {
			e.Salary = 0
		}
		entries = append(entries, e)
	}

	points := simulate.RealWageSeries(entries, utils.Clamp(req.InflationRate, 0, 0.3))
	if points == nil {
		points = []simulate.WagePoint{}
	}

	writeJSON(w, http.StatusOK, realWageResponse{Points: points})
}
