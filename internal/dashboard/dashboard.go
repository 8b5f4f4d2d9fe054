// Package dashboard aggregates the macro indicator tiles shown on the
// learn page and the UK macro snapshot. Indicator lookups within a
// batch run concurrently and the batch only commits once every lookup
// has resolved; a batch that resolves after a newer one has committed
// is discarded so stale data never overwrites fresher data.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/zaskhakhalfani/finance-lab/internal/config"
	"github.com/zaskhakhalfani/finance-lab/internal/datasource"
	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

// deadband is the period-over-period delta, in percentage points,
// below which a tile reads "flat".
const deadband = 0.05

// Service aggregates indicator lookups into dashboard payloads.
type Service struct {
	wb        *datasource.WorldBank
	boe       *datasource.BankRate
	fallbacks config.DashboardConfig

	generation atomic.Uint64 // tags each refresh batch

	mu        sync.Mutex
	committed uint64
	latest    []models.DashboardItem
}

// NewService creates a dashboard service over the given providers and
// fallback tiles.
func NewService(wb *datasource.WorldBank, boe *datasource.BankRate, fallbacks config.DashboardConfig) *Service {
	return &Service{wb: wb, boe: boe, fallbacks: fallbacks}
}

// MiniDashboard returns the four UK tiles: inflation, GDP growth,
// unemployment, and the policy rate. The first three come from the
// World Bank with a hardcoded fallback each; the policy rate tile is
// always the configured value (the BoE has no simple API for it).
// Never fails on provider errors.
func (s *Service) MiniDashboard(ctx context.Context) []models.DashboardItem {
	generation := s.generation.Add(1)

	var inflation, gdp, unemployment models.DashboardItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inflation = s.indicatorTile(gctx, "inflation", "UK inflation", datasource.IndicatorCPI, s.fallbacks.Inflation)
		return nil
	})
	g.Go(func() error {
		gdp = s.indicatorTile(gctx, "gdp", "GDP growth", datasource.IndicatorGDPGrowth, s.fallbacks.GDP)
		return nil
	})
	g.Go(func() error {
		unemployment = s.indicatorTile(gctx, "unemployment", "Unemployment", datasource.IndicatorUnemployment, s.fallbacks.Unemployment)
		return nil
	})
	_ = g.Wait() // tile builders never return errors

	bankRate := fallbackItem("base-rate", s.fallbacks.BankRate, "current")
	items := []models.DashboardItem{inflation, gdp, unemployment, bankRate}

	// Commit only if no newer batch has landed while this one ran.
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation < s.committed {
		return s.latest
	}
	s.committed = generation
	s.latest = items
	return items
}

// indicatorTile builds one tile from the latest/previous observation
// pair, falling back to the configured demo value when the call fails
// or returns nothing.
func (s *Service) indicatorTile(ctx context.Context, id, labelPrefix, indicator string, fallback config.FallbackTile) models.DashboardItem {
	latest, prev, err := s.wb.LatestPair(ctx, "GBR", indicator)
	if err != nil {
		log.Printf("dashboard: %s lookup failed: %v", id, err)
		return fallbackItem(id, fallback, "latest")
	}
	if latest == nil {
		return fallbackItem(id, fallback, "latest")
	}

	change := "–"
	direction := models.DirectionFlat
	if prev != nil {
		diff := latest.Value - prev.Value
		diffAbs := math.Abs(diff)
		switch {
		case diff > deadband:
			change = fmt.Sprintf("+%.1f pts vs prev", diffAbs)
			direction = models.DirectionUp
		case diff < -deadband:
			change = fmt.Sprintf("-%.1f pts vs prev", diffAbs)
			direction = models.DirectionDown
		default:
			change = "≈ flat vs prev"
		}
	}

	year := fmt.Sprint(latest.Year)
	return models.DashboardItem{
		ID:        id,
		Label:     fmt.Sprintf("%s (%s)", labelPrefix, year),
		Value:     fmt.Sprintf("%.1f%%", latest.Value),
		Change:    change,
		Direction: direction,
		Year:      year,
	}
}

func fallbackItem(id string, tile config.FallbackTile, year string) models.DashboardItem {
	return models.DashboardItem{
		ID:        id,
		Label:     tile.Label,
		Value:     tile.Value,
		Change:    tile.Change,
		Direction: models.Direction(tile.Direction),
		Year:      year,
	}
}

// UKMacro aggregates the three World Bank indicators and the scraped
// policy rate. Each failed component is nil in the snapshot; the
// snapshot itself is always returned.
func (s *Service) UKMacro(ctx context.Context) *models.MacroSnapshot {
	snapshot := &models.MacroSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs, err := s.wb.Latest(gctx, "GBR", datasource.IndicatorCPI)
		if err != nil {
			log.Printf("uk-macro: inflation lookup failed: %v", err)
			return nil
		}
		snapshot.Inflation = obs
		return nil
	})
	g.Go(func() error {
		obs, err := s.wb.Latest(gctx, "GBR", datasource.IndicatorGDPGrowth)
		if err != nil {
			log.Printf("uk-macro: gdp lookup failed: %v", err)
			return nil
		}
		snapshot.GDP = obs
		return nil
	})
	g.Go(func() error {
		obs, err := s.wb.Latest(gctx, "GBR", datasource.IndicatorUnemploymentNE)
		if err != nil {
			log.Printf("uk-macro: unemployment lookup failed: %v", err)
			return nil
		}
		snapshot.Unemployment = obs
		return nil
	})
	g.Go(func() error {
		rate, err := s.boe.Current(gctx)
		if err != nil {
			log.Printf("uk-macro: bank rate fetch failed: %v", err)
			return nil
		}
		snapshot.BankRate = rate
		return nil
	})
	_ = g.Wait() // component failures are logged, not propagated

	return snapshot
}
