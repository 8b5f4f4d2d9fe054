// Package api provides the HTTP API server for the finance lab.
//
// It exposes the chat tutor, the macro data endpoints (inflation,
// market, mini-dashboard, UK macro), the simulator endpoints, and a
// WebSocket channel streaming dashboard refreshes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/zaskhakhalfani/finance-lab/internal/config"
	"github.com/zaskhakhalfani/finance-lab/internal/content"
	"github.com/zaskhakhalfani/finance-lab/internal/dashboard"
	"github.com/zaskhakhalfani/finance-lab/internal/datasource"
	"github.com/zaskhakhalfani/finance-lab/internal/llm"
	"github.com/zaskhakhalfani/finance-lab/internal/series"
	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

// allowedCountries is the inflation endpoint allow-list. Anything else
// falls back to GBR.
var allowedCountries = map[string]bool{
	"GBR": true,
	"USA": true,
	"IDN": true,
	"JPN": true,
	"EUU": true,
}

const fallbackCountry = "GBR"

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config

	chat   *llm.GroqClient // nil when no API key is configured
	wb     *datasource.WorldBank
	stocks *datasource.Stooq
	crypto *datasource.CoinGecko
	news   *datasource.News
	dash   *dashboard.Service
	facts  *content.Facts
	wsHub  *WSHub
}

// NewServer creates a configured API server with all routes and
// middleware. A missing Groq key is not an error here; the chat
// endpoint reports it per request instead.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		wb:     datasource.NewWorldBank(cfg.Providers.WorldBankBaseURL),
		stocks: datasource.NewStooq(cfg.Providers.StooqURL),
		crypto: datasource.NewCoinGecko(cfg.Providers.CoinGeckoURL),
		news:   datasource.NewNews(cfg.Providers.NewsFeeds),
		facts:  content.NewFacts(content.DefaultCatalog, rand.New(rand.NewSource(time.Now().UnixNano()))),
		wsHub:  NewWSHub(),
	}
	s.dash = dashboard.NewService(s.wb, datasource.NewBankRate(cfg.Providers.BankRateURL), cfg.Dashboard)

	if cfg.LLM.GroqKey != "" {
		var opts []llm.GroqOption
		if cfg.LLM.BaseURL != "" {
			opts = append(opts, llm.WithBaseURL(cfg.LLM.BaseURL))
		}
		if cfg.LLM.Model != "" {
			opts = append(opts, llm.WithModel(cfg.LLM.Model))
		}
		chat, err := llm.NewGroqClient(cfg.LLM.GroqKey, opts...)
		if err != nil {
			log.Printf("chat client disabled: %v", err)
		} else {
			s.chat = chat
		}
	}

	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown on
// SIGINT/SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/chat", s.handleChat)

		r.Get("/inflation", s.handleInflation)
		r.Get("/inflation/compare", s.handleInflationCompare)
		r.Get("/market", s.handleMarket)
		r.Get("/mini-dashboard", s.handleMiniDashboard)
		r.Get("/uk-macro", s.handleUKMacro)

		r.Route("/simulate", func(r chi.Router) {
			r.Get("/scenario", s.handleScenario)
			r.Get("/projection", s.handleProjection)
			r.Post("/allocation", s.handleAllocation)
			r.Get("/delay", s.handleDelay)
			r.Post("/basket", s.handleBasket)
			r.Post("/real-wage", s.handleRealWage)
		})

		r.Get("/news", s.handleNews)
		r.Get("/facts", s.handleFacts)

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// errorResponse is the error body shape shared by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": "dev",
	})
}

// ChatRequest is the body for POST /api/v1/chat.
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

// chatResponse carries the tutor's reply.
type chatResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		writeError(w, http.StatusInternalServerError,
			"Missing GROQ_API_KEY. Set it in the environment or the llm config section and restart the server.")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}
	if req.Messages == nil {
		writeError(w, http.StatusBadRequest, "Request body must include an array 'messages'.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	resp, err := s.chat.Chat(ctx, req.Messages, &llm.ChatOptions{
		Model:       s.cfg.LLM.Model,
		Temperature: s.cfg.LLM.Temperature,
	})
	if err != nil {
		var upstream *llm.UpstreamError
		switch {
		case errors.As(err, &upstream):
			writeError(w, http.StatusInternalServerError, upstream.Message)
		case errors.Is(err, llm.ErrEmptyAnswer):
			writeJSON(w, http.StatusOK, chatResponse{Answer: "Sorry, I couldn't generate a response."})
		default:
			log.Printf("chat error: %v", err)
			writeError(w, http.StatusInternalServerError, "Upstream chat API error. Check your key and model.")
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: resp.Content})
}

// inflationResponse is the body for GET /api/v1/inflation.
type inflationResponse struct {
	Country string             `json:"country"`
	Series  []models.YearValue `json:"series"`
}

func (s *Server) handleInflation(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(r.URL.Query().Get("country"))
	if !allowedCountries[country] {
		country = fallbackCountry
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	series, err := s.wb.InflationSeries(ctx, country)
	if err != nil {
		log.Printf("inflation error: %v", err)
		writeError(w, http.StatusInternalServerError, "Unable to load inflation data")
		return
	}
	if series == nil {
		series = []models.YearValue{}
	}

	writeJSON(w, http.StatusOK, inflationResponse{Country: country, Series: series})
}

// compareYears caps the comparison chart at roughly two decades.
const compareYears = 22

// inflationCompareResponse is the body for GET /api/v1/inflation/compare.
type inflationCompareResponse struct {
	Primary   string               `json:"primary"`
	Secondary string               `json:"secondary,omitempty"`
	Series    []series.MergedPoint `json:"series"`
}

func (s *Server) handleInflationCompare(w http.ResponseWriter, r *http.Request) {
	primary := strings.ToUpper(r.URL.Query().Get("primary"))
	if !allowedCountries[primary] {
		primary = fallbackCountry
	}
	secondary := strings.ToUpper(r.URL.Query().Get("secondary"))
	if secondary != "" && !allowedCountries[secondary] {
		secondary = fallbackCountry
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var primaryPoints, secondaryPoints []series.Point
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		history, err := s.wb.InflationHistory(gctx, primary)
		if err != nil {
			return err
		}
		primaryPoints = comparePoints(history)
		return nil
	})
	if secondary != "" {
		g.Go(func() error {
			history, err := s.wb.InflationHistory(gctx, secondary)
			if err != nil {
				return err
			}
			secondaryPoints = comparePoints(history)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("inflation compare error: %v", err)
		writeError(w, http.StatusInternalServerError, "Unable to load inflation data")
		return
	}

	merged := series.Merge(primaryPoints, secondaryPoints)
	if merged == nil {
		merged = []series.MergedPoint{}
	}

	writeJSON(w, http.StatusOK, inflationCompareResponse{
		Primary:   primary,
		Secondary: secondary,
		Series:    merged,
	})
}

// comparePoints reshapes a raw history into an ascending series capped
// to the comparison window.
func comparePoints(history []models.YearValue) []series.Point {
	points := make([]series.Point, 0, len(history))
	for _, yv := range history {
		points = append(points, series.Point{Period: yv.Year, Value: yv.Value})
	}
	series.SortAscending(points)
	return series.Tail(points, compareYears)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	stocks, stocksErr := s.stocks.DailyCloses(ctx)
	crypto, cryptoErr := s.crypto.DailyCloses(ctx)
	if stocksErr != nil || cryptoErr != nil {
		log.Printf("market provider error: stocks=%v crypto=%v", stocksErr, cryptoErr)
		writeError(w, http.StatusInternalServerError, "Error from market data providers.")
		return
	}
	if len(stocks) == 0 && len(crypto) == 0 {
		writeError(w, http.StatusInternalServerError,
			"No market data available from providers. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, models.MarketData{
		DevStocks: models.MarketSeries{Symbol: datasource.StooqSymbol, Series: stocks},
		Crypto:    models.MarketSeries{Symbol: datasource.CoinGeckoSymbol, Series: crypto},
	})
}

// miniDashboardResponse is the body for GET /api/v1/mini-dashboard.
type miniDashboardResponse struct {
	Items []models.DashboardItem `json:"items"`
}

func (s *Server) handleMiniDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	items := s.dash.MiniDashboard(ctx)

	s.wsHub.Broadcast(WSMessage{
		Type: "dashboard_refresh",
		Data: miniDashboardResponse{Items: items},
	})

	writeJSON(w, http.StatusOK, miniDashboardResponse{Items: items})
}

func (s *Server) handleUKMacro(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, s.dash.UKMacro(ctx))
}

// newsResponse is the body for GET /api/v1/news.
type newsResponse struct {
	Items []models.NewsItem `json:"items"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	items, err := s.news.Headlines(ctx, 20)
	if err != nil {
		log.Printf("news error: %v", err)
		writeError(w, http.StatusInternalServerError, "Unable to load headlines")
		return
	}
	if items == nil {
		items = []models.NewsItem{}
	}

	writeJSON(w, http.StatusOK, newsResponse{Items: items})
}

// factsResponse is the body for GET /api/v1/facts.
type factsResponse struct {
	Facts []string `json:"facts"`
}

func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factsResponse{Facts: s.facts.All()})
}
