// Finance Lab — educational economics & personal finance API
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zaskhakhalfani/finance-lab/api"
	"github.com/zaskhakhalfani/finance-lab/internal/config"
	"github.com/zaskhakhalfani/finance-lab/internal/dashboard"
	"github.com/zaskhakhalfani/finance-lab/internal/datasource"
	"github.com/zaskhakhalfani/finance-lab/internal/simulate"
	"github.com/zaskhakhalfani/finance-lab/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finlab",
	Short: "Finance Lab — educational economics & personal finance API",
	Long: `Finance Lab
A Go backend for an educational finance site: compound interest and
portfolio simulators, an AI economics tutor, and live macro data from
the World Bank, Stooq, CoinGecko, and the Bank of England.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(macroCmd)
	rootCmd.AddCommand(scenarioCmd)

	scenarioCmd.Flags().Float64("amount", 1000, "starting amount in £")
	scenarioCmd.Flags().Int("years", 10, "horizon in years")
	scenarioCmd.Flags().Float64("inflation", 0.05, "annual inflation rate (fraction)")
	scenarioCmd.Flags().Float64("bank-rate", 0.005, "savings account rate (fraction)")
	scenarioCmd.Flags().Float64("return", 0.06, "invested annual return (fraction)")
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Finance Lab %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("🌐 Starting Finance Lab API server on %s\n", addr)
		return api.NewServer(cfg).ListenAndServe(addr)
	},
}

// --- Macro Command ---

var macroCmd = &cobra.Command{
	Use:   "macro",
	Short: "Print the current UK macro snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := dashboard.NewService(
			datasource.NewWorldBank(cfg.Providers.WorldBankBaseURL),
			datasource.NewBankRate(cfg.Providers.BankRateURL),
			cfg.Dashboard,
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		snap := svc.UKMacro(ctx)

		// World Bank observations arrive in percentage points, so
		// divide back to a fraction for the formatter.
		fmt.Println("UK macro snapshot")
		if snap.Inflation != nil {
			fmt.Printf("  Inflation (CPI):  %s (%d)\n", utils.FormatPercent(snap.Inflation.Value/100, 1), snap.Inflation.Year)
		} else {
			fmt.Println("  Inflation (CPI):  unavailable")
		}
		if snap.GDP != nil {
			fmt.Printf("  GDP growth:       %s (%d)\n", utils.FormatPercent(snap.GDP.Value/100, 1), snap.GDP.Year)
		} else {
			fmt.Println("  GDP growth:       unavailable")
		}
		if snap.Unemployment != nil {
			fmt.Printf("  Unemployment:     %s (%d)\n", utils.FormatPercent(snap.Unemployment.Value/100, 1), snap.Unemployment.Year)
		} else {
			fmt.Println("  Unemployment:     unavailable")
		}
		if snap.BankRate != nil {
			fmt.Printf("  Bank Rate:        %s (%s)\n", utils.FormatPercent(snap.BankRate.Value/100, 2), snap.BankRate.Source)
		} else {
			fmt.Println("  Bank Rate:        unavailable")
		}
		return nil
	},
}

// --- Scenario Command ---

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the cash-vs-investing scenario from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")
		years, _ := cmd.Flags().GetInt("years")
		inflation, _ := cmd.Flags().GetFloat64("inflation")
		bankRate, _ := cmd.Flags().GetFloat64("bank-rate")
		investReturn, _ := cmd.Flags().GetFloat64("return")

		in := simulate.ScenarioInput{
			StartingAmount: utils.Clamp(amount, 100, 20000),
			Years:          int(utils.Clamp(float64(years), 1, 40)),
			InflationRate:  utils.Clamp(inflation, 0, 0.12),
			BankRate:       utils.Clamp(bankRate, 0, 0.06),
			InvestReturn:   utils.Clamp(investReturn, 0, 0.12),
		}
		result := simulate.ComputeScenario(in)

		fmt.Printf("Starting with %s over %d years (%s inflation):\n",
			utils.FormatGBPExact(in.StartingAmount), in.Years, utils.FormatPercent(in.InflationRate, 1))
		fmt.Printf("  Savings account (%s):   %s nominal, %s real\n",
			utils.FormatPercent(in.BankRate, 1), utils.FormatGBPExact(result.FutureCash), utils.FormatGBPExact(result.RealCash))
		fmt.Printf("  Invested (%s):          %s nominal, %s real\n",
			utils.FormatPercent(in.InvestReturn, 1), utils.FormatGBP(result.FutureInvest), utils.FormatGBP(result.RealInvest))
		return nil
	},
}
