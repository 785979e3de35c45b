package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tradelab/macross/internal/backtest"
	"github.com/tradelab/macross/internal/config"
	"github.com/tradelab/macross/internal/export"
	"github.com/tradelab/macross/internal/marketdata"
)

func main() {
	dataPath := flag.String("data", "", "CSV of price observations (single or multi symbol)")
	configPath := flag.String("config", "", "YAML config file; built-in defaults when empty")
	outPrefix := flag.String("out", "", "when set, write <out>_reports.csv and per-symbol trade/equity CSVs")
	showTrades := flag.Bool("trades", false, "print the trade list per symbol")
	flag.Parse()

	if *dataPath == "" {
		slog.Error("missing -data flag")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
	}

	series, err := marketdata.Load(*dataPath)
	if err != nil {
		slog.Error("Failed to load price data", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded price data", "symbols", len(series))

	results, err := backtest.RunAll(series, cfg)
	if err != nil {
		// Partial failures: report them, keep the symbols that ran.
		slog.Error("Some symbols failed", "error", err)
	}
	if len(results) == 0 {
		os.Exit(1)
	}

	var rows []export.ReportRow
	for _, res := range results {
		rep, err := res.Report(cfg.PeriodsPerYear, cfg.RiskFreeRate)
		if err != nil {
			slog.Error("Failed to analyze equity curve", "symbol", res.Symbol, "error", err)
			continue
		}

		fmt.Printf("\n########## %s ##########\n", res.Symbol)
		rep.Print()
		fmt.Printf("Buy & Hold Return:     %.2f%%\n", res.BuyHoldAnnualized*100)
		res.Calculate().Print()
		if *showTrades {
			res.PrintTrades()
		}

		rows = append(rows, export.ReportRow{
			Symbol:            res.Symbol,
			Report:            rep,
			BuyHoldAnnualized: res.BuyHoldAnnualized,
		})

		if *outPrefix != "" {
			base := *outPrefix + "_" + res.Symbol
			if err := export.WriteEquityCurveFile(base+"_equity.csv", res.EquityCurve); err != nil {
				slog.Error("Failed to write equity curve", "symbol", res.Symbol, "error", err)
			}
			if err := export.WriteTradesFile(base+"_trades.csv", res); err != nil {
				slog.Error("Failed to write trades", "symbol", res.Symbol, "error", err)
			}
		}
	}

	if *outPrefix != "" {
		path := *outPrefix + "_reports.csv"
		if err := export.WriteReportsFile(path, rows); err != nil {
			slog.Error("Failed to write reports", "error", err)
			os.Exit(1)
		}
		slog.Info("Wrote report table", "path", path, "symbols", len(rows))
	}
}
