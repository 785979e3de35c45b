package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tradelab/macross/internal/backtest"
)

// Minimal CSV contract for downstream consumers (spreadsheets, plotting
// tools). This package is the only place the engine's output touches disk.

func WriteEquityCurveFile(path string, curve []backtest.EquityPoint) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteEquityCurve(w, curve)
	})
}

func WriteEquityCurve(w io.Writer, curve []backtest.EquityPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"timestamp", "equity"}); err != nil {
		return err
	}
	for _, pt := range curve {
		if err := cw.Write([]string{
			pt.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			formatF(pt.Equity),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteTradesFile(path string, res *backtest.Results) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteTrades(w, res)
	})
}

func WriteTrades(w io.Writer, res *backtest.Results) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{
		"symbol", "entry_time", "exit_time", "entry", "exit", "qty", "pnl", "return_pct",
	}); err != nil {
		return err
	}
	for _, t := range res.Trades {
		if err := cw.Write([]string{
			res.Symbol,
			t.EntryTime.Format("2006-01-02T15:04:05Z07:00"),
			t.ExitTime.Format("2006-01-02T15:04:05Z07:00"),
			formatF(t.EntryPrice), formatF(t.ExitPrice), formatF(t.Quantity),
			formatF(t.PnL), formatF(t.PnLPercent),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReports emits one row per symbol, mirroring the metrics table the
// strategy has always produced.
func WriteReports(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{
		"symbol", "annualized_return", "annualized_volatility", "sharpe_ratio",
		"max_drawdown", "final_equity", "buy_hold_annualized",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{
			row.Symbol,
			formatF(row.Report.AnnualizedReturn),
			formatF(row.Report.AnnualizedVolatility),
			formatF(row.Report.SharpeRatio),
			formatF(row.Report.MaxDrawdown),
			formatF(row.Report.FinalEquity),
			formatF(row.BuyHoldAnnualized),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteReportsFile(path string, rows []ReportRow) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteReports(w, rows)
	})
}

type ReportRow struct {
	Symbol            string
	Report            *backtest.Report
	BuyHoldAnnualized float64
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
