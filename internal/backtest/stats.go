package backtest

import (
	"fmt"
	"time"
)

// Statistics summarizes the trade log of a run: counts, win rate, profit
// factor. Risk/return metrics over the equity curve live in Report.
type Statistics struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64

	TotalPnL     float64
	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64

	AvgWin        float64
	AvgLoss       float64
	ExpectedValue float64

	AvgHoldingTime time.Duration
}

// Calculate computes trade statistics, caching the result on the Results.
func (r *Results) Calculate() *Statistics {
	if r.stats != nil {
		return r.stats
	}

	stats := &Statistics{
		TotalTrades: len(r.Trades),
		TotalPnL:    r.FinalEquity - r.InitialCapital,
	}

	if len(r.Trades) == 0 {
		r.stats = stats
		return stats
	}

	var totalWin, totalLoss float64
	var totalHeld time.Duration

	for _, trade := range r.Trades {
		if trade.PnL > 0 {
			stats.WinningTrades++
			totalWin += trade.PnL
		} else if trade.PnL < 0 {
			stats.LosingTrades++
			totalLoss += trade.PnL // already negative
		}
		totalHeld += trade.ExitTime.Sub(trade.EntryTime)
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	stats.GrossProfit = totalWin
	stats.GrossLoss = totalLoss

	if totalLoss != 0 {
		stats.ProfitFactor = totalWin / -totalLoss
	}
	if stats.WinningTrades > 0 {
		stats.AvgWin = totalWin / float64(stats.WinningTrades)
	}
	if stats.LosingTrades > 0 {
		stats.AvgLoss = totalLoss / float64(stats.LosingTrades)
	}
	stats.ExpectedValue = stats.TotalPnL / float64(stats.TotalTrades)
	stats.AvgHoldingTime = totalHeld / time.Duration(stats.TotalTrades)

	r.stats = stats
	return stats
}

func (s *Statistics) Print() {
	fmt.Println("\n=== Trade Statistics ===")
	fmt.Printf("Total Trades:     %d\n", s.TotalTrades)
	fmt.Printf("Winning Trades:   %d (%.2f%%)\n", s.WinningTrades, s.WinRate)
	fmt.Printf("Losing Trades:    %d\n\n", s.LosingTrades)

	fmt.Printf("Total P&L:        %.2f\n", s.TotalPnL)
	fmt.Printf("Gross Profit:     %.2f\n", s.GrossProfit)
	fmt.Printf("Gross Loss:       %.2f\n", s.GrossLoss)
	fmt.Printf("Profit Factor:    %.2f\n\n", s.ProfitFactor)

	fmt.Printf("Avg Win:          %.2f\n", s.AvgWin)
	fmt.Printf("Avg Loss:         %.2f\n", s.AvgLoss)
	fmt.Printf("Expected Value:   %.2f per trade\n", s.ExpectedValue)
	fmt.Printf("Avg Holding Time: %s\n", s.AvgHoldingTime.Round(time.Hour))
}

func (r *Results) PrintTrades() {
	fmt.Println("\n=== Trade List ===")
	for i, trade := range r.Trades {
		fmt.Printf("#%d | %s\n", i+1, trade)
	}
	if r.OpenQuantity > 0 {
		fmt.Printf("(open position of %.2f shares held at end, marked to market)\n", r.OpenQuantity)
	}
}
