package backtest

import (
	"fmt"
	"math"

	"github.com/tradelab/macross/internal/types"
)

// Report holds the risk-adjusted performance of a finished equity curve.
// It is a value computed once; recomputing over the same curve yields the
// same numbers.
type Report struct {
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          float64
	FinalEquity          float64
}

// Analyze computes the performance report for an equity curve sampled at
// periodsPerYear periods a year. The curve needs at least two points to
// define a return.
func Analyze(curve []EquityPoint, periodsPerYear, riskFreeRate float64) (*Report, error) {
	if len(curve) < 2 {
		return nil, &types.InsufficientDataError{What: "equity curve", Need: 2, Have: len(curve)}
	}

	returns := make([]float64, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		returns[i-1] = curve[i].Equity/curve[i-1].Equity - 1
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	if len(returns) > 1 {
		variance /= float64(len(returns) - 1)
	}

	annRet := math.Pow(1+mean, periodsPerYear) - 1
	annVol := math.Sqrt(variance) * math.Sqrt(periodsPerYear)

	// A flat curve has zero volatility; Sharpe is defined as 0 there,
	// never a division failure.
	sharpe := 0.0
	if annVol > 0 {
		sharpe = (annRet - riskFreeRate) / annVol
	}

	return &Report{
		AnnualizedReturn:     annRet,
		AnnualizedVolatility: annVol,
		SharpeRatio:          sharpe,
		MaxDrawdown:          maxDrawdown(curve),
		FinalEquity:          curve[len(curve)-1].Equity,
	}, nil
}

// maxDrawdown is the largest peak-to-trough decline as a fraction of the
// peak, found in one pass over the running peak.
func maxDrawdown(curve []EquityPoint) float64 {
	peak := curve[0].Equity
	maxDD := 0.0
	for _, pt := range curve {
		if pt.Equity > peak {
			peak = pt.Equity
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - pt.Equity) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Report computes the performance metrics for this run's equity curve.
func (r *Results) Report(periodsPerYear, riskFreeRate float64) (*Report, error) {
	return Analyze(r.EquityCurve, periodsPerYear, riskFreeRate)
}

func (rep *Report) Print() {
	fmt.Println("\n=== Performance Report ===")
	fmt.Printf("Final Equity:          %.2f\n", rep.FinalEquity)
	fmt.Printf("Annualized Return:     %.2f%%\n", rep.AnnualizedReturn*100)
	fmt.Printf("Annualized Volatility: %.2f%%\n", rep.AnnualizedVolatility*100)
	fmt.Printf("Sharpe Ratio:          %.2f\n", rep.SharpeRatio)
	fmt.Printf("Max Drawdown:          %.2f%%\n", rep.MaxDrawdown*100)
}
