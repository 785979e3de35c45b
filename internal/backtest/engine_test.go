package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/macross/internal/config"
	"github.com/tradelab/macross/internal/types"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ShortWindow = 5
	cfg.LongWindow = 20
	cfg.VolLookback = 10
	cfg.InitialCapital = 100000
	return cfg
}

func dailyBars(closes []float64) []types.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{Timestamp: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func constantCloses(price float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func linearCloses(from, to float64, n int) []float64 {
	closes := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range closes {
		closes[i] = from + float64(i)*step
	}
	return closes
}

func TestNewEngine_RejectsShortSeries(t *testing.T) {
	cfg := testConfig()
	bars := dailyBars(constantCloses(100, 10)) // shorter than the 20-bar long window

	_, err := NewEngine(bars, cfg)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "long_window", cfgErr.Field)
}

func TestNewEngine_RejectsUnorderedTimestamps(t *testing.T) {
	bars := dailyBars(constantCloses(100, 30))
	bars[10].Timestamp = bars[9].Timestamp // duplicate

	_, err := NewEngine(bars, testConfig())
	assert.ErrorContains(t, err, "strictly increasing")
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RiskPerTrade = 2.0

	_, err := NewEngine(dailyBars(constantCloses(100, 60)), cfg)

	var cfgErr *types.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRun_ConstantPrice(t *testing.T) {
	// Both averages equal the price everywhere, so no crossover ever
	// fires and the portfolio never trades.
	cfg := testConfig()
	engine, err := NewEngine(dailyBars(constantCloses(100, 60)), cfg)
	require.NoError(t, err)

	res, err := engine.Run()
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Zero(t, res.OpenQuantity)
	assert.Equal(t, cfg.InitialCapital, res.FinalEquity)

	rep, err := res.Report(cfg.PeriodsPerYear, cfg.RiskFreeRate)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.MaxDrawdown)
	assert.Equal(t, 0.0, rep.SharpeRatio, "flat curve has Sharpe 0, not NaN")
}

func TestRun_RisingSeriesBuysOnceAndProfits(t *testing.T) {
	cfg := testConfig()
	engine, err := NewEngine(dailyBars(linearCloses(100, 200, 50)), cfg)
	require.NoError(t, err)

	res, err := engine.Run()
	require.NoError(t, err)

	assert.Empty(t, res.Trades, "no SELL ever fires, so no round trip completes")
	assert.Greater(t, res.OpenQuantity, 0.0, "the single BUY crossover opened a position")
	assert.Greater(t, res.FinalEquity, cfg.InitialCapital)
}

func TestRun_EquityCurveCoversEveryBar(t *testing.T) {
	bars := dailyBars(linearCloses(100, 200, 50))
	engine, err := NewEngine(bars, testConfig())
	require.NoError(t, err)

	res, err := engine.Run()
	require.NoError(t, err)

	require.Len(t, res.EquityCurve, len(bars))
	for i, pt := range res.EquityCurve {
		assert.Equal(t, bars[i].Timestamp, pt.Timestamp)
	}
}

func TestRun_Deterministic(t *testing.T) {
	closes := append(linearCloses(100, 150, 40), linearCloses(150, 90, 40)...)
	bars := dailyBars(closes)

	engine1, err := NewEngine(bars, testConfig())
	require.NoError(t, err)
	engine2, err := NewEngine(bars, testConfig())
	require.NoError(t, err)

	res1, err := engine1.Run()
	require.NoError(t, err)
	res2, err := engine2.Run()
	require.NoError(t, err)

	assert.Equal(t, res1.EquityCurve, res2.EquityCurve, "same inputs, bit-identical curve")
	assert.Equal(t, res1.Trades, res2.Trades)
}

func TestRun_RoundTripConservesValue(t *testing.T) {
	// Rise then fall: one BUY, one SELL. Equity at every bar must equal
	// initial capital plus accumulated trade P&L marked to market, which
	// the final point summarizes.
	closes := append(linearCloses(100, 150, 40), linearCloses(150, 90, 40)...)
	engine, err := NewEngine(dailyBars(closes), testConfig())
	require.NoError(t, err)

	res, err := engine.Run()
	require.NoError(t, err)

	require.NotEmpty(t, res.Trades)
	assert.Zero(t, res.OpenQuantity, "the down-cross liquidated the position")

	pnl := 0.0
	for _, trade := range res.Trades {
		pnl += trade.PnL
	}
	assert.InDelta(t, res.InitialCapital+pnl, res.FinalEquity, 1e-9)
}

func TestRun_ReusableAndIndependent(t *testing.T) {
	engine, err := NewEngine(dailyBars(linearCloses(100, 200, 50)), testConfig())
	require.NoError(t, err)

	res1, err := engine.Run()
	require.NoError(t, err)
	res2, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, res1.EquityCurve, res2.EquityCurve, "runs carry no state between them")
}

func TestRun_BuyHoldBenchmark(t *testing.T) {
	engine, err := NewEngine(dailyBars(linearCloses(100, 200, 50)), testConfig())
	require.NoError(t, err)

	res, err := engine.Run()
	require.NoError(t, err)

	assert.Greater(t, res.BuyHoldAnnualized, 0.0, "a rising series has a positive buy-and-hold return")
}
