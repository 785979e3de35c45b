package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/macross/internal/backtest"
	"github.com/tradelab/macross/internal/portfolio"
)

func TestWriteEquityCurve(t *testing.T) {
	curve := []backtest.EquityPoint{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Equity: 100000},
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Equity: 100250.5},
	}

	var sb strings.Builder
	require.NoError(t, WriteEquityCurve(&sb, curve))

	expected := `timestamp,equity
2024-01-01T00:00:00Z,100000
2024-01-02T00:00:00Z,100250.5
`
	assert.Equal(t, expected, sb.String())
}

func TestWriteTrades(t *testing.T) {
	res := &backtest.Results{
		Symbol: "RELIANCE",
		Trades: []portfolio.Trade{
			{
				EntryTime:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				ExitTime:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				EntryPrice: 2850,
				ExitPrice:  2900,
				Quantity:   10,
				PnL:        500,
				PnLPercent: 1.7543859649122806,
			},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteTrades(&sb, res))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "symbol,entry_time,exit_time,entry,exit,qty,pnl,return_pct", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "RELIANCE,2024-01-05T00:00:00Z,2024-02-01T00:00:00Z,2850,2900,10,500,"))
}

func TestWriteReports(t *testing.T) {
	rows := []ReportRow{
		{
			Symbol: "TCS",
			Report: &backtest.Report{
				AnnualizedReturn:     0.12,
				AnnualizedVolatility: 0.2,
				SharpeRatio:          0.3,
				MaxDrawdown:          0.25,
				FinalEquity:          112000,
			},
			BuyHoldAnnualized: 0.08,
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteReports(&sb, rows))

	expected := `symbol,annualized_return,annualized_volatility,sharpe_ratio,max_drawdown,final_equity,buy_hold_annualized
TCS,0.12,0.2,0.3,0.25,112000,0.08
`
	assert.Equal(t, expected, sb.String())
}
