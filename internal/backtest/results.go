package backtest

import (
	"time"

	"github.com/tradelab/macross/internal/portfolio"
)

// EquityPoint is one sample of total portfolio value: cash plus holdings at
// that bar's close.
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

// Results is everything one run produces. The equity curve covers every bar
// of the input series; Trades are the completed round trips.
type Results struct {
	Symbol         string
	InitialCapital float64
	FinalEquity    float64
	EquityCurve    []EquityPoint
	Trades         []portfolio.Trade

	// OpenQuantity is the position still held at the last bar. It is
	// already marked to market inside FinalEquity.
	OpenQuantity float64

	// BuyHoldAnnualized is the annualized return of holding the raw
	// series over the same period.
	BuyHoldAnnualized float64

	stats *Statistics
}
