package backtest

import (
	"fmt"

	"github.com/tradelab/macross/internal/config"
	"github.com/tradelab/macross/internal/logging"
	"github.com/tradelab/macross/internal/portfolio"
	"github.com/tradelab/macross/internal/strategy"
	"github.com/tradelab/macross/internal/types"
)

var engineLog = logging.New("engine")

// Engine runs one crossover backtest over one price series. A run is a
// deterministic batch computation: same bars and config, same equity curve,
// bit for bit.
type Engine struct {
	bars []types.Bar
	cfg  config.Config
}

// NewEngine validates the configuration against the series before anything
// runs. Parameter problems surface here, never mid-run.
func NewEngine(bars []types.Bar, cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bars) < cfg.LongWindow {
		return nil, &types.ConfigError{
			Field:  "long_window",
			Value:  cfg.LongWindow,
			Reason: fmt.Sprintf("exceeds series length %d", len(bars)),
		}
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("price series timestamps must be strictly increasing: bar %d (%s) does not follow bar %d (%s)",
				i, bars[i].Timestamp, i-1, bars[i-1].Timestamp)
		}
	}

	return &Engine{bars: bars, cfg: cfg}, nil
}

// Run executes the simulation. Per bar, in order: generate the signal from
// the averages up to and including this close, mark the position to market,
// size the action, apply it to the portfolio, and append the equity point.
func (e *Engine) Run() (*Results, error) {
	cross, err := strategy.NewCrossover(e.cfg.ShortWindow, e.cfg.LongWindow)
	if err != nil {
		return nil, err
	}
	sizer, err := strategy.NewSizer(e.cfg.RiskPerTrade, e.cfg.VolFloor, e.cfg.FractionalShares)
	if err != nil {
		return nil, err
	}
	vol := strategy.NewRollingVol(e.cfg.VolLookback)
	pf := portfolio.New(e.cfg.InitialCapital, !e.cfg.FractionalShares)

	engineLog.Info("Starting backtest", "bars", len(e.bars), "initial_capital", e.cfg.InitialCapital)

	curve := make([]EquityPoint, 0, len(e.bars))
	for i, bar := range e.bars {
		action := cross.Update(bar.Close)
		vol.Update(bar.Close)

		equity := pf.Equity(bar.Close)
		order := sizer.Size(action, vol, pf.Cash, equity, bar.Close)

		switch order.Action {
		case types.BUY:
			pf.Buy(order.Quantity, order.Price, bar.Timestamp)
		case types.SELL:
			pf.SellAll(order.Price, bar.Timestamp)
		}

		curve = append(curve, EquityPoint{Timestamp: bar.Timestamp, Equity: pf.Equity(bar.Close)})
		engineLog.Debug("Bar processed", "index", i, "close", bar.Close, "action", order.Action, "equity", curve[i].Equity)
	}

	res := &Results{
		InitialCapital: e.cfg.InitialCapital,
		FinalEquity:    curve[len(curve)-1].Equity,
		EquityCurve:    curve,
		Trades:         pf.Trades(),
		OpenQuantity:   pf.Quantity,
	}
	res.BuyHoldAnnualized = e.buyHoldAnnualized()
	return res, nil
}

// buyHoldAnnualized is the annualized return of simply holding the asset
// over the same bars, reported next to the strategy for comparison.
func (e *Engine) buyHoldAnnualized() float64 {
	prices := make([]EquityPoint, len(e.bars))
	for i, bar := range e.bars {
		prices[i] = EquityPoint{Timestamp: bar.Timestamp, Equity: bar.Close}
	}
	rep, err := Analyze(prices, e.cfg.PeriodsPerYear, e.cfg.RiskFreeRate)
	if err != nil {
		return 0
	}
	return rep.AnnualizedReturn
}
