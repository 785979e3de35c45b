package strategy

import (
	"github.com/tradelab/macross/internal/logging"
	"github.com/tradelab/macross/internal/types"
)

var crossLog = logging.New("cross")

// Crossover emits BUY when the short moving average crosses above the long
// one between consecutive bars, SELL on the opposite crossing, and HOLD
// otherwise. A tie counts as "not above", so touching the long average never
// triggers a BUY by itself. During warmup every bar is HOLD.
type Crossover struct {
	short *SMA
	long  *SMA

	// wasAbove starts false: the warmup period counts as "not above", so
	// a series that is already trending up fires its BUY on the first bar
	// where both averages exist.
	wasAbove bool
}

// NewCrossover builds a crossover generator for shortWindow < longWindow.
func NewCrossover(shortWindow, longWindow int) (*Crossover, error) {
	if shortWindow <= 0 {
		return nil, &types.ConfigError{Field: "shortWindow", Value: shortWindow, Reason: "must be positive"}
	}
	if longWindow <= 0 {
		return nil, &types.ConfigError{Field: "longWindow", Value: longWindow, Reason: "must be positive"}
	}
	if shortWindow >= longWindow {
		return nil, &types.ConfigError{Field: "shortWindow", Value: shortWindow, Reason: "must be less than longWindow"}
	}

	return &Crossover{
		short: NewSMA(shortWindow),
		long:  NewSMA(longWindow),
	}, nil
}

// Update feeds the next close price and returns the signal for that bar.
func (c *Crossover) Update(price float64) types.Action {
	c.short.Update(price)
	c.long.Update(price)

	if !IndicatorsReady(c.short, c.long) {
		return types.HOLD
	}

	above := c.short.Value() > c.long.Value()

	action := types.HOLD
	switch {
	case above && !c.wasAbove:
		action = types.BUY
	case !above && c.wasAbove:
		action = types.SELL
	}
	c.wasAbove = above

	if action != types.HOLD {
		crossLog.Info("Crossover fired", "action", action, "short", c.short.Value(), "long", c.long.Value(), "price", price)
	}
	return action
}
