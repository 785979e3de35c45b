package strategy

import (
	"math"

	"github.com/tradelab/macross/internal/logging"
	"github.com/tradelab/macross/internal/types"
)

var sizerLog = logging.New("sizer")

// Sizer converts signals into share quantities. On a BUY it targets a
// notional of riskPerTrade x equity, scaled inversely by current volatility,
// then caps at the cash actually available (long-only, no leverage). A SELL
// always means liquidate everything, so it carries no quantity here.
type Sizer struct {
	riskPerTrade float64
	volFloor     float64
	fractional   bool
}

func NewSizer(riskPerTrade, volFloor float64, fractional bool) (*Sizer, error) {
	if riskPerTrade <= 0 || riskPerTrade > 1 {
		return nil, &types.ConfigError{Field: "riskPerTrade", Value: riskPerTrade, Reason: "must be in (0, 1]"}
	}
	if volFloor <= 0 {
		return nil, &types.ConfigError{Field: "volFloor", Value: volFloor, Reason: "must be positive"}
	}
	return &Sizer{
		riskPerTrade: riskPerTrade,
		volFloor:     volFloor,
		fractional:   fractional,
	}, nil
}

// Size turns a signal into an order against the current portfolio snapshot.
// A BUY before the volatility estimate is ready degrades to HOLD rather than
// trading on an undefined estimate.
func (s *Sizer) Size(action types.Action, vol *RollingVol, cash, equity, price float64) types.Order {
	switch action {
	case types.SELL:
		return types.Order{Action: types.SELL, Price: price}
	case types.BUY:
	default:
		return types.Order{Action: types.HOLD, Price: price}
	}

	if !vol.Ready() {
		sizerLog.Debug("Volatility not ready, treating BUY as HOLD", "price", price)
		return types.Order{Action: types.HOLD, Price: price}
	}

	volatility := math.Max(vol.Value(), s.volFloor)
	notional := s.riskPerTrade * equity / volatility

	qty := notional / price
	if maxAffordable := cash / price; qty > maxAffordable {
		qty = maxAffordable
	}
	if !s.fractional {
		qty = math.Floor(qty)
	}

	sizerLog.Debug("Sized BUY", "notional", notional, "vol", volatility, "price", price, "cash", cash, "equity", equity, "qty", qty)

	if qty <= 0 {
		return types.Order{Action: types.HOLD, Price: price}
	}
	return types.Order{Action: types.BUY, Price: price, Quantity: qty}
}
