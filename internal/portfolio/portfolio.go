package portfolio

import (
	"fmt"
	"math"
	"time"

	"github.com/tradelab/macross/internal/logging"
)

var pfLog = logging.New("portfolio")

// Portfolio is the long-only accounting state advanced one bar at a time.
// Cash never goes negative: a buy that exceeds available cash is shrunk to
// what the cash covers, never rejected with an error.
type Portfolio struct {
	Cash     float64
	Quantity float64

	avgEntry    float64
	entryTime   time.Time
	wholeShares bool
	trades      []Trade
}

// Trade is one completed round trip (entry at the volume-weighted average
// price of its fills, exit of the full position).
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	PnLPercent float64
}

func (t Trade) String() string {
	return fmt.Sprintf("LONG x%.2f | Entry: %.4f @ %s | Exit: %.4f @ %s | P&L: %.2f",
		t.Quantity,
		t.EntryPrice,
		t.EntryTime.Format("2006-01-02"),
		t.ExitPrice,
		t.ExitTime.Format("2006-01-02"),
		t.PnL,
	)
}

func New(initialCapital float64, wholeShares bool) *Portfolio {
	return &Portfolio{
		Cash:        initialCapital,
		wholeShares: wholeShares,
	}
}

// Buy fills up to qty shares at price, shrinking to what cash covers.
// Returns the filled quantity; 0 means the buy degraded to a no-op.
func (p *Portfolio) Buy(qty, price float64, timestamp time.Time) float64 {
	if qty <= 0 || price <= 0 {
		return 0
	}

	if cost := qty * price; cost > p.Cash {
		qty = p.Cash / price
		if p.wholeShares {
			qty = math.Floor(qty)
		}
		pfLog.Debug("Shrunk buy to available cash", "cash", p.Cash, "price", price, "qty", qty)
	}
	if qty <= 0 {
		return 0
	}

	if p.Quantity == 0 {
		p.entryTime = timestamp
	}
	p.avgEntry = (p.avgEntry*p.Quantity + price*qty) / (p.Quantity + qty)
	p.Quantity += qty
	p.Cash -= qty * price

	pfLog.Info("Bought", "qty", qty, "price", price, "cash", p.Cash, "position", p.Quantity, "timestamp", timestamp)
	return qty
}

// SellAll liquidates the entire position at price, recording the round trip.
// Selling while flat is a no-op.
func (p *Portfolio) SellAll(price float64, timestamp time.Time) float64 {
	if p.Quantity == 0 {
		return 0
	}

	qty := p.Quantity
	pnl := (price - p.avgEntry) * qty
	p.Cash += qty * price
	p.Quantity = 0

	p.trades = append(p.trades, Trade{
		EntryTime:  p.entryTime,
		ExitTime:   timestamp,
		EntryPrice: p.avgEntry,
		ExitPrice:  price,
		Quantity:   qty,
		PnL:        pnl,
		PnLPercent: (price/p.avgEntry - 1) * 100,
	})
	p.avgEntry = 0

	pfLog.Info("Sold", "qty", qty, "price", price, "pnl", pnl, "cash", p.Cash, "timestamp", timestamp)
	return qty
}

// Equity marks the position to market: cash + quantity x price. It is pure
// with respect to portfolio state.
func (p *Portfolio) Equity(price float64) float64 {
	return p.Cash + p.Quantity*price
}

// AvgEntryPrice returns the volume-weighted entry price of the open
// position, 0 when flat.
func (p *Portfolio) AvgEntryPrice() float64 {
	return p.avgEntry
}

// Trades returns the completed round trips in fill order.
func (p *Portfolio) Trades() []Trade {
	return p.trades
}
