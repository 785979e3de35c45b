package strategy

import (
	"math"

	"github.com/tradelab/macross/internal/logging"
)

var (
	smaLog = logging.New("sma")
	volLog = logging.New("vol")
)

// SMA - Simple Moving Average
type SMA struct {
	period int
	values []float64
}

func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		values: make([]float64, 0, period),
	}
}

func (s *SMA) Update(price float64) {
	s.values = append(s.values, price)
	if len(s.values) > s.period {
		s.values = s.values[1:]
	}
	smaLog.Debug("SMA updated", "period", s.period, "price", price, "value", s.Value(), "ready", s.Ready())
}

func (s *SMA) Value() float64 {
	if len(s.values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range s.values {
		sum += v
	}
	return sum / float64(len(s.values))
}

// Ready reports whether a full window has been seen. The average is
// undefined before that and callers must not act on it.
func (s *SMA) Ready() bool {
	return len(s.values) >= s.period
}

// RollingVol - rolling sample standard deviation of period-over-period
// returns. Needs lookback+1 prices before it is ready; a constant price
// window yields exactly 0, not an error.
type RollingVol struct {
	lookback  int
	returns   []float64
	prevPrice float64
	havePrev  bool
}

func NewRollingVol(lookback int) *RollingVol {
	return &RollingVol{
		lookback: lookback,
		returns:  make([]float64, 0, lookback),
	}
}

func (v *RollingVol) Update(price float64) {
	if !v.havePrev {
		v.prevPrice = price
		v.havePrev = true
		return
	}

	r := price/v.prevPrice - 1
	v.prevPrice = price

	v.returns = append(v.returns, r)
	if len(v.returns) > v.lookback {
		v.returns = v.returns[1:]
	}
	volLog.Debug("Vol updated", "lookback", v.lookback, "return", r, "value", v.Value(), "ready", v.Ready())
}

// Value returns the sample standard deviation of the windowed returns.
func (v *RollingVol) Value() float64 {
	n := len(v.returns)
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range v.returns {
		mean += r
	}
	mean /= float64(n)

	variance := 0.0
	for _, r := range v.returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(n - 1)

	return math.Sqrt(variance)
}

func (v *RollingVol) Ready() bool {
	return len(v.returns) >= v.lookback
}

type Indicator interface {
	Value() float64
	Ready() bool
}

// IndicatorsReady calls .Ready() on all indicators and returns true if all are ready
func IndicatorsReady(indicators ...Indicator) bool {
	for _, ind := range indicators {
		if !ind.Ready() {
			return false
		}
	}
	return true
}
