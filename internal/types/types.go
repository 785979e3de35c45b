package types

import "time"

const (
	BUY  Action = "BUY"
	SELL Action = "SELL"
	HOLD Action = "HOLD"
)

type Action string

// Bar is a single dated price observation. Only Close is required by the
// engine; Open/High/Low/Volume are carried through when the data source
// provides them.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Order is a sized action ready to be applied to the portfolio. Quantity is
// only meaningful for BUY; SELL always liquidates the full position.
type Order struct {
	Action   Action
	Price    float64
	Quantity float64
}
