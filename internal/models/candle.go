package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one OHLC bucket of a pool's trade history.
type Candle struct {
	Time  time.Time       `json:"time"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}
