package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// PoolTradeLog is the append-only record of a settled swap. Rows are never
// updated or deleted; they are the sole input to history and chart queries.
type PoolTradeLog struct {
	ID               uint            `gorm:"primaryKey" json:"-"`
	TradeType        TradeType       `gorm:"size:4;not null" json:"trade_type"`
	Time             time.Time       `gorm:"index;not null" json:"time"`
	Price            decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"price"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"quantity_received"`
	CoinReceivedID   uint            `gorm:"not null" json:"-"`
	PoolID           uint            `gorm:"index;not null" json:"-"`
	WalletID         uint            `gorm:"not null" json:"-"`
	CoinReceived     Coin            `gorm:"foreignKey:CoinReceivedID" json:"coin_received"`
}

// FaucetLog records a single faucet claim.
type FaucetLog struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	WalletID    uint            `gorm:"index;not null" json:"-"`
	CoinID      uint            `gorm:"not null" json:"-"`
	ClaimAmount decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"claim_amount"`
	ClaimTime   time.Time       `gorm:"not null" json:"claim_time"`
}
