package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is a constant-product liquidity pool over two reserve coins. The
// liquidity coin tracks pool shares as ordinary wallet balances. Identity
// is immutable after creation; only the two reserves mutate.
type Pool struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	Guid            string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"guid"`
	PooledPrimary   decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"pooled_primary"`
	PooledSecondary decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"pooled_secondary"`
	PrimaryCoinID   uint            `gorm:"not null" json:"-"`
	SecondaryCoinID uint            `gorm:"not null" json:"-"`
	LiquidityCoinID uint            `gorm:"not null" json:"-"`
	PrimaryCoin     Coin            `gorm:"foreignKey:PrimaryCoinID" json:"primary_coin"`
	SecondaryCoin   Coin            `gorm:"foreignKey:SecondaryCoinID" json:"secondary_coin"`
	LiquidityCoin   Coin            `gorm:"foreignKey:LiquidityCoinID" json:"liquidity_coin"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Price is the pool's instantaneous price, expressed as secondary reserve
// over primary reserve and rounded to the ledger's 8 fractional digits.
func (p *Pool) Price() decimal.Decimal {
	return p.PooledSecondary.Div(p.PooledPrimary).Round(8)
}
