package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the per-coin balances of a single account. Exactly one
// wallet exists per account, created lazily on first access.
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	AccountID string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"account_id"`
	Balances  []WalletBalance `gorm:"foreignKey:WalletID" json:"balances"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletBalance is the quantity of one coin held by one wallet. At most one
// row exists per (wallet, coin) pair.
type WalletBalance struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	WalletID  uint            `gorm:"uniqueIndex:idx_wallet_coin;not null" json:"-"`
	CoinID    uint            `gorm:"uniqueIndex:idx_wallet_coin;not null" json:"-"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,8);not null" json:"quantity"`
	Coin      Coin            `gorm:"foreignKey:CoinID" json:"coin"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GetBalance returns the loaded balance row for the given coin, or nil when
// the wallet has never held it. Balances must have been preloaded.
func (w *Wallet) GetBalance(coinID uint) *WalletBalance {
	for i := range w.Balances {
		if w.Balances[i].CoinID == coinID {
			return &w.Balances[i]
		}
	}
	return nil
}

// CheckBalance reports whether the wallet holds at least quantity of the
// given coin.
func (w *Wallet) CheckBalance(coinID uint, quantity decimal.Decimal) bool {
	balance := w.GetBalance(coinID)
	if balance == nil {
		return false
	}
	return quantity.LessThanOrEqual(balance.Quantity)
}

// Deposit adds quantity to the wallet's balance of the given coin, creating
// the balance row in memory when absent. Persistence is the caller's job.
func (w *Wallet) Deposit(coin Coin, quantity decimal.Decimal) {
	balance := w.GetBalance(coin.ID)
	if balance == nil {
		w.Balances = append(w.Balances, WalletBalance{
			WalletID: w.ID,
			CoinID:   coin.ID,
			Coin:     coin,
			Quantity: quantity,
		})
		return
	}
	balance.Quantity = balance.Quantity.Add(quantity)
}

// Withdraw subtracts quantity from the wallet's balance of the given coin.
// It fails only when no balance row exists; it does not re-check
// sufficiency, callers are expected to have used CheckBalance first.
func (w *Wallet) Withdraw(coinID uint, quantity decimal.Decimal) bool {
	balance := w.GetBalance(coinID)
	if balance == nil {
		return false
	}
	balance.Quantity = balance.Quantity.Sub(quantity)
	return true
}
