package models

import "time"

// Coin represents a tradable asset. Coins are immutable once referenced by
// a pool or a wallet balance.
type Coin struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:25;not null" json:"name"`
	Symbol    string    `gorm:"size:5;uniqueIndex;not null" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
