package database

import (
	"github.com/arzex-lab/exchange/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlatformCoinSymbols are the coins every new wallet starts with a
// zero-quantity balance row for.
var PlatformCoinSymbols = []string{"ARZ", "AYST"}

// Seed creates the platform coins and a default ARZ/AYST pool when the
// database is empty. It is idempotent across restarts.
func (d *Database) Seed() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		coins := []models.Coin{
			{Name: "Arz", Symbol: "ARZ"},
			{Name: "Amethyst", Symbol: "AYST"},
			{Name: "Arz Amethyst LP Share", Symbol: "ARZLP"},
		}
		for i := range coins {
			err := tx.Where(models.Coin{Symbol: coins[i].Symbol}).
				FirstOrCreate(&coins[i]).Error
			if err != nil {
				return err
			}
		}

		var poolCount int64
		if err := tx.Model(&models.Pool{}).Count(&poolCount).Error; err != nil {
			return err
		}
		if poolCount > 0 {
			return nil
		}

		pool := models.Pool{
			Guid:            uuid.NewString(),
			PooledPrimary:   decimal.NewFromInt(1000),
			PooledSecondary: decimal.NewFromInt(1000),
			PrimaryCoinID:   coins[0].ID,
			SecondaryCoinID: coins[1].ID,
			LiquidityCoinID: coins[2].ID,
		}
		return tx.Create(&pool).Error
	})
}
