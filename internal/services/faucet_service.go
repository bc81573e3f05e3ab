package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/arzex-lab/exchange/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FaucetService credits a fixed amount of the platform coin to the caller's
// wallet. No cooldown is enforced.
type FaucetService interface {
	Claim(accountID string) (bool, string)
}

type faucetService struct {
	db              *gorm.DB
	claimAmount     decimal.Decimal
	coinSymbol      string
	platformSymbols []string
}

func NewFaucetService(db *gorm.DB, claimAmount decimal.Decimal, coinSymbol string, platformSymbols []string) FaucetService {
	return &faucetService{
		db:              db,
		claimAmount:     claimAmount,
		coinSymbol:      coinSymbol,
		platformSymbols: platformSymbols,
	}
}

func (f *faucetService) Claim(accountID string) (bool, string) {
	err := runInTransaction(f.db, func(tx *gorm.DB) error {
		var coin models.Coin
		err := tx.Where("symbol = ?", f.coinSymbol).First(&coin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCoinNotFound
		}
		if err != nil {
			return err
		}

		wallet, err := lockWallet(tx, accountID, f.platformSymbols)
		if err != nil {
			return err
		}

		wallet.Deposit(coin, f.claimAmount)
		if err := saveBalances(tx, wallet); err != nil {
			return err
		}

		claim := models.FaucetLog{
			WalletID:    wallet.ID,
			CoinID:      coin.ID,
			ClaimAmount: f.claimAmount,
			ClaimTime:   time.Now().UTC(),
		}
		return tx.Create(&claim).Error
	})

	if errors.Is(err, ErrCoinNotFound) {
		logrus.WithField("symbol", f.coinSymbol).Error("faucet coin missing")
		return false, "Server error when attempting to claim"
	}
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("faucet claim failed")
		return false, fmt.Sprintf("Error claiming %s. Please contact support.", f.coinSymbol)
	}
	return true, fmt.Sprintf("You claimed %s %s!", f.claimAmount.String(), f.coinSymbol)
}
