package services

import (
	"errors"

	"github.com/arzex-lab/exchange/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletService is the ledger over per-account wallets. Every account owns
// exactly one wallet, provisioned lazily on first access.
type WalletService interface {
	GetOrCreateWallet(accountID string) (*models.Wallet, error)
	GetBalance(walletID, coinID uint) (*models.WalletBalance, error)
	CheckBalance(walletID, coinID uint, quantity decimal.Decimal) (bool, error)
	Deposit(accountID string, coin models.Coin, quantity decimal.Decimal) error
	Withdraw(accountID string, coinID uint, quantity decimal.Decimal) (bool, error)
}

type walletService struct {
	db *gorm.DB
	// zero-quantity balance rows created for every new wallet
	platformSymbols []string
}

func NewWalletService(db *gorm.DB, platformSymbols []string) WalletService {
	return &walletService{db: db, platformSymbols: platformSymbols}
}

func (w *walletService) GetOrCreateWallet(accountID string) (*models.Wallet, error) {
	var wallet *models.Wallet
	err := runInTransaction(w.db, func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, accountID, w.platformSymbols)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (w *walletService) GetBalance(walletID, coinID uint) (*models.WalletBalance, error) {
	var balance models.WalletBalance
	err := w.db.Preload("Coin").
		Where("wallet_id = ? AND coin_id = ?", walletID, coinID).
		First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (w *walletService) CheckBalance(walletID, coinID uint, quantity decimal.Decimal) (bool, error) {
	balance, err := w.GetBalance(walletID, coinID)
	if err != nil {
		return false, err
	}
	if balance == nil {
		return false, nil
	}
	return quantity.LessThanOrEqual(balance.Quantity), nil
}

func (w *walletService) Deposit(accountID string, coin models.Coin, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	return runInTransaction(w.db, func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, accountID, w.platformSymbols)
		if err != nil {
			return err
		}
		wallet.Deposit(coin, quantity)
		return saveBalances(tx, wallet)
	})
}

// Withdraw subtracts quantity from the account's balance of the given coin.
// It fails only when the wallet has no balance row for the coin; sufficiency
// is the caller's responsibility via CheckBalance.
func (w *walletService) Withdraw(accountID string, coinID uint, quantity decimal.Decimal) (bool, error) {
	withdrawn := false
	err := runInTransaction(w.db, func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, accountID, w.platformSymbols)
		if err != nil {
			return err
		}
		if !wallet.Withdraw(coinID, quantity) {
			return nil
		}
		withdrawn = true
		return saveBalances(tx, wallet)
	})
	if err != nil {
		return false, err
	}
	return withdrawn, nil
}

// getOrCreateWallet performs an atomic insert-or-ignore against the unique
// index on account_id, then re-reads the row with balances. A concurrent
// first access loses the insert and simply reads the winner's row.
func getOrCreateWallet(tx *gorm.DB, accountID string, platformSymbols []string) (*models.Wallet, error) {
	wallet := &models.Wallet{AccountID: accountID}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoNothing: true,
	}).Create(wallet)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected > 0 && len(platformSymbols) > 0 {
		var coins []models.Coin
		if err := tx.Where("symbol IN ?", platformSymbols).Find(&coins).Error; err != nil {
			return nil, err
		}
		for _, coin := range coins {
			balance := models.WalletBalance{
				WalletID: wallet.ID,
				CoinID:   coin.ID,
				Quantity: decimal.Zero,
			}
			if err := tx.Create(&balance).Error; err != nil {
				return nil, err
			}
		}
	}

	var out models.Wallet
	err := tx.Preload("Balances.Coin").
		Where("account_id = ?", accountID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lockWallet provisions the wallet if needed and takes an exclusive update
// lock on its row. The wallet row serves as the lock for its balance rows.
func lockWallet(tx *gorm.DB, accountID string, platformSymbols []string) (*models.Wallet, error) {
	if _, err := getOrCreateWallet(tx, accountID, platformSymbols); err != nil {
		return nil, err
	}
	var wallet models.Wallet
	err := withUpdateLock(tx).
		Preload("Balances.Coin").
		Where("account_id = ?", accountID).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// saveBalances persists the wallet's in-memory balance mutations: new rows
// are inserted, existing rows get their quantity updated.
func saveBalances(tx *gorm.DB, wallet *models.Wallet) error {
	for i := range wallet.Balances {
		balance := &wallet.Balances[i]
		if balance.ID == 0 {
			balance.WalletID = wallet.ID
			if err := tx.Omit("Coin").Create(balance).Error; err != nil {
				return err
			}
			continue
		}
		err := tx.Model(&models.WalletBalance{}).
			Where("id = ?", balance.ID).
			Update("quantity", balance.Quantity).Error
		if err != nil {
			return err
		}
	}
	return nil
}
