package services

import (
	"errors"
	"time"

	"github.com/arzex-lab/exchange/internal/models"
	"github.com/arzex-lab/exchange/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// reservePrecision is the fractional precision of the ledger's numeric
// columns (decimal(18,8)). Swap outputs are rounded down to it so repeated
// small trades cannot leak value out of the pool.
const reservePrecision = 8

// TradingService is the AMM engine: swap pricing against constant-product
// pools and liquidity provisioning. Each money-moving call runs a
// Validate -> Price -> Settle cycle inside one transaction.
type TradingService interface {
	GetPools() ([]models.Pool, error)
	GetPoolByGuid(poolGuid string) (*models.Pool, error)
	CreatePool(primary, secondary, liquidity *models.Coin, initialPrimary, initialSecondary decimal.Decimal) (*models.Pool, error)
	AddLiquidity(accountID, poolGuid string, primaryQuantity, secondaryQuantity decimal.Decimal) error
	Buy(accountID, poolGuid string, quantitySold decimal.Decimal) error
	Sell(accountID, poolGuid string, quantitySold decimal.Decimal) error
}

type tradingService struct {
	db              *gorm.DB
	fee             decimal.Decimal
	platformSymbols []string
}

// NewTradingService builds a trading service charging the given fee rate
// (e.g. 0.02) on every swap.
func NewTradingService(db *gorm.DB, fee decimal.Decimal, platformSymbols []string) TradingService {
	return &tradingService{db: db, fee: fee, platformSymbols: platformSymbols}
}

func (t *tradingService) GetPools() ([]models.Pool, error) {
	var pools []models.Pool
	err := t.db.
		Preload("PrimaryCoin").
		Preload("SecondaryCoin").
		Preload("LiquidityCoin").
		Find(&pools).Error
	return pools, err
}

func (t *tradingService) GetPoolByGuid(poolGuid string) (*models.Pool, error) {
	var pool models.Pool
	err := t.db.
		Preload("PrimaryCoin").
		Preload("SecondaryCoin").
		Preload("LiquidityCoin").
		Where("guid = ?", poolGuid).
		First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// CreatePool creates a pool over two distinct reserve coins with strictly
// positive initial reserves and a dedicated liquidity coin.
func (t *tradingService) CreatePool(primary, secondary, liquidity *models.Coin, initialPrimary, initialSecondary decimal.Decimal) (*models.Pool, error) {
	if !initialPrimary.IsPositive() || !initialSecondary.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if primary.ID == secondary.ID {
		return nil, ErrInvalidTrade
	}

	pool := &models.Pool{
		Guid:            uuid.NewString(),
		PooledPrimary:   initialPrimary,
		PooledSecondary: initialSecondary,
		PrimaryCoinID:   primary.ID,
		SecondaryCoinID: secondary.ID,
		LiquidityCoinID: liquidity.ID,
		PrimaryCoin:     *primary,
		SecondaryCoin:   *secondary,
		LiquidityCoin:   *liquidity,
	}
	if err := t.db.Omit("PrimaryCoin", "SecondaryCoin", "LiquidityCoin").Create(pool).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

// Buy sells the pool's secondary coin for its primary coin.
func (t *tradingService) Buy(accountID, poolGuid string, quantitySold decimal.Decimal) error {
	return t.swap(accountID, poolGuid, quantitySold, models.TradeTypeBuy)
}

// Sell sells the pool's primary coin for its secondary coin.
func (t *tradingService) Sell(accountID, poolGuid string, quantitySold decimal.Decimal) error {
	return t.swap(accountID, poolGuid, quantitySold, models.TradeTypeSell)
}

func (t *tradingService) swap(accountID, poolGuid string, quantitySold decimal.Decimal, tradeType models.TradeType) error {
	// A non-positive quantity passes any balance check vacuously, and a
	// negative input can zero the divisor in the pricing quotient.
	if !quantitySold.IsPositive() {
		return ErrInvalidQuantity
	}

	return runInTransaction(t.db, func(tx *gorm.DB) error {
		pool, err := lockPool(tx, poolGuid)
		if err != nil {
			return err
		}
		wallet, err := lockWallet(tx, accountID, t.platformSymbols)
		if err != nil {
			return err
		}

		// Direction decides which reserve the sold coin enters and which
		// the bought coin leaves.
		var coinSold, coinBought models.Coin
		var reserveIn, reserveOut decimal.Decimal
		if tradeType == models.TradeTypeBuy {
			coinSold, coinBought = pool.SecondaryCoin, pool.PrimaryCoin
			reserveIn, reserveOut = pool.PooledSecondary, pool.PooledPrimary
		} else {
			coinSold, coinBought = pool.PrimaryCoin, pool.SecondaryCoin
			reserveIn, reserveOut = pool.PooledPrimary, pool.PooledSecondary
		}

		if !wallet.CheckBalance(coinSold.ID, quantitySold) {
			return ErrInsufficientFunds
		}

		// Constant-product pricing: the fee is deducted from the input
		// before it meets the invariant, so k grows with every trade.
		deltaIn := quantitySold.Mul(decimal.NewFromInt(1).Sub(t.fee))
		k := reserveIn.Mul(reserveOut)
		deltaOut := reserveOut.Sub(k.Div(reserveIn.Add(deltaIn))).RoundDown(reservePrecision)

		if deltaOut.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidTrade
		}
		// A pool must never reach a zero reserve.
		if deltaOut.GreaterThanOrEqual(reserveOut) {
			return ErrInvalidTrade
		}

		wallet.Withdraw(coinSold.ID, quantitySold)
		wallet.Deposit(coinBought, deltaOut)

		if tradeType == models.TradeTypeBuy {
			pool.PooledPrimary = reserveOut.Sub(deltaOut)
			pool.PooledSecondary = reserveIn.Add(deltaIn)
		} else {
			pool.PooledPrimary = reserveIn.Add(deltaIn)
			pool.PooledSecondary = reserveOut.Sub(deltaOut)
		}

		if err := savePoolReserves(tx, pool); err != nil {
			return err
		}
		if err := saveBalances(tx, wallet); err != nil {
			return err
		}

		// Price is recorded after the reserve update.
		tradeLog := models.PoolTradeLog{
			TradeType:        tradeType,
			Time:             time.Now().UTC(),
			Price:            pool.Price(),
			QuantityReceived: deltaOut,
			CoinReceivedID:   coinBought.ID,
			PoolID:           pool.ID,
			WalletID:         wallet.ID,
		}
		return tx.Create(&tradeLog).Error
	})
}

// AddLiquidity deposits both reserve coins into the pool and mints
// liquidity shares by the geometric mean of the deposited quantities.
func (t *tradingService) AddLiquidity(accountID, poolGuid string, primaryQuantity, secondaryQuantity decimal.Decimal) error {
	if !primaryQuantity.IsPositive() || !secondaryQuantity.IsPositive() {
		return ErrInvalidQuantity
	}

	return runInTransaction(t.db, func(tx *gorm.DB) error {
		pool, err := lockPool(tx, poolGuid)
		if err != nil {
			return err
		}
		wallet, err := lockWallet(tx, accountID, t.platformSymbols)
		if err != nil {
			return err
		}

		if !wallet.CheckBalance(pool.PrimaryCoinID, primaryQuantity) ||
			!wallet.CheckBalance(pool.SecondaryCoinID, secondaryQuantity) {
			return ErrInsufficientFunds
		}

		pool.PooledPrimary = pool.PooledPrimary.Add(primaryQuantity)
		pool.PooledSecondary = pool.PooledSecondary.Add(secondaryQuantity)

		wallet.Withdraw(pool.PrimaryCoinID, primaryQuantity)
		wallet.Withdraw(pool.SecondaryCoinID, secondaryQuantity)

		shares := utils.DecimalSqrt(primaryQuantity.Mul(secondaryQuantity))
		wallet.Deposit(pool.LiquidityCoin, shares)

		if err := savePoolReserves(tx, pool); err != nil {
			return err
		}
		return saveBalances(tx, wallet)
	})
}

// lockPool fetches a pool by guid with its three coins and takes an
// exclusive update lock on the row for the rest of the transaction.
func lockPool(tx *gorm.DB, poolGuid string) (*models.Pool, error) {
	var pool models.Pool
	err := withUpdateLock(tx).
		Preload("PrimaryCoin").
		Preload("SecondaryCoin").
		Preload("LiquidityCoin").
		Where("guid = ?", poolGuid).
		First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func savePoolReserves(tx *gorm.DB, pool *models.Pool) error {
	return tx.Model(&models.Pool{}).
		Where("id = ?", pool.ID).
		Updates(map[string]interface{}{
			"pooled_primary":   pool.PooledPrimary,
			"pooled_secondary": pool.PooledSecondary,
		}).Error
}
