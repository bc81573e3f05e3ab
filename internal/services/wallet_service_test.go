package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/arzex-lab/exchange/internal/database"
	"github.com/arzex-lab/exchange/internal/models"
	"github.com/arzex-lab/exchange/internal/services"
)

type WalletServiceTestSuite struct {
	suite.Suite
	db      *database.Database
	coins   services.CoinService
	wallets services.WalletService

	arz  *models.Coin
	ayst *models.Coin
	btc  *models.Coin
}

func (suite *WalletServiceTestSuite) SetupTest() {
	db, err := database.NewSqliteDatabase(":memory:")
	suite.Require().NoError(err)
	suite.db = db

	suite.coins = services.NewCoinService(db.DB)
	suite.wallets = services.NewWalletService(db.DB, platformSymbols)

	suite.arz, err = suite.coins.CreateCoin("Arz", "ARZ")
	suite.Require().NoError(err)
	suite.ayst, err = suite.coins.CreateCoin("Amethyst", "AYST")
	suite.Require().NoError(err)
	suite.btc, err = suite.coins.CreateCoin("Bitcoin", "BTC")
	suite.Require().NoError(err)
}

func (suite *WalletServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWalletSeedsPlatformBalances() {
	wallet, err := suite.wallets.GetOrCreateWallet(uuid.NewString())
	suite.Require().NoError(err)

	suite.Len(wallet.Balances, 2)
	for _, balance := range wallet.Balances {
		suite.True(balance.Quantity.IsZero())
		suite.Contains(platformSymbols, balance.Coin.Symbol)
	}
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWalletIsIdempotent() {
	accountID := uuid.NewString()

	first, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)
	second, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)

	suite.Equal(first.ID, second.ID)

	var count int64
	suite.Require().NoError(suite.db.DB.Model(&models.Wallet{}).
		Where("account_id = ?", accountID).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *WalletServiceTestSuite) TestDepositCreatesRowLazilyAndAccumulates() {
	accountID := uuid.NewString()
	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.wallets.Deposit(accountID, *suite.btc, decimal.NewFromInt(5)))
	suite.Require().NoError(suite.wallets.Deposit(accountID, *suite.btc, decimal.RequireFromString("2.5")))

	balance, err := suite.wallets.GetBalance(wallet.ID, suite.btc.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Quantity.Equal(decimal.RequireFromString("7.5")))
}

func (suite *WalletServiceTestSuite) TestDepositRejectsNonPositiveQuantity() {
	accountID := uuid.NewString()

	err := suite.wallets.Deposit(accountID, *suite.btc, decimal.Zero)
	suite.ErrorIs(err, services.ErrInvalidQuantity)

	err = suite.wallets.Deposit(accountID, *suite.btc, decimal.NewFromInt(-1))
	suite.ErrorIs(err, services.ErrInvalidQuantity)
}

func (suite *WalletServiceTestSuite) TestWithdrawWithoutBalanceRowFails() {
	accountID := uuid.NewString()
	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)

	withdrawn, err := suite.wallets.Withdraw(accountID, suite.btc.ID, decimal.NewFromInt(1))
	suite.Require().NoError(err)
	suite.False(withdrawn)

	balance, err := suite.wallets.GetBalance(wallet.ID, suite.btc.ID)
	suite.Require().NoError(err)
	suite.Nil(balance)
}

// Withdraw subtracts unconditionally once a balance row exists; sufficiency
// is the caller's job via CheckBalance.
func (suite *WalletServiceTestSuite) TestWithdrawDoesNotRecheckSufficiency() {
	accountID := uuid.NewString()
	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.wallets.Deposit(accountID, *suite.btc, decimal.NewFromInt(5)))

	withdrawn, err := suite.wallets.Withdraw(accountID, suite.btc.ID, decimal.NewFromInt(10))
	suite.Require().NoError(err)
	suite.True(withdrawn)

	balance, err := suite.wallets.GetBalance(wallet.ID, suite.btc.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.True(balance.Quantity.Equal(decimal.NewFromInt(-5)))
}

func (suite *WalletServiceTestSuite) TestCheckBalance() {
	accountID := uuid.NewString()
	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.wallets.Deposit(accountID, *suite.btc, decimal.NewFromInt(5)))

	ok, err := suite.wallets.CheckBalance(wallet.ID, suite.btc.ID, decimal.NewFromInt(5))
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.wallets.CheckBalance(wallet.ID, suite.btc.ID, decimal.RequireFromString("5.00000001"))
	suite.Require().NoError(err)
	suite.False(ok)

	// No row for a coin the wallet never held.
	ok, err = suite.wallets.CheckBalance(wallet.ID, suite.btc.ID+100, decimal.NewFromInt(1))
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
