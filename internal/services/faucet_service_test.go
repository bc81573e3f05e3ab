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

type FaucetServiceTestSuite struct {
	suite.Suite
	db      *database.Database
	wallets services.WalletService
	faucet  services.FaucetService
	arz     *models.Coin
}

func (suite *FaucetServiceTestSuite) SetupTest() {
	db, err := database.NewSqliteDatabase(":memory:")
	suite.Require().NoError(err)
	suite.db = db

	coins := services.NewCoinService(db.DB)
	suite.arz, err = coins.CreateCoin("Arz", "ARZ")
	suite.Require().NoError(err)
	_, err = coins.CreateCoin("Amethyst", "AYST")
	suite.Require().NoError(err)

	suite.wallets = services.NewWalletService(db.DB, platformSymbols)
	suite.faucet = services.NewFaucetService(db.DB,
		decimal.RequireFromString("0.25"), "ARZ", platformSymbols)
}

func (suite *FaucetServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *FaucetServiceTestSuite) TestClaimCreditsPlatformCoin() {
	accountID := uuid.NewString()

	ok, message := suite.faucet.Claim(accountID)
	suite.True(ok)
	suite.Equal("You claimed 0.25 ARZ!", message)

	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)
	balance := wallet.GetBalance(suite.arz.ID)
	suite.Require().NotNil(balance)
	suite.True(balance.Quantity.Equal(decimal.RequireFromString("0.25")))

	var claims int64
	suite.Require().NoError(suite.db.DB.Model(&models.FaucetLog{}).Count(&claims).Error)
	suite.EqualValues(1, claims)
}

// No cooldown: every claim pays out and is logged.
func (suite *FaucetServiceTestSuite) TestRepeatedClaimsAccumulate() {
	accountID := uuid.NewString()

	for i := 0; i < 3; i++ {
		ok, _ := suite.faucet.Claim(accountID)
		suite.True(ok)
	}

	wallet, err := suite.wallets.GetOrCreateWallet(accountID)
	suite.Require().NoError(err)
	balance := wallet.GetBalance(suite.arz.ID)
	suite.Require().NotNil(balance)
	suite.True(balance.Quantity.Equal(decimal.RequireFromString("0.75")))

	var claims int64
	suite.Require().NoError(suite.db.DB.Model(&models.FaucetLog{}).Count(&claims).Error)
	suite.EqualValues(3, claims)
}

func (suite *FaucetServiceTestSuite) TestClaimFailsWhenFaucetCoinMissing() {
	faucet := services.NewFaucetService(suite.db.DB,
		decimal.RequireFromString("0.25"), "NOPE", platformSymbols)

	ok, message := faucet.Claim(uuid.NewString())
	suite.False(ok)
	suite.Equal("Server error when attempting to claim", message)

	var claims int64
	suite.Require().NoError(suite.db.DB.Model(&models.FaucetLog{}).Count(&claims).Error)
	suite.EqualValues(0, claims)
}

func TestFaucetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FaucetServiceTestSuite))
}
