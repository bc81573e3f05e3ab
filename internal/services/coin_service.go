package services

import (
	"errors"

	"github.com/arzex-lab/exchange/internal/models"
	"gorm.io/gorm"
)

type CoinService interface {
	CreateCoin(name, symbol string) (*models.Coin, error)
	GetCoinBySymbol(symbol string) (*models.Coin, error)
	ListCoins() ([]models.Coin, error)
}

type coinService struct {
	db *gorm.DB
}

func NewCoinService(db *gorm.DB) CoinService {
	return &coinService{db: db}
}

func (c *coinService) CreateCoin(name, symbol string) (*models.Coin, error) {
	coin := &models.Coin{
		Name:   name,
		Symbol: symbol,
	}
	if err := c.db.Create(coin).Error; err != nil {
		return nil, err
	}
	return coin, nil
}

func (c *coinService) GetCoinBySymbol(symbol string) (*models.Coin, error) {
	var coin models.Coin
	err := c.db.Where("symbol = ?", symbol).First(&coin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCoinNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

func (c *coinService) ListCoins() ([]models.Coin, error) {
	var coins []models.Coin
	err := c.db.Find(&coins).Error
	return coins, err
}
