package services

import (
	"errors"
	"time"

	"github.com/arzex-lab/exchange/internal/models"
	"gorm.io/gorm"
)

const defaultTradeLimit = 50

// TradeHistoryService reads a pool's trade log and folds it into
// time-series views. Pure reads, no mutation.
type TradeHistoryService interface {
	// RecentTrades returns a pool's latest trades, newest first, capped at
	// defaultTradeLimit.
	RecentTrades(poolGuid string, limit int) ([]models.PoolTradeLog, error)
	// ChartData folds a pool's full trade log into hourly OHLC candles.
	ChartData(poolGuid string) ([]models.Candle, error)
}

type tradeHistoryService struct {
	db *gorm.DB
}

func NewTradeHistoryService(db *gorm.DB) TradeHistoryService {
	return &tradeHistoryService{db: db}
}

func (t *tradeHistoryService) RecentTrades(poolGuid string, limit int) ([]models.PoolTradeLog, error) {
	poolID, err := t.poolID(poolGuid)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > defaultTradeLimit {
		limit = defaultTradeLimit
	}

	var trades []models.PoolTradeLog
	err = t.db.Preload("CoinReceived").
		Where("pool_id = ?", poolID).
		Order("time DESC, id DESC").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// ChartData buckets trades by calendar hour (timestamp truncated to the
// hour). Each candle carries the first trade's timestamp as its
// representative time; open/close come from the first/last trade in the
// bucket and high/low from the extremes.
func (t *tradeHistoryService) ChartData(poolGuid string) ([]models.Candle, error) {
	poolID, err := t.poolID(poolGuid)
	if err != nil {
		return nil, err
	}

	var trades []models.PoolTradeLog
	err = t.db.Where("pool_id = ?", poolID).
		Order("time ASC, id ASC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}

	candles := make([]models.Candle, 0, len(trades))
	index := make(map[time.Time]int)

	for _, trade := range trades {
		bucket := trade.Time.UTC().Truncate(time.Hour)
		i, ok := index[bucket]
		if !ok {
			index[bucket] = len(candles)
			candles = append(candles, models.Candle{
				Time:  trade.Time,
				Open:  trade.Price,
				High:  trade.Price,
				Low:   trade.Price,
				Close: trade.Price,
			})
			continue
		}

		candle := &candles[i]
		candle.Close = trade.Price
		if trade.Price.GreaterThan(candle.High) {
			candle.High = trade.Price
		}
		if trade.Price.LessThan(candle.Low) {
			candle.Low = trade.Price
		}
	}

	return candles, nil
}

func (t *tradeHistoryService) poolID(poolGuid string) (uint, error) {
	var pool models.Pool
	err := t.db.Select("id").Where("guid = ?", poolGuid).First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrPoolNotFound
	}
	if err != nil {
		return 0, err
	}
	return pool.ID, nil
}
