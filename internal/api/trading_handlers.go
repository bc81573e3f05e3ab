package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/arzex-lab/exchange/internal/services"
)

// Money-moving endpoints answer with a bare success flag; the detailed
// rejection reason stays in the server log.
type orderRequest struct {
	AccountID string          `json:"account_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type addLiquidityRequest struct {
	AccountID         string          `json:"account_id" validate:"required"`
	PrimaryQuantity   decimal.Decimal `json:"primary_quantity"`
	SecondaryQuantity decimal.Decimal `json:"secondary_quantity"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *APIServer) handleListPools(c *fiber.Ctx) error {
	pools, err := s.tradingService.GetPools()
	if err != nil {
		logrus.WithError(err).Error("failed to list pools")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to list pools",
		})
	}
	return c.JSON(pools)
}

func (s *APIServer) handleGetPool(c *fiber.Ctx) error {
	pool, err := s.tradingService.GetPoolByGuid(c.Params("pool_guid"))
	if errors.Is(err, services.ErrPoolNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(map[string]string{
			"error": "pool not found",
		})
	}
	if err != nil {
		logrus.WithError(err).Error("failed to load pool")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to load pool",
		})
	}
	return c.JSON(pool)
}

func (s *APIServer) handleRecentTrades(c *fiber.Ctx) error {
	trades, err := s.historyService.RecentTrades(c.Params("pool_guid"), c.QueryInt("limit"))
	if errors.Is(err, services.ErrPoolNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(map[string]string{
			"error": "pool not found",
		})
	}
	if err != nil {
		logrus.WithError(err).Error("failed to load trade history")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to load trade history",
		})
	}
	return c.JSON(trades)
}

func (s *APIServer) handleChartData(c *fiber.Ctx) error {
	candles, err := s.historyService.ChartData(c.Params("pool_guid"))
	if errors.Is(err, services.ErrPoolNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(map[string]string{
			"error": "pool not found",
		})
	}
	if err != nil {
		logrus.WithError(err).Error("failed to build chart data")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to build chart data",
		})
	}
	return c.JSON(candles)
}

func (s *APIServer) handleBuy(c *fiber.Ctx) error {
	return s.handleOrder(c, "buy", s.tradingService.Buy)
}

func (s *APIServer) handleSell(c *fiber.Ctx) error {
	return s.handleOrder(c, "sell", s.tradingService.Sell)
}

func (s *APIServer) handleOrder(c *fiber.Ctx, side string, execute func(accountID, poolGuid string, quantity decimal.Decimal) error) error {
	var req orderRequest
	if err := s.parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(successResponse{Success: false})
	}

	poolGuid := c.Params("pool_guid")
	if err := execute(req.AccountID, poolGuid, req.Quantity); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"side":       side,
			"pool_guid":  poolGuid,
			"account_id": req.AccountID,
		}).Warn("order rejected")
		status := fiber.StatusOK
		if !isDomainError(err) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(successResponse{Success: false})
	}
	return c.JSON(successResponse{Success: true})
}

func (s *APIServer) handleAddLiquidity(c *fiber.Ctx) error {
	var req addLiquidityRequest
	if err := s.parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(successResponse{Success: false})
	}

	poolGuid := c.Params("pool_guid")
	err := s.tradingService.AddLiquidity(req.AccountID, poolGuid, req.PrimaryQuantity, req.SecondaryQuantity)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"pool_guid":  poolGuid,
			"account_id": req.AccountID,
		}).Warn("add liquidity rejected")
		status := fiber.StatusOK
		if !isDomainError(err) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(successResponse{Success: false})
	}
	return c.JSON(successResponse{Success: true})
}

func isDomainError(err error) bool {
	return errors.Is(err, services.ErrPoolNotFound) ||
		errors.Is(err, services.ErrCoinNotFound) ||
		errors.Is(err, services.ErrInsufficientFunds) ||
		errors.Is(err, services.ErrInvalidTrade) ||
		errors.Is(err, services.ErrInvalidQuantity)
}
