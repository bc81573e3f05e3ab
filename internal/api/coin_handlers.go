package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createCoinRequest struct {
	Name   string `json:"name" validate:"required,max=25"`
	Symbol string `json:"symbol" validate:"required,max=5"`
}

func (s *APIServer) handleListCoins(c *fiber.Ctx) error {
	coins, err := s.coinService.ListCoins()
	if err != nil {
		logrus.WithError(err).Error("failed to list coins")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to list coins",
		})
	}
	return c.JSON(coins)
}

func (s *APIServer) handleCreateCoin(c *fiber.Ctx) error {
	var req createCoinRequest
	if err := s.parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(map[string]string{
			"error": "name and symbol are required",
		})
	}

	coin, err := s.coinService.CreateCoin(req.Name, req.Symbol)
	if err != nil {
		logrus.WithError(err).WithField("symbol", req.Symbol).Warn("coin creation failed")
		return c.Status(fiber.StatusConflict).JSON(map[string]string{
			"error": "coin could not be created",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(coin)
}
