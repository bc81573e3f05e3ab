package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// handleGetWallet returns the account's wallet with balances, provisioning
// it on first access.
func (s *APIServer) handleGetWallet(c *fiber.Ctx) error {
	accountID := c.Params("account_id")
	if accountID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(map[string]string{
			"error": "account id is required",
		})
	}

	wallet, err := s.walletService.GetOrCreateWallet(accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("failed to load wallet")
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{
			"error": "failed to load wallet",
		})
	}
	return c.JSON(wallet)
}
