package api

import "github.com/gofiber/fiber/v2"

type faucetClaimRequest struct {
	AccountID string `json:"account_id" validate:"required"`
}

type faucetClaimResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *APIServer) handleFaucetClaim(c *fiber.Ctx) error {
	var req faucetClaimRequest
	if err := s.parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(faucetClaimResponse{
			Success: false,
			Message: "account id is required",
		})
	}

	ok, message := s.faucetService.Claim(req.AccountID)
	return c.JSON(faucetClaimResponse{Success: ok, Message: message})
}
