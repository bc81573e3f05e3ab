package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/arzex-lab/exchange/internal/services"
)

// APIServer exposes the exchange over HTTP. It is a thin adapter: all
// domain rules live in the services layer.
type APIServer struct {
	app       *fiber.App
	validator *validator.Validate

	coinService    services.CoinService
	walletService  services.WalletService
	tradingService services.TradingService
	historyService services.TradeHistoryService
	faucetService  services.FaucetService
}

func NewAPIServer(
	coinService services.CoinService,
	walletService services.WalletService,
	tradingService services.TradingService,
	historyService services.TradeHistoryService,
	faucetService services.FaucetService,
) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:            app,
		validator:      validator.New(),
		coinService:    coinService,
		walletService:  walletService,
		tradingService: tradingService,
		historyService: historyService,
		faucetService:  faucetService,
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	s.app.Get("/api/coins", s.handleListCoins)
	s.app.Post("/api/coins", s.handleCreateCoin)

	s.app.Get("/api/pools", s.handleListPools)
	s.app.Get("/api/pools/:pool_guid", s.handleGetPool)
	s.app.Get("/api/pools/:pool_guid/trades", s.handleRecentTrades)
	s.app.Get("/api/pools/:pool_guid/chart", s.handleChartData)
	s.app.Post("/api/pools/:pool_guid/liquidity", s.handleAddLiquidity)
	s.app.Post("/api/pools/:pool_guid/buy", s.handleBuy)
	s.app.Post("/api/pools/:pool_guid/sell", s.handleSell)

	s.app.Get("/api/wallets/:account_id", s.handleGetWallet)
	s.app.Post("/api/faucet/claim", s.handleFaucetClaim)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// Listen blocks serving HTTP on the given address (e.g. ":8080").
func (s *APIServer) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// parseBody unmarshals and validates a JSON request body.
func (s *APIServer) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return s.validator.Struct(out)
}
