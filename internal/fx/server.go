package fx

import (
	"context"

	"Corebank/config"
	"Corebank/internal/logger"
	"Corebank/internal/middleware"
	"Corebank/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	{
		customers := api.Group("/customers")
		{
			customers.POST("", handler.CreateCustomer)
			customers.GET("", handler.ListCustomers)
			customers.GET("/:id", handler.GetCustomer)
			customers.PATCH("/:id/kyc", handler.UpdateCustomerKyc)
			customers.GET("/:id/accounts", handler.ListCustomerAccounts)
		}

		accounts := api.Group("/accounts")
		{
			accounts.POST("", handler.OpenAccount)
			accounts.GET("/:number", handler.GetAccount)
			accounts.GET("/:number/balance", handler.GetAccountBalance)
			accounts.PATCH("/:number/status", handler.UpdateAccountStatus)
			accounts.POST("/:number/deposit", handler.Deposit)
			accounts.POST("/:number/withdraw", handler.Withdraw)
			accounts.GET("/:number/transactions", handler.ListAccountTransactions)
			accounts.GET("/:number/cards", handler.ListAccountCards)
			accounts.GET("/:number/money-requests", handler.ListMoneyRequests)
			accounts.GET("/:number/emi-plans", handler.ListEmiPlans)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("/:id", handler.GetTransaction)
			transactions.GET("/:id/emi-offers", handler.GetEmiOffers)
			transactions.POST("/:id/convert-to-emi", handler.ConvertToEmi)
		}

		transfers := api.Group("/transfers")
		{
			transfers.POST("", handler.Transfer)
		}

		moneyRequests := api.Group("/money-requests")
		{
			moneyRequests.POST("", handler.CreateMoneyRequest)
			moneyRequests.POST("/:id/respond", handler.RespondToMoneyRequest)
		}

		cards := api.Group("/cards")
		{
			cards.POST("", handler.IssueCard)
			cards.GET("/:number", handler.GetCard)
			cards.POST("/:number/block", handler.BlockCard)
			cards.POST("/:number/unblock", handler.UnblockCard)
			cards.PATCH("/:number/limits", handler.UpdateCardLimits)
			cards.PATCH("/:number/bill-day", handler.UpdateCardBillDay)
			cards.POST("/:number/pin", handler.ChangeCardPin)
			cards.POST("/:number/purchases", handler.CardPurchase)
			cards.POST("/:number/bills", handler.GenerateBill)
			cards.GET("/:number/bills", handler.ListBills)
			cards.POST("/:number/bills/pay", handler.PayBill)
		}

		bills := api.Group("/bills")
		{
			bills.GET("/:id", handler.GetBill)
		}

		emiPlans := api.Group("/emi-plans")
		{
			emiPlans.GET("/:id", handler.GetEmiPlan)
			emiPlans.GET("/:id/schedule", handler.GetEmiSchedule)
			emiPlans.POST("/process", handler.ProcessEmiInstallments)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("server starting")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("server stopping")
			return nil
		},
	})
}
