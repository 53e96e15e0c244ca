package fx

import (
	"time"

	"Corebank/internal/domain/account"
	"Corebank/internal/domain/billing"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/customer"
	"Corebank/internal/domain/emi"
	"Corebank/internal/domain/ledger"
	"Corebank/internal/domain/transfer"
	"Corebank/internal/middleware"
	"Corebank/internal/routes"

	"go.uber.org/fx"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	customerSvc *customer.Service,
	accountSvc *account.Service,
	ledgerSvc *ledger.Service,
	transferSvc *transfer.Service,
	cardSvc *card.Service,
	billingSvc *billing.Service,
	emiSvc *emi.Service,
) *routes.Handler {
	return &routes.Handler{
		CustomerService: customerSvc,
		AccountService:  accountSvc,
		LedgerService:   ledgerSvc,
		TransferService: transferSvc,
		CardService:     cardSvc,
		BillingService:  billingSvc,
		EmiService:      emiSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(300, time.Minute)
}
