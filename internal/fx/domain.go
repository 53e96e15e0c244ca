package fx

import (
	"Corebank/config"
	"Corebank/internal/domain/account"
	"Corebank/internal/domain/billing"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/customer"
	"Corebank/internal/domain/emi"
	"Corebank/internal/domain/ledger"
	"Corebank/internal/domain/transfer"
	"Corebank/internal/events"
	"Corebank/internal/infrastructure"
	"Corebank/internal/pkg"
	"Corebank/internal/pkg/idgen"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		newCustomerService,
		newAccountService,
		newLedgerService,
		newTransferService,
		newCardService,
		newBillingService,
		newEmiService,
	),
)

func newCustomerService(repo *infrastructure.CustomerRepository) *customer.Service {
	return customer.NewService(repo)
}

func newAccountService(
	repo *infrastructure.AccountRepository,
	customerSvc *customer.Service,
	idGen idgen.Generator,
) *account.Service {
	return account.NewService(repo, customerSvc, idGen)
}

func newLedgerService(
	accountRepo *infrastructure.AccountRepository,
	transactionRepo *infrastructure.TransactionRepository,
	locks *pkg.KeyedMutex,
	publisher events.Publisher,
) *ledger.Service {
	return ledger.NewService(accountRepo, transactionRepo, locks, publisher)
}

func newTransferService(
	ledgerSvc *ledger.Service,
	requestRepo *infrastructure.MoneyRequestRepository,
	locks *pkg.KeyedMutex,
	publisher events.Publisher,
	cfg *config.Config,
) *transfer.Service {
	return transfer.NewService(ledgerSvc, requestRepo, locks, publisher, cfg.Transfer)
}

func newCardService(
	repo *infrastructure.CardRepository,
	accountRepo *infrastructure.AccountRepository,
	ledgerSvc *ledger.Service,
	idGen idgen.Generator,
) *card.Service {
	return card.NewService(repo, accountRepo, ledgerSvc, idGen)
}

func newBillingService(
	repo *infrastructure.BillRepository,
	cardRepo *infrastructure.CardRepository,
	accountRepo *infrastructure.AccountRepository,
	ledgerSvc *ledger.Service,
	locks *pkg.KeyedMutex,
	cfg *config.Config,
) *billing.Service {
	return billing.NewService(repo, cardRepo, accountRepo, ledgerSvc, locks, cfg.Billing)
}

func newEmiService(
	repo *infrastructure.EmiRepository,
	ledgerSvc *ledger.Service,
	cardRepo *infrastructure.CardRepository,
	accountRepo *infrastructure.AccountRepository,
	locks *pkg.KeyedMutex,
	cfg *config.Config,
) *emi.Service {
	return emi.NewService(repo, ledgerSvc, cardRepo, accountRepo, locks, cfg.EMI)
}
