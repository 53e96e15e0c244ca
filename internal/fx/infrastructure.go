package fx

import (
	"Corebank/config"
	"Corebank/internal/events"
	"Corebank/internal/infrastructure"
	"Corebank/internal/logger"
	"Corebank/internal/pkg"
	"Corebank/internal/pkg/idgen"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newCustomerRepository,
		newAccountRepository,
		newTransactionRepository,
		newCardRepository,
		newBillRepository,
		newEmiRepository,
		newMoneyRequestRepository,
		newEventPublisher,
		newAccountLocks,
		newIdGenerator,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newCustomerRepository(db *gorm.DB) *infrastructure.CustomerRepository {
	return &infrastructure.CustomerRepository{DB: db}
}

func newAccountRepository(db *gorm.DB) *infrastructure.AccountRepository {
	return &infrastructure.AccountRepository{DB: db}
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newCardRepository(db *gorm.DB) *infrastructure.CardRepository {
	return &infrastructure.CardRepository{DB: db}
}

func newBillRepository(db *gorm.DB) *infrastructure.BillRepository {
	return &infrastructure.BillRepository{DB: db}
}

func newEmiRepository(db *gorm.DB) *infrastructure.EmiRepository {
	return &infrastructure.EmiRepository{DB: db}
}

func newMoneyRequestRepository(db *gorm.DB) *infrastructure.MoneyRequestRepository {
	return &infrastructure.MoneyRequestRepository{DB: db}
}

func newEventPublisher(cfg *config.Config) events.Publisher {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("event publishing disabled")
		return events.NopPublisher{}
	}

	client, err := events.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, events will be discarded")
		return events.NopPublisher{}
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("event publishing enabled")
	return events.NewRedisPublisher(client)
}

func newAccountLocks() *pkg.KeyedMutex {
	return pkg.NewKeyedMutex()
}

func newIdGenerator() idgen.Generator {
	return idgen.NewGenerator()
}
