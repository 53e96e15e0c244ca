package infrastructure

import (
	"Corebank/config"
	"Corebank/internal/domain/account"
	"Corebank/internal/domain/billing"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/customer"
	"Corebank/internal/domain/emi"
	"Corebank/internal/domain/ledger"
	"Corebank/internal/domain/transfer"
	"Corebank/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("failed to connect to database")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("failed to obtain database handle")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("database connection established")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("running migrations")

	entities := []interface{}{
		&customer.Customer{},
		&account.Account{},
		&ledger.Transaction{},
		&transfer.MoneyRequest{},
		&card.Card{},
		&billing.CreditCardBill{},
		&emi.Plan{},
		&emi.ScheduleEntry{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().Err(err).Msg("failed to migrate entity")
			return err
		}
	}

	logger.Info().Msg("migrations finished")
	return nil
}
