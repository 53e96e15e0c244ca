package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Transfer TransferConfig
	EMI      EMIConfig
	Billing  BillingConfig
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type TransferConfig struct {
	NEFTFee             float64
	RTGSFee             float64
	IMPSFee             float64
	RTGSMinAmount       float64
	IMPSMaxAmount       float64
	NEFTSettlementDelay time.Duration
}

type EMIConfig struct {
	AnnualInterestRate   float64
	ProcessingFeePercent float64
	MinTransactionAmount float64
	AllowedTenures       []int
}

type BillingConfig struct {
	PaymentDueDays  int
	MinimumDuePct   float64
	MinimumDueFloor float64
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "corebank"),
			Password:        getEnv("DB_PASSWORD", "corebank"),
			DBName:          getEnv("DB_NAME", "corebank"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Transfer: TransferConfig{
			NEFTFee:             getEnvFloat("TRANSFER_NEFT_FEE", 2.50),
			RTGSFee:             getEnvFloat("TRANSFER_RTGS_FEE", 25.00),
			IMPSFee:             getEnvFloat("TRANSFER_IMPS_FEE", 5.00),
			RTGSMinAmount:       getEnvFloat("TRANSFER_RTGS_MIN_AMOUNT", 200000.00),
			IMPSMaxAmount:       getEnvFloat("TRANSFER_IMPS_MAX_AMOUNT", 500000.00),
			NEFTSettlementDelay: getEnvDuration("TRANSFER_NEFT_SETTLEMENT_DELAY", 0),
		},
		EMI: EMIConfig{
			AnnualInterestRate:   getEnvFloat("EMI_ANNUAL_INTEREST_RATE", 0.16),
			ProcessingFeePercent: getEnvFloat("EMI_PROCESSING_FEE_PERCENT", 0.025),
			MinTransactionAmount: getEnvFloat("EMI_MIN_TRANSACTION_AMOUNT", 1500.00),
			AllowedTenures:       getEnvInts("EMI_ALLOWED_TENURES", []int{3, 6, 9, 12, 18, 24}),
		},
		Billing: BillingConfig{
			PaymentDueDays:  getEnvInt("BILLING_PAYMENT_DUE_DAYS", 15),
			MinimumDuePct:   getEnvFloat("BILLING_MINIMUM_DUE_PCT", 0.05),
			MinimumDueFloor: getEnvFloat("BILLING_MINIMUM_DUE_FLOOR", 50.00),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInts(key string, fallback []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		parsed, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fallback
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
