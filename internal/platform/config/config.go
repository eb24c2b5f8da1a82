package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	AdminIdentities []string

	PrizePoolSource string
	PrizePoolAmount int64

	TreasuryAccount string
	TreasuryBalance int64

	EnableOutboxRelay       bool
	EnablePrizeDistribution bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "demoday"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	var admins []string
	for _, value := range strings.Split(os.Getenv("ADMIN_IDENTITIES"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			admins = append(admins, value)
		}
	}

	account := os.Getenv("TREASURY_ACCOUNT")
	if account == "" {
		account = "prize-pool"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		AdminIdentities: admins,

		PrizePoolSource: strings.TrimSpace(os.Getenv("PRIZE_POOL_SOURCE")),
		PrizePoolAmount: envInt64("PRIZE_POOL_AMOUNT", 0),

		TreasuryAccount: account,
		TreasuryBalance: envInt64("TREASURY_BALANCE", 0),

		EnableOutboxRelay:       envBool("ENABLE_OUTBOX_RELAY", true),
		EnablePrizeDistribution: envBool("ENABLE_PRIZE_DISTRIBUTION", true),
	}, nil
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
