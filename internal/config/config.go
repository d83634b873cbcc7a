package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	mainnetConfigURL = "https://ton.org/global.config.json"
	testnetConfigURL = "https://ton-blockchain.github.io/testnet-global.config.json"
)

// Config is resolved once at process start and passed to constructors.
// Nothing reads the environment after LoadConfig returns.
type Config struct {
	Port          string        `envconfig:"APP_PORT" default:"8080"`
	DBPath        string        `envconfig:"DB_PATH" default:"users.db"`
	WalletsDir    string        `envconfig:"WALLETS_DIR" default:"wallets"`
	Testnet       bool          `envconfig:"TON_TESTNET" required:"true"`
	TonConfigURL  string        `envconfig:"TON_CONFIG_URL"`
	WalletVersion string        `envconfig:"WALLET_VERSION" default:"v3r1"`
	SendTimeout   time.Duration `envconfig:"SEND_TIMEOUT" default:"90s"`
	DBTimeout     time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads config.env if present and then the environment.
// TON_TESTNET has no default: the network must be chosen explicitly so a
// misconfigured process cannot quietly send mainnet funds with test keys.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load("config.env")

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.TonConfigURL == "" {
		if cfg.Testnet {
			cfg.TonConfigURL = testnetConfigURL
		} else {
			cfg.TonConfigURL = mainnetConfigURL
		}
	}
	return cfg, nil
}
