package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TON_TESTNET", "true")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "users.db", cfg.DBPath)
	assert.Equal(t, "wallets", cfg.WalletsDir)
	assert.Equal(t, "v3r1", cfg.WalletVersion)
	assert.Equal(t, 90*time.Second, cfg.SendTimeout)
	assert.True(t, cfg.Testnet)
	assert.Equal(t, testnetConfigURL, cfg.TonConfigURL)
}

func TestLoadConfig_Mainnet(t *testing.T) {
	t.Setenv("TON_TESTNET", "false")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.False(t, cfg.Testnet)
	assert.Equal(t, mainnetConfigURL, cfg.TonConfigURL)
}

func TestLoadConfig_ExplicitConfigURL(t *testing.T) {
	t.Setenv("TON_TESTNET", "true")
	t.Setenv("TON_CONFIG_URL", "https://example.com/custom.json")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/custom.json", cfg.TonConfigURL)
}

func TestLoadConfig_NetworkRequired(t *testing.T) {
	// no TON_TESTNET in the environment: the network choice may never be
	// defaulted. Setenv first so the original value is restored, then
	// unset so the required tag itself trips, not bool parsing of "".
	t.Setenv("TON_TESTNET", "true")
	assert.NoError(t, os.Unsetenv("TON_TESTNET"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_NetworkEmpty(t *testing.T) {
	// set-but-empty is rejected as well, by bool parsing
	t.Setenv("TON_TESTNET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
