package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	require.NoError(t, InitConfig())

	assert.Equal(t, 1500*time.Millisecond, GetDuration(RequestDelayKey))
	assert.Equal(t, 15*time.Second, GetDuration(RequestTimeoutKey))
	assert.Equal(t, 3, GetInt(MaxRetriesKey))
	assert.Equal(t, 20, GetInt(AddressesPerPathKey))
	assert.True(t, IsMainnet())
	assert.Equal(t, "127.0.0.1:9050", GetString(ProxyAddrKey))
}

func TestInitConfigFromEnv(t *testing.T) {
	os.Setenv("SEEDRESCUE_NETWORK", "testnet")
	os.Setenv("SEEDRESCUE_ADDRESSES_PER_PATH", "5")
	defer os.Unsetenv("SEEDRESCUE_NETWORK")
	defer os.Unsetenv("SEEDRESCUE_ADDRESSES_PER_PATH")

	require.NoError(t, InitConfig())

	assert.False(t, IsMainnet())
	assert.Equal(t, 5, GetInt(AddressesPerPathKey))
}

func TestInitConfigShouldFail(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown network", "SEEDRESCUE_NETWORK", "liquid"},
		{"non positive retries", "SEEDRESCUE_MAX_RETRIES", "0"},
		{"non positive address count", "SEEDRESCUE_ADDRESSES_PER_PATH", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv(tt.key, tt.value)
			defer os.Unsetenv(tt.key)
			assert.Error(t, InitConfig())
		})
	}
}
