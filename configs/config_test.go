package config

import (
	"testing"
	"time"

	"pos-terminal/internal/common/enum"
	database "pos-terminal/internal/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv_Defaults(t *testing.T) {
	cfg, err := GetEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, enum.GATEWAY_BACKEND, cfg.PaymentGateway)
	assert.Equal(t, enum.HANDOFF_TERMINAL, cfg.HandoffMode)
	assert.Equal(t, enum.CLEAR_ON_PLACEMENT, cfg.ClearCartPolicy)
	assert.Equal(t, database.POSTGRES, cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.CallTimeout)
	assert.GreaterOrEqual(t, cfg.GuardTTL, cfg.FlowTimeout)
}

func TestGetEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CALL_TIMEOUT", "2s")
	t.Setenv("BACKEND_SKIP_TLS_VERIFY", "true")
	t.Setenv("CLEAR_CART_POLICY", "confirmation")
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := GetEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, 2*time.Second, cfg.CallTimeout)
	assert.True(t, cfg.BackendSkipTLSVerify)
	assert.Equal(t, enum.CLEAR_ON_CONFIRMATION, cfg.ClearCartPolicy)
	assert.Equal(t, database.MYSQL, cfg.DBDriver)
}

func TestGetEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"APP_PORT":          "eighty",
		"FLOW_TIMEOUT":      "soon",
		"PAYMENT_GATEWAY":   "paypal",
		"HANDOFF_MODE":      "popup",
		"CLEAR_CART_POLICY": "never",
		"APP_ENV":           "prod",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := GetEnv()
			assert.Error(t, err)
		})
	}
}

func TestGetEnv_GuardMustOutliveFlow(t *testing.T) {
	t.Setenv("FLOW_TIMEOUT", "1m")
	t.Setenv("GUARD_TTL", "30s")

	_, err := GetEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GUARD_TTL")
}

func TestGetEnv_GuardCoversCompensatingCall(t *testing.T) {
	t.Setenv("FLOW_TIMEOUT", "30s")
	t.Setenv("CALL_TIMEOUT", "10s")
	t.Setenv("GUARD_TTL", "35s")

	_, err := GetEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALL_TIMEOUT")

	t.Setenv("GUARD_TTL", "40s")
	_, err = GetEnv()
	assert.NoError(t, err)
}

func TestGetEnv_MidtransNeedsKey(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY", "midtrans")
	t.Setenv("MIDTRANS_SERVER_KEY", "")

	_, err := GetEnv()
	assert.Error(t, err)
}
