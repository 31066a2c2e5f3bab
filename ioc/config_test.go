package ioc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/pkg/decimalx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	require.NoError(t, loadConfig(file))
}

func TestInitFraudService_ApiKeyFromEnv(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"is_fake_volume": true}`))
	}))
	defer srv.Close()

	t.Setenv("DEXBOT_POCKET_UNIVERSE_API_KEY", "secret")
	setupConfig(t, `
pocket_universe:
  base_url: `+srv.URL+`
  api_key: ""
`)

	svc := InitFraudService(srv.Client())
	fake, err := svc.IsFakeVolume(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.True(t, fake)
}

func TestInitOrderService_ApiKeyOnlyInEnv(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer trojan-secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"order_id": "T-9"}`))
	}))
	defer srv.Close()

	t.Setenv("DEXBOT_ORDER_TROJAN_API_KEY", "trojan-secret")
	// api_key 在配置文件里完全没有出现
	setupConfig(t, `
order:
  provider: trojan
  trojan:
    base_url: `+srv.URL+`
`)

	svc := InitOrderService(srv.Client())
	confirmation, err := svc.PlaceOrder(context.Background(), exchange.OrderReq{
		TokenAddress: "0xabc",
		Symbol:       "PEPE",
		Side:         exchange.Buy,
		Amount:       decimalx.MustFromString("0.01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "T-9", confirmation.Id)
}

func TestUnmarshalKey(t *testing.T) {
	t.Setenv("DEXBOT_TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("DEXBOT_MONITOR_UPDATE_INTERVAL", "30s")
	setupConfig(t, `
telegram:
  bot_token: ""
  chat_id: "42"
monitor:
  tokens:
    - 0xabc
    - 0xabc
  update_interval: 60s
  max_cycles: 3
`)

	t.Run("env overrides file", func(t *testing.T) {
		var cfg struct {
			BotToken string `mapstructure:"bot_token"`
			ChatId   string `mapstructure:"chat_id"`
		}
		require.NoError(t, unmarshalKey("telegram", &cfg))
		assert.Equal(t, "bot-token", cfg.BotToken)
		assert.Equal(t, "42", cfg.ChatId)
	})

	t.Run("typed values", func(t *testing.T) {
		cfg := InitMonitorConfig()
		assert.Equal(t, []string{"0xabc"}, cfg.Tokens)
		assert.Equal(t, 30*time.Second, cfg.UpdateInterval)
		assert.Equal(t, 1, cfg.Concurrency)
		assert.Equal(t, 3, cfg.MaxCycles)
	})

	t.Run("nested key", func(t *testing.T) {
		var cfg struct {
			Quote string `mapstructure:"quote"`
		}
		viper.Set("order.binance.quote", "USDC")
		require.NoError(t, unmarshalKey("order.binance", &cfg))
		assert.Equal(t, "USDC", cfg.Quote)
	})

	t.Run("missing section", func(t *testing.T) {
		cfg := struct {
			Addr string `mapstructure:"addr"`
		}{Addr: ":8080"}
		require.NoError(t, unmarshalKey("web", &cfg))
		assert.Equal(t, ":8080", cfg.Addr)
	})
}
