package ioc

import (
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle/pocketuniverse"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle/rugcheck"
)

func InitFraudService(cli *http.Client) oracle.FraudService {
	type Config struct {
		BaseURL string `mapstructure:"base_url"`
		ApiKey  string `mapstructure:"api_key"`
	}

	var cfg Config
	if err := unmarshalKey("pocket_universe", &cfg); err != nil {
		panic(err)
	}
	if cfg.BaseURL == "" {
		panic("no pocket universe base url set")
	}
	return pocketuniverse.NewService(cfg.BaseURL, cfg.ApiKey, pocketuniverse.WithHTTPClient(cli))
}

func InitSafetyService(cli *http.Client) oracle.SafetyService {
	type Config struct {
		BaseURL string `mapstructure:"base_url"`
	}

	var cfg Config
	if err := unmarshalKey("rugcheck", &cfg); err != nil {
		panic(err)
	}
	if cfg.BaseURL == "" {
		panic("no rugcheck base url set")
	}
	return rugcheck.NewService(cfg.BaseURL, rugcheck.WithHTTPClient(cli))
}
