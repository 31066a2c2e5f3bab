package ioc

import (
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market/dexscreener"
)

func InitMarketService(cli *http.Client) market.Service {
	type Config struct {
		BaseURL string `mapstructure:"base_url"`
	}

	var cfg Config
	if err := unmarshalKey("dexscreener", &cfg); err != nil {
		panic(err)
	}
	return dexscreener.NewService(cfg.BaseURL, dexscreener.WithHTTPClient(cli))
}
