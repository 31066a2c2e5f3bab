package ioc

import (
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/observability"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/blacklist"
	"github.com/SAFFEMIRZA/dex-bot/internal/web"
)

type WebConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr"`
	RateLimitRPS int    `mapstructure:"rate_limit_rps"`
}

func InitWebConfig() WebConfig {
	cfg := WebConfig{
		Addr:         ":8080",
		RateLimitRPS: 20,
	}
	if err := unmarshalKey("web", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func InitWebHandler(cfg WebConfig, bl *blacklist.Set, recordRepo repo.TokenRecordRepo,
	anomalyRepo repo.AnomalyRepo, metrics *observability.Metrics) http.Handler {
	h := web.NewHandler(bl, recordRepo, anomalyRepo)
	return web.NewRouter(h, metrics.Handler(), cfg.RateLimitRPS)
}
