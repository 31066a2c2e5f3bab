package ioc

import (
	"context"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/observability"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/analytics"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/blacklist"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/filter"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/monitor"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/notification"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/strategy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type MonitorConfig struct {
	Tokens         []string      `mapstructure:"tokens"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	Concurrency    int           `mapstructure:"concurrency"`
	// MaxCycles 大于 0 时跑完指定轮数后退出
	MaxCycles int `mapstructure:"max_cycles"`
}

func InitMonitorConfig() MonitorConfig {
	cfg := MonitorConfig{
		UpdateInterval: time.Minute,
		Concurrency:    1,
	}
	if err := unmarshalKey("monitor", &cfg); err != nil {
		panic(err)
	}
	cfg.Tokens = lo.Uniq(lo.Compact(cfg.Tokens))
	if len(cfg.Tokens) == 0 {
		panic("no tokens to monitor")
	}
	if cfg.UpdateInterval <= 0 {
		cfg.UpdateInterval = time.Minute
	}
	if cfg.MaxCycles < 0 {
		cfg.MaxCycles = 0
	}
	return cfg
}

func InitMetrics() *observability.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return observability.NewMetrics(reg, viper.GetString("web.metrics_namespace"))
}

// InitBlacklist 黑名单来自配置, blacklist.restore 为 true 时再加上历史审计记录
func InitBlacklist(blacklistRepo repo.BlacklistRepo) *blacklist.Set {
	type Config struct {
		Coins   []string `mapstructure:"coins"`
		Devs    []string `mapstructure:"devs"`
		Restore bool     `mapstructure:"restore"`
	}

	var cfg Config
	if err := unmarshalKey("blacklist", &cfg); err != nil {
		panic(err)
	}
	set := blacklist.NewSet(cfg.Coins, cfg.Devs)
	if !cfg.Restore {
		return set
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	entries, err := blacklistRepo.FindAll(ctx)
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		set.Add(entry.Symbol, entry.DevAddress)
	}
	return set
}

func InitFilter() *filter.Filter {
	type Config struct {
		MinLiquidity   float64 `mapstructure:"min_liquidity"`
		MaxPriceChange float64 `mapstructure:"max_price_change"`
		MinVolume      float64 `mapstructure:"min_volume"`
	}

	var cfg Config
	if err := unmarshalKey("filters", &cfg); err != nil {
		panic(err)
	}
	if cfg.MaxPriceChange <= 0 {
		panic("filters.max_price_change must be positive")
	}
	return filter.NewFilter(filter.Config{
		MinLiquidity:   decimal.NewFromFloat(cfg.MinLiquidity),
		MaxPriceChange: decimal.NewFromFloat(cfg.MaxPriceChange),
		MinVolume:      decimal.NewFromFloat(cfg.MinVolume),
	})
}

func InitClassifier() strategy.EventClassifier {
	type Config struct {
		PumpPriceThreshold    float64  `mapstructure:"pump_price_threshold"`
		RugLiquidityThreshold float64  `mapstructure:"rug_liquidity_threshold"`
		CexMarkers            []string `mapstructure:"cex_markers"`
	}

	var cfg Config
	if err := unmarshalKey("classifier", &cfg); err != nil {
		panic(err)
	}
	return strategy.NewRuleBasedClassifier(strategy.ClassifierConfig{
		PumpPriceThreshold:    decimal.NewFromFloat(cfg.PumpPriceThreshold),
		RugLiquidityThreshold: decimal.NewFromFloat(cfg.RugLiquidityThreshold),
		CexMarkers:            cfg.CexMarkers,
	})
}

func InitTokenMonitor(marketSvc market.Service, safetySvc oracle.SafetyService, fraudSvc oracle.FraudService,
	bl *blacklist.Set, recordRepo repo.TokenRecordRepo, blacklistRepo repo.BlacklistRepo,
	orderSvc exchange.OrderService, notifier notification.Notifier, metrics *observability.Metrics,
	concurrency int) *monitor.TokenMonitor {
	type TradeConfig struct {
		Amount float64 `mapstructure:"amount"`
	}
	type OracleConfig struct {
		FraudFailOpen bool `mapstructure:"fraud_fail_open"`
	}

	var tradeCfg TradeConfig
	if err := unmarshalKey("trade", &tradeCfg); err != nil {
		panic(err)
	}
	oracleCfg := OracleConfig{
		FraudFailOpen: true,
	}
	if err := unmarshalKey("oracle", &oracleCfg); err != nil {
		panic(err)
	}

	return monitor.NewTokenMonitor(marketSvc, safetySvc, fraudSvc, InitFilter(), InitClassifier(), bl,
		recordRepo, orderSvc,
		monitor.WithNotifier(notifier),
		monitor.WithBlacklistRepo(blacklistRepo),
		monitor.WithMetrics(metrics),
		monitor.WithTradeAmount(decimal.NewFromFloat(tradeCfg.Amount)),
		monitor.WithFraudFailOpen(oracleCfg.FraudFailOpen),
		monitor.WithConcurrency(concurrency),
	)
}

func InitAnalyzer(recordRepo repo.TokenRecordRepo, anomalyRepo repo.AnomalyRepo) *analytics.Analyzer {
	type Config struct {
		Trees         int     `mapstructure:"trees"`
		SampleSize    int     `mapstructure:"sample_size"`
		Contamination float64 `mapstructure:"contamination"`
	}

	cfg := Config{
		Trees:         analytics.DefaultTrees,
		SampleSize:    analytics.DefaultSampleSize,
		Contamination: analytics.DefaultContamination,
	}
	if err := unmarshalKey("analytics", &cfg); err != nil {
		panic(err)
	}
	detector := &analytics.IsolationForest{
		Trees:         cfg.Trees,
		SampleSize:    cfg.SampleSize,
		Contamination: cfg.Contamination,
	}
	return analytics.NewAnalyzer(recordRepo, detector, analytics.WithAnomalyRepo(anomalyRepo))
}
