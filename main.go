package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/schedule"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/monitor"
	"github.com/SAFFEMIRZA/dex-bot/internal/web"
	"github.com/SAFFEMIRZA/dex-bot/ioc"
	"golang.org/x/sync/errgroup"
)

func main() {
	ioc.InitConfig()
	ioc.InitLogger()

	db := ioc.InitDB()
	recordRepo := repo.NewTokenRecordRepo(db)
	blacklistRepo := repo.NewBlacklistRepo(db)
	anomalyRepo := repo.NewAnomalyRepo(db)

	cli := ioc.InitHTTPClient()
	metrics := ioc.InitMetrics()
	bl := ioc.InitBlacklist(blacklistRepo)
	monitorCfg := ioc.InitMonitorConfig()

	tokenMonitor := ioc.InitTokenMonitor(
		ioc.InitMarketService(cli),
		ioc.InitSafetyService(cli),
		ioc.InitFraudService(cli),
		bl, recordRepo, blacklistRepo,
		ioc.InitOrderService(cli),
		ioc.InitNotifier(cli),
		metrics,
		monitorCfg.Concurrency,
	)
	analyzer := ioc.InitAnalyzer(recordRepo, anomalyRepo)
	task := monitor.NewCycleTask(tokenMonitor, analyzer, monitorCfg.Tokens, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	webCfg := ioc.InitWebConfig()
	if webCfg.Enabled {
		handler := ioc.InitWebHandler(webCfg, bl, recordRepo, anomalyRepo, metrics)
		g.Go(func() error {
			return web.Serve(ctx, webCfg.Addr, handler)
		})
	}
	g.Go(func() error {
		defer stop()
		slog.Info("dex bot started", "tokens", len(monitorCfg.Tokens), "interval", monitorCfg.UpdateInterval, "max_cycles", monitorCfg.MaxCycles)
		return schedule.NewRunner(task, monitorCfg.UpdateInterval, schedule.WithMaxRuns(monitorCfg.MaxCycles)).Run(ctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("dex bot stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("dex bot stopped")
}
