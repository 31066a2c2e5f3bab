package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/observability"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/blacklist"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/filter"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/notification"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/strategy"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var _ Service = (*TokenMonitor)(nil)

var DefaultTradeAmount = decimal.NewFromFloat(0.01)

type TokenMonitor struct {
	marketSvc  market.Service
	safetySvc  oracle.SafetyService
	fraudSvc   oracle.FraudService
	filter     *filter.Filter
	classifier strategy.EventClassifier
	blacklist  *blacklist.Set
	recordRepo repo.TokenRecordRepo
	orderSvc   exchange.OrderService
	notifier   notification.Notifier

	blacklistRepo repo.BlacklistRepo
	metrics       *observability.Metrics

	tradeAmount decimal.Decimal
	// 刷量检测失败时是否当作正常成交量
	fraudFailOpen bool
	concurrency   int
	now           func() time.Time

	// 记录写入和黑名单追加串行执行
	writeMu sync.Mutex
}

type Option func(m *TokenMonitor)

func WithNotifier(notifier notification.Notifier) Option {
	return func(m *TokenMonitor) {
		m.notifier = notifier
	}
}

// WithBlacklistRepo 黑名单新增时写一条审计记录
func WithBlacklistRepo(blacklistRepo repo.BlacklistRepo) Option {
	return func(m *TokenMonitor) {
		m.blacklistRepo = blacklistRepo
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *TokenMonitor) {
		m.metrics = metrics
	}
}

func WithTradeAmount(amount decimal.Decimal) Option {
	return func(m *TokenMonitor) {
		if amount.IsPositive() {
			m.tradeAmount = amount
		}
	}
}

func WithFraudFailOpen(failOpen bool) Option {
	return func(m *TokenMonitor) {
		m.fraudFailOpen = failOpen
	}
}

// WithConcurrency 同时评估的代币数, 小于等于 1 时串行
func WithConcurrency(n int) Option {
	return func(m *TokenMonitor) {
		m.concurrency = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *TokenMonitor) {
		m.now = now
	}
}

func NewTokenMonitor(marketSvc market.Service, safetySvc oracle.SafetyService, fraudSvc oracle.FraudService,
	f *filter.Filter, classifier strategy.EventClassifier, bl *blacklist.Set,
	recordRepo repo.TokenRecordRepo, orderSvc exchange.OrderService, opts ...Option) *TokenMonitor {
	m := &TokenMonitor{
		marketSvc:     marketSvc,
		safetySvc:     safetySvc,
		fraudSvc:      fraudSvc,
		filter:        f,
		classifier:    classifier,
		blacklist:     bl,
		recordRepo:    recordRepo,
		orderSvc:      orderSvc,
		notifier:      notification.NewConsoleNotifier(),
		tradeAmount:   DefaultTradeAmount,
		fraudFailOpen: true,
		concurrency:   1,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scan 评估所有代币, 只有记录写入失败或 ctx 取消会提前返回
func (m *TokenMonitor) Scan(ctx context.Context, addresses []string) error {
	if m.concurrency <= 1 {
		for _, addr := range addresses {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := m.Evaluate(ctx, addr); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for _, addr := range addresses {
		addr := addr
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := m.Evaluate(gctx, addr)
			return err
		})
	}
	return g.Wait()
}

func (m *TokenMonitor) Evaluate(ctx context.Context, addr string) (out Outcome, err error) {
	log := cycleLogger(ctx).With("address", addr)
	out = Outcome{Address: addr}
	defer func() {
		m.metrics.RecordEvaluation(string(out.Stage))
	}()

	snapshot, err := m.marketSvc.GetSnapshot(ctx, addr)
	if err != nil {
		out.Stage = StageFetchFailed
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		log.Error("failed to get token snapshot", "error", err)
		return out, nil
	}
	out.Stage = StageFetched
	log = log.With("symbol", snapshot.Symbol)

	verdict := m.filter.Check(snapshot, m.blacklist)
	if !verdict.Admitted {
		out.Rejection = verdict.Reason
		m.metrics.RecordRejection(string(verdict.Reason))
		log.Debug("token filtered out", "reason", verdict.Reason)
		return out, nil
	}
	out.Stage = StageAdmitted

	safety, fake := m.checkOracles(ctx, log, snapshot.Address)
	out.Stage = StageFraudChecked

	event := m.classifier.Classify(snapshot)
	out.Stage = StageClassified
	m.metrics.RecordEvent(eventString(event))

	record := entity.TokenRecord{
		Symbol:          snapshot.Symbol,
		Name:            snapshot.Name,
		Price:           snapshot.Price,
		Liquidity:       snapshot.Liquidity,
		Volume:          snapshot.Volume24h,
		MarketCap:       snapshot.MarketCap,
		Timestamp:       m.now().UTC().Truncate(time.Second),
		Event:           event,
		DevAddress:      snapshot.Address,
		IsFakeVolume:    fake,
		SafetyStatus:    safety.Status,
		IsBundledSupply: safety.IsBundledSupply,
	}

	// 中途取消的代币下一轮重新评估, 不写半成品记录
	if err = ctx.Err(); err != nil {
		return out, err
	}
	if err = m.persist(ctx, log, &record, &out); err != nil {
		return out, err
	}

	if m.shouldTrade(record) {
		m.trade(ctx, log, record, &out)
	}
	return out, nil
}

// checkOracles 并行调用安全检查和刷量检测, 失败时按默认值处理
func (m *TokenMonitor) checkOracles(ctx context.Context, log *slog.Logger, addr string) (oracle.SafetyReport, bool) {
	var (
		safety oracle.SafetyReport
		fake   bool
		g      errgroup.Group
	)
	g.Go(func() error {
		report, err := m.safetySvc.CheckSafety(ctx, addr)
		if err != nil {
			log.Warn("safety check unavailable, assume unknown", "error", err)
			m.metrics.RecordOracleFailure("safety")
			report = oracle.UnknownSafety
		}
		safety = report
		return nil
	})
	g.Go(func() error {
		isFake, err := m.fraudSvc.IsFakeVolume(ctx, addr)
		if err != nil {
			log.Warn("fake volume check unavailable", "error", err, "fail_open", m.fraudFailOpen)
			m.metrics.RecordOracleFailure("fraud")
			isFake = !m.fraudFailOpen
		}
		fake = isFake
		return nil
	})
	_ = g.Wait()
	return safety, fake
}

func (m *TokenMonitor) persist(ctx context.Context, log *slog.Logger, record *entity.TokenRecord, out *Outcome) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	id, err := m.recordRepo.Create(ctx, *record)
	if err != nil {
		log.Error("failed to save token record", "error", err)
		return fmt.Errorf("%w: %s: %w", ErrPersistence, record.Symbol, err)
	}
	record.Id = id
	out.Record = record
	out.Stage = StageRecorded

	if !record.IsBundledSupply {
		return nil
	}
	if !m.blacklist.Add(record.Symbol, record.DevAddress) {
		return nil
	}
	out.Blacklisted = true
	out.Stage = StageBlacklisted
	m.metrics.RecordBlacklisted()
	log.Warn("bundled supply detected, token blacklisted", "dev", record.DevAddress)

	if m.blacklistRepo != nil {
		_, err = m.blacklistRepo.Create(ctx, entity.BlacklistEntry{
			Symbol:     record.Symbol,
			DevAddress: record.DevAddress,
			Reason:     entity.BlacklistReasonBundledSupply,
			CreatedAt:  record.Timestamp,
		})
		if err != nil {
			log.Error("failed to save blacklist entry", "error", err)
		}
	}
	return nil
}

// shouldTrade 安全, 非刷量且为 pump 事件时买入
func (m *TokenMonitor) shouldTrade(record entity.TokenRecord) bool {
	return record.SafetyStatus == entity.SafetyGood &&
		!record.IsFakeVolume &&
		record.Event != nil && *record.Event == entity.EventPump
}

// trade 下单和通知互不影响, 失败只记日志
func (m *TokenMonitor) trade(ctx context.Context, log *slog.Logger, record entity.TokenRecord, out *Outcome) {
	out.Stage = StageTraded

	confirm, err := m.orderSvc.PlaceOrder(ctx, exchange.OrderReq{
		TokenAddress: record.DevAddress,
		Symbol:       record.Symbol,
		Side:         exchange.Buy,
		Amount:       m.tradeAmount,
	})
	m.metrics.RecordOrder(err)
	if err != nil {
		log.Error("failed to place buy order", "amount", m.tradeAmount, "error", err)
	} else {
		out.OrderPlaced = true
		log.Info("buy order placed", "order", confirm.Id, "amount", m.tradeAmount, "price", record.Price)
	}

	err = m.notifier.Notify(ctx, TradeMessage(record.Symbol, record.Price))
	m.metrics.RecordNotification(err)
	if err != nil {
		log.Error("failed to send trade notification", "error", err)
		return
	}
	out.Notified = true
}

func TradeMessage(symbol string, price decimal.Decimal) string {
	return fmt.Sprintf("🚀 BUY %s at %s USD", symbol, price.String())
}

func eventString(event *entity.EventTag) string {
	if event == nil {
		return ""
	}
	return string(*event)
}
