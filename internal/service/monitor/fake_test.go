package monitor

import (
	"context"
	"errors"
	"sync"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/analytics"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
)

type fakeMarket struct {
	mu        sync.Mutex
	snapshots map[string]market.TokenSnapshot
	errs      map[string]error
	calls     []string
}

func (f *fakeMarket) GetSnapshot(ctx context.Context, address string) (market.TokenSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, address)
	if err, ok := f.errs[address]; ok {
		return market.TokenSnapshot{}, err
	}
	s, ok := f.snapshots[address]
	if !ok {
		return market.TokenSnapshot{}, market.ErrNoPairs
	}
	return s, nil
}

type fakeSafety struct {
	mu     sync.Mutex
	report oracle.SafetyReport
	err    error
	calls  int
}

func (f *fakeSafety) CheckSafety(ctx context.Context, address string) (oracle.SafetyReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.report, f.err
}

type fakeFraud struct {
	mu    sync.Mutex
	fake  bool
	err   error
	calls int
}

func (f *fakeFraud) IsFakeVolume(ctx context.Context, address string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.fake, f.err
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []entity.TokenRecord
	err     error
}

func (f *fakeRecordRepo) Create(ctx context.Context, record entity.TokenRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	record.Id = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return record.Id, nil
}

func (f *fakeRecordRepo) FindAll(ctx context.Context) ([]entity.TokenRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.TokenRecord(nil), f.records...), nil
}

func (f *fakeRecordRepo) FindRecent(ctx context.Context, limit int) ([]entity.TokenRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRecordRepo) FindBySymbol(ctx context.Context, symbol string) ([]entity.TokenRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRecordRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

type fakeBlacklistRepo struct {
	mu      sync.Mutex
	entries []entity.BlacklistEntry
}

func (f *fakeBlacklistRepo) Create(ctx context.Context, entry entity.BlacklistEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return int64(len(f.entries)), nil
}

func (f *fakeBlacklistRepo) FindAll(ctx context.Context) ([]entity.BlacklistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

type fakeOrder struct {
	mu   sync.Mutex
	reqs []exchange.OrderReq
	err  error
}

func (f *fakeOrder) PlaceOrder(ctx context.Context, req exchange.OrderReq) (exchange.OrderConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return exchange.OrderConfirmation{}, f.err
	}
	return exchange.OrderConfirmation{Id: "order-1"}, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.err
}

type fakeAnalyzer struct {
	calls  int
	report analytics.Report
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context) (analytics.Report, error) {
	f.calls++
	return f.report, f.err
}
