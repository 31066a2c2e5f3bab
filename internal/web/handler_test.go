package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/observability"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/blacklist"
	"github.com/SAFFEMIRZA/dex-bot/pkg/decimalx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router    http.Handler
	records   repo.TokenRecordRepo
	anomalies repo.AnomalyRepo
	blacklist *blacklist.Set
}

func setupTest(t *testing.T) *testEnv {
	dsn := filepath.Join(t.TempDir(), "web.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repo.InitTables(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		records:   repo.NewTokenRecordRepo(db),
		anomalies: repo.NewAnomalyRepo(db),
		blacklist: blacklist.NewSet([]string{"SCAM"}, []string{"dev-bad"}),
	}
	h := NewHandler(env.blacklist, env.records, env.anomalies)
	env.router = NewRouter(h, observability.NewMetrics(nil, "").Handler(), 0)
	return env
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) addRecord(t *testing.T, symbol, price string, event *entity.EventTag) int64 {
	id, err := e.records.Create(context.Background(), entity.TokenRecord{
		Symbol:       symbol,
		Price:        decimalx.MustFromString(price),
		Liquidity:    decimal.NewFromInt(50000),
		Volume:       decimal.NewFromInt(100000),
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Event:        event,
		SafetyStatus: entity.SafetyGood,
	})
	require.NoError(t, err)
	return id
}

func TestHandler_Health(t *testing.T) {
	env := setupTest(t)
	env.addRecord(t, "PEPE", "1", nil)

	rec := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, int64(1), resp.Records)
}

type brokenRecordRepo struct {
	repo.TokenRecordRepo
}

func (brokenRecordRepo) Count(ctx context.Context) (int64, error) {
	return 0, errors.New("database is locked")
}

func (brokenRecordRepo) FindRecent(ctx context.Context, limit int) ([]entity.TokenRecord, error) {
	return nil, errors.New("database is locked")
}

func TestHandler_Unhealthy(t *testing.T) {
	router := NewRouter(NewHandler(blacklist.NewSet(nil, nil), brokenRecordRepo{}, nil), nil, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database is locked")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database is locked")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetBlacklist(t *testing.T) {
	env := setupTest(t)
	env.blacklist.Add("BUNDLE", "dev-bundle")

	rec := env.get(t, "/api/v1/blacklist")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp BlacklistResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"BUNDLE", "SCAM"}, resp.Symbols)
	assert.Equal(t, []string{"dev-bad", "dev-bundle"}, resp.Addresses)
}

func TestHandler_GetRecords(t *testing.T) {
	env := setupTest(t)
	env.addRecord(t, "PEPE", "1.5", nil)
	env.addRecord(t, "WIF", "2000", entity.EventPump.Ptr())
	env.addRecord(t, "PEPE", "1.6", nil)

	rec := env.get(t, "/api/v1/records?limit=2")
	assert.Equal(t, http.StatusOK, rec.Code)
	var recent []RecordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&recent))
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].Id)
	assert.Equal(t, "WIF", recent[1].Symbol)
	require.NotNil(t, recent[1].Event)
	assert.Equal(t, "pump", *recent[1].Event)
	assert.Nil(t, recent[1].MarketCap)
	assert.True(t, recent[1].Price.Equal(decimal.NewFromInt(2000)))

	rec = env.get(t, "/api/v1/records?symbol=PEPE")
	var pepe []RecordResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pepe))
	require.Len(t, pepe, 2)
	for _, r := range pepe {
		assert.Equal(t, "PEPE", r.Symbol)
		assert.Nil(t, r.Event)
	}
}

func TestHandler_GetAnomalies(t *testing.T) {
	env := setupTest(t)
	id := env.addRecord(t, "PEPE", "30", nil)
	require.NoError(t, env.anomalies.Upsert(context.Background(), []entity.Anomaly{{
		RecordId:    id,
		Symbol:      "PEPE",
		Price:       decimal.NewFromInt(30),
		PriceChange: 9,
		Score:       0.81,
		DetectedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}))

	rec := env.get(t, "/api/v1/anomalies")
	assert.Equal(t, http.StatusOK, rec.Code)
	var anomalies []entity.Anomaly
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&anomalies))
	require.Len(t, anomalies, 1)
	assert.Equal(t, id, anomalies[0].RecordId)
	assert.Equal(t, 9.0, anomalies[0].PriceChange)
}

func TestHandler_Metrics(t *testing.T) {
	env := setupTest(t)
	rec := env.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dex_bot_")
}

func TestParseLimit(t *testing.T) {
	testCases := map[string]int{
		"":            defaultLimit,
		"?limit=abc":  defaultLimit,
		"?limit=-1":   defaultLimit,
		"?limit=10":   10,
		"?limit=9999": maxLimit,
	}
	for query, want := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/records"+query, nil)
		assert.Equal(t, want, parseLimit(req), query)
	}
}
