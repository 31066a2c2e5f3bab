package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/blacklist"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Handler 只读运维接口
type Handler struct {
	blacklist   *blacklist.Set
	recordRepo  repo.TokenRecordRepo
	anomalyRepo repo.AnomalyRepo
}

func NewHandler(bl *blacklist.Set, recordRepo repo.TokenRecordRepo, anomalyRepo repo.AnomalyRepo) *Handler {
	return &Handler{
		blacklist:   bl,
		recordRepo:  recordRepo,
		anomalyRepo: anomalyRepo,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/blacklist", h.GetBlacklist)
	r.Get("/records", h.GetRecords)
	r.Get("/anomalies", h.GetAnomalies)
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Records   int64  `json:"records"`
	Error     string `json:"error,omitempty"`
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	count, err := h.recordRepo.Count(ctx)
	if err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Records = count
	respondJSON(w, http.StatusOK, resp)
}

type BlacklistResponse struct {
	Symbols   []string `json:"symbols"`
	Addresses []string `json:"addresses"`
}

// GetBlacklist handles GET /api/v1/blacklist
func (h *Handler) GetBlacklist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, BlacklistResponse{
		Symbols:   h.blacklist.Symbols(),
		Addresses: h.blacklist.Addresses(),
	})
}

type RecordResponse struct {
	Id              int64            `json:"id"`
	Symbol          string           `json:"symbol"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	Liquidity       decimal.Decimal  `json:"liquidity"`
	Volume          decimal.Decimal  `json:"volume"`
	MarketCap       *decimal.Decimal `json:"market_cap"`
	Timestamp       time.Time        `json:"timestamp"`
	Event           *string          `json:"event"`
	DevAddress      string           `json:"dev_address"`
	IsFakeVolume    bool             `json:"is_fake_volume"`
	SafetyStatus    string           `json:"safety_status"`
	IsBundledSupply bool             `json:"is_bundled_supply"`
}

func toRecordResponse(record entity.TokenRecord, _ int) RecordResponse {
	resp := RecordResponse{
		Id:              record.Id,
		Symbol:          record.Symbol,
		Name:            record.Name,
		Price:           record.Price,
		Liquidity:       record.Liquidity,
		Volume:          record.Volume,
		Timestamp:       record.Timestamp,
		DevAddress:      record.DevAddress,
		IsFakeVolume:    record.IsFakeVolume,
		SafetyStatus:    string(record.SafetyStatus),
		IsBundledSupply: record.IsBundledSupply,
	}
	if record.MarketCap.Valid {
		resp.MarketCap = &record.MarketCap.Decimal
	}
	if record.Event != nil {
		resp.Event = lo.ToPtr(record.EventString())
	}
	return resp
}

// GetRecords handles GET /api/v1/records?symbol=&limit=
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	var (
		records []entity.TokenRecord
		err     error
	)
	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		records, err = h.recordRepo.FindBySymbol(r.Context(), symbol)
	} else {
		records, err = h.recordRepo.FindRecent(r.Context(), parseLimit(r))
	}
	if err != nil {
		slog.Error("failed to query token records", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to query records")
		return
	}
	respondJSON(w, http.StatusOK, lo.Map(records, toRecordResponse))
}

// GetAnomalies handles GET /api/v1/anomalies?limit=
func (h *Handler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	anomalies, err := h.anomalyRepo.FindRecent(r.Context(), parseLimit(r))
	if err != nil {
		slog.Error("failed to query anomalies", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to query anomalies")
		return
	}
	respondJSON(w, http.StatusOK, anomalies)
}

func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
