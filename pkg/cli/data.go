package cli

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dropsim/dropctl/pkg/data"
)

const (
	listLimitDefault = 25
	listLimitMax     = 500
	daysDefault      = 30
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryParamInt(r *http.Request, key string, def, max int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("error converting query string to int", "value", v, "error", err)
		return def
	}

	if i < 1 || i > max {
		return def
	}

	return i
}

func summaryAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := queryParamInt(r, "d", daysDefault, 365)
		res, err := data.GetSummary(db, days)
		if err != nil {
			slog.Error("failed to get summary", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying summary")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func productsAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryParamInt(r, "limit", listLimitDefault, listLimitMax)
		res, err := data.ListProducts(db, limit)
		if err != nil {
			slog.Error("failed to list products", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying products")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func suppliersAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := data.ListSuppliers(db)
		if err != nil {
			slog.Error("failed to list suppliers", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying suppliers")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func influencersAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("p")
		res, err := data.ListInfluencers(db, platform)
		if err != nil {
			slog.Error("failed to list influencers", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying influencers")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func contentAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryParamInt(r, "limit", listLimitDefault, listLimitMax)
		res, err := data.ListContent(db, limit)
		if err != nil {
			slog.Error("failed to list content", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying content")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func ordersAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("s")
		limit := queryParamInt(r, "limit", listLimitDefault, listLimitMax)

		slog.Debug("order query", "status", status, "limit", limit)

		res, err := data.ListOrders(db, status, limit)
		if err != nil {
			slog.Error("failed to list orders", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying orders")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func dailyRevenueAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := queryParamInt(r, "d", daysDefault, 365)
		res, err := data.GetSummary(db, days)
		if err != nil {
			slog.Error("failed to get daily revenue", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying daily revenue")
			return
		}
		writeJSON(w, http.StatusOK, res.DailyRevenue)
	}
}

func scoreHistoryAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType := r.URL.Query().Get("t")
		entityID := r.URL.Query().Get("id")
		if entityType == "" || entityID == "" {
			writeError(w, http.StatusBadRequest, "t and id parameters required")
			return
		}

		res, err := data.GetScoreHistory(db, entityType, entityID)
		if err != nil {
			slog.Error("failed to get score history", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying score history")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
