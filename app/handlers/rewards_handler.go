// Package handlers exposes the read API over HTTP.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// RewardsHandler serves account summaries, standings, and exports.
type RewardsHandler struct {
	service rewardsservice.Service
}

// NewRewardsHandler creates a new RewardsHandler.
func NewRewardsHandler(service rewardsservice.Service) *RewardsHandler {
	return &RewardsHandler{service: service}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccountSummary returns the derived widget view for one account.
func (h *RewardsHandler) GetAccountSummary(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	summary, err := h.service.GetAccountSummary(r.Context(), rewardsdomain.AccountID(accountID))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch account summary: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, summary)
}

// GetLeaderboard returns the top standings. ?limit=N caps the rows.
func (h *RewardsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	rows, err := h.service.GetLeaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch leaderboard: %v", err), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []rewardsservice.LeaderboardRow{}
	}
	writeJSON(w, rows)
}

// GetRankTiers returns the configured tier table for UI rendering.
func (h *RewardsHandler) GetRankTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.RankTable())
}

// GetPointsChart streams a PNG of the account's balance history.
// ?days=N limits the range.
func (h *RewardsHandler) GetPointsChart(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	png, err := h.service.RenderPointsChart(r.Context(), rewardsdomain.AccountID(accountID), days)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		return
	}
}

// ExportLeaderboard streams the standings as an XLSX workbook.
func (h *RewardsHandler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	data, err := h.service.ExportLeaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export leaderboard: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// ImportActionEvents replays an uploaded XLSX of historical events.
func (h *RewardsHandler) ImportActionEvents(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	report, err := h.service.ImportActionEvents(r.Context(), r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to import events: %v", err), http.StatusBadRequest)
		return
	}
	writeJSON(w, report)
}

// DeactivateAccount hides an account from the leaderboard.
func (h *RewardsHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	result, err := h.service.DeactivateAccount(r.Context(), rewardsdomain.AccountID(accountID), "api request")
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to deactivate account: %v", err), http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		http.Error(w, result.Failure.Reason, http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Routes sets up the routes for the rewards read API.
func (h *RewardsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/leaderboard", h.GetLeaderboard)
	r.Get("/leaderboard/export", h.ExportLeaderboard)
	r.Get("/ranks", h.GetRankTiers)
	r.Get("/accounts/{accountID}", h.GetAccountSummary)
	r.Get("/accounts/{accountID}/chart", h.GetPointsChart)
	r.Post("/accounts/{accountID}/deactivate", h.DeactivateAccount)
	r.Post("/import", h.ImportActionEvents)
	return r
}
