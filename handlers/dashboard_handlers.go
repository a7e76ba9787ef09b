package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/config"
	"malgeunsoft.com/launchpad/models"
)

// DashboardHandler serves the home dashboard and status page aggregates.
type DashboardHandler struct {
	db     *gorm.DB
	engine *DashboardEngine
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{db: config.DB, engine: NewDashboardEngine()}
}

// ownerFilterFromQuery reads the owner scoping parameters. Drafts are
// excluded from every aggregate unless include_temp is set.
func ownerFilterFromQuery(r *http.Request) OwnerFilter {
	q := r.URL.Query()
	return OwnerFilter{
		OwnerKey:    q.Get("owner"),
		Name:        q.Get("manager"),
		Email:       q.Get("email"),
		LegacyMatch: q.Get("legacy_match") == "true",
	}
}

func (h *DashboardHandler) loadQuotes(r *http.Request) ([]models.Quote, error) {
	var quotes []models.Quote
	query := h.db.Model(&models.Quote{})
	if r.URL.Query().Get("include_temp") != "true" {
		query = query.Where("is_temp = ?", false)
	}
	err := query.Find(&quotes).Error
	return quotes, err
}

// GetStatusCounts returns per-state monthly and cumulative counts plus
// cumulative amount sums for the selected year and optional month.
func (h *DashboardHandler) GetStatusCounts(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}
	month := 0
	if m := r.URL.Query().Get("month"); m != "" {
		month, err = strconv.Atoi(m)
		if err != nil || month < 0 || month > 12 {
			http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
			return
		}
	}

	quotes, err := h.loadQuotes(r)
	if err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	report := h.engine.ComputeStatusCounts(quotes, ownerFilterFromQuery(r), year, month)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// GetMonthlySeries returns the yearly trend chart data: sent and
// completed counts plus completed amounts for each of the 12 months.
func (h *DashboardHandler) GetMonthlySeries(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}

	quotes, err := h.loadQuotes(r)
	if err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	series := h.engine.ComputeMonthlySeries(quotes, ownerFilterFromQuery(r), year)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(series)
}

// GetSummary returns the performance panel numbers for the current month.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.loadQuotes(r)
	if err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	summary := h.engine.ComputeSummary(quotes, ownerFilterFromQuery(r), time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
