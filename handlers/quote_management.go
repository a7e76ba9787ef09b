package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/config"
	"malgeunsoft.com/launchpad/models"
)

// QuoteHandler handles quote CRUD and lifecycle operations
type QuoteHandler struct {
	db *gorm.DB
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler() *QuoteHandler {
	return &QuoteHandler{db: config.DB}
}

// storeErr maps the driver's record-miss error onto the domain sentinel
// so callers branch on models.ErrNotFound instead of a gorm internal.
func storeErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return err
}

func (h *QuoteHandler) fetchQuote(id string) (*models.Quote, error) {
	var quote models.Quote
	if err := h.db.First(&quote, "id = ?", id).Error; err != nil {
		return nil, storeErr(err, "quote "+id)
	}
	return &quote, nil
}

// CreateQuote creates a new quote. The initial status is 접수 and the
// status history is seeded from the quote's business date.
func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var quote models.Quote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if quote.QuoteTitle == "" {
		http.Error(w, "quoteTitle is required", http.StatusBadRequest)
		return
	}

	if time.Time(quote.QuoteDate).IsZero() {
		quote.QuoteDate = models.JSONTime(time.Now().UTC().Truncate(24 * time.Hour))
	}

	if canonical, ok := models.NormalizeStatus(quote.Status); ok {
		quote.Status = canonical
	} else {
		quote.Status = models.StatusReceived
	}
	quote.EnsureStatusHistory()

	quote.RecomputeTotal()

	if err := h.db.Create(&quote).Error; err != nil {
		log.Printf("❌ Failed to create quote: %v", err)
		http.Error(w, "Failed to create quote", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Created quote: %s (ID: %s)", quote.QuoteTitle, quote.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quote)
}

// ListQuotes lists quotes with the search filters offered by the status
// page: owner, status, purpose, company, manager, free text, date range.
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	var quotes []models.Quote

	query := h.db.Model(&models.Quote{})

	if createdBy := r.URL.Query().Get("created_by"); createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if canonical, ok := models.NormalizeStatus(status); ok {
			query = query.Where("status = ?", canonical)
		} else {
			query = query.Where("status = ?", status)
		}
	}
	if purpose := r.URL.Query().Get("purpose"); purpose != "" {
		query = query.Where("purpose = ?", purpose)
	}
	if company := r.URL.Query().Get("company"); company != "" {
		query = query.Where("customer->>'companyName' = ?", company)
	}
	if manager := r.URL.Query().Get("manager"); manager != "" {
		query = query.Where("manager_name ILIKE ?", "%"+manager+"%")
	}
	if text := r.URL.Query().Get("q"); text != "" {
		like := "%" + text + "%"
		query = query.Where("quote_title ILIKE ? OR memo ILIKE ?", like, like)
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		if d, err := models.ParseFlexibleTime(from); err == nil {
			query = query.Where("quote_date >= ?", d)
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if d, err := models.ParseFlexibleTime(to); err == nil {
			query = query.Where("quote_date < ?", d.AddDate(0, 0, 1))
		}
	}
	if temp := r.URL.Query().Get("is_temp"); temp != "" {
		query = query.Where("is_temp = ?", temp == "true")
	}

	if err := query.Order("quote_date DESC, created_at DESC").Find(&quotes).Error; err != nil {
		http.Error(w, "Failed to fetch quotes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// GetQuote retrieves a quote by ID
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	quote, err := h.fetchQuote(vars["id"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch quote", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// GetQuoteProgress returns the read-only progress projection for the
// status graph: which workflow steps are reached and which is current.
func (h *QuoteHandler) GetQuoteProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	quote, err := h.fetchQuote(vars["id"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch quote", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": quote.Status,
		"steps":  models.ProgressSteps(quote.Status, quote.StatusHistory),
	})
}

// UpdateQuote replaces a quote's content (full-edit resubmission). The
// identity fields and creation metadata are preserved; the total is
// recomputed from the submitted items.
func (h *QuoteHandler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	existing, err := h.fetchQuote(vars["id"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch quote", http.StatusInternalServerError)
		}
		return
	}

	var req models.Quote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	req.ID = existing.ID
	req.CreatedBy = existing.CreatedBy
	req.CreatedAt = existing.CreatedAt
	if canonical, ok := models.NormalizeStatus(req.Status); ok {
		req.Status = canonical
	} else {
		req.Status = existing.Status
	}
	if req.StatusHistory == nil {
		req.StatusHistory = existing.StatusHistory
	}
	req.EnsureStatusHistory()
	req.RecomputeTotal()

	if err := h.db.Save(&req).Error; err != nil {
		http.Error(w, "Failed to update quote", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Updated quote: %s", req.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// DeleteQuote removes a quote from the store entirely. There is no
// tombstone: the record disappears from every subsequent aggregation.
func (h *QuoteHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	quote, err := h.fetchQuote(vars["id"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch quote", http.StatusInternalServerError)
		}
		return
	}

	if err := h.db.Delete(quote).Error; err != nil {
		http.Error(w, "Failed to delete quote", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Deleted quote: %s", quote.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Quote deleted successfully",
	})
}

// updateStatusRequest is the body of the status advance endpoint: the
// target state and the user-chosen effective date from the modal.
type updateStatusRequest struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

// UpdateQuoteStatus advances a quote to the requested state, recording
// the effective date in the status history. A failed advance leaves the
// quote unchanged.
func (h *QuoteHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	effective, err := models.ParseFlexibleTime(req.Date)
	if err != nil {
		http.Error(w, "invalid date: "+req.Date, http.StatusBadRequest)
		return
	}

	quote, err := h.fetchQuote(vars["id"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to fetch quote", http.StatusInternalServerError)
		}
		return
	}

	if err := quote.Advance(req.Status, effective); err != nil {
		if models.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, "Failed to update status", http.StatusInternalServerError)
		}
		return
	}

	if err := h.db.Save(quote).Error; err != nil {
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Quote %s advanced to %s (%s)", quote.ID, quote.Status, req.Date)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"quote": quote,
		"steps": models.ProgressSteps(quote.Status, quote.StatusHistory),
	})
}
