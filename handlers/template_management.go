package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/config"
	"malgeunsoft.com/launchpad/models"
)

// TemplateHandler manages reusable quote item templates.
type TemplateHandler struct {
	db *gorm.DB
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{db: config.DB}
}

// GetTemplates returns all saved templates
func (h *TemplateHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	var templates []models.QuoteTemplate
	query := h.db.Model(&models.QuoteTemplate{})
	if createdBy := r.URL.Query().Get("created_by"); createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		http.Error(w, "Failed to fetch templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"templates": templates,
		"count":     len(templates),
	})
}

// GetTemplate returns a single template by ID
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var template models.QuoteTemplate
	if err := h.db.First(&template, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Template not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(template)
}

// CreateTemplate saves a named set of quote items for reuse
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var template models.QuoteTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if template.Name == "" {
		http.Error(w, "Template name is required", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&template).Error; err != nil {
		log.Printf("❌ Failed to create template: %v", err)
		http.Error(w, "Failed to create template", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Template created: %s", template.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(template)
}

// UpdateTemplate replaces the name and items of a saved template
func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var existing models.QuoteTemplate
	if err := h.db.First(&existing, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Template not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch template", http.StatusInternalServerError)
		return
	}

	var updated models.QuoteTemplate
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	if err := h.db.Save(&updated).Error; err != nil {
		http.Error(w, "Failed to update template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteTemplate removes a saved template
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result := h.db.Delete(&models.QuoteTemplate{}, "id = ?", vars["id"])
	if result.Error != nil {
		http.Error(w, "Failed to delete template", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Template deleted successfully",
	})
}
