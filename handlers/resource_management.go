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

// ResourceHandler manages the shared sales resource library.
type ResourceHandler struct {
	db *gorm.DB
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{db: config.DB}
}

// GetResourceCategories returns the fixed category list
func (h *ResourceHandler) GetResourceCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"categories": models.ResourceCategories,
	})
}

// GetResources returns library entries, optionally filtered by category
// or a name/description search term.
func (h *ResourceHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	var resources []models.Resource
	query := h.db.Model(&models.Resource{})
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := r.URL.Query().Get("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		http.Error(w, "Failed to fetch resources", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"resources": resources,
		"count":     len(resources),
	})
}

// GetResource returns a single resource by ID
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var resource models.Resource
	if err := h.db.First(&resource, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch resource", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resource)
}

// CreateResource registers a library entry. Accepts multipart form data
// with an optional "file" part, or a plain JSON body when the file was
// uploaded separately.
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var resource models.Resource

	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		resource.Name = r.FormValue("name")
		resource.Description = r.FormValue("description")
		resource.Category = r.FormValue("category")
		resource.CreatedBy = r.FormValue("created_by")

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			url, storedName, upErr := SaveUploadedFile(r.Context(), file, header, "resources")
			if upErr != nil {
				log.Printf("❌ Resource upload failed: %v", upErr)
				http.Error(w, "Failed to store file", http.StatusInternalServerError)
				return
			}
			resource.FileName = header.Filename
			resource.FileURL = url
			resource.StoredName = storedName
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	if resource.Name == "" {
		http.Error(w, "Resource name is required", http.StatusBadRequest)
		return
	}
	if !models.IsResourceCategory(resource.Category) {
		http.Error(w, "Unknown resource category", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&resource).Error; err != nil {
		http.Error(w, "Failed to create resource", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Resource created: %s [%s]", resource.Name, resource.Category)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resource)
}

// UpdateResource updates name, description or category of an entry
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var existing models.Resource
	if err := h.db.First(&existing, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch resource", http.StatusInternalServerError)
		return
	}

	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name != nil {
		existing.Name = *payload.Name
	}
	if payload.Description != nil {
		existing.Description = *payload.Description
	}
	if payload.Category != nil {
		if !models.IsResourceCategory(*payload.Category) {
			http.Error(w, "Unknown resource category", http.StatusBadRequest)
			return
		}
		existing.Category = *payload.Category
	}

	if err := h.db.Save(&existing).Error; err != nil {
		http.Error(w, "Failed to update resource", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// DeleteResource removes a library entry and its stored file
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var resource models.Resource
	if err := h.db.First(&resource, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch resource", http.StatusInternalServerError)
		return
	}

	if resource.StoredName != "" {
		if err := DeleteStoredFile(r.Context(), resource.StoredName); err != nil {
			// Orphaned file is not fatal, the record still goes away.
			log.Printf("❌ Failed to delete stored file %s: %v", resource.StoredName, err)
		}
	}

	if err := h.db.Delete(&resource).Error; err != nil {
		http.Error(w, "Failed to delete resource", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Resource deleted successfully",
	})
}
