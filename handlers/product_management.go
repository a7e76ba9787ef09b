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

// ProductHandler manages the product catalog shown on the quote form.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler creates a new product handler
func NewProductHandler() *ProductHandler {
	return &ProductHandler{db: config.DB}
}

// GetProducts returns catalog products ordered for display. Inactive
// products are hidden unless include_inactive=true.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	query := h.db.Model(&models.Product{})
	if r.URL.Query().Get("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("display_order ASC, created_at ASC").Find(&products).Error; err != nil {
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product by ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var product models.Product
	if err := h.db.First(&product, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// CreateProduct adds a product to the catalog
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if product.Name == "" {
		http.Error(w, "Product name is required", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&product).Error; err != nil {
		log.Printf("❌ Failed to create product: %v", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Product created: %s (%s)", product.Name, product.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// UpdateProduct updates an existing catalog product
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	var updated models.Product
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.db.Save(&updated).Error; err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result := h.db.Delete(&models.Product{}, "id = ?", vars["id"])
	if result.Error != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Product deleted successfully",
	})
}
