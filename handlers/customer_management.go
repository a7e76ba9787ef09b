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

// CustomerHandler manages the customer book used to prefill quotes.
type CustomerHandler struct {
	db *gorm.DB
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler() *CustomerHandler {
	return &CustomerHandler{db: config.DB}
}

// GetCustomers returns customers, optionally filtered by a search term
// matched against company and contact names.
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	query := h.db.Model(&models.Customer{})
	if q := r.URL.Query().Get("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("company_name ILIKE ? OR contact_person ILIKE ?", pattern, pattern)
	}
	if err := query.Order("company_name ASC").Find(&customers).Error; err != nil {
		http.Error(w, "Failed to fetch customers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomer returns a single customer by ID
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}

// CreateCustomer adds a customer record
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if customer.CompanyName == "" {
		http.Error(w, "Company name is required", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&customer).Error; err != nil {
		log.Printf("❌ Failed to create customer: %v", err)
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Customer created: %s", customer.CompanyName)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

// UpdateCustomer updates an existing customer record
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var existing models.Customer
	if err := h.db.First(&existing, "id = ?", vars["id"]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch customer", http.StatusInternalServerError)
		return
	}

	var updated models.Customer
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.db.Save(&updated).Error; err != nil {
		http.Error(w, "Failed to update customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DeleteCustomer removes a customer record. Quotes keep their embedded
// customer snapshot, so deleting the book entry never touches quotes.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result := h.db.Delete(&models.Customer{}, "id = ?", vars["id"])
	if result.Error != nil {
		http.Error(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Customer deleted successfully",
	})
}
