package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"malgeunsoft.com/launchpad/handlers"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handleHealth).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(handlers.LocalUploadDir()))),
	)

	api := r.PathPrefix("/api").Subrouter()

	// Quotes
	quoteHandler := handlers.NewQuoteHandler()
	api.HandleFunc("/quotes", quoteHandler.ListQuotes).Methods("GET")
	api.HandleFunc("/quotes", quoteHandler.CreateQuote).Methods("POST")
	api.HandleFunc("/quotes/{id}", quoteHandler.GetQuote).Methods("GET")
	api.HandleFunc("/quotes/{id}", quoteHandler.UpdateQuote).Methods("PUT")
	api.HandleFunc("/quotes/{id}", quoteHandler.DeleteQuote).Methods("DELETE")
	api.HandleFunc("/quotes/{id}/status", quoteHandler.UpdateQuoteStatus).Methods("POST")
	api.HandleFunc("/quotes/{id}/progress", quoteHandler.GetQuoteProgress).Methods("GET")

	// Exports
	exportHandler := handlers.NewExportHandler()
	api.HandleFunc("/quotes/{id}/pdf", exportHandler.ExportQuoteToPDF).Methods("GET")
	api.HandleFunc("/reports/quotes/export", handleQuoteReportExport(exportHandler)).Methods("GET")

	// Dashboard aggregates
	dashboardHandler := handlers.NewDashboardHandler()
	api.HandleFunc("/dashboard/status-counts", dashboardHandler.GetStatusCounts).Methods("GET")
	api.HandleFunc("/dashboard/monthly-series", dashboardHandler.GetMonthlySeries).Methods("GET")
	api.HandleFunc("/dashboard/summary", dashboardHandler.GetSummary).Methods("GET")

	// Product catalog
	productHandler := handlers.NewProductHandler()
	api.HandleFunc("/products", productHandler.GetProducts).Methods("GET")
	api.HandleFunc("/products", productHandler.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id}", productHandler.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", productHandler.DeleteProduct).Methods("DELETE")

	// Resource library
	resourceHandler := handlers.NewResourceHandler()
	api.HandleFunc("/resources/categories", resourceHandler.GetResourceCategories).Methods("GET")
	api.HandleFunc("/resources/upload", handlers.UploadFileHandler).Methods("POST")
	api.HandleFunc("/resources", resourceHandler.GetResources).Methods("GET")
	api.HandleFunc("/resources", resourceHandler.CreateResource).Methods("POST")
	api.HandleFunc("/resources/{id}", resourceHandler.GetResource).Methods("GET")
	api.HandleFunc("/resources/{id}", resourceHandler.UpdateResource).Methods("PUT")
	api.HandleFunc("/resources/{id}", resourceHandler.DeleteResource).Methods("DELETE")

	// Customers
	customerHandler := handlers.NewCustomerHandler()
	api.HandleFunc("/customers", customerHandler.GetCustomers).Methods("GET")
	api.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", customerHandler.GetCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Quote templates
	templateHandler := handlers.NewTemplateHandler()
	api.HandleFunc("/templates", templateHandler.GetTemplates).Methods("GET")
	api.HandleFunc("/templates", templateHandler.CreateTemplate).Methods("POST")
	api.HandleFunc("/templates/{id}", templateHandler.GetTemplate).Methods("GET")
	api.HandleFunc("/templates/{id}", templateHandler.UpdateTemplate).Methods("PUT")
	api.HandleFunc("/templates/{id}", templateHandler.DeleteTemplate).Methods("DELETE")

	// File uploads
	api.HandleFunc("/files/upload", handlers.UploadFileHandler).Methods("POST")

	return r
}

// handleQuoteReportExport dispatches on ?format=xlsx|csv.
func handleQuoteReportExport(h *handlers.ExportHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("format") {
		case "csv":
			h.ExportQuotesToCSV(w, r)
		case "", "xlsx":
			h.ExportQuotesToExcel(w, r)
		default:
			http.Error(w, "Unsupported export format", http.StatusBadRequest)
		}
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
