package http

import (
	"andhara-backend/internal/handlers"
	"andhara-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	purchaseHandler *handlers.PurchaseHandler,
	followUpHandler *handlers.FollowUpHandler,
	emailHandler *handlers.EmailHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Basic).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.Detailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Authentication
	v1.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	v1.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// User management, gated by the authorization policy
	usersAPI := v1.PathPrefix("/auth/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireUserAdmin)
	usersAPI.HandleFunc("", authHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", authHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", authHandler.DeleteUser).Methods("DELETE")

	// Customers
	customersAPI := v1.PathPrefix("/customer").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("/get-all-customers", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/create-customer", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/get-customer/{document}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/update-customer/{document}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/toggle-state-customer/{document}", customerHandler.ToggleCustomerState).Methods("PATCH")
	customersAPI.HandleFunc("/get-purchases-by-customer/{document}", customerHandler.GetPurchaseHistory).Methods("GET")

	// Products and stock
	productsAPI := v1.PathPrefix("/product").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("/get-all-products", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("/create-product", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/get-product/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/update-product/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/toggle-state-product/{id}", productHandler.ToggleProductState).Methods("PATCH")
	productsAPI.HandleFunc("/update-stock/{id}", productHandler.UpdateStock).Methods("PATCH")

	// Purchases
	purchasesAPI := v1.PathPrefix("/purchase").Subrouter()
	purchasesAPI.Use(authMiddleware.Authenticate)
	purchasesAPI.HandleFunc("/make-purchase", purchaseHandler.MakePurchase).Methods("POST")
	purchasesAPI.HandleFunc("/get-purchase/{id}", purchaseHandler.GetPurchase).Methods("GET")
	purchasesAPI.HandleFunc("/get-purchase/{id}/receipt", purchaseHandler.GetReceipt).Methods("GET")

	// Customer service follow-ups
	followUpsAPI := v1.PathPrefix("/customer-service").Subrouter()
	followUpsAPI.Use(authMiddleware.Authenticate)
	followUpsAPI.HandleFunc("/get-all-data-customer-service", followUpHandler.ListFollowUps).Methods("GET")
	followUpsAPI.HandleFunc("/get-customer-service/{id}", followUpHandler.GetFollowUp).Methods("GET")
	followUpsAPI.HandleFunc("/manage-customer-service/{id}", followUpHandler.ManageFollowUp).Methods("PATCH")

	// Manual trigger for the daily reminder email
	emailAPI := v1.PathPrefix("/email-sender").Subrouter()
	emailAPI.Use(authMiddleware.Authenticate)
	emailAPI.HandleFunc("/send-email", emailHandler.SendReminder).Methods("POST")

	return r
}
