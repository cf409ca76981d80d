package models

import "time"

// Customer is identified by its document string (natural key). The backing
// table keeps the legacy Spanish column names from the first schema revision;
// the repository aliases them to these English fields.
type Customer struct {
	Document     string  `json:"customer_document"`
	DocumentType string  `json:"document_type"`
	FirstName    string  `json:"customer_first_name"`
	LastName     string  `json:"customer_last_name"`
	Phone        string  `json:"phone_number"`
	Email        string  `json:"email"`
	HomeAddress  string  `json:"home_address"`
	Active       bool    `json:"customer_state"`
	BranchID     *int    `json:"id_branch,omitempty"`
	BranchName   *string `json:"branch_name,omitempty"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Document     string `json:"customer_document" validate:"required"`
	DocumentType string `json:"document_type" validate:"required"`
	FirstName    string `json:"customer_first_name" validate:"required"`
	LastName     string `json:"customer_last_name" validate:"required"`
	Phone        string `json:"phone_number" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	HomeAddress  string `json:"home_address" validate:"required"`
	BranchID     *int   `json:"id_branch"`
}

// UpdateCustomerRequest represents the request body for updating a customer.
// Nil fields are left untouched.
type UpdateCustomerRequest struct {
	DocumentType *string `json:"document_type"`
	FirstName    *string `json:"customer_first_name"`
	LastName     *string `json:"customer_last_name"`
	Phone        *string `json:"phone_number"`
	Email        *string `json:"email" validate:"omitempty,email"`
	HomeAddress  *string `json:"home_address"`
	BranchID     *int    `json:"id_branch"`
}

// CustomerListFilter carries pagination and the keyword filters supported by
// the customer list endpoint. Text filters are case-insensitive partial match.
type CustomerListFilter struct {
	Skip      int
	Limit     int
	Document  string
	FirstName string
	LastName  string
	Phone     string
}

// CustomerPurchaseSummary is one row of a customer's purchase history.
type CustomerPurchaseSummary struct {
	PurchaseID       int       `json:"id_purchase"`
	PurchaseDate     time.Time `json:"purchase_date"`
	PurchaseDuration int       `json:"purchase_duration"`
	NextPurchaseDate time.Time `json:"next_purchase_date"`
	Total            float64   `json:"total_price_with_vat"`
}

// CustomerPurchaseHistory is the purchases-by-document response: lifetime
// spend plus the individual purchases, most recent first.
type CustomerPurchaseHistory struct {
	HistoricalPurchases float64                   `json:"historical_purchases"`
	Purchases           []CustomerPurchaseSummary `json:"purchases"`
}
