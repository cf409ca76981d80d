package models

import "time"

// FollowUp is a customer-service record: a follow-up contact task created as
// a side effect of a completed purchase and tracked until manually closed.
// Stored in the customer_service table.
type FollowUp struct {
	ID              int       `json:"id_customer_service"`
	PurchaseID      int       `json:"id_purchase"`
	ServiceDate     time.Time `json:"service_date"`
	NextContactDate time.Time `json:"next_contact_date"`
	ContactComment  string    `json:"contact_comment"`
	Active          bool      `json:"customer_service_status"`
}

// FollowUpRow is the list-all table view: follow-up joined with the purchase
// and its customer.
type FollowUpRow struct {
	ID               int       `json:"id_customer_service"`
	PurchaseID       int       `json:"id_purchase"`
	ServiceDate      time.Time `json:"service_date"`
	CustomerFullName string    `json:"customer_full_name"`
	Phone            string    `json:"phone_number"`
	BranchID         *int      `json:"id_branch"`
	BranchName       string    `json:"branch_name"`
	DaysRemaining    int       `json:"days_remaining"`
	HasComment       bool      `json:"is_comment"`
	ContactComment   string    `json:"contact_comment"`
	Active           bool      `json:"customer_service_status"`
}

// ManageFollowUpRequest updates a follow-up: the comment is mandatory and
// closing (active=false) is terminal.
type ManageFollowUpRequest struct {
	ContactComment string `json:"contact_comment" validate:"required,min=1"`
	Active         *bool  `json:"customer_service_status"`
}

// FollowUpCustomerInfo is the customer block of the detail response.
type FollowUpCustomerInfo struct {
	Document    string `json:"customer_document"`
	FirstName   string `json:"customer_first_name"`
	LastName    string `json:"customer_last_name"`
	FullName    string `json:"customer_full_name"`
	Phone       string `json:"phone_number"`
	Email       string `json:"email"`
	HomeAddress string `json:"home_address"`
	BranchName  string `json:"branch_name"`
}

// FollowUpPurchaseInfo is the purchase block of the detail response.
type FollowUpPurchaseInfo struct {
	PurchaseID         int       `json:"id_purchase"`
	PurchaseDate       time.Time `json:"purchase_date"`
	PaymentType        string    `json:"payment_type"`
	PaymentStatus      string    `json:"payment_status"`
	SubtotalWithoutVAT float64   `json:"subtotal_without_vat"`
	Total              float64   `json:"total"`
	DaysRemaining      int       `json:"days_remaining"`
}

// FollowUpDetail is the get-by-id response: customer info, the purchase that
// originated the follow-up, and the customer's purchase history.
type FollowUpDetail struct {
	ID            int                      `json:"id_customer_service"`
	Customer      FollowUpCustomerInfo     `json:"customer"`
	Purchase      FollowUpPurchaseInfo     `json:"purchase"`
	LastPurchases *CustomerPurchaseHistory `json:"last_purchases"`
}

// DueFollowUp is one row of the daily email query: an open follow-up whose
// next contact date falls today or tomorrow.
type DueFollowUp struct {
	CustomerDocument string    `json:"customer_document"`
	CustomerName     string    `json:"customer_name"`
	Phone            string    `json:"phone_number"`
	PurchaseDuration int       `json:"purchase_duration"`
	PurchaseDate     time.Time `json:"purchase_date"`
}
