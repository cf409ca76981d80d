package models

// StockEntry is the quantity of one product available at one branch.
// Invariant: Quantity >= 0, decremented only by completed purchases.
type StockEntry struct {
	BranchID  int `json:"id_branch"`
	ProductID int `json:"id_product"`
	Quantity  int `json:"quantity"`
}

// UpdateStockRequest sets the absolute quantity of one stock entry.
type UpdateStockRequest struct {
	BranchID int `json:"id_branch" validate:"required"`
	Quantity int `json:"quantity" validate:"gte=0"`
}
