package models

// Product carries both prices plus the margin derived from them. The margin
// is always recomputed when either price changes, never trusted from input.
type Product struct {
	ID            int          `json:"product_id"`
	SupplierID    int          `json:"supplier_id"`
	Name          string       `json:"product_name"`
	Description   string       `json:"product_description"`
	PurchasePrice float64      `json:"purchase_price"`
	Discount      float64      `json:"product_discount"`
	SalePrice     float64      `json:"sale_price"`
	ProfitMargin  float64      `json:"profit_margin"`
	VAT           float64      `json:"vat"`
	Active        bool         `json:"product_state"`
	Stock         []StockEntry `json:"stock,omitempty"`
}

// ProductStockEntry is one initial stock row supplied at product creation.
type ProductStockEntry struct {
	BranchID int `json:"id_branch" validate:"required"`
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CreateProductRequest represents the request body for creating a product.
// The profit margin is derived server-side, so it is not accepted here.
type CreateProductRequest struct {
	SupplierID    int                 `json:"supplier_id" validate:"required"`
	Name          string              `json:"product_name" validate:"required"`
	Description   string              `json:"product_description" validate:"required"`
	PurchasePrice float64             `json:"purchase_price" validate:"gt=0"`
	Discount      float64             `json:"product_discount" validate:"gte=0"`
	SalePrice     float64             `json:"sale_price" validate:"gt=0"`
	VAT           float64             `json:"vat" validate:"gt=0"`
	Stock         []ProductStockEntry `json:"stock" validate:"required,min=1,dive"`
}

// UpdateProductRequest represents the request body for updating a product.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	SupplierID    *int     `json:"supplier_id"`
	Name          *string  `json:"product_name"`
	Description   *string  `json:"product_description"`
	PurchasePrice *float64 `json:"purchase_price"`
	Discount      *float64 `json:"product_discount"`
	SalePrice     *float64 `json:"sale_price"`
	VAT           *float64 `json:"vat"`
}
