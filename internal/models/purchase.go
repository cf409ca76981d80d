package models

import "time"

// Payment status values, kept verbatim from the production schema.
const (
	PaymentStatusPending   = "Pago Pendiente"
	PaymentStatusCompleted = "Pago Completado"
	PaymentStatusInProcess = "En Proceso"
)

// Delivery type values.
const (
	DeliveryTypePickup  = "Recoger en Sede"
	DeliveryTypeBogota  = "Domicilio Bogotá"
	DeliveryTypeCarrier = "Servientrega"
	DeliveryTypeRappi   = "Rappi"
	DeliveryTypeOther   = "Otro"
)

// Delivery status values. New deliveries always start unprepared.
const (
	DeliveryStatusUnprepared  = "Sin Preparar"
	DeliveryStatusReadyToShip = "Listo para Envío"
	DeliveryStatusInProcess   = "En Proceso"
	DeliveryStatusDelivered   = "Entregado"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusInProcess:
		return true
	}
	return false
}

// ValidDeliveryType reports whether s is a known delivery type.
func ValidDeliveryType(s string) bool {
	switch s {
	case DeliveryTypePickup, DeliveryTypeBogota, DeliveryTypeCarrier, DeliveryTypeRappi, DeliveryTypeOther:
		return true
	}
	return false
}

// ProductInSale is one requested line of a sale.
type ProductInSale struct {
	ProductID int `json:"id_product" validate:"required"`
	Quantity  int `json:"unit_quantity" validate:"gt=0"`
}

// SaleCreate is the request body for creating a purchase. Quantity and
// duration bounds are enforced at this boundary, before the saga runs.
type SaleCreate struct {
	CustomerDocument string          `json:"customer_document" validate:"required"`
	BranchID         int             `json:"id_branch" validate:"required"`
	PurchaseDuration int             `json:"purchase_duration" validate:"gte=0"`
	Products         []ProductInSale `json:"products" validate:"required,min=1,dive"`
	PaymentType      string          `json:"payment_type" validate:"required"`
	PaymentStatus    string          `json:"payment_status"`
	RemainingBalance float64         `json:"remaining_balance" validate:"gte=0"`
	DeliveryType     string          `json:"delivery_type"`
	DeliveryCost     float64         `json:"delivery_cost" validate:"gte=0"`
	DeliveryComment  string          `json:"delivery_comment"`
}

// Purchase is the persisted purchase header.
type Purchase struct {
	ID               int       `json:"id_purchase"`
	CustomerDocument string    `json:"customer_document"`
	PurchaseDate     time.Time `json:"purchase_date"`
	PurchaseDuration int       `json:"purchase_duration"`
	NextPurchaseDate time.Time `json:"next_purchase_date"`
}

// PurchaseLine is one priced line item of a persisted purchase.
type PurchaseLine struct {
	PurchaseID         int     `json:"id_purchase,omitempty"`
	ProductID          int     `json:"id_product"`
	Quantity           int     `json:"unit_quantity"`
	SubtotalWithoutVAT float64 `json:"subtotal_without_vat"`
	TotalWithVAT       float64 `json:"total_price_with_vat"`
	ProductName        string  `json:"product_name,omitempty"`
}

// Payment is the single payment record of a purchase.
type Payment struct {
	ID               int     `json:"id_payment"`
	PurchaseID       int     `json:"id_purchase"`
	PaymentType      string  `json:"payment_type"`
	PaymentStatus    string  `json:"payment_status"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Delivery is the optional delivery record of a purchase.
type Delivery struct {
	ID         int     `json:"id_delivery"`
	PurchaseID int     `json:"id_purchase"`
	Type       string  `json:"delivery_type"`
	Status     string  `json:"delivery_status"`
	Cost       float64 `json:"delivery_cost"`
	Comment    string  `json:"delivery_comment"`
}

// PurchaseResponse is the assembled result of a completed sale.
type PurchaseResponse struct {
	ID               int            `json:"id_purchase"`
	CustomerDocument string         `json:"customer_document"`
	PurchaseDate     time.Time      `json:"purchase_date"`
	PurchaseDuration int            `json:"purchase_duration"`
	NextPurchaseDate time.Time      `json:"next_purchase_date"`
	Products         []PurchaseLine `json:"products"`
	Payment          *Payment       `json:"payment"`
	Delivery         *Delivery      `json:"delivery"`
}
