package services

import (
	"bytes"
	"context"
	"fmt"

	"andhara-backend/internal/models"
	"andhara-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders a purchase as a printable PDF receipt.
type ReceiptService struct {
	Purchases *PurchaseService
}

func NewReceiptService(purchases *PurchaseService) *ReceiptService {
	return &ReceiptService{Purchases: purchases}
}

func (s *ReceiptService) GenerateReceipt(ctx context.Context, purchaseID int) ([]byte, error) {
	purchase, err := s.Purchases.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return renderReceipt(purchase)
}

// truncateName shortens a product name to max runes so accented names are
// never cut mid-character.
func truncateName(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max-3]) + "..."
}

func renderReceipt(p *models.PurchaseResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Andhara - Purchase Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Purchase Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Purchase Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Purchase #: %d", p.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", p.CustomerDocument), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", p.PurchaseDate.Format(timeutil.DisplayLayout)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Next purchase: %s", p.NextPurchaseDate.Format(timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Products", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Subtotal", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Total (VAT incl.)", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var subtotal, total float64
	for _, line := range p.Products {
		name := truncateName(line.ProductName, 38)
		pdf.CellFormat(80, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("$ %.2f", line.SubtotalWithoutVAT), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("$ %.2f", line.TotalWithVAT), "1", 1, "R", false, 0, "")
		subtotal += line.SubtotalWithoutVAT
		total += line.TotalWithVAT
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, fmt.Sprintf("$ %.2f", subtotal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, fmt.Sprintf("$ %.2f", total), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Payment
	if p.Payment != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payment", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(63, 8, fmt.Sprintf("Type: %s", p.Payment.PaymentType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(63, 8, fmt.Sprintf("Status: %s", p.Payment.PaymentStatus), "1", 0, "C", false, 0, "")
		pdf.CellFormat(64, 8, fmt.Sprintf("Balance: $ %.2f", p.Payment.RemainingBalance), "1", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	// Delivery
	if p.Delivery != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Delivery", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(63, 8, fmt.Sprintf("Type: %s", p.Delivery.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(63, 8, fmt.Sprintf("Status: %s", p.Delivery.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(64, 8, fmt.Sprintf("Cost: $ %.2f", p.Delivery.Cost), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
