package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PurchaseHandler struct {
	Service  *services.PurchaseService
	Receipts *services.ReceiptService
}

func NewPurchaseHandler(s *services.PurchaseService, receipts *services.ReceiptService) *PurchaseHandler {
	return &PurchaseHandler{Service: s, Receipts: receipts}
}

func (h *PurchaseHandler) MakePurchase(w http.ResponseWriter, r *http.Request) {
	var req models.SaleCreate
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	purchase, err := h.Service.MakePurchase(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, purchase)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	purchase, err := h.Service.GetPurchase(r.Context(), id)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, purchase)
}

// GetReceipt streams the purchase as a PDF.
func (h *PurchaseHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	pdf, err := h.Receipts.GenerateReceipt(r.Context(), id)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=purchase_%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
