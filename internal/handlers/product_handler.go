package handlers

import (
	"net/http"
	"strconv"

	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(s *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: s}
}

func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.Service.GetProduct(r.Context(), id)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, err := h.Service.ListProducts(r.Context(), skip, limit)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	utils.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req models.UpdateProductRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ToggleProductState(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	active, err := h.Service.ToggleProductState(r.Context(), id)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"product_id":    id,
		"product_state": active,
	})
}

func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req models.UpdateStockRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	entry, err := h.Service.UpdateStock(r.Context(), id, &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}
