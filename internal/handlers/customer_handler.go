package handlers

import (
	"net/http"
	"strconv"

	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	customer, err := h.Service.GetCustomer(r.Context(), document)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := &models.CustomerListFilter{
		Skip:      skip,
		Limit:     limit,
		Document:  q.Get("customer_document"),
		FirstName: q.Get("customer_first_name"),
		LastName:  q.Get("customer_last_name"),
		Phone:     q.Get("phone_number"),
	}

	customers, err := h.Service.ListCustomers(r.Context(), filter)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]
	var req models.UpdateCustomerRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), document, &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ToggleCustomerState(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	active, err := h.Service.ToggleCustomerState(r.Context(), document)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"customer_document": document,
		"customer_state":    active,
	})
}

func (h *CustomerHandler) GetPurchaseHistory(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	history, err := h.Service.PurchaseHistory(r.Context(), document)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, history)
}
