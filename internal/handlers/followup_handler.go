package handlers

import (
	"net/http"
	"strconv"

	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FollowUpHandler struct {
	Service *services.FollowUpService
}

func NewFollowUpHandler(s *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{Service: s}
}

func (h *FollowUpHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	rows, err := h.Service.ListFollowUps(r.Context(), skip, limit)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	if rows == nil {
		rows = []*models.FollowUpRow{}
	}
	utils.JSON(w, http.StatusOK, rows)
}

func (h *FollowUpHandler) GetFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid follow-up id")
		return
	}

	detail, err := h.Service.GetFollowUp(r.Context(), id)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *FollowUpHandler) ManageFollowUp(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid follow-up id")
		return
	}
	var req models.ManageFollowUpRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	followUp, err := h.Service.ManageFollowUp(r.Context(), id, &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, followUp)
}
