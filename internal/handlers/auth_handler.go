package handlers

import (
	"net/http"
	"strconv"

	"andhara-backend/internal/models"
	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	resp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Logout is stateless: tokens expire on their own, so this only exists to
// give clients a uniform endpoint to call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decode(r, &req); err != nil {
		utils.FromError(w, err)
		return
	}

	user, err := h.Service.CreateUser(r.Context(), &req)
	if err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		utils.FromError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		utils.FromError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
