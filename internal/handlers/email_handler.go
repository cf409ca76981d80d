package handlers

import (
	"net/http"

	"andhara-backend/internal/services"
	"andhara-backend/pkg/utils"
)

const manualSendAttempts = 3

type EmailHandler struct {
	Service *services.EmailService
}

func NewEmailHandler(s *services.EmailService) *EmailHandler {
	return &EmailHandler{Service: s}
}

// SendReminder triggers the daily follow-up email outside its schedule.
func (h *EmailHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SendReminderWithRetry(r.Context(), manualSendAttempts); err != nil {
		utils.Error(w, http.StatusBadGateway, "reminder email could not be sent: "+err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "reminder email sent"})
}
