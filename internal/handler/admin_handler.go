package handler

import (
	"net/http"

	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// AdminHandler serves the admin user views. Credential and OTP fields are
// excluded by the entity's serialization tags.
type AdminHandler struct {
	admin *service.AdminService
	log   logger.Logger
}

func NewAdminHandler(admin *service.AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log.With("handler", "admin")}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "userId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	detail, err := h.admin.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
