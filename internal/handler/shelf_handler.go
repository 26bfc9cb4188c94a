package handler

import (
	"net/http"

	"github.com/yogeshkhant77/Booksy/internal/middleware"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// ShelfHandler serves the caller's personal collection.
type ShelfHandler struct {
	shelf *service.ShelfService
	log   logger.Logger
}

func NewShelfHandler(shelf *service.ShelfService, log logger.Logger) *ShelfHandler {
	return &ShelfHandler{shelf: shelf, log: log.With("handler", "shelf")}
}

func (h *ShelfHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	items, err := h.shelf.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ShelfHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	entry, err := h.shelf.Add(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ShelfHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := h.shelf.Remove(r.Context(), user.ID, bookID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Removed from collection")
}

func (h *ShelfHandler) Check(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	exists, err := h.shelf.Contains(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inCollection": exists})
}
