package handler

import (
	"net/http"

	"github.com/yogeshkhant77/Booksy/internal/middleware"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// LibraryHandler serves the caller's own liked list and cart. The identity
// always comes from the authenticated context, never from a parameter.
type LibraryHandler struct {
	library *service.LibraryService
	log     logger.Logger
}

func NewLibraryHandler(library *service.LibraryService, log logger.Logger) *LibraryHandler {
	return &LibraryHandler{library: library, log: log.With("handler", "library")}
}

func (h *LibraryHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	liked, err := h.library.LikeBook(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"likedBooks": liked})
}

func (h *LibraryHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	liked, err := h.library.UnlikeBook(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"likedBooks": liked})
}

func (h *LibraryHandler) LikedBooks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	books, err := h.library.LikedBooks(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *LibraryHandler) CheckLiked(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	liked, err := h.library.HasLiked(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

type addToCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *LibraryHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	cart, err := h.library.GetCart(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart treats an absent or zero quantity as "one more".
func (h *LibraryHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req addToCartRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	cart, err := h.library.AddToCart(r.Context(), user.ID, bookID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *LibraryHandler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, err := h.library.UpdateCartQuantity(r.Context(), user.ID, bookID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *LibraryHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	bookID, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	cart, err := h.library.RemoveFromCart(r.Context(), user.ID, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *LibraryHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := h.library.ClearCart(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Cart cleared")
}
