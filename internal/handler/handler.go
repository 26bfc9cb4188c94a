package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yogeshkhant77/Booksy/internal/adapter/googlebooks"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError maps service sentinels onto the HTTP error taxonomy.
// Anything unrecognized becomes a generic 500 with no internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrAlreadyOnShelf),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrDuplicateISBN),
		errors.Is(err, service.ErrEmptyQuery):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, googlebooks.ErrVolumeNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOTPDelivery):
		writeMessage(w, http.StatusInternalServerError, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// objectIDParam parses a URL parameter as an ObjectID.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
