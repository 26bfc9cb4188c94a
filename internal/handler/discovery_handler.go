package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// DiscoveryHandler proxies the external volume API.
type DiscoveryHandler struct {
	discovery *service.DiscoveryService
	log       logger.Logger
}

func NewDiscoveryHandler(discovery *service.DiscoveryService, log logger.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery, log: log.With("handler", "discovery")}
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (h *DiscoveryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}

	result, err := h.discovery.Search(r.Context(), query,
		intQuery(r, "startIndex", 0), intQuery(r, "maxResults", 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DiscoveryHandler) Browse(w http.ResponseWriter, r *http.Request) {
	result, err := h.discovery.Browse(r.Context(), strings.TrimSpace(r.URL.Query().Get("subject")),
		intQuery(r, "startIndex", 0), intQuery(r, "maxResults", 40))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DiscoveryHandler) GetVolume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "volumeId")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "Book ID is required")
		return
	}

	volume, err := h.discovery.GetVolume(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, volume)
}
