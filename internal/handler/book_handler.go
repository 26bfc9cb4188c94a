package handler

import (
	"net/http"
	"strings"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

type BookHandler struct {
	catalog *service.CatalogService
	log     logger.Logger
}

func NewBookHandler(catalog *service.CatalogService, log logger.Logger) *BookHandler {
	return &BookHandler{catalog: catalog, log: log.With("handler", "book")}
}

type bookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ISBN        string  `json:"isbn"`
	Description string  `json:"description"`
}

func (req *bookRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return "Title is required"
	case strings.TrimSpace(req.Author) == "":
		return "Author is required"
	case strings.TrimSpace(req.ISBN) == "":
		return "ISBN is required"
	case req.Price < 0:
		return "Price cannot be negative"
	case req.Stock < 0:
		return "Stock cannot be negative"
	}
	return ""
}

func (req *bookRequest) toEntity() *entity.Book {
	return &entity.Book{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Genre:       strings.TrimSpace(req.Genre),
		Price:       req.Price,
		Stock:       req.Stock,
		ISBN:        strings.TrimSpace(req.ISBN),
		Description: req.Description,
	}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	book, err := h.catalog.Create(r.Context(), req.toEntity())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	book := req.toEntity()
	book.ID = id
	updated, err := h.catalog.Update(r.Context(), book)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bookId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Book deleted")
}
