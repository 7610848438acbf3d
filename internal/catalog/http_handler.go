package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

const (
	StatusCreated       = "created"
	StatusAlreadyExists = "already_exists"
)

// AddResponse is the payload of both add endpoints.
type AddResponse struct {
	Status string     `json:"status"`
	ISBN   string     `json:"isbn"`
	Book   *book.Book `json:"book,omitempty"`
}

type AddByISBNRequest struct {
	ISBN string `json:"isbn"`
}

type HTTPHandler struct {
	svc *Service
	log *zap.Logger
}

func NewHTTPHandler(svc *Service, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{svc: svc, log: log}
}

// AddByISBN handles POST /v1/books/isbn
// @Summary Add a book by ISBN
// @Description Looks the ISBN up in Open Library, falling back to Google Books, and stores the result
// @Tags books
// @Accept json
// @Produce json
// @Param body body AddByISBNRequest true "ISBN"
// @Success 201 {object} httpx.SuccessResponse
// @Success 200 {object} httpx.SuccessResponse "already catalogued"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/isbn [post]
func (h *HTTPHandler) AddByISBN(w http.ResponseWriter, r *http.Request) {
	var req AddByISBNRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	b, err := h.svc.AddByISBN(r.Context(), req.ISBN)
	var verr *ValidationError
	switch {
	case err == nil:
		httpx.JSONSuccessCreated(w, r, AddResponse{Status: StatusCreated, ISBN: b.ISBN, Book: b}, nil)
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ISBN", "ISBN must have 10 or 13 characters", details(verr))
	case errors.Is(err, ErrLookupFailed):
		httpx.JSONError(w, r, http.StatusNotFound, "LOOKUP_FAILED", "No bibliographic source knows this ISBN", nil)
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONSuccess(w, r, AddResponse{Status: StatusAlreadyExists, ISBN: book.NormalizeISBN(req.ISBN)}, nil)
	default:
		h.internalError(w, r, "add by isbn", err)
	}
}

// AddManual handles POST /v1/books
// @Summary Add a book manually
// @Tags books
// @Accept json
// @Produce json
// @Param body body ManualInput true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Success 200 {object} httpx.SuccessResponse "already catalogued"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/books [post]
func (h *HTTPHandler) AddManual(w http.ResponseWriter, r *http.Request) {
	var in ManualInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	b, err := h.svc.AddManual(r.Context(), in)
	var verr *ValidationError
	switch {
	case err == nil:
		httpx.JSONSuccessCreated(w, r, AddResponse{Status: StatusCreated, ISBN: b.ISBN, Book: b}, nil)
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book data", details(verr))
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONSuccess(w, r, AddResponse{Status: StatusAlreadyExists, ISBN: book.NormalizeISBN(in.ISBN)}, nil)
	default:
		h.internalError(w, r, "add manual", err)
	}
}

// List handles GET /v1/books
// @Summary List the collection
// @Tags books
// @Produce json
// @Param sort query string false "authors or genre"
// @Param dir query string false "asc or desc" default(asc)
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listing, err := h.svc.List(r.Context(), query.Get("sort"), query.Get("dir"))
	if err != nil {
		h.internalError(w, r, "list", err)
		return
	}

	httpx.JSONSuccess(w, r, listing.Books, map[string]interface{}{
		"total":   len(listing.Books),
		"sort":    listing.Sort,
		"dir":     listing.Dir,
		"columns": listing.Columns,
	})
}

// Delete handles DELETE /v1/books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id must be a positive integer", nil)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		h.internalError(w, r, "delete", err)
		return
	}

	httpx.JSONSuccess(w, r, map[string]int64{"deleted": id}, nil)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error("catalog request failed", zap.String("op", op), zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func details(verr *ValidationError) []httpx.ErrorDetail {
	out := make([]httpx.ErrorDetail, len(verr.Fields))
	for i, f := range verr.Fields {
		out[i] = httpx.ErrorDetail{Field: f.Field, Message: f.Message}
	}
	return out
}
