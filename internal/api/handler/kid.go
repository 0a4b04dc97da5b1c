// internal/api/handler/kid.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"parentpoints/internal/api/types"
	"parentpoints/internal/domain"
	"parentpoints/internal/ledger"
	"parentpoints/internal/service"
	"parentpoints/internal/util" // For custom errors
)

// DefaultTimeout bounds every request. Suggestion calls run in the
// background and are not subject to it.
const DefaultTimeout = 30 * time.Second

// Pagination defaults for history.
const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// maxBodyBytes caps request bodies; the largest legitimate body is a note.
const maxBodyBytes = 64 << 10

// KidHandler handles HTTP requests for profiles, points and suggestions.
type KidHandler struct {
	service service.KidService
	logger  *slog.Logger
}

// NewKidHandler creates a new KidHandler.
func NewKidHandler(svc service.KidService, logger *slog.Logger) *KidHandler {
	return &KidHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *KidHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *KidHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrKidNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

func (h *KidHandler) respondWithResult(w http.ResponseWriter, res service.Result, appliedCode int) {
	code := http.StatusOK
	if res.Outcome == ledger.Applied {
		code = appliedCode
	}
	h.respondWithJSON(w, code, types.MutationResponse{Outcome: res.Outcome.String(), Kid: res.Kid})
}

// decodeBody decodes an optional JSON body. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return util.ErrInvalidInput
	}
	return nil
}

// ListColors returns the palette.
// GET /colors
func (h *KidHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, domain.Colors())
}

// ListKids returns the collection in insertion order.
// GET /kids
func (h *KidHandler) ListKids(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.service.List(r.Context()))
}

// CreateKidRequest represents the request body for adding a profile.
type CreateKidRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateKid handles adding a profile. An empty name or an unknown color is
// not an error: the request is ignored, as in the UI.
// POST /kids
func (h *KidHandler) CreateKid(w http.ResponseWriter, r *http.Request) {
	var req CreateKidRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	res := h.service.AddKid(r.Context(), req.Name, req.Color)
	h.respondWithResult(w, res, http.StatusCreated)
}

// GetKid returns one profile.
// GET /kids/{kidID}
func (h *KidHandler) GetKid(w http.ResponseWriter, r *http.Request) {
	kid, err := h.service.Get(r.Context(), chi.URLParam(r, "kidID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, kid)
}

// DeleteKid removes a profile.
// DELETE /kids/{kidID}
func (h *KidHandler) DeleteKid(w http.ResponseWriter, r *http.Request) {
	res := h.service.DeleteKid(r.Context(), chi.URLParam(r, "kidID"))
	h.respondWithResult(w, res, http.StatusOK)
}

// AddPointRequest represents the optional request body for awarding a point.
type AddPointRequest struct {
	Note string `json:"note"`
}

// AddPoint awards one point.
// POST /kids/{kidID}/points
func (h *KidHandler) AddPoint(w http.ResponseWriter, r *http.Request) {
	var req AddPointRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	res := h.service.AddPoint(r.Context(), chi.URLParam(r, "kidID"), req.Note)
	h.respondWithResult(w, res, http.StatusOK)
}

// RemovePoint takes one point away, never below zero.
// POST /kids/{kidID}/points/remove
func (h *KidHandler) RemovePoint(w http.ResponseWriter, r *http.Request) {
	res := h.service.RemovePoint(r.Context(), chi.URLParam(r, "kidID"))
	h.respondWithResult(w, res, http.StatusOK)
}

// GetHistory returns a page of a profile's history, newest first.
// GET /kids/{kidID}/history
func (h *KidHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	items, total, err := h.service.History(r.Context(), chi.URLParam(r, "kidID"), limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.HistoryItem]{
		Data:       items,
		Limit:      limit,
		Offset:     offset,
		TotalCount: int64(total),
	})
}

func parsePagination(r *http.Request) (int, int, error) {
	limit, offset := defaultHistoryLimit, 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return 0, 0, util.ErrInvalidInput
		}
		limit = min(v, maxHistoryLimit)
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return 0, 0, util.ErrInvalidInput
		}
		offset = v
	}
	return limit, offset, nil
}

// RequestSuggestions starts fetching reward ideas for a profile.
// POST /kids/{kidID}/suggestions
func (h *KidHandler) RequestSuggestions(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RequestSuggestions(r.Context(), chi.URLParam(r, "kidID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusAccepted, state)
}

// GetSuggestions returns the latest suggestion state for a profile.
// GET /kids/{kidID}/suggestions
func (h *KidHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Suggestions(r.Context(), chi.URLParam(r, "kidID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, state)
}

// GetLeaderboard returns the totals view.
// GET /leaderboard
func (h *KidHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.service.Leaderboard(r.Context()))
}
