package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ContentHandler exposes the generate / history / delete surface.
type ContentHandler struct {
	contentService services.ContentService
	quotaService   services.QuotaService
}

func NewContentHandler(contentService services.ContentService, quotaService services.QuotaService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		quotaService:   quotaService,
	}
}

type generateRequest struct {
	ContentType   string `json:"contentType"`
	Topic         string `json:"topic"`
	ContentLength string `json:"contentLength"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, apperrors.ErrUnauthorized)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	record, err := h.contentService.Generate(r.Context(), user.ID, services.GenerateInput{
		ContentType:   req.ContentType,
		Topic:         req.Topic,
		ContentLength: req.ContentLength,
		Tone:          req.Tone,
		Language:      req.Language,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, generateResponse{
		Success: true,
		ID:      record.ID.String(),
		Content: record.Content,
	})
}

func (h *ContentHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, apperrors.ErrUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, apperrors.ErrInvalidInput)
			return
		}
		limit = parsed
	}

	records, err := h.contentService.History(r.Context(), user.ID, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if records == nil {
		records = []models.GeneratedContent{}
	}

	respondWithJSON(w, http.StatusOK, records)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, apperrors.ErrUnauthorized)
		return
	}

	contentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	if err := h.contentService.Delete(r.Context(), contentID, user.ID); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse{Success: true})
}

// Usage reports the caller's current counters against their plan limits.
func (h *ContentHandler) Usage(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, apperrors.ErrUnauthorized)
		return
	}

	plan, err := h.quotaService.PlanFor(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	stats, err := h.quotaService.UsageStats(r.Context(), user.ID, plan)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
