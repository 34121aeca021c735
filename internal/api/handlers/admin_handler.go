package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"
	"content-api/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AdminHandler covers the admin surface: plan catalog edits, subscription
// assignment and manual payment records.
type AdminHandler struct {
	planService    services.PlanService
	paymentService services.PaymentService
}

func NewAdminHandler(planService services.PlanService, paymentService services.PaymentService) *AdminHandler {
	return &AdminHandler{
		planService:    planService,
		paymentService: paymentService,
	}
}

func (h *AdminHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.ListPlans(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	if plans == nil {
		plans = []models.SubscriptionPlan{}
	}
	respondWithJSON(w, http.StatusOK, plans)
}

func (h *AdminHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	var update repository.PlanUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	plan, err := h.planService.UpdatePlan(r.Context(), planID, update)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}

type assignSubscriptionRequest struct {
	Email    string `json:"email"`
	PlanName string `json:"plan_name"`
}

func (h *AdminHandler) AssignSubscription(w http.ResponseWriter, r *http.Request) {
	var req assignSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}
	if req.Email == "" || req.PlanName == "" {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	subscription, err := h.planService.AssignPlan(r.Context(), req.Email, req.PlanName)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subscription)
}

type cancelSubscriptionRequest struct {
	Email string `json:"email"`
}

func (h *AdminHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	var req cancelSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	if err := h.planService.CancelSubscription(r.Context(), req.Email); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	admin, ok := services.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, apperrors.ErrUnauthorized)
		return
	}

	var input services.RecordPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, apperrors.ErrInvalidInput)
		return
	}

	payment, err := h.paymentService.RecordPayment(r.Context(), admin.ID, input)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}

func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, apperrors.ErrInvalidInput)
			return
		}
		limit = parsed
	}

	payments, err := h.paymentService.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if payments == nil {
		payments = []models.ManualPayment{}
	}

	respondWithJSON(w, http.StatusOK, payments)
}
