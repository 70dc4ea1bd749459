package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
)

// RequestHandler handles HTTP requests for parts requests and quote approval
type RequestHandler struct {
	procurementService *service.ProcurementService
	comparisonService  *service.ComparisonService
	dashboardService   *service.DashboardService
	logger             *zap.Logger
}

// NewRequestHandler creates a new request handler instance
func NewRequestHandler(
	procurementService *service.ProcurementService,
	comparisonService *service.ComparisonService,
	dashboardService *service.DashboardService,
	logger *zap.Logger,
) *RequestHandler {
	return &RequestHandler{
		procurementService: procurementService,
		comparisonService:  comparisonService,
		dashboardService:   dashboardService,
		logger:             logger,
	}
}

// Create godoc
// @Summary Create parts request
// @Description Create a parts request and fan RFQ inquiries out to all active suppliers
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body domain.CreateRequestRequest true "Request data"
// @Success 201 {object} domain.CreateRequestResult
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.procurementService.CreateRequest(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDescriptionRequired):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPartyNotFound), errors.Is(err, service.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoActiveSuppliers):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("failed to create parts request", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create parts request")
		}
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// List godoc
// @Summary List parts requests
// @Description Get paginated list of parts requests with quote progress
// @Tags Requests
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(draft, rfq_sent, quotes_received, ordered, cancelled)
// @Param urgency query string false "Filter by urgency" Enums(normal, urgent, emergency)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, urgency, status)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.RequestDTO}
// @Failure 401 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /requests [get]
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	filters := &repository.RequestFilters{}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.RequestStatus(status)
		filters.Status = &s
	}
	if urgency := r.URL.Query().Get("urgency"); urgency != "" {
		u := domain.RequestUrgency(urgency)
		filters.Urgency = &u
	}

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.dashboardService.ListRequests(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		h.logger.Error("failed to list parts requests", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list parts requests")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Quotes godoc
// @Summary Compare quotes
// @Description Get the quote comparison table for a parts request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} domain.QuoteComparison
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /requests/{id}/quotes [get]
func (h *RequestHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	comparison, err := h.comparisonService.Compare(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			respondWithError(w, http.StatusNotFound, "Parts request not found")
			return
		}
		h.logger.Error("failed to compare quotes", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compare quotes")
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// Approve godoc
// @Summary Approve quote
// @Description Approve a quote, create the purchase order and notify suppliers
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param approval body domain.ApproveQuoteRequest true "Approval data"
// @Success 200 {object} domain.ApproveQuoteResult
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req domain.ApproveQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.procurementService.ApproveQuote(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound), errors.Is(err, service.ErrQuoteNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrQuoteRequestMismatch), errors.Is(err, service.ErrQuoteUnpriced):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRequestAlreadyClosed):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("failed to approve quote", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to approve quote")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}
