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

// SupplierHandler handles HTTP requests for the supplier directory
type SupplierHandler struct {
	supplierService *service.SupplierService
	logger          *zap.Logger
}

// NewSupplierHandler creates a new supplier handler instance
func NewSupplierHandler(
	supplierService *service.SupplierService,
	logger *zap.Logger,
) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		logger:          logger,
	}
}

// List godoc
// @Summary List suppliers
// @Description Get paginated list of suppliers with optional filters
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name or contact name"
// @Param location query string false "Filter by location"
// @Param isActive query bool false "Filter by active flag"
// @Param category query string false "Filter by category"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, name, location, isActive)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.SupplierDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /suppliers [get]
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	filters := &repository.SupplierFilters{
		Search:   r.URL.Query().Get("search"),
		Location: r.URL.Query().Get("location"),
		Category: r.URL.Query().Get("category"),
	}
	if isActive := r.URL.Query().Get("isActive"); isActive != "" {
		active := isActive == "true"
		filters.IsActive = &active
	}

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.supplierService.List(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		h.logger.Error("failed to list suppliers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list suppliers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get supplier
// @Description Get a single supplier by ID
// @Tags Suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} domain.SupplierDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /suppliers/{id} [get]
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondWithError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.Error("failed to get supplier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get supplier")
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Create godoc
// @Summary Register supplier
// @Description Register a new supplier in the directory
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param supplier body domain.CreateSupplierRequest true "Supplier data"
// @Success 201 {object} domain.SupplierDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /suppliers [post]
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	supplier, err := h.supplierService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create supplier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	respondJSON(w, http.StatusCreated, supplier)
}

// Update godoc
// @Summary Update supplier
// @Description Apply a partial update to a supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param supplier body domain.UpdateSupplierRequest true "Fields to update"
// @Success 200 {object} domain.SupplierDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /suppliers/{id} [put]
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	var req domain.UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	supplier, err := h.supplierService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondWithError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.Error("failed to update supplier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Delete godoc
// @Summary Delete supplier
// @Description Soft-delete a supplier from the directory
// @Tags Suppliers
// @Param id path string true "Supplier ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondWithError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.Error("failed to delete supplier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
