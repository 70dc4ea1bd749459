package handler

import (
	"net/http"
	"strconv"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for purchase orders
type OrderHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(
	dashboardService *service.DashboardService,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// List godoc
// @Summary List purchase orders
// @Description Get paginated list of purchase orders
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(confirmed, delivered, cancelled)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, poNumber, status)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.OrderDTO}
// @Failure 401 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	var status *domain.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.OrderStatus(s)
		status = &st
	}

	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.dashboardService.ListOrders(r.Context(), page, pageSize, status, sort)
	if err != nil {
		h.logger.Error("failed to list purchase orders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list purchase orders")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
