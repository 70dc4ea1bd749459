package handler

import (
	"net/http"
	"strconv"

	"github.com/hexaparts/procurement-api/internal/domain"
	"github.com/hexaparts/procurement-api/internal/repository"
	"github.com/hexaparts/procurement-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler handles HTTP requests for dashboard metrics and the
// message log
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(
	dashboardService *service.DashboardService,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Metrics godoc
// @Summary Dashboard metrics
// @Description Get headline counts for the procurement dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardMetrics
// @Failure 401 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.Metrics(r.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard metrics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute dashboard metrics")
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// Messages godoc
// @Summary List messages
// @Description Get paginated WhatsApp message log
// @Tags Dashboard
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(50)
// @Param direction query string false "Filter by direction" Enums(inbound, outbound)
// @Param number query string false "Filter by phone number"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.MessageRecordDTO}
// @Failure 401 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /messages [get]
func (h *DashboardHandler) Messages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 50
	}

	filters := &repository.MessageFilters{
		Number: r.URL.Query().Get("number"),
	}
	if direction := r.URL.Query().Get("direction"); direction != "" {
		d := domain.MessageDirection(direction)
		filters.Direction = &d
	}

	sort := repository.DefaultSortConfig()

	result, err := h.dashboardService.ListMessages(r.Context(), page, pageSize, filters, sort)
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
