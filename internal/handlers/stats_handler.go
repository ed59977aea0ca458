package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justmenoble-ux/mano-web-app/internal/services"
)

// StatsHandler handles dashboard aggregation requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns effective spending totals for a viewpoint.
// @Summary     Get dashboard stats
// @Description Get total effective spending and a category breakdown for the given owner viewpoint
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       month      query string false "Filter by month (YYYY-MM)"
// @Param       month_from query string false "Range start month (YYYY-MM, with month_to)"
// @Param       month_to   query string false "Range end month (YYYY-MM, with month_from)"
// @Param       category   query string false "Filter by category"
// @Param       owner      query string false "Viewpoint owner (defaults to combined)"
// @Success     200 {object} services.DashboardStats "Dashboard stats"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.ComputeStats(accountID, filterFromQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
