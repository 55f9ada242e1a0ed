package handlers

import (
	"net/http"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *logrus.Logger
}

func NewDashboardHandler(dashboardService services.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute stats")
		respondWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Users lists registered users for the admin dashboard. Auth and admin
// checks run as middleware before this handler.
func (h *DashboardHandler) Users(c *gin.Context) {
	users, err := h.dashboardService.ListUsers()
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch users")
		respondWithError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}
