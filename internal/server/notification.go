package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListNotifications(c *gin.Context) {
	list := h.notifications.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	h.notifications.MarkRead(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
