package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is a liveness probe only; it touches no dependency.
func (h HandlerSet) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"time": time.Now().UnixMilli(),
	})
}

// Status reports persistence reachability.
func (h HandlerSet) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.backend.Ping(ctx); err != nil {
		dbStatus = "error"
		h.log.Error().Err(err).Msg("store ping failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": dbStatus == "ok",
		"db": dbStatus,
	})
}
