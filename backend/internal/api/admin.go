package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, h.admins.Get().Serialize())
}

func (h *Handler) reviewRequest(c *gin.Context) {
	var req struct {
		RequestID string `json:"requestID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approved := h.admins.Get().ReviewRequest(req.RequestID)
	c.JSON(http.StatusOK, gin.H{"requestID": req.RequestID, "approved": approved})
}
