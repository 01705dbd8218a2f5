package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"barangayhub/api/internal/models"
)

type officialResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

func officialView(official models.Official) officialResponse {
	return officialResponse{
		ID:          official.ID,
		Name:        official.Name,
		Position:    official.Position,
		ContactInfo: official.ContactInfo,
		CreatedAt:   official.CreatedAt,
	}
}

func (h HandlerSet) ListOfficials(c *gin.Context) {
	officials, err := h.officials.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]officialResponse, 0, len(officials))
	for _, official := range officials {
		resp = append(resp, officialView(official))
	}
	c.JSON(http.StatusOK, resp)
}

type addOfficialRequest struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	ContactInfo string `json:"contact_info"`
}

func (h HandlerSet) AddOfficial(c *gin.Context) {
	var req addOfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and position are required"})
		return
	}

	official, err := h.officials.Add(c.Request.Context(), req.Name, req.Position, req.ContactInfo)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, officialView(official))
}

func (h HandlerSet) DeleteOfficial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.officials.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
