package api

import (
	"net/http"

	"diveops-console/internal/models"
	"diveops-console/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	Client *whatsapp.Client
	DB     *gorm.DB
}

func NewDashboardHandler(client *whatsapp.Client, db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{Client: client, DB: db}
}

func (h *DashboardHandler) GetMessages(c *gin.Context) {
	var messages []models.Message
	if err := h.DB.Order("created_at DESC").Limit(200).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	c.JSON(http.StatusOK, messages)
}

type SendRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

func (h *DashboardHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Client.SendMessage(c.Request.Context(), req.To, req.Content); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Message sent"})
}
