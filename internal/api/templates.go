package api

import (
	"net/http"

	"diveops-console/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TemplateHandler struct {
	DB *gorm.DB
}

func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{DB: db}
}

func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var templates []models.ReplyTemplate
	if err := h.DB.Order("id").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if templates == nil {
		templates = []models.ReplyTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

type UpdateTemplateRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Body     string `json:"body"`
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")
	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"language": req.Language,
		"body":     req.Body,
	}
	result := h.DB.Model(&models.ReplyTemplate{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Template updated"})
}
