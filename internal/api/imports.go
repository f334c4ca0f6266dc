package api

import (
	"log"
	"net/http"

	"diveops-console/internal/database"
	"diveops-console/internal/leadimport"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImportHandler exposes the lead-import pipeline to the dashboard: policy
// settings, statistics, the recent-decisions feed and a dry-run parser.
type ImportHandler struct {
	Pipeline *leadimport.Pipeline
	Logs     *database.ImportLogStore
	DB       *gorm.DB
}

func NewImportHandler(pipeline *leadimport.Pipeline, logs *database.ImportLogStore, db *gorm.DB) *ImportHandler {
	return &ImportHandler{Pipeline: pipeline, Logs: logs, DB: db}
}

func (h *ImportHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Pipeline.Settings())
}

func (h *ImportHandler) UpdateSettings(c *gin.Context) {
	// Start from the current snapshot so partial updates keep other fields.
	settings := h.Pipeline.Settings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Pipeline.Reconfigure(settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.DB != nil {
		if err := database.SaveImportSettings(h.DB, settings); err != nil {
			log.Printf("Error persisting import settings: %v", err)
		}
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ImportHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Pipeline.Stats().Snapshot())
}

func (h *ImportHandler) ResetStats(c *gin.Context) {
	h.Pipeline.Stats().Reset()
	c.JSON(http.StatusOK, gin.H{"status": "Stats reset"})
}

func (h *ImportHandler) GetRecentImports(c *gin.Context) {
	entries, err := h.Logs.Recent(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type PreviewRequest struct {
	Text string `json:"text" binding:"required"`
}

type PreviewResponse struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PhoneVerified bool   `json:"phone_verified"`
	Confidence    int    `json:"confidence"`
}

// PreviewExtraction runs the extractor and scorer on sample text without
// side effects, for the dashboard's parser test tool.
func (h *ImportHandler) PreviewExtraction(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := leadimport.Extract(req.Text)
	c.JSON(http.StatusOK, PreviewResponse{
		Name:          profile.Name,
		Email:         profile.Email,
		Phone:         profile.Phone,
		PhoneVerified: profile.PhoneVerified,
		Confidence:    leadimport.Score(profile),
	})
}
