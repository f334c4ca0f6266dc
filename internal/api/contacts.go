package api

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"diveops-console/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactHandler struct {
	DB *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{DB: db}
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := h.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Return empty array instead of null
	if contacts == nil {
		contacts = []models.Contact{}
	}

	c.JSON(http.StatusOK, contacts)
}

type UpdateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Tags  string `json:"tags"`
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	waID := c.Param("waId")
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
		"phone": req.Phone,
		"tags":  req.Tags,
	}
	if err := h.DB.Model(&models.Contact{}).Where("wa_id = ?", waID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Contact updated"})
}

// CreateContactRequest for adding new contacts manually
type CreateContactRequest struct {
	WaID  string `json:"wa_id" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Tags  string `json:"tags"`
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := models.Contact{
		WaID:   req.WaID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Tags:   req.Tags,
		Source: "manual",
	}
	if err := h.DB.Save(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Contact created", "wa_id": req.WaID})
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	waID := c.Param("waId")

	result := h.DB.Delete(&models.Contact{}, "wa_id = ?", waID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Contact deleted"})
}

func (h *ContactHandler) ExportContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := h.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=contacts.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"WhatsApp ID", "Name", "Email", "Phone", "Source", "Confidence", "Created At"})
	for _, contact := range contacts {
		w.Write([]string{
			contact.WaID, contact.Name, contact.Email, contact.Phone,
			contact.Source, strconv.Itoa(contact.Confidence),
			contact.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
}
