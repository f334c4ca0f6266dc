package webhook

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"diveops-console/internal/config"
	"diveops-console/internal/leadimport"
	"diveops-console/internal/models"
	wamodels "diveops-console/pkg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Importer feeds one inbound message into the lead-import pipeline.
type Importer interface {
	Dispatch(msg leadimport.InboundMessage)
}

type Handler struct {
	Config   *config.Config
	Importer Importer
	DB       *gorm.DB
}

func NewHandler(cfg *config.Config, importer Importer, db *gorm.DB) *Handler {
	return &Handler{
		Config:   cfg,
		Importer: importer,
		DB:       db,
	}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			log.Println("Webhook verified successfully!")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

func (h *Handler) HandleMessage(c *gin.Context) {
	var payload wamodels.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	for _, msg := range payload.TextMessages() {
		log.Printf("Received text message from %s: %s", msg.From, msg.Text.Body)

		h.storeMessage(msg)

		inbound := leadimport.InboundMessage{
			ID:          msg.ID,
			FromAddress: msg.From,
			Text:        msg.Text.Body,
			ReceivedAt:  receivedAt(msg.Timestamp),
			Channel:     leadimport.ChannelWhatsApp,
		}
		if h.Importer != nil {
			h.Importer.Dispatch(inbound)
		}
	}

	c.Status(http.StatusOK)
}

func (h *Handler) storeMessage(msg wamodels.InboundTextMessage) {
	if h.DB == nil {
		return
	}
	record := models.Message{
		WaID:    msg.ID,
		Sender:  msg.From,
		Content: msg.Text.Body,
		Type:    "text",
		Status:  "received",
	}
	if err := h.DB.Create(&record).Error; err != nil {
		log.Printf("Error storing inbound message: %v", err)
	}
}

// receivedAt parses the webhook's unix-seconds timestamp, falling back to
// the local clock when the provider omits or mangles it.
func receivedAt(ts string) time.Time {
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || secs <= 0 {
		return time.Now()
	}
	return time.Unix(secs, 0)
}
