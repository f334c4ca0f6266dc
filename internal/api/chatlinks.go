package api

import (
	"net/http"

	"diveops-console/internal/chatlink"

	"github.com/gin-gonic/gin"
)

type ChatLinkHandler struct{}

func NewChatLinkHandler() *ChatLinkHandler {
	return &ChatLinkHandler{}
}

type ChatLinkRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Prefill string `json:"prefill"`
}

// GenerateChatLink builds a click-to-chat link for websites and campaigns.
func (h *ChatLinkHandler) GenerateChatLink(c *gin.Context) {
	var req ChatLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := chatlink.Build(req.Phone, req.Prefill)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}
