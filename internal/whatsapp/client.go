// Package whatsapp is the outbound side of the WhatsApp Business integration:
// plain text and template sends through the Graph API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"diveops-console/internal/config"
	"diveops-console/internal/models"

	"gorm.io/gorm"
)

const graphAPIBase = "https://graph.facebook.com/v19.0"

// Client sends outbound messages through the WhatsApp Business Graph API.
// It implements the pipeline's Responder port.
type Client struct {
	cfg *config.Config
	db  *gorm.DB

	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config, db *gorm.DB) *Client {
	return &Client{
		cfg:        cfg,
		db:         db,
		baseURL:    graphAPIBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type outboundMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *textBody        `json:"text,omitempty"`
	Template         *templatePayload `json:"template,omitempty"`
}

type textBody struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

type templatePayload struct {
	Name     string       `json:"name"`
	Language languageCode `json:"language"`
}

type languageCode struct {
	Code string `json:"code"`
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.WhatsAppToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph api: %s: %s", resp.Status, body)
	}
	return nil
}

func (c *Client) send(ctx context.Context, msg outboundMessage) error {
	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.cfg.PhoneNumberID)
	err := c.post(ctx, url, msg)

	c.logOutbound(msg)
	return err
}

// logOutbound records the send in the message history, fire and forget.
func (c *Client) logOutbound(msg outboundMessage) {
	if c.db == nil {
		return
	}
	content := fmt.Sprintf("%s message", msg.Type)
	switch {
	case msg.Text != nil:
		content = msg.Text.Body
	case msg.Template != nil:
		content = "Template: " + msg.Template.Name
	}
	go func() {
		record := models.Message{
			WaID:    "outgoing-" + msg.To,
			Sender:  msg.To,
			Content: content,
			Type:    msg.Type,
			Status:  "sent",
		}
		if err := c.db.Create(&record).Error; err != nil {
			log.Printf("whatsapp: store outbound message: %v", err)
		}
	}()
}

// SendMessage sends plain text.
func (c *Client) SendMessage(ctx context.Context, to, body string) error {
	return c.send(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textBody{Body: body},
	})
}

// SendTemplateMessage sends an approved Graph API message template.
func (c *Client) SendTemplateMessage(ctx context.Context, to, templateName, language string) error {
	return c.send(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: &templatePayload{
			Name:     templateName,
			Language: languageCode{Code: language},
		},
	})
}

// SendTemplate satisfies the pipeline's Responder port. When the template id
// resolves to a stored reply template, its body is sent as plain text so the
// copy stays editable from the dashboard; unknown ids fall through to a Graph
// API template send.
func (c *Client) SendTemplate(ctx context.Context, to, templateID string) error {
	if c.db != nil {
		var tmpl models.ReplyTemplate
		if err := c.db.WithContext(ctx).First(&tmpl, "id = ?", templateID).Error; err == nil && tmpl.Body != "" {
			return c.SendMessage(ctx, to, tmpl.Body)
		}
	}
	return c.SendTemplateMessage(ctx, to, templateID, c.cfg.TemplateLanguage)
}
