package models

import (
	"time"
)

// Message represents one inbound or outbound WhatsApp message
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WaID      string    `gorm:"index;not null" json:"wa_id"`
	Sender    string    `gorm:"not null" json:"sender"`
	Content   string    `gorm:"type:text" json:"content"`
	Type      string    `gorm:"type:varchar(50)" json:"type"`
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Contact represents a diver contact, imported from WhatsApp or entered
// manually. Source/Confidence/RawText carry the import provenance.
type Contact struct {
	WaID       string    `gorm:"primaryKey" json:"wa_id"` // WhatsApp ID (phone number)
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Email      string    `gorm:"type:varchar(255);index" json:"email"`
	Phone      string    `gorm:"type:varchar(50);index" json:"phone"`
	Tags       string    `gorm:"type:text" json:"tags"` // JSON array string
	Source     string    `gorm:"type:varchar(20)" json:"source"`
	Confidence int       `json:"confidence"`
	RawText    string    `gorm:"type:text" json:"raw_text"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ReplyTemplate represents an outbound auto-reply template
type ReplyTemplate struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Language string `gorm:"type:varchar(50)" json:"language"`
	Body     string `gorm:"type:text" json:"body"`
	Status   string `gorm:"type:varchar(50)" json:"status"`
}

func (ReplyTemplate) TableName() string {
	return "reply_templates"
}

// ImportLog is the decision log: one row per processed message, feeding the
// recent-imports dashboard and replay of failed imports.
type ImportLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MessageID  string    `gorm:"type:varchar(255);index" json:"message_id"`
	WaID       string    `gorm:"type:varchar(50);index" json:"wa_id"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone"`
	Decision   string    `gorm:"type:varchar(30);index" json:"decision"`
	Reason     string    `gorm:"type:text" json:"reason"`
	Confidence int       `json:"confidence"`
	Source     string    `gorm:"type:varchar(20)" json:"source"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ImportLog) TableName() string {
	return "import_logs"
}

// SystemSetting stores runtime configuration, including the import policy
// snapshot, so reconfiguration survives restarts.
type SystemSetting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
