package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationProvider is an external destination for console alerts.
type NotificationProvider struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`                            // discord, slack, telegram, generic, webhook
	URL      string `json:"url"`                             // The shoutrrr URL or webhook URL
	Config   string `json:"config"`                          // JSON payload template for webhooks
	Template string `json:"template" gorm:"default:minimal"` // minimal|detailed|custom
	Enabled  bool   `json:"enabled"`

	// Event preferences
	NotifyHits   bool `json:"notify_hits" gorm:"default:true"`
	NotifyErrors bool `json:"notify_errors" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *NotificationProvider) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if strings.TrimSpace(n.Template) == "" {
		if strings.TrimSpace(n.Config) != "" {
			n.Template = "custom"
		} else {
			n.Template = "minimal"
		}
	}
	return
}

// Wants reports whether the provider subscribed to eventType.
func (n NotificationProvider) Wants(eventType string) bool {
	switch eventType {
	case "hit":
		return n.NotifyHits
	case "error":
		return n.NotifyErrors
	case "test":
		return true
	default:
		return false
	}
}
