package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidHoneypot = errors.New("invalid honeypot")

// Honeypot pairs a listener with a source inside one campaign.
type Honeypot struct {
	ID         uint   `json:"id,omitempty"`
	Name       string `json:"name"`
	ListenerID uint   `json:"listenerId"`
	SourceID   uint   `json:"sourceId"`
	CampaignID uint   `json:"campaignId,omitempty"`
}

// Campaign is a named collection of honeypots.
type Campaign struct {
	ID        uint       `json:"id,omitempty"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Honeypots []Honeypot `json:"honeypots"`
}

// Validate checks the campaign and each of its honeypots.
func (c Campaign) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	for i, hp := range c.Honeypots {
		switch {
		case strings.TrimSpace(hp.Name) == "":
			return fmt.Errorf("%w: honeypot %d has no name", ErrInvalidHoneypot, i+1)
		case hp.ListenerID == 0:
			return fmt.Errorf("%w: honeypot %q has no listener", ErrInvalidHoneypot, hp.Name)
		case hp.SourceID == 0:
			return fmt.Errorf("%w: honeypot %q has no source", ErrInvalidHoneypot, hp.Name)
		}
	}
	return nil
}
