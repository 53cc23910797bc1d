package models

import (
	"fmt"
	"time"
)

// HitType classifies how a hit was captured. Values match the backend's
// numeric encoding.
type HitType int

const (
	HitTypeLogin  HitType = 1
	HitTypeSocial HitType = 2
)

// HitTypes lists every declared hit type in declaration order.
func HitTypes() []HitType {
	return []HitType{HitTypeLogin, HitTypeSocial}
}

// Valid reports whether t is a declared hit type.
func (t HitType) Valid() bool {
	return t == HitTypeLogin || t == HitTypeSocial
}

func (t HitType) String() string {
	switch t {
	case HitTypeLogin:
		return "Login"
	case HitTypeSocial:
		return "Social"
	default:
		return fmt.Sprintf("HitType(%d)", int(t))
	}
}

// Hit is a login attempt or leak event recorded by the backend. The console
// only reads and deletes hits.
type Hit struct {
	ID         uint      `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	IPAddress  string    `json:"ipAddress"`
	Email      string    `json:"email,omitempty"`
	Type       HitType   `json:"type"`
	SourceID   uint      `json:"sourceId,omitempty"`
	CampaignID uint      `json:"campaignId,omitempty"`
	HoneypotID uint      `json:"honeypotId,omitempty"`
}
