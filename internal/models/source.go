package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SourceType is the external platform a source harvests from.
type SourceType int

const (
	SourceTypeFacebook SourceType = 1
	SourceTypeLinkedIn SourceType = 2
	SourceTypePastebin SourceType = 3
)

// SourceTypes lists every declared source type in declaration order.
func SourceTypes() []SourceType {
	return []SourceType{SourceTypeFacebook, SourceTypeLinkedIn, SourceTypePastebin}
}

func (t SourceType) Valid() bool {
	return t >= SourceTypeFacebook && t <= SourceTypePastebin
}

func (t SourceType) String() string {
	switch t {
	case SourceTypeFacebook:
		return "Facebook"
	case SourceTypeLinkedIn:
		return "LinkedIn"
	case SourceTypePastebin:
		return "Pastebin"
	default:
		return fmt.Sprintf("SourceType(%d)", int(t))
	}
}

var (
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidSourceType = errors.New("invalid source type")
)

// SourceSettings holds the fields that only apply to some source types.
type SourceSettings interface {
	sourceSettings()
}

// SocialAccount is the account a Facebook or LinkedIn source watches.
type SocialAccount struct {
	Email string
}

// PastebinFeed is the API access and paste list of a Pastebin source.
type PastebinFeed struct {
	APIKey string
	URLs   []string
}

func (SocialAccount) sourceSettings() {}
func (PastebinFeed) sourceSettings()  {}

// Source is an external platform definition. Settings always matches Type
// after decoding or SetType.
type Source struct {
	ID       uint
	Name     string
	Type     SourceType
	Settings SourceSettings
}

// NewSource returns a source of the given type with empty settings.
func NewSource(name string, t SourceType) Source {
	s := Source{Name: name}
	s.SetType(t)
	return s
}

// SetType switches the source to t and drops settings that no longer apply.
func (s *Source) SetType(t SourceType) {
	s.Type = t
	switch t {
	case SourceTypeFacebook, SourceTypeLinkedIn:
		if _, ok := s.Settings.(SocialAccount); !ok {
			s.Settings = SocialAccount{}
		}
	case SourceTypePastebin:
		if _, ok := s.Settings.(PastebinFeed); !ok {
			s.Settings = PastebinFeed{}
		}
	default:
		s.Settings = nil
	}
}

// Email returns the watched account email for social sources.
func (s Source) Email() string {
	if acct, ok := s.Settings.(SocialAccount); ok {
		return acct.Email
	}
	return ""
}

// APIKey returns the Pastebin API key, if any.
func (s Source) APIKey() string {
	if feed, ok := s.Settings.(PastebinFeed); ok {
		return feed.APIKey
	}
	return ""
}

// Validate checks the fields the backend requires.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if !s.Type.Valid() {
		return ErrInvalidSourceType
	}
	return nil
}

type sourceWire struct {
	ID           uint       `json:"id,omitempty"`
	Name         string     `json:"name"`
	Type         SourceType `json:"type"`
	APIKey       string     `json:"apiKey,omitempty"`
	Email        string     `json:"email,omitempty"`
	PastebinURLs []string   `json:"pastebinUrls,omitempty"`
}

// MarshalJSON emits the backend's flat shape with only the fields of the
// active variant.
func (s Source) MarshalJSON() ([]byte, error) {
	w := sourceWire{ID: s.ID, Name: s.Name, Type: s.Type}
	switch v := s.Settings.(type) {
	case SocialAccount:
		w.Email = v.Email
	case PastebinFeed:
		w.APIKey = v.APIKey
		w.PastebinURLs = v.URLs
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat backend shape and keeps only the fields that
// apply to the decoded type.
func (s *Source) UnmarshalJSON(data []byte) error {
	var w sourceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Source{ID: w.ID, Name: w.Name, Type: w.Type}
	switch w.Type {
	case SourceTypeFacebook, SourceTypeLinkedIn:
		s.Settings = SocialAccount{Email: w.Email}
	case SourceTypePastebin:
		s.Settings = PastebinFeed{APIKey: w.APIKey, URLs: w.PastebinURLs}
	}
	return nil
}
