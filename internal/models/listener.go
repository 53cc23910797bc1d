package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ListenerType is the kind of capture surface a listener simulates.
type ListenerType int

const (
	ListenerTypeLogin  ListenerType = 1
	ListenerTypeSocial ListenerType = 2
)

// ListenerTypes lists every declared listener type in declaration order.
func ListenerTypes() []ListenerType {
	return []ListenerType{ListenerTypeLogin, ListenerTypeSocial}
}

func (t ListenerType) Valid() bool {
	return t == ListenerTypeLogin || t == ListenerTypeSocial
}

func (t ListenerType) String() string {
	switch t {
	case ListenerTypeLogin:
		return "Login"
	case ListenerTypeSocial:
		return "Social"
	default:
		return fmt.Sprintf("ListenerType(%d)", int(t))
	}
}

var ErrInvalidListenerType = errors.New("invalid listener type")

// ListenerTarget holds the type-specific half of a listener.
type ListenerTarget interface {
	listenerTarget()
}

// LoginPage is the fake login form a Login listener serves.
type LoginPage struct {
	URL string
}

// SocialProfile is the decoy profile a Social listener watches.
type SocialProfile struct {
	Email string
}

func (LoginPage) listenerTarget()     {}
func (SocialProfile) listenerTarget() {}

// Listener is a simulated login or social capture surface.
type Listener struct {
	ID        uint
	Name      string
	UpdatedAt *time.Time
	Type      ListenerType
	Target    ListenerTarget
}

// NewListener returns a listener of the given type with an empty target.
func NewListener(name string, t ListenerType) Listener {
	l := Listener{Name: name}
	l.SetType(t)
	return l
}

// SetType switches the listener to t and drops the target if it no longer applies.
func (l *Listener) SetType(t ListenerType) {
	l.Type = t
	switch t {
	case ListenerTypeLogin:
		if _, ok := l.Target.(LoginPage); !ok {
			l.Target = LoginPage{}
		}
	case ListenerTypeSocial:
		if _, ok := l.Target.(SocialProfile); !ok {
			l.Target = SocialProfile{}
		}
	default:
		l.Target = nil
	}
}

// URL returns the login page URL for Login listeners.
func (l Listener) URL() string {
	if p, ok := l.Target.(LoginPage); ok {
		return p.URL
	}
	return ""
}

// Email returns the profile email for Social listeners.
func (l Listener) Email() string {
	if p, ok := l.Target.(SocialProfile); ok {
		return p.Email
	}
	return ""
}

func (l Listener) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrNameRequired
	}
	if !l.Type.Valid() {
		return ErrInvalidListenerType
	}
	return nil
}

type listenerWire struct {
	ID        uint         `json:"id,omitempty"`
	Name      string       `json:"name"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
	Type      ListenerType `json:"type"`
	Email     string       `json:"email,omitempty"`
	URL       string       `json:"url,omitempty"`
}

func (l Listener) MarshalJSON() ([]byte, error) {
	w := listenerWire{ID: l.ID, Name: l.Name, UpdatedAt: l.UpdatedAt, Type: l.Type}
	switch v := l.Target.(type) {
	case LoginPage:
		w.URL = v.URL
	case SocialProfile:
		w.Email = v.Email
	}
	return json.Marshal(w)
}

func (l *Listener) UnmarshalJSON(data []byte) error {
	var w listenerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Listener{ID: w.ID, Name: w.Name, UpdatedAt: w.UpdatedAt, Type: w.Type}
	switch w.Type {
	case ListenerTypeLogin:
		l.Target = LoginPage{URL: w.URL}
	case ListenerTypeSocial:
		l.Target = SocialProfile{Email: w.Email}
	}
	return nil
}
