package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/logger"
	"github.com/Wikid82/snare/internal/metrics"
	"github.com/Wikid82/snare/internal/models"
)

// DefaultBannerTTL is how long an error banner stays visible.
const DefaultBannerTTL = 3 * time.Second

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrProviderNotFound     = errors.New("notification provider not found")
	ErrInvalidProvider      = errors.New("invalid notification provider")
)

// NotificationService stores operator banners and delivers alerts to the
// configured external providers.
type NotificationService struct {
	DB  *gorm.DB
	TTL time.Duration

	now func() time.Time
}

func NewNotificationService(db *gorm.DB, ttl time.Duration) *NotificationService {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &NotificationService{DB: db, TTL: ttl, now: time.Now}
}

// Banners

// Create stores a banner that expires after the service TTL.
func (s *NotificationService) Create(nType models.NotificationType, title, message string) (*models.Notification, error) {
	now := s.now()
	notification := &models.Notification{
		Type:      nType,
		Title:     title,
		Message:   message,
		ExpiresAt: now.Add(s.TTL),
		CreatedAt: now,
	}
	if err := s.DB.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	if nType == models.NotificationTypeError {
		metrics.IncBanner()
	}
	return notification, nil
}

// RaiseError records a failed backend call as an error banner and forwards
// it to providers subscribed to errors. The banner text is the backend's
// display message.
func (s *NotificationService) RaiseError(title string, err error) *models.Notification {
	message := backend.DisplayMessage(err)
	logger.Component("notifications").WithError(err).WithField("title", title).Warn("backend call failed")

	n, createErr := s.Create(models.NotificationTypeError, title, message)
	if createErr != nil {
		logger.Component("notifications").WithError(createErr).Error("failed to store error banner")
	}

	if providers, listErr := s.providersFor("error"); listErr == nil && len(providers) > 0 {
		go s.deliver(providers, "error", title, message, nil)
	}
	return n
}

// ListActive returns undismissed, unexpired banners, newest first. Expired
// rows are pruned.
func (s *NotificationService) ListActive() ([]models.Notification, error) {
	now := s.now()
	if err := s.DB.Where("expires_at <= ?", now).Delete(&models.Notification{}).Error; err != nil {
		return nil, fmt.Errorf("prune notifications: %w", err)
	}

	var notifications []models.Notification
	err := s.DB.Where("dismissed = ? AND expires_at > ?", false, now).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) Dismiss(id string) error {
	result := s.DB.Model(&models.Notification{}).Where("id = ?", id).Update("dismissed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) DismissAll() error {
	return s.DB.Model(&models.Notification{}).Where("dismissed = ?", false).Update("dismissed", true).Error
}

// Providers

func (s *NotificationService) ListProviders() ([]models.NotificationProvider, error) {
	var providers []models.NotificationProvider
	result := s.DB.Order("created_at asc").Find(&providers)
	return providers, result.Error
}

func (s *NotificationService) GetProvider(id string) (*models.NotificationProvider, error) {
	var provider models.NotificationProvider
	if err := s.DB.First(&provider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (s *NotificationService) CreateProvider(provider *models.NotificationProvider) error {
	if err := s.validateProvider(provider); err != nil {
		return err
	}
	return s.DB.Create(provider).Error
}

func (s *NotificationService) UpdateProvider(provider *models.NotificationProvider) error {
	if _, err := s.GetProvider(provider.ID); err != nil {
		return err
	}
	if err := s.validateProvider(provider); err != nil {
		return err
	}
	return s.DB.Save(provider).Error
}

func (s *NotificationService) DeleteProvider(id string) error {
	result := s.DB.Delete(&models.NotificationProvider{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (s *NotificationService) validateProvider(p *models.NotificationProvider) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProvider)
	}
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidProvider)
	}
	if strings.ToLower(strings.TrimSpace(p.Template)) == "custom" && strings.TrimSpace(p.Config) != "" {
		payload := map[string]interface{}{"Title": "Preview", "Message": "Preview", "Time": s.now().Format(time.RFC3339), "EventType": "preview"}
		if _, _, err := RenderTemplate(*p, payload); err != nil {
			return fmt.Errorf("%w: invalid custom template: %v", ErrInvalidProvider, err)
		}
	}
	return nil
}

func (s *NotificationService) providersFor(eventType string) ([]models.NotificationProvider, error) {
	var enabled []models.NotificationProvider
	if err := s.DB.Where("enabled = ?", true).Find(&enabled).Error; err != nil {
		return nil, err
	}
	providers := enabled[:0]
	for _, p := range enabled {
		if p.Wants(eventType) {
			providers = append(providers, p)
		}
	}
	return providers, nil
}
