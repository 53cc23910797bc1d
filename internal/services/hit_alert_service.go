package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/logger"
	"github.com/Wikid82/snare/internal/models"
)

// HitAlertWatermarkKey is the settings key holding the largest hit id that
// has already been alerted on.
const HitAlertWatermarkKey = "hit_alert.last_id"

// HitAlertService forwards newly recorded hits to external providers.
type HitAlertService struct {
	db            *gorm.DB
	backend       Backend
	notifications *NotificationService
}

func NewHitAlertService(db *gorm.DB, b Backend, ns *NotificationService) *HitAlertService {
	return &HitAlertService{db: db, backend: b, notifications: ns}
}

// Check fetches the hit list and alerts on hits above the watermark. The
// first check only records the watermark so existing hits are not replayed.
// It returns the number of hits alerted on.
func (s *HitAlertService) Check(ctx context.Context) (int, error) {
	hits, err := s.backend.ListHits(ctx)
	if err != nil {
		return 0, fmt.Errorf("list hits: %w", err)
	}

	last, seen, err := s.watermark()
	if err != nil {
		return 0, err
	}

	var highest uint
	var fresh []models.Hit
	for _, h := range hits {
		if h.ID > highest {
			highest = h.ID
		}
		if seen && h.ID > last {
			fresh = append(fresh, h)
		}
	}
	if highest < last {
		highest = last
	}

	if len(fresh) > 0 {
		lookup, err := s.lookup(ctx)
		if err != nil {
			return 0, err
		}
		for _, h := range fresh {
			row := hitRow(h, lookup)
			title := fmt.Sprintf("New %s hit from %s", row.TypeName, row.IPAddress)
			message := fmt.Sprintf("Campaign: %s\nSource: %s\nHoneypot: %s", row.Campaign, row.Source, row.Honeypot)
			data := map[string]interface{}{
				"IPAddress": row.IPAddress,
				"Email":     row.Email,
				"Campaign":  row.Campaign,
				"Source":    row.Source,
				"Honeypot":  row.Honeypot,
				"HitID":     row.ID,
			}
			if err := s.notifications.SendExternal("hit", title, message, data); err != nil {
				logger.Component("hit_alerts").WithError(err).WithField("hit_id", h.ID).Warn("hit alert delivery failed")
			}
		}
	}

	if !seen || highest != last {
		if err := s.saveWatermark(highest); err != nil {
			return 0, err
		}
	}
	return len(fresh), nil
}

// Run is the poller job: it logs failures instead of returning them.
func (s *HitAlertService) Run(ctx context.Context) {
	n, err := s.Check(ctx)
	if err != nil {
		logger.Component("hit_alerts").WithError(err).Warn("hit alert check failed")
		return
	}
	if n > 0 {
		logger.Component("hit_alerts").WithField("count", n).Info("sent hit alerts")
	}
}

func (s *HitAlertService) lookup(ctx context.Context) (*dashboard.Lookup, error) {
	sources, err := s.backend.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	campaigns, err := s.backend.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return dashboard.NewLookup(sources, campaigns, nil, nil), nil
}

func (s *HitAlertService) watermark() (uint, bool, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", HitAlertWatermarkKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read hit alert watermark: %w", err)
	}
	id, err := strconv.ParseUint(setting.Value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse hit alert watermark %q: %w", setting.Value, err)
	}
	return uint(id), true, nil
}

func (s *HitAlertService) saveWatermark(id uint) error {
	setting := models.Setting{Key: HitAlertWatermarkKey, Value: strconv.FormatUint(uint64(id), 10)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("save hit alert watermark: %w", err)
	}
	return nil
}
