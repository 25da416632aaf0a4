package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
	pkgredis "github.com/nourzaidi/nourfashion-backend/pkg/redis"
)

// settingsCacheTTL bounds how long a Redis-cached value can outlive a
// write made by another process.
const settingsCacheTTL = 10 * time.Minute

var whatsappNumberRe = regexp.MustCompile(`^[0-9]{10,15}$`)

type cacheStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type cacheKeyer interface {
	SettingsKey(name string) string
}

// Service exposes the storefront settings.
type Service interface {
	WhatsAppNumber(ctx context.Context) string
	SaveWhatsAppNumber(ctx context.Context, number string) error
}

type service struct {
	repo  SettingRepository
	cache cacheStore
	keyer cacheKeyer
	logg  *logger.Logger

	mu     sync.Mutex
	loaded bool
	number string
}

// NewService builds the settings accessor. The Redis client is
// optional; without it the service reads straight from the database.
func NewService(repo SettingRepository, client *pkgredis.Client, logg *logger.Logger) (Service, error) {
	if client == nil {
		return newService(repo, nil, nil, logg)
	}
	return newService(repo, client, client, logg)
}

func newService(repo SettingRepository, cache cacheStore, keyer cacheKeyer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{repo: repo, logg: logg}
	if cache != nil && keyer != nil {
		svc.cache = cache
		svc.keyer = keyer
	}
	return svc, nil
}

// WhatsAppNumber returns the configured number, loading it on first
// use. A failed load reports the error and serves an empty value; the
// next call retries nothing, the cart falls back to the bare wa.me
// link until the value is saved again.
func (s *service) WhatsAppNumber(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.number
	}
	s.loaded = true
	s.number = s.loadLocked(ctx)
	return s.number
}

// SaveWhatsAppNumber validates and persists the number. Validation
// failure writes nothing; a write failure keeps the cached value.
func (s *service) SaveWhatsAppNumber(ctx context.Context, number string) error {
	if !whatsappNumberRe.MatchString(number) {
		return pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number must be 10 to 15 digits")
	}

	row := &models.Setting{Key: KeyWhatsAppNumber, Value: number, UpdatedAt: time.Now().UTC()}
	if err := s.repo.UpsertSetting(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save whatsapp number")
	}

	s.mu.Lock()
	s.loaded = true
	s.number = number
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.keyer.SettingsKey(KeyWhatsAppNumber), number, settingsCacheTTL); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("settings cache write failed: %v", err))
		}
	}
	return nil
}

func (s *service) loadLocked(ctx context.Context) string {
	if s.cache != nil {
		value, err := s.cache.Get(ctx, s.keyer.SettingsKey(KeyWhatsAppNumber))
		if err == nil {
			return value
		}
		if !pkgredis.IsMiss(err) {
			s.logg.Warn(ctx, fmt.Sprintf("settings cache read failed: %v", err))
		}
	}

	row, err := s.repo.GetSetting(ctx, KeyWhatsAppNumber)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Error(ctx, "settings load failed", err)
		}
		return ""
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.keyer.SettingsKey(KeyWhatsAppNumber), row.Value, settingsCacheTTL); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("settings cache write failed: %v", err))
		}
	}
	return row.Value
}
