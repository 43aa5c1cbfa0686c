package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"garage-booking/internal/domain/entity"
	"garage-booking/internal/domain/repository"
	"garage-booking/internal/schedule"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefix for cached garage catalogs
	RedisCatalogKeyPrefix = "garage:catalog:"

	// Catalog entries change rarely; a short TTL keeps slot listings warm
	// without an invalidation protocol with the directory service.
	catalogCacheTTL = 5 * time.Minute
)

// GarageCatalog is the provider-directory snapshot the scheduling core
// consumes: the selectable services and the assembled weekly policy.
type GarageCatalog struct {
	GarageID uuid.UUID              `json:"garage_id"`
	Name     string                 `json:"name"`
	IsActive bool                   `json:"is_active"`
	Services []entity.GarageService `json:"services"`
	Policy   schedule.WeeklyPolicy  `json:"policy"`
}

// ServiceByID returns the catalog entry with the given id, or nil.
func (c *GarageCatalog) ServiceByID(id uuid.UUID) *entity.GarageService {
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i]
		}
	}
	return nil
}

// CatalogCacheService serves garage catalogs Redis-first with a DB
// fallback. Reads vastly outnumber catalog edits, so every slot listing
// and booking validation goes through here instead of hitting Postgres.
type CatalogCacheService struct {
	db            *gorm.DB
	redisClient   *redis.Client
	log           *logrus.Logger
	garageRepo    repository.GarageRepository
	defaultPolicy schedule.WeeklyPolicy
}

func NewCatalogCacheService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	garageRepo repository.GarageRepository,
	defaultPolicy schedule.WeeklyPolicy,
) *CatalogCacheService {
	return &CatalogCacheService{
		db:            db,
		redisClient:   redisClient,
		log:           log,
		garageRepo:    garageRepo,
		defaultPolicy: defaultPolicy,
	}
}

// GetCatalog returns the catalog for a garage, or nil if the garage does
// not exist. Cache failures degrade to the database, never to an error.
func (s *CatalogCacheService) GetCatalog(ctx context.Context, garageID uuid.UUID) (*GarageCatalog, error) {
	key := RedisCatalogKeyPrefix + garageID.String()

	data, err := s.redisClient.Get(ctx, key).Bytes()
	if err == nil {
		var catalog GarageCatalog
		if jsonErr := json.Unmarshal(data, &catalog); jsonErr == nil {
			return &catalog, nil
		}
		s.log.Warnf("Corrupt catalog cache entry for garage %s, reloading", garageID)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warnf("Catalog cache read failed for garage %s: %+v", garageID, err)
	}

	garage, err := s.garageRepo.FindByID(s.db.WithContext(ctx), garageID)
	if err != nil {
		return nil, err
	}
	if garage == nil {
		return nil, nil
	}

	catalog := &GarageCatalog{
		GarageID: garage.ID,
		Name:     garage.Name,
		IsActive: garage.IsActive,
		Services: garage.Services,
		Policy:   s.policyFor(garage.OperatingRules),
	}

	if payload, jsonErr := json.Marshal(catalog); jsonErr == nil {
		if setErr := s.redisClient.Set(ctx, key, payload, catalogCacheTTL).Err(); setErr != nil {
			s.log.Warnf("Catalog cache write failed for garage %s (non-fatal): %+v", garageID, setErr)
		}
	}

	return catalog, nil
}

// Invalidate drops a garage's cached catalog, e.g. after the directory
// pushes an update.
func (s *CatalogCacheService) Invalidate(ctx context.Context, garageID uuid.UUID) error {
	return s.redisClient.Del(ctx, RedisCatalogKeyPrefix+garageID.String()).Err()
}

// policyFor overlays a garage's operating rules on the marketplace-wide
// default policy. Garages without rules keep the default.
func (s *CatalogCacheService) policyFor(rules []entity.OperatingRule) schedule.WeeklyPolicy {
	policy := s.defaultPolicy
	for _, rule := range rules {
		if rule.Weekday < 0 || rule.Weekday > 6 {
			s.log.Warnf("Ignoring operating rule with weekday %d", rule.Weekday)
			continue
		}
		policy[rule.Weekday] = schedule.DayRule{
			Open:        rule.IsOpen,
			OpenHour:    rule.OpenHour,
			CloseHour:   rule.CloseHour,
			StepMinutes: rule.StepMinutes,
		}
	}
	return policy
}
