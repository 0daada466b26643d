package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Caisio-Cloud/popmath-game/model"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	sqlSvc *SqliteService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	BlockTime    time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc *RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.initDefaultConfigs()

	go svc.startCleanupJob()

	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			BlockTime:    30 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			BlockTime:    60 * time.Minute,
			Description:  "Registration attempts rate limit",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) getConfig(endpointType string) *RateLimitConfig {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.configs[endpointType]
}

// Middleware limits requests per client IP for the given endpoint type.
// Counters survive restarts; blocked clients get a 429.
func (svc *RateLimitService) Middleware(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		config := svc.getConfig(endpointType)
		if config == nil || !config.IsActive {
			return c.Next()
		}

		allowed, retryAfter, err := svc.allow(c.IP(), config)
		if err != nil {
			log.WithError(err).Warn("Rate limit check failed, allowing request")
			return c.Next()
		}
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(retryAfter.Seconds())))
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) allow(identifier string, config *RateLimitConfig) (bool, time.Duration, error) {
	now := time.Now()

	rl, err := svc.sqlSvc.GetRateLimit(identifier, config.EndpointType)
	if err != nil {
		return false, 0, err
	}

	if rl == nil {
		id, _ := uuid.NewV7()
		rl = &model.RateLimit{
			ID:           id.String(),
			Identifier:   identifier,
			EndpointType: config.EndpointType,
			RequestCount: 1,
			WindowStart:  now,
			CreatedAt:    now,
		}
		return true, 0, svc.sqlSvc.SaveRateLimit(rl)
	}

	if rl.BlockedUntil != nil && rl.BlockedUntil.After(now) {
		return false, rl.BlockedUntil.Sub(now), nil
	}

	if now.Sub(rl.WindowStart) > config.WindowSize {
		rl.WindowStart = now
		rl.RequestCount = 0
		rl.BlockedUntil = nil
	}

	rl.RequestCount++
	if rl.RequestCount > config.MaxRequests {
		blockedUntil := now.Add(config.BlockTime)
		rl.BlockedUntil = &blockedUntil
		if err := svc.sqlSvc.SaveRateLimit(rl); err != nil {
			return false, 0, err
		}
		log.WithFields(log.Fields{
			"identifier": identifier,
			"endpoint":   config.EndpointType,
		}).Warn("Client rate limited")
		return false, config.BlockTime, nil
	}

	return true, 0, svc.sqlSvc.SaveRateLimit(rl)
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := svc.sqlSvc.CleanupOldRateLimits(time.Now().Add(-24 * time.Hour)); err != nil {
			log.WithError(err).Warn("Rate limit cleanup failed")
		}
	}
}
