package service

import (
	"sync/atomic"
	"time"

	"hoaxify/social-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically deletes tokens that weren't used for longer
// than TokenExpiry. It's owned by the process: Start is idempotent so a
// second initialization can't attach a duplicate timer
type TokenCleanup struct {
	DB       *gorm.DB
	Interval time.Duration

	started atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
}

func NewTokenCleanup(db *gorm.DB, interval time.Duration) *TokenCleanup {
	return &TokenCleanup{
		DB:       db,
		Interval: interval,
		done:     make(chan struct{}),
	}
}

func (c *TokenCleanup) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", c.Interval))

	go func() {
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop is idempotent like Start, a repeated call is a no-op
func (c *TokenCleanup) Stop() {
	if c.started.Load() && c.stopped.CompareAndSwap(false, true) {
		close(c.done)
	}
}

// Sweep runs a single cleanup pass
func (c *TokenCleanup) Sweep() {
	oneWeekAgo := time.Now().Add(-TokenExpiry)

	err := c.DB.
		Where("last_used_at < ?", oneWeekAgo).
		Delete(model.Token{}).
		Error
	if err != nil {
		zap.L().Error("Failed to cleanup expired tokens", zap.Error(err))
		return
	}

	zap.L().Debug("Token cleanup finished")
}
