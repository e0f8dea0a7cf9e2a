package service

import (
	"sync/atomic"
	"time"

	"hoaxify/social-api/internal/model"

	"go.uber.org/zap"
)

// AttachmentMaxAge is how long an attachment may sit around without an
// owning hoax before the sweep removes it
const AttachmentMaxAge = 24 * time.Hour

// AttachmentCleanup deletes attachments that were uploaded but never
// ended up on a hoax. Runs one pass immediately on Start and then on a
// fixed interval. Start is idempotent
type AttachmentCleanup struct {
	Files    *FileStore
	Interval time.Duration

	started atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
}

func NewAttachmentCleanup(files *FileStore, interval time.Duration) *AttachmentCleanup {
	return &AttachmentCleanup{
		Files:    files,
		Interval: interval,
		done:     make(chan struct{}),
	}
}

func (c *AttachmentCleanup) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}

	zap.L().Debug("Attachment cleanup attached", zap.Duration("tick_every", c.Interval))

	go func() {
		c.Sweep()

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
func (c *AttachmentCleanup) Stop() {
	if c.started.Load() && c.stopped.CompareAndSwap(false, true) {
		close(c.done)
	}
}

// Sweep removes the file and row of every attachment older than
// AttachmentMaxAge that has no associated hoax. Attachments linked to a
// hoax are retained regardless of age
func (c *AttachmentCleanup) Sweep() {
	cutoff := time.Now().Add(-AttachmentMaxAge)

	var orphans []model.FileAttachment
	err := c.Files.DB.
		Where("upload_date < ? AND hoax_id IS NULL", cutoff).
		Find(&orphans).
		Error
	if err != nil {
		zap.L().Error("Failed to query orphaned attachments", zap.Error(err))
		return
	}

	for _, attachment := range orphans {
		c.Files.DeleteAttachmentFile(attachment.Filename)

		err = c.Files.DB.Delete(&attachment).Error
		if err != nil {
			zap.L().Error("Failed to delete orphaned attachment row", zap.Error(err))
		}
	}

	if len(orphans) > 0 {
		zap.L().Debug("Attachment cleanup finished", zap.Int("removed", len(orphans)))
	}
}
