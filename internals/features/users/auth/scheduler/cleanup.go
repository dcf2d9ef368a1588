package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "schoolku_backend/internals/features/users/auth/repository"
)

const defaultCleanupSpec = "0 3 * * *"

// CleanupOnce purges blacklisted tokens that have already expired.
func CleanupOnce(ctx context.Context, db *gorm.DB, log *zap.Logger) (int64, error) {
	n, err := authRepo.CleanupExpiredBlacklist(db.WithContext(ctx), time.Now())
	if err != nil {
		log.Error("blacklist cleanup failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		log.Info("blacklist cleanup", zap.Int64("deleted", n))
	}
	return n, nil
}

// StartBlacklistCleanupScheduler registers the cleanup job and starts the
// cron runner. Stop the returned runner on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string, log *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		spec = defaultCleanupSpec
	}
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, _ = CleanupOnce(ctx, db, log)
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("blacklist cleanup scheduled", zap.String("spec", spec))
	return c, nil
}
