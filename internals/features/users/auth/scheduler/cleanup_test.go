package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authModel "schoolku_backend/internals/features/users/auth/model"
	"schoolku_backend/internals/testutil"
)

func TestCleanupOnceRemovesOnlyExpired(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&authModel.TokenBlacklist{Token: "old", ExpiredAt: time.Now().UTC().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&authModel.TokenBlacklist{Token: "live", ExpiredAt: time.Now().UTC().Add(time.Hour)}).Error)

	n, err := CleanupOnce(context.Background(), db, zap.NewNop())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []authModel.TokenBlacklist
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "live", left[0].Token)
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := StartBlacklistCleanupScheduler(db, "not a cron", zap.NewNop())
	assert.Error(t, err)

	c, err := StartBlacklistCleanupScheduler(db, "", zap.NewNop())
	require.NoError(t, err)
	<-c.Stop().Done()
}
