package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/db/dbtest"
	"github.com/MediBoard/MediBoard/internal/db/models"
)

func TestHeartbeatUpsert(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first, err := Heartbeat(ctx, db, models.DeviceHeartbeat{DeviceID: "lobby-tv", Name: "Lobby", Version: "1.0", IP: "10.0.0.5"}, now)
	require.NoError(t, err)

	second, err := Heartbeat(ctx, db, models.DeviceHeartbeat{DeviceID: "lobby-tv", Name: "Lobby TV", Version: "1.1", IP: "10.0.0.6"},
		now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Lobby TV", second.Name)
	assert.Equal(t, "1.1", second.Version)
	assert.Equal(t, "10.0.0.6", second.IP)
	assert.True(t, second.LastSeen.Equal(now.Add(time.Minute)))

	var count int64
	require.NoError(t, db.Model(&models.DeviceHeartbeat{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = Heartbeat(ctx, db, models.DeviceHeartbeat{}, now)
	require.ErrorIs(t, err, ErrDeviceIDEmpty)
}

func TestListOnline(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := Heartbeat(ctx, db, models.DeviceHeartbeat{DeviceID: "fresh"}, now.Add(-30*time.Second))
	require.NoError(t, err)
	_, err = Heartbeat(ctx, db, models.DeviceHeartbeat{DeviceID: "stale"}, now.Add(-10*time.Minute))
	require.NoError(t, err)

	list, err := List(ctx, db, 2*time.Minute, now)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "fresh", list[0].DeviceID)
	assert.True(t, list[0].Online)
	assert.Equal(t, "stale", list[1].DeviceID)
	assert.False(t, list[1].Online)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	hb, err := Heartbeat(ctx, db, models.DeviceHeartbeat{DeviceID: "kiosk-1"}, time.Now())
	require.NoError(t, err)

	require.NoError(t, Delete(ctx, db, hb.ID))
	require.ErrorIs(t, Delete(ctx, db, hb.ID), ErrDeviceNotFound)
}
