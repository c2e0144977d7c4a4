package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-report-api/internal/config"
	"go.uber.org/mock/gomock"
)

func flushConfig(enabled bool) *config.Config {
	return &config.Config{Store: config.Store{FlushCron: "*/5 * * * *", FlushEnabled: enabled}}
}

func TestStoreFlushService_FlushAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inventory := mocks.NewMockFlusher(ctrl)
	contacts := mocks.NewMockFlusher(ctrl)

	inventory.EXPECT().Flush().Return(nil)
	inventory.EXPECT().Name().Return("inventario").AnyTimes()
	contacts.EXPECT().Flush().Return(errors.New("disco cheio"))
	contacts.EXPECT().Name().Return("contactos").AnyTimes()

	service := NewStoreFlushService(flushConfig(true), inventory, contacts)

	err := service.FlushAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 2")

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, []string{"inventario", "contactos"}, status["collections"])
	assert.Equal(t, map[string]string{"contactos": "disco cheio"}, status["last_errors"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestStoreFlushService_SkipsWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flusher := mocks.NewMockFlusher(ctrl)
	service := NewStoreFlushService(flushConfig(true), flusher)

	service.flushLock.Lock()
	service.flushRunning = true
	assert.NoError(t, service.FlushAll())
	service.TriggerManualSync()
	service.flushLock.Unlock()
}

func TestStoreFlushService_ShutdownWaitsForRunningFlush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	flusher := mocks.NewMockFlusher(ctrl)
	flusher.EXPECT().Name().Return("inventario").AnyTimes()
	flusher.EXPECT().Flush().DoAndReturn(func() error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	}).Times(2)

	service := NewStoreFlushService(flushConfig(true), flusher)

	service.TriggerManualSync()
	<-started

	done := make(chan error, 1)
	go func() { done <- service.Shutdown() }()

	select {
	case <-done:
		t.Fatal("Shutdown terminou antes da gravação em andamento")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown não terminou")
	}

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, false, service.GetStatus()["sync_running"])
}

func TestStoreFlushService_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flusher := mocks.NewMockFlusher(ctrl)
	flusher.EXPECT().Name().Return("inventario").AnyTimes()

	service := NewStoreFlushService(flushConfig(false), flusher)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestStoreFlushService_WithoutCollections(t *testing.T) {
	service := NewStoreFlushService(flushConfig(true))

	assert.NoError(t, service.Start(context.Background()))
	assert.NoError(t, service.FlushAll())
}
