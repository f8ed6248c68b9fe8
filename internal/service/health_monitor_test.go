package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthMonitor_CheckAll_RecordsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	up := mocks.NewMockRailProvider(ctrl)
	up.EXPECT().Name().Return("tempo").AnyTimes()
	up.EXPECT().Probe(gomock.Any()).Return(12*time.Millisecond, nil)

	down := mocks.NewMockRailProvider(ctrl)
	down.EXPECT().Name().Return("circle").AnyTimes()
	down.EXPECT().Probe(gomock.Any()).Return(time.Duration(0), errors.New("connection refused"))

	m := NewHealthMonitor([]ports.RailProvider{up, down}, 30*time.Second, time.Second, 3, zerolog.Nop())
	snap := m.CheckAll(context.Background())

	require.Len(t, snap, 2)
	assert.True(t, snap["tempo"].Healthy)
	assert.Equal(t, 12*time.Millisecond, snap["tempo"].Latency)
	assert.False(t, snap["circle"].Healthy)
}

func TestHealthMonitor_ProbeFailureFlipsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockRailProvider(ctrl)
	p.EXPECT().Name().Return("tempo").AnyTimes()
	p.EXPECT().Probe(gomock.Any()).Return(5*time.Millisecond, nil)
	p.EXPECT().Probe(gomock.Any()).Return(time.Duration(0), errors.New("503"))

	m := NewHealthMonitor([]ports.RailProvider{p}, 30*time.Second, time.Second, 3, zerolog.Nop())

	snap := m.CheckAll(context.Background())
	assert.True(t, snap["tempo"].Healthy)

	snap = m.CheckAll(context.Background())
	assert.False(t, snap["tempo"].Healthy)
	assert.False(t, m.IsHealthy("tempo"))
}

func TestHealthMonitor_StaleReadsAsUnhealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockRailProvider(ctrl)
	p.EXPECT().Name().Return("tempo").AnyTimes()
	p.EXPECT().Probe(gomock.Any()).Return(5*time.Millisecond, nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewHealthMonitor([]ports.RailProvider{p}, 30*time.Second, time.Second, 3, zerolog.Nop())
	m.now = func() time.Time { return base }

	m.CheckAll(context.Background())
	assert.True(t, m.IsHealthy("tempo"))

	// Within the stale window the last probe still counts.
	m.now = func() time.Time { return base.Add(89 * time.Second) }
	assert.True(t, m.IsHealthy("tempo"))

	// 3 cycles * 30s elapsed with no successful probe since.
	m.now = func() time.Time { return base.Add(91 * time.Second) }
	assert.False(t, m.IsHealthy("tempo"))
}

func TestHealthMonitor_SnapshotIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockRailProvider(ctrl)
	p.EXPECT().Name().Return("tempo").AnyTimes()
	p.EXPECT().Probe(gomock.Any()).Return(5*time.Millisecond, nil)

	m := NewHealthMonitor([]ports.RailProvider{p}, 30*time.Second, time.Second, 3, zerolog.Nop())
	m.CheckAll(context.Background())

	snap := m.Snapshot()
	entry := snap["tempo"]
	entry.Healthy = false
	snap["tempo"] = entry

	assert.True(t, m.IsHealthy("tempo"))
}

func TestHealthMonitor_UnknownProviderUnhealthy(t *testing.T) {
	m := NewHealthMonitor(nil, 30*time.Second, time.Second, 3, zerolog.Nop())
	assert.False(t, m.IsHealthy("nope"))
	assert.Equal(t, time.Duration(0), m.Latency("nope"))
}
