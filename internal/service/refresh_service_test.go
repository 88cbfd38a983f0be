package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCount(t *testing.T, counter *int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(counter) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("等待回调执行超时，当前 %d，期望 >= %d", atomic.LoadInt32(counter), want)
}

func TestRefreshManagerRunsCallback(t *testing.T) {
	mgr := NewRefreshManager()
	defer mgr.Stop()

	var count int32
	mgr.Register("tick", func(ctx context.Context) error {
		atomic.AddInt32(&count, 1)
		return nil
	}, RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})

	waitForCount(t, &count, 2)
	assert.True(t, mgr.Active("tick"))
}

func TestRefreshManagerDisabledDoesNotStart(t *testing.T) {
	mgr := NewRefreshManager()
	defer mgr.Stop()

	mgr.Register("idle", func(ctx context.Context) error { return nil },
		RefreshConfig{Interval: time.Minute, Enabled: false})

	assert.False(t, mgr.Active("idle"))
}

func TestRefreshManagerRegisterReplaces(t *testing.T) {
	mgr := NewRefreshManager()
	defer mgr.Stop()

	var old, fresh int32
	mgr.Register("job", func(ctx context.Context) error {
		atomic.AddInt32(&old, 1)
		return nil
	}, RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})

	// 重复注册替换旧定时器而不是叠加
	mgr.Register("job", func(ctx context.Context) error {
		atomic.AddInt32(&fresh, 1)
		return nil
	}, RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})

	waitForCount(t, &fresh, 2)
	stale := atomic.LoadInt32(&old)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stale, atomic.LoadInt32(&old))
}

func TestRefreshManagerPauseResume(t *testing.T) {
	mgr := NewRefreshManager()
	defer mgr.Stop()

	var count int32
	mgr.Register("job", func(ctx context.Context) error {
		atomic.AddInt32(&count, 1)
		return nil
	}, RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})

	waitForCount(t, &count, 1)
	mgr.Pause("job")
	require.False(t, mgr.Active("job"))

	paused := atomic.LoadInt32(&count)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, paused, atomic.LoadInt32(&count))

	mgr.Resume("job", RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})
	require.True(t, mgr.Active("job"))
	waitForCount(t, &count, paused+1)
}

func TestRefreshManagerSurvivesPanic(t *testing.T) {
	mgr := NewRefreshManager()
	defer mgr.Stop()

	var count int32
	mgr.Register("flaky", func(ctx context.Context) error {
		if atomic.AddInt32(&count, 1) == 1 {
			panic("boom")
		}
		return nil
	}, RefreshConfig{Interval: 10 * time.Millisecond, Enabled: true})

	// 第一次恐慌后定时器继续工作
	waitForCount(t, &count, 3)
}

func TestRefreshManagerStopClearsAll(t *testing.T) {
	mgr := NewRefreshManager()

	mgr.Register("a", func(ctx context.Context) error { return nil },
		RefreshConfig{Interval: time.Minute, Enabled: true})
	mgr.Register("b", func(ctx context.Context) error { return nil },
		RefreshConfig{Interval: time.Minute, Enabled: true})

	mgr.Stop()
	assert.False(t, mgr.Active("a"))
	assert.False(t, mgr.Active("b"))
}
