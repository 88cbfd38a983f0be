package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamvue/internal/config"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// newTestRepos 内存 SQLite 仓库，每个测试独立
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := repository.InitDB(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	return repository.NewRepositories(db)
}

func movieSummary(id int, title string) model.MediaSummary {
	return model.MediaSummary{
		ID:          id,
		Title:       title,
		MediaType:   model.MediaTypeMovie,
		ReleaseDate: "2021-06-15",
		GenreIDs:    []int{28},
	}
}

func TestRecordProgressComputesPercent(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	entry, err := svc.RecordProgress(movieSummary(42, "Inception"), 6840, 7200)
	require.NoError(t, err)

	assert.Equal(t, 95, entry.Progress)
	assert.True(t, entry.Completed)
	assert.Equal(t, float64(7200), entry.Duration)
}

func TestRecordProgressZeroDuration(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	entry, err := svc.RecordProgress(movieSummary(1, "Short"), 100, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, entry.Progress)
	assert.False(t, entry.Completed)
}

func TestRecordProgressClampsOverflow(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	entry, err := svc.RecordProgress(movieSummary(2, "Overtime"), 9000, 7200)
	require.NoError(t, err)
	assert.Equal(t, 100, entry.Progress)
}

func TestRecordProgressReplacesSameMedia(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	_, err := svc.RecordProgress(movieSummary(7, "Dune"), 600, 7200)
	require.NoError(t, err)
	_, err = svc.RecordProgress(movieSummary(7, "Dune"), 3600, 7200)
	require.NoError(t, err)

	entries := svc.List(0)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Progress)
}

func TestHistoryEvictsOldestBeyondCap(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	for i := 1; i <= 51; i++ {
		_, err := svc.RecordProgress(movieSummary(i, fmt.Sprintf("Movie %d", i)), 600, 7200)
		require.NoError(t, err)
	}

	entries := svc.List(0)
	require.Len(t, entries, 50)

	// 最旧的一条（id=1）被淘汰
	for _, entry := range entries {
		assert.NotEqual(t, 1, entry.MediaID)
	}
}

func TestContinueWatchingFilters(t *testing.T) {
	repos := newTestRepos(t)
	bus := event.NewBus()
	svc := NewHistoryService(repos.History, bus)

	// 看完的不算
	_, err := svc.RecordProgress(movieSummary(1, "Done"), 6900, 7200)
	require.NoError(t, err)
	// 刚点开的不算
	_, err = svc.RecordProgress(movieSummary(2, "Barely"), 60, 7200)
	require.NoError(t, err)
	// 看了一半的算
	_, err = svc.RecordProgress(movieSummary(3, "Halfway"), 3600, 7200)
	require.NoError(t, err)

	items := svc.ContinueWatching()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].MediaID)
}

func TestContinueWatchingExcludesStale(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	_, err := svc.RecordProgress(movieSummary(9, "Old"), 3600, 7200)
	require.NoError(t, err)

	// 把记录改到 31 天前
	err = repos.DB.Model(&model.WatchHistoryEntry{}).
		Where("media_id = ?", 9).
		Update("watched_at", time.Now().AddDate(0, 0, -31)).Error
	require.NoError(t, err)

	assert.Empty(t, svc.ContinueWatching())
}

func TestRecentlyViewedReturnsMedia(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewHistoryService(repos.History, event.NewBus())

	_, err := svc.RecordProgress(movieSummary(11, "First"), 600, 7200)
	require.NoError(t, err)
	_, err = svc.RecordProgress(movieSummary(12, "Second"), 600, 7200)
	require.NoError(t, err)

	medias := svc.RecentlyViewed(5)
	require.Len(t, medias, 2)
	// 最近的排前面
	assert.Equal(t, 12, medias[0].ID)
}

func TestClearHistoryPublishesEvent(t *testing.T) {
	repos := newTestRepos(t)
	bus := event.NewBus()
	svc := NewHistoryService(repos.History, bus)

	_, err := svc.RecordProgress(movieSummary(42, "Inception"), 6840, 7200)
	require.NoError(t, err)

	ch, dispose := bus.Subscribe(event.TopicWatchHistory)
	defer dispose()

	require.NoError(t, svc.Clear())
	assert.Empty(t, svc.List(0))

	select {
	case ev := <-ch:
		assert.Equal(t, event.TopicWatchHistory, ev.Topic)
	case <-time.After(time.Second):
		t.Fatal("清空后未收到变更事件")
	}
}
