package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
)

func tvSummary(id int, title string) model.MediaSummary {
	return model.MediaSummary{
		ID:           id,
		Title:        title,
		MediaType:    model.MediaTypeTV,
		FirstAirDate: "2019-04-14",
		GenreIDs:     []int{18},
	}
}

func TestSnapshotTotals(t *testing.T) {
	repos := newTestRepos(t)
	bus := event.NewBus()
	history := NewHistoryService(repos.History, bus)
	stats := NewStatsService(repos.History, repos.Rating, repos.Watchlist)

	// 3600 秒 * 50% + 3600 秒 * 100% = 5400 秒 = 90 分钟
	_, err := history.RecordProgress(movieSummary(1, "Movie A"), 1800, 3600)
	require.NoError(t, err)
	_, err = history.RecordProgress(tvSummary(2, "Show B"), 3600, 3600)
	require.NoError(t, err)

	snap := stats.Snapshot()
	assert.Equal(t, 90, snap.TotalWatchTime)
	assert.Equal(t, 1, snap.MoviesWatched)
	assert.Equal(t, 1, snap.TVShowsWatched)
	assert.Equal(t, 3, snap.EpisodesWatched)
	// 2 条里 1 条看完
	assert.Equal(t, 50, snap.CompletionRate)
}

func TestSnapshotAverageRating(t *testing.T) {
	repos := newTestRepos(t)
	bus := event.NewBus()
	rating := NewRatingService(repos.Rating, bus)
	stats := NewStatsService(repos.History, repos.Rating, repos.Watchlist)

	for i, score := range []int{6, 8, 10} {
		_, err := rating.Rate(100+i, score, "")
		require.NoError(t, err)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 8.0, snap.AverageRating)
}

func TestSnapshotEmptyStores(t *testing.T) {
	repos := newTestRepos(t)
	stats := NewStatsService(repos.History, repos.Rating, repos.Watchlist)

	snap := stats.Snapshot()
	assert.Equal(t, 0, snap.TotalWatchTime)
	assert.Equal(t, 0.0, snap.AverageRating)
	assert.Equal(t, 0, snap.WatchingStreak)
	assert.Equal(t, time.Now().Year(), snap.MostWatchedYear)
	assert.Empty(t, snap.FavoriteGenres)
	assert.Empty(t, snap.TopRatedContent)
}

func TestFavoriteGenresTopFive(t *testing.T) {
	entries := []*model.WatchHistoryEntry{
		{Media: model.MediaSummary{GenreIDs: []int{28, 12}}},
		{Media: model.MediaSummary{GenreIDs: []int{28}}},
		{Media: model.MediaSummary{GenreIDs: []int{28, 35, 18, 27, 16, 80}}},
	}

	genres := favoriteGenres(entries)
	require.Len(t, genres, 5)
	assert.Equal(t, "Action", genres[0].Genre)
	assert.Equal(t, 3, genres[0].Count)
}

func TestWatchingStreakConsecutiveDays(t *testing.T) {
	now := time.Now()
	entries := []*model.WatchHistoryEntry{
		{WatchedAt: now},
		{WatchedAt: now.AddDate(0, 0, -1)},
		{WatchedAt: now.AddDate(0, 0, -2)},
		// 空档，第 4 天没看
		{WatchedAt: now.AddDate(0, 0, -5)},
	}
	assert.Equal(t, 3, watchingStreak(entries, now))
}

func TestWatchingStreakBrokenWhenStale(t *testing.T) {
	now := time.Now()
	entries := []*model.WatchHistoryEntry{
		{WatchedAt: now.AddDate(0, 0, -3)},
	}
	assert.Equal(t, 0, watchingStreak(entries, now))
}

func TestWatchingStreakSameDayDuplicates(t *testing.T) {
	now := time.Now()
	entries := []*model.WatchHistoryEntry{
		{WatchedAt: now},
		{WatchedAt: now.Add(-time.Hour)},
		{WatchedAt: now.AddDate(0, 0, -1)},
	}
	assert.Equal(t, 2, watchingStreak(entries, now))
}

func TestMostWatchedYearTieBreak(t *testing.T) {
	entries := []*model.WatchHistoryEntry{
		{Media: model.MediaSummary{ReleaseDate: "2020-01-01", MediaType: model.MediaTypeMovie}},
		{Media: model.MediaSummary{ReleaseDate: "2019-01-01", MediaType: model.MediaTypeMovie}},
	}
	// 并列时取先遍历到的年份
	assert.Equal(t, 2020, mostWatchedYear(entries, 1999))
	assert.Equal(t, 1999, mostWatchedYear(nil, 1999))
}

func TestTopRatedContentJoinsHistory(t *testing.T) {
	ratings := []*model.UserRating{
		{MediaID: 1, Rating: 9},
		{MediaID: 2, Rating: 10},
		{MediaID: 3, Rating: 7},
	}
	entries := []*model.WatchHistoryEntry{
		{MediaID: 2, Media: tvSummary(2, "Peak Show")},
	}

	top := topRatedContent(ratings, entries)
	require.Len(t, top, 3)
	assert.Equal(t, "Peak Show", top[0].Title)
	assert.Equal(t, model.MediaTypeTV, top[0].Type)
	assert.Equal(t, 10, top[0].Rating)
	// 关联不上历史的用兜底值
	assert.Equal(t, "Unknown", top[1].Title)
	assert.Equal(t, model.MediaTypeMovie, top[1].Type)
}

func TestFormatWatchTime(t *testing.T) {
	assert.Equal(t, "45m", FormatWatchTime(45))
	assert.Equal(t, "2h", FormatWatchTime(120))
	assert.Equal(t, "2h 30m", FormatWatchTime(150))
	assert.Equal(t, "1d 2h", FormatWatchTime(1560))
	assert.Equal(t, "2d", FormatWatchTime(2880))
}
