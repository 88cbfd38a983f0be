package service

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
)

func TestNotifyAddAssignsIDAndUnread(t *testing.T) {
	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, nil, event.NewBus())

	n, err := notify.Add(model.NotifyRecommendation, "Check this out", "You might like it", "/details/movie/1")
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.Timestamp.IsZero())
	assert.Equal(t, 1, notify.UnreadCount())
}

func TestNotifyCapAtFifty(t *testing.T) {
	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, nil, event.NewBus())

	for i := 1; i <= 55; i++ {
		_, err := notify.Add(model.NotifyRecommendation, fmt.Sprintf("n%d", i), "", "")
		require.NoError(t, err)
	}

	assert.Len(t, notify.List(), 50)
}

func TestNotifyMarkRead(t *testing.T) {
	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, nil, event.NewBus())

	n, err := notify.Add(model.NotifyNewEpisode, "New Episode", "", "")
	require.NoError(t, err)
	_, err = notify.Add(model.NotifyTrending, "Trending", "", "")
	require.NoError(t, err)

	require.NoError(t, notify.MarkRead(n.ID))
	assert.Equal(t, 1, notify.UnreadCount())

	require.NoError(t, notify.MarkAllRead())
	assert.Equal(t, 0, notify.UnreadCount())
}

func TestNotifyClear(t *testing.T) {
	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, nil, event.NewBus())

	_, err := notify.Add(model.NotifyNewSeason, "New Season", "", "")
	require.NoError(t, err)

	require.NoError(t, notify.Clear())
	assert.Empty(t, notify.List())
	assert.Equal(t, 0, notify.UnreadCount())
}

func TestNotifyDedupWithin24Hours(t *testing.T) {
	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, nil, event.NewBus())

	assert.True(t, notify.shouldNotify(66732))
	assert.False(t, notify.shouldNotify(66732))
	assert.True(t, notify.shouldNotify(1399))
}

func TestCheckForUpdatesNotifiesFollowedShow(t *testing.T) {
	tmdb, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/tv/on_the_air"):
			writePage(w, map[string]interface{}{"id": 66732, "name": "Stranger Things", "first_air_date": "2016-07-15"})
		case strings.HasPrefix(r.URL.Path, "/trending/"):
			writePage(w)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer server.Close()

	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, tmdb, event.NewBus())

	// 关注一部在播剧集和一部电影
	require.NoError(t, repos.Watchlist.Add(model.MediaSummary{
		ID: 66732, Title: "Stranger Things", MediaType: model.MediaTypeTV, FirstAirDate: "2016-07-15",
	}))
	require.NoError(t, repos.Watchlist.Add(movieSummary(550, "Fight Club")))

	notify.CheckForUpdates()

	notifications := notify.List()
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotifyNewEpisode, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "Stranger Things")
	assert.Equal(t, "/details/tv/66732", notifications[0].ActionURL)

	// 24 小时内重复检查不再提醒
	notify.CheckForUpdates()
	assert.Len(t, notify.List(), 1)
}

func TestCheckForUpdatesEmptyWatchlistSkipsCatalog(t *testing.T) {
	tmdb, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		t.Error("清单为空时不应请求目录")
	})
	defer server.Close()

	repos := newTestRepos(t)
	notify := NewNotifyService(repos.Notification, repos.Watchlist, tmdb, event.NewBus())

	notify.CheckForUpdates()
	assert.Empty(t, notify.List())
}
