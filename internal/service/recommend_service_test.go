package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamvue/internal/event"
)

func TestPersonalizedGroupsFollowHistoryOrder(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/11/recommendations"):
			writePage(w, map[string]interface{}{"id": 111, "title": "Like First"})
		case strings.Contains(r.URL.Path, "/12/recommendations"):
			writePage(w, map[string]interface{}{"id": 112, "title": "Like Second"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer server.Close()

	repos := newTestRepos(t)
	history := NewHistoryService(repos.History, event.NewBus())
	recommend := NewRecommendService(svc, history)

	_, err := history.RecordProgress(movieSummary(11, "First Watch"), 600, 7200)
	require.NoError(t, err)
	_, err = history.RecordProgress(movieSummary(12, "Second Watch"), 600, 7200)
	require.NoError(t, err)

	groups := recommend.Personalized(context.Background())
	require.Len(t, groups, 2)
	// 分组顺序跟随历史顺序（最近的在前）
	assert.Equal(t, "Because you watched Second Watch", groups[0].Title)
	assert.Equal(t, "Because you watched First Watch", groups[1].Title)
	require.Len(t, groups[0].Medias, 1)
	assert.Equal(t, 112, groups[0].Medias[0].ID)
}

func TestPersonalizedToleratesPartialFailure(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/21/recommendations") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writePage(w, map[string]interface{}{"id": 222, "title": "Survivor"})
	})
	defer server.Close()

	repos := newTestRepos(t)
	history := NewHistoryService(repos.History, event.NewBus())
	recommend := NewRecommendService(svc, history)

	_, err := history.RecordProgress(movieSummary(21, "Broken"), 600, 7200)
	require.NoError(t, err)
	_, err = history.RecordProgress(movieSummary(22, "Working"), 600, 7200)
	require.NoError(t, err)

	// 失败的条目被丢弃，其余正常返回
	groups := recommend.Personalized(context.Background())
	require.Len(t, groups, 1)
	assert.Equal(t, "Because you watched Working", groups[0].Title)
}

func TestPersonalizedEmptyHistory(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		t.Error("空历史不应请求目录")
	})
	defer server.Close()

	repos := newTestRepos(t)
	history := NewHistoryService(repos.History, event.NewBus())
	recommend := NewRecommendService(svc, history)

	assert.Empty(t, recommend.Personalized(context.Background()))
}

func TestRandomPickReturnsElement(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		writePage(w,
			map[string]interface{}{"id": 1, "title": "Pick A"},
			map[string]interface{}{"id": 2, "title": "Pick B"},
		)
	})
	defer server.Close()

	recommend := NewRecommendService(svc, nil)
	media, err := recommend.RandomPick(context.Background())
	require.NoError(t, err)
	require.NotNil(t, media)
	assert.Contains(t, []int{1, 2}, media.ID)
}

func TestRandomPickEmptyPage(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		writePage(w)
	})
	defer server.Close()

	recommend := NewRecommendService(svc, nil)
	media, err := recommend.RandomPick(context.Background())
	require.NoError(t, err)
	assert.Nil(t, media)
}

func TestRandomPickUpstreamError(t *testing.T) {
	svc, server := newFakeTMDB(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	recommend := NewRecommendService(svc, nil)
	media, err := recommend.RandomPick(context.Background())
	assert.Error(t, err)
	assert.Nil(t, media)
}
