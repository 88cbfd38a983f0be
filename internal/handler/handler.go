package handler

import (
	"github.com/user/streamvue/internal/config"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Config    *config.Config
	TMDB      *service.TMDBService
	History   *service.HistoryService
	Rating    *service.RatingService
	Watchlist *service.WatchlistService
	Recommend *service.RecommendService
	Stats     *service.StatsService
	Notify    *service.NotifyService
	Search    *service.SearchService
	Settings  *service.SettingsService
	Refresh   *service.RefreshManager
	Bus       *event.Bus
	Hub       *Hub
}

// Services 处理器依赖的服务集合
type Services struct {
	TMDB      *service.TMDBService
	History   *service.HistoryService
	Rating    *service.RatingService
	Watchlist *service.WatchlistService
	Recommend *service.RecommendService
	Stats     *service.StatsService
	Notify    *service.NotifyService
	Search    *service.SearchService
	Settings  *service.SettingsService
	Refresh   *service.RefreshManager
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, svcs Services, bus *event.Bus) *Handler {
	hub := NewHub(bus)
	go hub.Run()

	return &Handler{
		Config:    cfg,
		TMDB:      svcs.TMDB,
		History:   svcs.History,
		Rating:    svcs.Rating,
		Watchlist: svcs.Watchlist,
		Recommend: svcs.Recommend,
		Stats:     svcs.Stats,
		Notify:    svcs.Notify,
		Search:    svcs.Search,
		Settings:  svcs.Settings,
		Refresh:   svcs.Refresh,
		Bus:       bus,
		Hub:       hub,
	}
}
