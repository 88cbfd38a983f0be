package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/user/streamvue/internal/handler"
	"github.com/user/streamvue/internal/middleware"
)

// New 创建 gin 引擎并注册所有路由
func New(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// 变更推送
	r.GET("/ws", h.ServeWS)

	api := r.Group("/api")
	{
		// ==================== 目录 ====================
		api.GET("/trending", h.Trending)
		api.GET("/movies/popular", h.PopularMovies)
		api.GET("/movies/top-rated", h.TopRatedMovies)
		api.GET("/movies/now-playing", h.NowPlayingMovies)
		api.GET("/tv/popular", h.PopularTVShows)
		api.GET("/tv/top-rated", h.TopRatedTVShows)
		api.GET("/tv/on-air", h.OnAirTVShows)
		api.GET("/recently-added", h.RecentlyAdded)
		api.GET("/discover", h.Discover)
		api.GET("/search", h.SearchMedia)
		api.GET("/search/genre", h.SearchByGenre)
		api.GET("/genres", h.BrowseGenres)
		api.GET("/genres/:type", h.Genres)
		api.GET("/media/:type/:id", h.MediaDetails)
		api.GET("/media/:type/:id/recommendations", h.MediaRecommendations)
		api.GET("/media/:type/:id/credits", h.MediaCredits)
		api.GET("/media/:type/:id/videos", h.MediaVideos)

		// ==================== 专题 ====================
		api.GET("/collections/seasonal", h.SeasonalCollections)
		api.GET("/collections/decades", h.DecadeCollections)
		api.GET("/collections/decades/:id/media", h.DecadeMedia)

		// ==================== 观看历史 ====================
		api.GET("/history", h.ListHistory)
		api.POST("/history", h.RecordProgress)
		api.DELETE("/history", h.ClearHistory)
		api.GET("/history/continue-watching", h.ContinueWatching)
		api.GET("/history/recently-viewed", h.RecentlyViewed)
		api.GET("/history/recently-watched", h.RecentlyWatched)

		// ==================== 评分 ====================
		api.GET("/ratings", h.ListRatings)
		api.POST("/ratings", h.RateMedia)
		api.GET("/ratings/:id", h.GetRating)

		// ==================== 想看清单 ====================
		api.GET("/watchlist", h.ListWatchlist)
		api.POST("/watchlist", h.AddToWatchlist)
		api.DELETE("/watchlist/:id", h.RemoveFromWatchlist)
		api.GET("/watchlist/:id/status", h.WatchlistStatus)

		// ==================== 推荐与统计 ====================
		api.GET("/recommendations/personalized", h.PersonalizedRecommendations)
		api.GET("/recommendations/random", h.RandomPick)
		api.GET("/stats", h.Statistics)

		// ==================== 通知 ====================
		api.GET("/notifications", h.ListNotifications)
		api.POST("/notifications/:id/read", h.MarkNotificationRead)
		api.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		api.DELETE("/notifications", h.ClearNotifications)

		// ==================== 搜索历史 ====================
		api.GET("/search-history", h.ListSearchHistory)
		api.POST("/search-history", h.RecordSearch)
		api.DELETE("/search-history", h.ClearSearchHistory)

		// ==================== 偏好设置 ====================
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
	}
}
