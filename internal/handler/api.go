package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/service"
	"github.com/user/streamvue/internal/utils"
)

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok", "site": h.Config.SiteName})
}

// ==================== 目录接口 ====================

// queryPage 读取 page 参数，缺省为 1
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Trending 今日热门
func (h *Handler) Trending(c *gin.Context) {
	window := c.DefaultQuery("window", "day")
	result, err := h.TMDB.Trending(c.Request.Context(), window, queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取热门内容失败")
		return
	}
	utils.Success(c, result)
}

// PopularMovies 热门电影
func (h *Handler) PopularMovies(c *gin.Context) {
	result, err := h.TMDB.PopularMovies(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取热门电影失败")
		return
	}
	utils.Success(c, result)
}

// PopularTVShows 热门剧集
func (h *Handler) PopularTVShows(c *gin.Context) {
	result, err := h.TMDB.PopularTVShows(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取热门剧集失败")
		return
	}
	utils.Success(c, result)
}

// TopRatedMovies 高分电影
func (h *Handler) TopRatedMovies(c *gin.Context) {
	result, err := h.TMDB.TopRatedMovies(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取高分电影失败")
		return
	}
	utils.Success(c, result)
}

// TopRatedTVShows 高分剧集
func (h *Handler) TopRatedTVShows(c *gin.Context) {
	result, err := h.TMDB.TopRatedTVShows(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取高分剧集失败")
		return
	}
	utils.Success(c, result)
}

// NowPlayingMovies 正在上映
func (h *Handler) NowPlayingMovies(c *gin.Context) {
	result, err := h.TMDB.NowPlayingMovies(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取正在上映失败")
		return
	}
	utils.Success(c, result)
}

// OnAirTVShows 正在播出
func (h *Handler) OnAirTVShows(c *gin.Context) {
	result, err := h.TMDB.OnAirTVShows(c.Request.Context(), queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取正在播出失败")
		return
	}
	utils.Success(c, result)
}

// RecentlyAdded 最近上线
func (h *Handler) RecentlyAdded(c *gin.Context) {
	mediaType := c.DefaultQuery("type", model.MediaTypeMovie)
	result, err := h.TMDB.RecentlyAdded(c.Request.Context(), mediaType, queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取最近上线失败")
		return
	}
	utils.Success(c, result)
}

// discoverQuery 发现页筛选参数
type discoverQuery struct {
	Type      string  `form:"type"`
	GenreID   int     `form:"genre"`
	YearMin   int     `form:"year_min"`
	YearMax   int     `form:"year_max"`
	RatingMin float64 `form:"rating_min" binding:"omitempty,gte=0,lte=10"`
	RatingMax float64 `form:"rating_max" binding:"omitempty,gte=0,lte=10"`
	SortBy    string  `form:"sort_by"`
	Page      int     `form:"page"`
}

// Discover 条件发现
func (h *Handler) Discover(c *gin.Context) {
	var q discoverQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "筛选参数无效")
		return
	}

	result, err := h.TMDB.Discover(c.Request.Context(), service.DiscoverParams{
		MediaType: q.Type,
		GenreID:   q.GenreID,
		YearMin:   q.YearMin,
		YearMax:   q.YearMax,
		RatingMin: q.RatingMin,
		RatingMax: q.RatingMax,
		SortBy:    q.SortBy,
		Page:      q.Page,
	})
	if err != nil {
		utils.BadGateway(c, "获取发现列表失败")
		return
	}
	utils.Success(c, result)
}

// Genres 类型列表
func (h *Handler) Genres(c *gin.Context) {
	mediaType := c.Param("type")
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		utils.BadRequest(c, "媒体类型应为 movie 或 tv")
		return
	}
	genres, err := h.TMDB.Genres(c.Request.Context(), mediaType)
	if err != nil {
		utils.BadGateway(c, "获取类型列表失败")
		return
	}
	utils.Success(c, genres)
}

// BrowseGenres 浏览用的固定类型入口
func (h *Handler) BrowseGenres(c *gin.Context) {
	utils.Success(c, model.BrowseGenres)
}

// MediaDetails 影视详情
func (h *Handler) MediaDetails(c *gin.Context) {
	mediaType := c.Param("type")
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		utils.BadRequest(c, "媒体类型应为 movie 或 tv")
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}

	details, err := h.TMDB.Details(c.Request.Context(), id, mediaType)
	if err != nil {
		utils.BadGateway(c, "获取详情失败")
		return
	}
	utils.Success(c, details)
}

// MediaRecommendations 相似推荐
func (h *Handler) MediaRecommendations(c *gin.Context) {
	mediaType := c.Param("type")
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		utils.BadRequest(c, "媒体类型应为 movie 或 tv")
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}

	result, err := h.TMDB.Recommendations(c.Request.Context(), id, mediaType, queryPage(c))
	if err != nil {
		utils.BadGateway(c, "获取相似推荐失败")
		return
	}
	utils.Success(c, result)
}

// MediaCredits 演职员表
func (h *Handler) MediaCredits(c *gin.Context) {
	mediaType := c.Param("type")
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		utils.BadRequest(c, "媒体类型应为 movie 或 tv")
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}

	credits, err := h.TMDB.Credits(c.Request.Context(), id, mediaType)
	if err != nil {
		utils.BadGateway(c, "获取演职员表失败")
		return
	}
	utils.Success(c, credits)
}

// MediaVideos 预告片
func (h *Handler) MediaVideos(c *gin.Context) {
	mediaType := c.Param("type")
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		utils.BadRequest(c, "媒体类型应为 movie 或 tv")
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}

	videos, err := h.TMDB.Videos(c.Request.Context(), id, mediaType)
	if err != nil {
		utils.BadGateway(c, "获取预告片失败")
		return
	}
	utils.Success(c, videos)
}

// SearchMedia 搜索
func (h *Handler) SearchMedia(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "搜索词不能为空")
		return
	}
	result, err := h.Search.Search(c.Request.Context(), query, queryPage(c))
	if err != nil {
		utils.BadGateway(c, "搜索失败")
		return
	}
	utils.Success(c, result)
}

// SearchByGenre 按类型名搜索
func (h *Handler) SearchByGenre(c *gin.Context) {
	genre := c.Query("genre")
	if genre == "" {
		utils.BadRequest(c, "类型名不能为空")
		return
	}
	result, err := h.Search.SearchByGenre(c.Request.Context(), genre, queryPage(c))
	if err != nil {
		utils.BadGateway(c, "搜索失败")
		return
	}
	utils.Success(c, result)
}

// ==================== 专题集合 ====================

// SeasonalCollections 当季专题
func (h *Handler) SeasonalCollections(c *gin.Context) {
	utils.Success(c, gin.H{
		"all":    model.SeasonalCollections,
		"active": model.ActiveSeasonalCollections(time.Now()),
	})
}

// DecadeCollections 年代专题
func (h *Handler) DecadeCollections(c *gin.Context) {
	utils.Success(c, model.DecadeCollections)
}

// DecadeMedia 年代专题影片
func (h *Handler) DecadeMedia(c *gin.Context) {
	decade := model.FindDecade(c.Param("id"))
	if decade == nil {
		utils.NotFound(c, "年代专题不存在")
		return
	}

	result, err := h.TMDB.Discover(c.Request.Context(), service.DiscoverParams{
		MediaType: model.MediaTypeMovie,
		YearMin:   decade.StartYear,
		YearMax:   decade.EndYear,
		SortBy:    "popularity.desc",
		Page:      queryPage(c),
	})
	if err != nil {
		utils.BadGateway(c, "获取年代专题失败")
		return
	}
	utils.Success(c, result)
}

// ==================== 个人数据接口 ====================

// progressRequest 进度上报
type progressRequest struct {
	Media       model.MediaSummary `json:"media" binding:"required"`
	CurrentTime float64            `json:"currentTime" binding:"gte=0"`
	Duration    float64            `json:"duration" binding:"gte=0"`
}

// RecordProgress 上报播放进度
func (h *Handler) RecordProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "进度参数无效")
		return
	}
	if req.Media.ID <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}

	entry, err := h.History.RecordProgress(req.Media, req.CurrentTime, req.Duration)
	if err != nil {
		utils.InternalServerError(c, "写入观看历史失败")
		return
	}
	utils.Success(c, entry)
}

// ListHistory 观看历史
func (h *Handler) ListHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	utils.Success(c, h.History.List(limit))
}

// ContinueWatching 继续观看
func (h *Handler) ContinueWatching(c *gin.Context) {
	utils.Success(c, h.History.ContinueWatching())
}

// RecentlyViewed 最近浏览的媒体
func (h *Handler) RecentlyViewed(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || limit <= 0 {
		limit = 12
	}
	utils.Success(c, h.History.RecentlyViewed(limit))
}

// RecentlyWatched 最近 7 天看过
func (h *Handler) RecentlyWatched(c *gin.Context) {
	utils.Success(c, h.History.RecentlyWatched())
}

// ClearHistory 清空观看历史
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.History.Clear(); err != nil {
		utils.InternalServerError(c, "清空观看历史失败")
		return
	}
	utils.SuccessWithMessage(c, "观看历史已清空", nil)
}

// ratingRequest 评分提交
type ratingRequest struct {
	MediaID int    `json:"mediaId" binding:"required,gt=0"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=10"`
	Review  string `json:"review"`
}

// RateMedia 提交评分
func (h *Handler) RateMedia(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分应为 1-10 的整数")
		return
	}

	rating, err := h.Rating.Rate(req.MediaID, req.Rating, req.Review)
	if err != nil {
		utils.InternalServerError(c, "保存评分失败")
		return
	}
	utils.Success(c, rating)
}

// ListRatings 评分列表
func (h *Handler) ListRatings(c *gin.Context) {
	utils.Success(c, h.Rating.List())
}

// GetRating 单条评分
func (h *Handler) GetRating(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || mediaID <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}
	rating := h.Rating.Get(mediaID)
	if rating == nil {
		utils.NotFound(c, "暂无评分")
		return
	}
	utils.Success(c, rating)
}

// watchlistRequest 加入清单
type watchlistRequest struct {
	Media model.MediaSummary `json:"media" binding:"required"`
}

// AddToWatchlist 加入想看清单
func (h *Handler) AddToWatchlist(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Media.ID <= 0 {
		utils.BadRequest(c, "媒体参数无效")
		return
	}

	if err := h.Watchlist.Add(req.Media); err != nil {
		utils.InternalServerError(c, "加入清单失败")
		return
	}
	utils.SuccessWithMessage(c, "已加入想看清单", nil)
}

// RemoveFromWatchlist 移出想看清单
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || mediaID <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}
	if err := h.Watchlist.Remove(mediaID); err != nil {
		utils.InternalServerError(c, "移出清单失败")
		return
	}
	utils.SuccessWithMessage(c, "已移出想看清单", nil)
}

// ListWatchlist 想看清单
func (h *Handler) ListWatchlist(c *gin.Context) {
	utils.Success(c, h.Watchlist.List())
}

// WatchlistStatus 查询是否已在清单
func (h *Handler) WatchlistStatus(c *gin.Context) {
	mediaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || mediaID <= 0 {
		utils.BadRequest(c, "媒体 ID 无效")
		return
	}
	utils.Success(c, gin.H{"listed": h.Watchlist.IsListed(mediaID)})
}

// PersonalizedRecommendations 个性化推荐组
func (h *Handler) PersonalizedRecommendations(c *gin.Context) {
	utils.Success(c, h.Recommend.Personalized(c.Request.Context()))
}

// RandomPick 随机推荐一部
func (h *Handler) RandomPick(c *gin.Context) {
	media, err := h.Recommend.RandomPick(c.Request.Context())
	if err != nil {
		utils.BadGateway(c, "获取随机推荐失败")
		return
	}
	if media == nil {
		utils.NotFound(c, "暂无可推荐的内容")
		return
	}
	utils.Success(c, media)
}

// Statistics 观影统计
func (h *Handler) Statistics(c *gin.Context) {
	stats := h.Stats.Snapshot()
	utils.Success(c, gin.H{
		"stats":            stats,
		"watchTimeDisplay": service.FormatWatchTime(stats.TotalWatchTime),
	})
}

// ==================== 通知接口 ====================

// ListNotifications 通知列表
func (h *Handler) ListNotifications(c *gin.Context) {
	utils.Success(c, gin.H{
		"notifications": h.Notify.List(),
		"unreadCount":   h.Notify.UnreadCount(),
	})
}

// MarkNotificationRead 标记已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.Notify.MarkRead(c.Param("id")); err != nil {
		utils.InternalServerError(c, "标记已读失败")
		return
	}
	utils.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllNotificationsRead 全部已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Notify.MarkAllRead(); err != nil {
		utils.InternalServerError(c, "标记全部已读失败")
		return
	}
	utils.SuccessWithMessage(c, "全部通知已读", nil)
}

// ClearNotifications 清空通知
func (h *Handler) ClearNotifications(c *gin.Context) {
	if err := h.Notify.Clear(); err != nil {
		utils.InternalServerError(c, "清空通知失败")
		return
	}
	utils.SuccessWithMessage(c, "通知已清空", nil)
}

// ==================== 搜索历史接口 ====================

// ListSearchHistory 搜索历史
func (h *Handler) ListSearchHistory(c *gin.Context) {
	utils.Success(c, gin.H{
		"entries": h.Search.List(),
		"recent":  h.Search.Recent(5),
	})
}

// searchRecordRequest 手动写入搜索历史
type searchRecordRequest struct {
	Query       string `json:"query" binding:"required"`
	ResultCount int    `json:"resultCount" binding:"gte=0"`
}

// RecordSearch 写入搜索历史
func (h *Handler) RecordSearch(c *gin.Context) {
	var req searchRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "搜索词不能为空")
		return
	}
	if err := h.Search.Record(req.Query, req.ResultCount); err != nil {
		utils.InternalServerError(c, "写入搜索历史失败")
		return
	}
	utils.SuccessWithMessage(c, "已记录", nil)
}

// ClearSearchHistory 清空搜索历史
func (h *Handler) ClearSearchHistory(c *gin.Context) {
	if err := h.Search.Clear(); err != nil {
		utils.InternalServerError(c, "清空搜索历史失败")
		return
	}
	utils.SuccessWithMessage(c, "搜索历史已清空", nil)
}

// ==================== 偏好设置接口 ====================

// GetSettings 读取偏好
func (h *Handler) GetSettings(c *gin.Context) {
	utils.Success(c, gin.H{
		"language": h.Settings.Language(),
		"theme":    h.Settings.Theme(),
	})
}

// settingsRequest 更新偏好，两个字段都可选
type settingsRequest struct {
	Language string `json:"language" binding:"omitempty,oneof=en es fr de ja zh"`
	Theme    string `json:"theme" binding:"omitempty,oneof=light dark system"`
}

// UpdateSettings 更新偏好
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "偏好取值无效")
		return
	}

	if req.Language != "" {
		if err := h.Settings.SetLanguage(req.Language); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}
	if req.Theme != "" {
		if err := h.Settings.SetTheme(req.Theme); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}
	utils.Success(c, gin.H{
		"language": h.Settings.Language(),
		"theme":    h.Settings.Theme(),
	})
}
