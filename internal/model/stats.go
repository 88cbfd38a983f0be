package model

// GenreCount 类型出现次数
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// RatedContent 高分内容展示项
type RatedContent struct {
	Title  string `json:"title"`
	Rating int    `json:"rating"`
	Type   string `json:"type"`
}

// UserStatistics 用户观影统计，全部由历史/评分/想看清单即时推导
type UserStatistics struct {
	TotalWatchTime  int            `json:"total_watch_time"` // 分钟
	MoviesWatched   int            `json:"movies_watched"`
	TVShowsWatched  int            `json:"tv_shows_watched"`
	EpisodesWatched int            `json:"episodes_watched"` // 估算值
	AverageRating   float64        `json:"average_rating"`
	FavoriteGenres  []GenreCount   `json:"favorite_genres"`
	WatchingStreak  int            `json:"watching_streak"` // 连续观看天数
	MostWatchedYear int            `json:"most_watched_year"`
	CompletionRate  int            `json:"completion_rate"` // 百分比
	WatchlistSize   int            `json:"watchlist_size"`
	TopRatedContent []RatedContent `json:"top_rated_content"`
}

// RecommendationGroup 一组个性化推荐（"因为你看过 X"）
type RecommendationGroup struct {
	Title  string         `json:"title"`
	Medias []MediaSummary `json:"medias"`
}
