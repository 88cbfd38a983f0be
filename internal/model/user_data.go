package model

import (
	"time"
)

// WatchHistoryEntry 观看历史记录
// 以 media_id 作为唯一键，重复上报时原地替换并刷新 watched_at
type WatchHistoryEntry struct {
	ID          int          `json:"-" gorm:"primaryKey"`
	MediaID     int          `json:"-" gorm:"uniqueIndex"`
	Media       MediaSummary `json:"media" gorm:"serializer:json"`
	WatchedAt   time.Time    `json:"watched_at" gorm:"index"`
	Progress    int          `json:"progress"`     // 0-100 百分比
	Duration    float64      `json:"duration"`     // 总时长（秒）
	CurrentTime float64      `json:"current_time"` // 当前进度（秒）
	Completed   bool         `json:"completed"`    // 进度 >= 90% 视为看完
}

// UserRating 用户评分，每个媒体最多一条，重复评分覆盖
type UserRating struct {
	MediaID int       `json:"media_id" gorm:"primaryKey"`
	Rating  int       `json:"rating"` // 1-10
	Review  string    `json:"review,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

// WatchlistEntry 想看清单，保存媒体完整副本
type WatchlistEntry struct {
	MediaID   int          `json:"-" gorm:"primaryKey"`
	Media     MediaSummary `json:"media" gorm:"serializer:json"`
	CreatedAt time.Time    `json:"created_at" gorm:"index"`
}

// 通知类型
const (
	NotifyNewEpisode     = "new_episode"
	NotifyNewSeason      = "new_season"
	NotifyRecommendation = "recommendation"
	NotifyTrending       = "trending"
)

// Notification 用户通知，插入后仅 read 字段会变更
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"action_url,omitempty"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Read      bool      `json:"read"`
}

// SearchHistoryEntry 搜索历史，按关键词（忽略大小写）去重
type SearchHistoryEntry struct {
	ID          int       `json:"-" gorm:"primaryKey"`
	Query       string    `json:"query"`
	QueryKey    string    `json:"-" gorm:"uniqueIndex"` // 小写后的关键词
	ResultCount int       `json:"results"`
	SearchedAt  time.Time `json:"timestamp" gorm:"index"`
}

// Setting 偏好设置键值对（language / theme）
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}

// 设置键与默认值
const (
	SettingLanguage = "language"
	SettingTheme    = "theme"

	DefaultLanguage = "en"
	DefaultTheme    = "dark"
)
