package repository

import (
	"fmt"

	"github.com/user/streamvue/internal/config"
	"github.com/user/streamvue/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
// 默认使用内嵌 SQLite，设置 DB_DRIVER=postgres 可切换到 Postgres
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 建表/迁移
	if err := db.AutoMigrate(
		&model.WatchHistoryEntry{},
		&model.UserRating{},
		&model.WatchlistEntry{},
		&model.Notification{},
		&model.SearchHistoryEntry{},
		&model.Setting{},
	); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB            *gorm.DB
	History       *HistoryRepository
	Rating        *RatingRepository
	Watchlist     *WatchlistRepository
	Notification  *NotificationRepository
	SearchHistory *SearchHistoryRepository
	Setting       *SettingRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:            db,
		History:       NewHistoryRepository(db),
		Rating:        NewRatingRepository(db),
		Watchlist:     NewWatchlistRepository(db),
		Notification:  NewNotificationRepository(db),
		SearchHistory: NewSearchHistoryRepository(db),
		Setting:       NewSettingRepository(db),
	}
}
