package repository

import (
	"time"

	"github.com/user/streamvue/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add 加入想看清单，重复添加静默忽略
func (r *WatchlistRepository) Add(media model.MediaSummary) error {
	entry := &model.WatchlistEntry{
		MediaID:   media.ID,
		Media:     media,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// Remove 移出想看清单
func (r *WatchlistRepository) Remove(mediaID int) error {
	return r.db.Where("media_id = ?", mediaID).Delete(&model.WatchlistEntry{}).Error
}

// IsListed 检查是否已在清单中
func (r *WatchlistRepository) IsListed(mediaID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.WatchlistEntry{}).Where("media_id = ?", mediaID).Count(&count).Error
	return count > 0, err
}

// List 获取想看清单，按加入时间倒序
func (r *WatchlistRepository) List() ([]*model.WatchlistEntry, error) {
	var entries []*model.WatchlistEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// Count 统计清单数量
func (r *WatchlistRepository) Count() (int, error) {
	var count int64
	err := r.db.Model(&model.WatchlistEntry{}).Count(&count).Error
	return int(count), err
}
