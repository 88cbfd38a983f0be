package repository

import (
	"github.com/user/streamvue/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 更新或插入观看记录，同一 media_id 原地替换
func (r *HistoryRepository) Upsert(entry *model.WatchHistoryEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"media", "watched_at", "progress", "duration", "current_time", "completed"}),
	}).Create(entry).Error
}

// List 按观看时间倒序获取历史记录
func (r *HistoryRepository) List(limit, offset int) ([]*model.WatchHistoryEntry, error) {
	var entries []*model.WatchHistoryEntry
	err := r.db.Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// All 获取全部历史记录（统计用）
func (r *HistoryRepository) All() ([]*model.WatchHistoryEntry, error) {
	var entries []*model.WatchHistoryEntry
	err := r.db.Order("watched_at DESC").Find(&entries).Error
	return entries, err
}

// TrimTo 只保留最近 max 条，多余的从最旧开始淘汰
func (r *HistoryRepository) TrimTo(max int) error {
	keep := r.db.Model(&model.WatchHistoryEntry{}).
		Select("id").
		Order("watched_at DESC").
		Limit(max)
	return r.db.Where("id NOT IN (?)", keep).Delete(&model.WatchHistoryEntry{}).Error
}

// Count 统计历史记录数量
func (r *HistoryRepository) Count() (int, error) {
	var count int64
	err := r.db.Model(&model.WatchHistoryEntry{}).Count(&count).Error
	return int(count), err
}

// Clear 清空全部历史
func (r *HistoryRepository) Clear() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.WatchHistoryEntry{}).Error
}
