package repository

import (
	"github.com/user/streamvue/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchHistoryRepository struct {
	db *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Upsert 记录搜索，同一关键词（忽略大小写）只保留最新一条
func (r *SearchHistoryRepository) Upsert(entry *model.SearchHistoryEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"query", "result_count", "searched_at"}),
	}).Create(entry).Error
}

// List 按搜索时间倒序获取历史
func (r *SearchHistoryRepository) List(limit int) ([]*model.SearchHistoryEntry, error) {
	var entries []*model.SearchHistoryEntry
	err := r.db.Order("searched_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// TrimTo 只保留最近 max 条
func (r *SearchHistoryRepository) TrimTo(max int) error {
	keep := r.db.Model(&model.SearchHistoryEntry{}).
		Select("id").
		Order("searched_at DESC").
		Limit(max)
	return r.db.Where("id NOT IN (?)", keep).Delete(&model.SearchHistoryEntry{}).Error
}

// Clear 清空搜索历史
func (r *SearchHistoryRepository) Clear() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.SearchHistoryEntry{}).Error
}
