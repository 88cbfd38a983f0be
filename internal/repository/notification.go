package repository

import (
	"github.com/user/streamvue/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert 写入一条通知
func (r *NotificationRepository) Insert(n *model.Notification) error {
	return r.db.Create(n).Error
}

// List 按时间倒序获取通知
func (r *NotificationRepository) List(limit int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// TrimTo 只保留最近 max 条
func (r *NotificationRepository) TrimTo(max int) error {
	keep := r.db.Model(&model.Notification{}).
		Select("id").
		Order("timestamp DESC").
		Limit(max)
	return r.db.Where("id NOT IN (?)", keep).Delete(&model.Notification{}).Error
}

// MarkRead 标记单条已读
func (r *NotificationRepository) MarkRead(id string) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).Update("read", true).Error
}

// MarkAllRead 全部标记已读
func (r *NotificationRepository) MarkAllRead() error {
	return r.db.Model(&model.Notification{}).Where("read = ?", false).Update("read", true).Error
}

// UnreadCount 未读数量
func (r *NotificationRepository) UnreadCount() (int, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).Where("read = ?", false).Count(&count).Error
	return int(count), err
}

// Clear 清空全部通知
func (r *NotificationRepository) Clear() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Notification{}).Error
}
