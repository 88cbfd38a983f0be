package service

import (
	"context"
	"log"

	"github.com/user/streamvue/internal/repository"
)

// CleanupService 清理服务
// 对历史、通知、搜索历史做兜底裁剪，防止写入路径漏裁导致数据无限增长
type CleanupService struct {
	repos *repository.Repositories
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{repos: repos}
}

// Run 执行一次清理，供刷新管理器定时调用
func (s *CleanupService) Run(ctx context.Context) error {
	log.Println("[Cleanup] 开始裁剪超限数据...")

	if err := s.repos.History.TrimTo(maxHistoryEntries); err != nil {
		log.Printf("[Cleanup] 裁剪观看历史失败: %v", err)
	}
	if err := s.repos.Notification.TrimTo(maxNotifications); err != nil {
		log.Printf("[Cleanup] 裁剪通知失败: %v", err)
	}
	if err := s.repos.SearchHistory.TrimTo(maxSearchHistory); err != nil {
		log.Printf("[Cleanup] 裁剪搜索历史失败: %v", err)
	}
	return nil
}
