package service

import (
	"log"

	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// WatchlistService 想看清单服务
type WatchlistService struct {
	repo *repository.WatchlistRepository
	bus  *event.Bus
}

// NewWatchlistService 创建想看清单服务
func NewWatchlistService(repo *repository.WatchlistRepository, bus *event.Bus) *WatchlistService {
	return &WatchlistService{repo: repo, bus: bus}
}

// Add 加入清单，重复添加幂等
func (s *WatchlistService) Add(media model.MediaSummary) error {
	if err := s.repo.Add(media); err != nil {
		return err
	}
	s.bus.Publish(event.TopicWatchlist, nil)
	return nil
}

// Remove 移出清单
func (s *WatchlistService) Remove(mediaID int) error {
	if err := s.repo.Remove(mediaID); err != nil {
		return err
	}
	s.bus.Publish(event.TopicWatchlist, nil)
	return nil
}

// IsListed 检查是否在清单中
func (s *WatchlistService) IsListed(mediaID int) bool {
	listed, err := s.repo.IsListed(mediaID)
	if err != nil {
		log.Printf("[Watchlist] 查询失败: %v", err)
		return false
	}
	return listed
}

// List 获取清单
func (s *WatchlistService) List() []*model.WatchlistEntry {
	entries, err := s.repo.List()
	if err != nil {
		log.Printf("[Watchlist] 读取清单失败: %v", err)
		return []*model.WatchlistEntry{}
	}
	return entries
}
