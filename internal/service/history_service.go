package service

import (
	"log"
	"math"
	"time"

	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// 观看历史约束
const (
	maxHistoryEntries    = 50 // 历史条数上限，超出淘汰最旧的
	completedThreshold   = 90 // 进度达到 90% 视为看完
	continueWatchingDays = 30 // 继续观看只看最近 30 天
	continueWatchingMin  = 5  // 进度不足 5% 不进继续观看
	defaultListLimit     = 12
)

// HistoryService 观看历史服务
type HistoryService struct {
	repo *repository.HistoryRepository
	bus  *event.Bus
}

// NewHistoryService 创建观看历史服务
func NewHistoryService(repo *repository.HistoryRepository, bus *event.Bus) *HistoryService {
	return &HistoryService{repo: repo, bus: bus}
}

// RecordProgress 上报播放进度
// 同一媒体原地替换并移到最前，整体只保留最近 50 条，最后发布一次变更事件
func (s *HistoryService) RecordProgress(media model.MediaSummary, currentTime, duration float64) (*model.WatchHistoryEntry, error) {
	progress := 0
	if duration > 0 {
		progress = int(math.Round(currentTime / duration * 100))
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	entry := &model.WatchHistoryEntry{
		MediaID:     media.ID,
		Media:       media,
		WatchedAt:   time.Now(),
		Progress:    progress,
		Duration:    duration,
		CurrentTime: currentTime,
		Completed:   progress >= completedThreshold,
	}

	if err := s.repo.Upsert(entry); err != nil {
		return nil, err
	}
	if err := s.repo.TrimTo(maxHistoryEntries); err != nil {
		// 淘汰失败不影响本次写入
		log.Printf("[History] 历史记录裁剪失败: %v", err)
	}

	s.bus.Publish(event.TopicWatchHistory, nil)
	return entry, nil
}

// List 获取观看历史
func (s *HistoryService) List(limit int) []*model.WatchHistoryEntry {
	if limit <= 0 || limit > maxHistoryEntries {
		limit = maxHistoryEntries
	}
	entries, err := s.repo.List(limit, 0)
	if err != nil {
		// 读取失败按空历史降级，不向上抛
		log.Printf("[History] 读取历史失败: %v", err)
		return []*model.WatchHistoryEntry{}
	}
	return entries
}

// ContinueWatching 继续观看：未看完、进度超过 5%、最近 30 天内
func (s *HistoryService) ContinueWatching() []*model.WatchHistoryEntry {
	cutoff := time.Now().AddDate(0, 0, -continueWatchingDays)

	items := make([]*model.WatchHistoryEntry, 0, defaultListLimit)
	for _, entry := range s.List(maxHistoryEntries) {
		if entry.Completed || entry.Progress <= continueWatchingMin || !entry.WatchedAt.After(cutoff) {
			continue
		}
		items = append(items, entry)
		if len(items) >= defaultListLimit {
			break
		}
	}
	return items
}

// RecentlyViewed 最近浏览过的媒体（无论是否看完）
func (s *HistoryService) RecentlyViewed(limit int) []model.MediaSummary {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries := s.List(limit)
	medias := make([]model.MediaSummary, 0, len(entries))
	for _, entry := range entries {
		medias = append(medias, entry.Media)
	}
	return medias
}

// RecentlyWatched 最近 7 天内的观看记录
func (s *HistoryService) RecentlyWatched() []*model.WatchHistoryEntry {
	cutoff := time.Now().AddDate(0, 0, -7)

	items := make([]*model.WatchHistoryEntry, 0, defaultListLimit)
	for _, entry := range s.List(maxHistoryEntries) {
		if !entry.WatchedAt.After(cutoff) {
			continue
		}
		items = append(items, entry)
		if len(items) >= defaultListLimit {
			break
		}
	}
	return items
}

// Clear 清空全部历史
func (s *HistoryService) Clear() error {
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.bus.Publish(event.TopicWatchHistory, nil)
	return nil
}
