package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// maxNotifications 通知条数上限
const maxNotifications = 50

// NotifyService 通知中心
type NotifyService struct {
	repo      *repository.NotificationRepository
	watchlist *repository.WatchlistRepository
	tmdb      *TMDBService
	bus       *event.Bus
	scheduler *gocron.Scheduler

	mu       sync.Mutex
	notified map[int]time.Time // 已提醒媒体，24 小时内不重复提醒
}

// NewNotifyService 创建通知中心
func NewNotifyService(repo *repository.NotificationRepository, watchlist *repository.WatchlistRepository, tmdb *TMDBService, bus *event.Bus) *NotifyService {
	return &NotifyService{
		repo:      repo,
		watchlist: watchlist,
		tmdb:      tmdb,
		bus:       bus,
		notified:  make(map[int]time.Time),
	}
}

// Add 写入一条通知：生成 ID 和时间戳，默认未读，整体保留最近 50 条
func (s *NotifyService) Add(notifyType, title, message, actionURL string) (*model.Notification, error) {
	notification := &model.Notification{
		ID:        uuid.NewString(),
		Type:      notifyType,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		Timestamp: time.Now(),
		Read:      false,
	}

	if err := s.repo.Insert(notification); err != nil {
		return nil, err
	}
	if err := s.repo.TrimTo(maxNotifications); err != nil {
		log.Printf("[Notify] 通知裁剪失败: %v", err)
	}

	s.bus.Publish(event.TopicNotifications, notification)
	return notification, nil
}

// List 获取通知列表
func (s *NotifyService) List() []*model.Notification {
	notifications, err := s.repo.List(maxNotifications)
	if err != nil {
		log.Printf("[Notify] 读取通知失败: %v", err)
		return []*model.Notification{}
	}
	return notifications
}

// MarkRead 标记单条已读
func (s *NotifyService) MarkRead(id string) error {
	if err := s.repo.MarkRead(id); err != nil {
		return err
	}
	s.bus.Publish(event.TopicNotifications, nil)
	return nil
}

// MarkAllRead 全部标记已读
func (s *NotifyService) MarkAllRead() error {
	if err := s.repo.MarkAllRead(); err != nil {
		return err
	}
	s.bus.Publish(event.TopicNotifications, nil)
	return nil
}

// Clear 清空通知
func (s *NotifyService) Clear() error {
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.bus.Publish(event.TopicNotifications, nil)
	return nil
}

// UnreadCount 未读数量（即时统计，不单独存储）
func (s *NotifyService) UnreadCount() int {
	count, err := s.repo.UnreadCount()
	if err != nil {
		log.Printf("[Notify] 统计未读失败: %v", err)
		return 0
	}
	return count
}

// StartPolling 启动后台轮询
func (s *NotifyService) StartPolling(interval time.Duration) {
	if interval <= 0 {
		log.Println("[Notify] 轮询间隔为 0，后台检查已禁用")
		return
	}

	s.scheduler = gocron.NewScheduler(time.UTC)
	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(interval).Do(s.CheckForUpdates); err != nil {
		log.Printf("[Notify] 轮询任务注册失败: %v", err)
		return
	}
	s.scheduler.StartAsync()
	log.Printf("[Notify] 后台检查已启动，间隔 %v", interval)
}

// StopPolling 停止后台轮询
func (s *NotifyService) StopPolling() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// CheckForUpdates 后台检查
// 想看清单里的剧集出现在正在播出列表时提醒新一集上线，失败只记日志
func (s *NotifyService) CheckForUpdates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := s.watchlist.List()
	if err != nil {
		log.Printf("[Notify] 读取想看清单失败: %v", err)
		return
	}

	followed := make(map[int]model.MediaSummary)
	for _, entry := range entries {
		if entry.Media.ResolvedType() == model.MediaTypeTV {
			followed[entry.MediaID] = entry.Media
		}
	}
	if len(followed) == 0 {
		return
	}

	onAir, err := s.tmdb.OnAirTVShows(ctx, 1)
	if err != nil {
		log.Printf("[Notify] 获取正在播出列表失败: %v", err)
		return
	}

	for _, media := range onAir.Results {
		followedMedia, ok := followed[media.ID]
		if !ok || !s.shouldNotify(media.ID) {
			continue
		}
		_, err := s.Add(
			model.NotifyNewEpisode,
			"New Episode Available!",
			"A new episode of "+followedMedia.DisplayTitle()+" is now airing.",
			"/details/tv/"+strconv.Itoa(media.ID),
		)
		if err != nil {
			log.Printf("[Notify] 写入剧集提醒失败: %v", err)
		}
	}

	s.checkTrending(ctx)
}

// checkTrending 热门榜首次出现时推一条趋势推荐
func (s *NotifyService) checkTrending(ctx context.Context) {
	trending, err := s.tmdb.Trending(ctx, "day", 1)
	if err != nil {
		log.Printf("[Notify] 获取热门内容失败: %v", err)
		return
	}
	if len(trending.Results) == 0 {
		return
	}

	top := trending.Results[0]
	if !s.shouldNotify(top.ID) {
		return
	}
	_, err = s.Add(
		model.NotifyTrending,
		"Trending Now",
		top.DisplayTitle()+" is trending today. Worth a look!",
		"/details/"+top.ResolvedType()+"/"+strconv.Itoa(top.ID),
	)
	if err != nil {
		log.Printf("[Notify] 写入趋势推荐失败: %v", err)
	}
}

// shouldNotify 同一媒体 24 小时内只提醒一次
func (s *NotifyService) shouldNotify(mediaID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.notified[mediaID]; ok && time.Since(last) < 24*time.Hour {
		return false
	}
	s.notified[mediaID] = time.Now()
	return true
}
