package service

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// StatsService 观影统计服务
// 所有指标由当前历史/评分/清单即时推导，自身不落任何数据
type StatsService struct {
	history   *repository.HistoryRepository
	rating    *repository.RatingRepository
	watchlist *repository.WatchlistRepository
}

// NewStatsService 创建统计服务
func NewStatsService(history *repository.HistoryRepository, rating *repository.RatingRepository, watchlist *repository.WatchlistRepository) *StatsService {
	return &StatsService{history: history, rating: rating, watchlist: watchlist}
}

// Snapshot 计算当前统计快照
func (s *StatsService) Snapshot() *model.UserStatistics {
	entries, err := s.history.All()
	if err != nil {
		log.Printf("[Stats] 读取历史失败: %v", err)
		entries = nil
	}
	ratings, err := s.rating.List()
	if err != nil {
		log.Printf("[Stats] 读取评分失败: %v", err)
		ratings = nil
	}
	watchlistSize, err := s.watchlist.Count()
	if err != nil {
		log.Printf("[Stats] 读取清单失败: %v", err)
		watchlistSize = 0
	}

	stats := &model.UserStatistics{
		WatchlistSize:   watchlistSize,
		FavoriteGenres:  []model.GenreCount{},
		TopRatedContent: []model.RatedContent{},
		MostWatchedYear: time.Now().Year(),
	}

	// 总观看时长（分钟）：时长按实际进度折算
	var watchSeconds float64
	for _, entry := range entries {
		watchSeconds += entry.Duration * float64(entry.Progress) / 100
	}
	stats.TotalWatchTime = int(math.Round(watchSeconds / 60))

	// 电影/剧集分布与集数估算
	for _, entry := range entries {
		if entry.Media.FirstAirDate != "" && entry.Media.MediaType == model.MediaTypeTV {
			stats.TVShowsWatched++
		} else {
			stats.MoviesWatched++
		}
	}
	// 没有逐集记录，按每部剧平均 3 集估算
	stats.EpisodesWatched = stats.TVShowsWatched * 3

	// 平均评分，保留 1 位小数
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		stats.AverageRating = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	stats.FavoriteGenres = favoriteGenres(entries)
	stats.WatchingStreak = watchingStreak(entries, time.Now())
	stats.MostWatchedYear = mostWatchedYear(entries, time.Now().Year())

	// 完成率
	if len(entries) > 0 {
		completed := 0
		for _, entry := range entries {
			if entry.Completed {
				completed++
			}
		}
		stats.CompletionRate = int(math.Round(float64(completed) / float64(len(entries)) * 100))
	}

	stats.TopRatedContent = topRatedContent(ratings, entries)
	return stats
}

// favoriteGenres 历史记录里出现最多的 5 个类型
func favoriteGenres(entries []*model.WatchHistoryEntry) []model.GenreCount {
	counts := make(map[string]int)
	for _, entry := range entries {
		for _, genreID := range entry.Media.GenreIDs {
			counts[model.GenreName(genreID)]++
		}
	}

	genres := make([]model.GenreCount, 0, len(counts))
	for genre, count := range counts {
		genres = append(genres, model.GenreCount{Genre: genre, Count: count})
	}
	// 次数相同时按名称排序，保证结果稳定
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Genre < genres[j].Genre
	})

	if len(genres) > 5 {
		genres = genres[:5]
	}
	return genres
}

// watchingStreak 连续观看天数
// 从今天往回数，每个偏移日都有记录则连续，遇到第一个空档停止
func watchingStreak(entries []*model.WatchHistoryEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	sorted := make([]*model.WatchHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].WatchedAt.After(sorted[j].WatchedAt)
	})

	today := truncateDay(now)
	streak := 0
	for _, entry := range sorted {
		watchDay := truncateDay(entry.WatchedAt)
		daysDiff := int(today.Sub(watchDay).Hours() / 24)
		if daysDiff == streak {
			streak++
		} else if daysDiff > streak {
			break
		}
		// daysDiff < streak：同一天的重复记录，跳过
	}
	return streak
}

func truncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// mostWatchedYear 出现次数最多的上映/首播年份
// 并列时取先遍历到的年份，空历史返回当前年份
func mostWatchedYear(entries []*model.WatchHistoryEntry, fallback int) int {
	counts := make(map[int]int)
	for _, entry := range entries {
		if year := entry.Media.Year(); year > 0 {
			counts[year]++
		}
	}

	best := fallback
	bestCount := 0
	for _, entry := range entries {
		year := entry.Media.Year()
		if year <= 0 {
			continue
		}
		if counts[year] > bestCount {
			best = year
			bestCount = counts[year]
		}
	}
	return best
}

// topRatedContent 评分最高的 5 条，关联历史记录补标题，关联不上用兜底值
func topRatedContent(ratings []*model.UserRating, entries []*model.WatchHistoryEntry) []model.RatedContent {
	sorted := make([]*model.UserRating, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	byMediaID := make(map[int]*model.WatchHistoryEntry, len(entries))
	for _, entry := range entries {
		byMediaID[entry.Media.ID] = entry
	}

	top := make([]model.RatedContent, 0, len(sorted))
	for _, rating := range sorted {
		item := model.RatedContent{
			Title:  "Unknown",
			Rating: rating.Rating,
			Type:   model.MediaTypeMovie,
		}
		if entry, ok := byMediaID[rating.MediaID]; ok {
			item.Title = entry.Media.DisplayTitle()
			item.Type = entry.Media.ResolvedType()
		}
		top = append(top, item)
	}
	return top
}

// FormatWatchTime 观看时长展示文案
func FormatWatchTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes < 1440 {
		hours := minutes / 60
		rest := minutes % 60
		if rest > 0 {
			return fmt.Sprintf("%dh %dm", hours, rest)
		}
		return fmt.Sprintf("%dh", hours)
	}
	days := minutes / 1440
	hours := (minutes % 1440) / 60
	if hours > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}
