package service

import (
	"context"
	"log"
	"math/rand"

	"github.com/user/streamvue/internal/model"
	"golang.org/x/sync/errgroup"
)

// RecommendService 个性化推荐服务
type RecommendService struct {
	tmdb    *TMDBService
	history *HistoryService
}

// NewRecommendService 创建推荐服务
func NewRecommendService(tmdb *TMDBService, history *HistoryService) *RecommendService {
	return &RecommendService{tmdb: tmdb, history: history}
}

// Personalized 基于最近观看生成 "Because you watched X" 推荐组
// 每条历史独立请求，单条失败只丢弃该组，不影响其他组；组顺序与历史顺序一致
func (s *RecommendService) Personalized(ctx context.Context) []model.RecommendationGroup {
	recent := s.history.List(3)
	if len(recent) == 0 {
		return []model.RecommendationGroup{}
	}

	results := make([]*model.RecommendationGroup, len(recent))
	var g errgroup.Group
	for i, entry := range recent {
		i, entry := i, entry
		g.Go(func() error {
			page, err := s.tmdb.Recommendations(ctx, entry.Media.ID, entry.Media.ResolvedType(), 1)
			if err != nil {
				// 单条失败静默降级
				log.Printf("[Recommend] 获取相似推荐失败 (media: %d): %v", entry.Media.ID, err)
				return nil
			}
			if len(page.Results) == 0 {
				return nil
			}
			medias := page.Results
			if len(medias) > 12 {
				medias = medias[:12]
			}
			results[i] = &model.RecommendationGroup{
				Title:  "Because you watched " + entry.Media.DisplayTitle(),
				Medias: medias,
			}
			return nil
		})
	}
	g.Wait()

	groups := make([]model.RecommendationGroup, 0, len(results))
	for _, group := range results {
		if group != nil {
			groups = append(groups, *group)
		}
	}
	return groups
}

// RandomPick 随机挑一部热门电影
// 从人气榜前 10 页随机取一页，再在页内均匀随机取一条；页为空时返回 nil
func (s *RecommendService) RandomPick(ctx context.Context) (*model.MediaSummary, error) {
	randomPage := rand.Intn(10) + 1
	page, err := s.tmdb.Discover(ctx, DiscoverParams{
		MediaType: model.MediaTypeMovie,
		SortBy:    "popularity.desc",
		Page:      randomPage,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}

	pick := page.Results[rand.Intn(len(page.Results))]
	return &pick, nil
}
