package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
	"github.com/user/streamvue/internal/utils"
)

// maxSearchHistory 搜索历史条数上限
const maxSearchHistory = 10

// SearchService 搜索服务
// 封装 TMDB 搜索并维护本地搜索历史
type SearchService struct {
	tmdb       *TMDBService
	repo       *repository.SearchHistoryRepository
	bus        *event.Bus
	genreCache *utils.TTLCache[*model.MediaPage]
}

// NewSearchService 创建搜索服务
func NewSearchService(tmdb *TMDBService, repo *repository.SearchHistoryRepository, bus *event.Bus) *SearchService {
	return &SearchService{
		tmdb:       tmdb,
		repo:       repo,
		bus:        bus,
		genreCache: utils.NewTTLCache[*model.MediaPage](128, 10*time.Minute),
	}
}

// Search 搜索影视
// 第一页结果会自动写入搜索历史，记录失败不影响搜索结果
func (s *SearchService) Search(ctx context.Context, query string, page int) (*model.MediaPage, error) {
	result, err := s.tmdb.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}

	if page <= 1 {
		if err := s.Record(query, result.TotalResults); err != nil {
			log.Printf("[Search] 记录搜索历史失败: %v", err)
		}
	}
	return result, nil
}

// SearchByGenre 按类型名搜索，结果短暂缓存
func (s *SearchService) SearchByGenre(ctx context.Context, genre string, page int) (*model.MediaPage, error) {
	cacheKey := "genre:" + genre + ":" + strconv.Itoa(page)
	if cached, ok := s.genreCache.Get(cacheKey); ok {
		return cached, nil
	}

	result, err := s.tmdb.SearchByGenre(ctx, genre, page)
	if err != nil {
		return nil, err
	}
	s.genreCache.Set(cacheKey, result)
	return result, nil
}

// Record 写入一条搜索历史，同词大小写不敏感去重，只保留最近 10 条
// 空白搜索词直接忽略
func (s *SearchService) Record(query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	entry := &model.SearchHistoryEntry{
		Query:       query,
		QueryKey:    strings.ToLower(query),
		ResultCount: resultCount,
		SearchedAt:  time.Now(),
	}
	if err := s.repo.Upsert(entry); err != nil {
		return err
	}
	if err := s.repo.TrimTo(maxSearchHistory); err != nil {
		log.Printf("[Search] 搜索历史裁剪失败: %v", err)
	}
	s.bus.Publish(event.TopicSearchHistory, nil)
	return nil
}

// Recent 最近 N 条搜索词，用于搜索框建议
func (s *SearchService) Recent(limit int) []string {
	entries, err := s.repo.List(limit)
	if err != nil {
		log.Printf("[Search] 读取搜索历史失败: %v", err)
		return []string{}
	}
	queries := make([]string, 0, len(entries))
	for _, entry := range entries {
		queries = append(queries, entry.Query)
	}
	return queries
}

// List 完整搜索历史
func (s *SearchService) List() []*model.SearchHistoryEntry {
	entries, err := s.repo.List(maxSearchHistory)
	if err != nil {
		log.Printf("[Search] 读取搜索历史失败: %v", err)
		return []*model.SearchHistoryEntry{}
	}
	return entries
}

// Clear 清空搜索历史
func (s *SearchService) Clear() error {
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.bus.Publish(event.TopicSearchHistory, nil)
	return nil
}
