package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/user/streamvue/internal/config"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/utils"
	"golang.org/x/sync/singleflight"
)

// maxCatalogPage 目录分页上限，超出的页不再请求
const maxCatalogPage = 20

// TMDBService TMDB 目录客户端
// 列表结果短暂缓存，并用 singleflight 合并并发的相同请求
type TMDBService struct {
	cfg    *config.Config
	client *utils.HTTPClient
	cache  *cache.Cache
	group  singleflight.Group
}

// NewTMDBService 创建 TMDB 客户端
func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		cfg:    cfg,
		client: utils.NewHTTPClient(15 * time.Second),
		// 默认过期时间5分钟，清理间隔10分钟
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// tmdbMediaItem 列表接口的单条结果
type tmdbMediaItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"` // 电视剧
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"` // 电视剧
	MediaType    string  `json:"media_type"`
	GenreIDs     []int   `json:"genre_ids"`
}

func (it *tmdbMediaItem) toSummary() model.MediaSummary {
	title := it.Title
	if title == "" {
		title = it.Name
	}
	summary := model.MediaSummary{
		ID:           it.ID,
		Title:        title,
		PosterPath:   it.PosterPath,
		BackdropPath: it.BackdropPath,
		Overview:     it.Overview,
		VoteAverage:  it.VoteAverage,
		ReleaseDate:  it.ReleaseDate,
		FirstAirDate: it.FirstAirDate,
		MediaType:    it.MediaType,
		GenreIDs:     it.GenreIDs,
	}
	summary.MediaType = summary.ResolvedType()
	return summary
}

type tmdbPageResponse struct {
	Page         int             `json:"page"`
	Results      []tmdbMediaItem `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}

func (r *tmdbPageResponse) toPage() *model.MediaPage {
	page := &model.MediaPage{
		Page:         r.Page,
		Results:      make([]model.MediaSummary, 0, len(r.Results)),
		TotalPages:   r.TotalPages,
		TotalResults: r.TotalResults,
	}
	for i := range r.Results {
		page.Results = append(page.Results, r.Results[i].toSummary())
	}
	return page
}

// buildURL 拼接请求地址并附加凭证
func (s *TMDBService) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.cfg.TMDBAPIKey)
	return s.cfg.TMDBBaseURL + path + "?" + params.Encode()
}

// fetchPage 请求一个列表接口并映射为分页结果
func (s *TMDBService) fetchPage(ctx context.Context, path string, params url.Values) (*model.MediaPage, error) {
	key := path + "?" + params.Encode()
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.MediaPage), nil
	}

	// singleflight 合并并发的相同请求
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw tmdbPageResponse
		if err := s.client.GetJSON(ctx, s.buildURL(path, params), &raw); err != nil {
			return nil, fmt.Errorf("目录请求失败 %s: %w", path, err)
		}
		page := raw.toPage()
		s.cache.Set(key, page, cache.DefaultExpiration)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.MediaPage), nil
}

// clampPage 页码归一化，超过上限时返回 false 表示不该请求
func clampPage(page int) (int, bool) {
	if page < 1 {
		page = 1
	}
	if page > maxCatalogPage {
		return page, false
	}
	return page, true
}

func emptyPage(page int) *model.MediaPage {
	return &model.MediaPage{Page: page, Results: []model.MediaSummary{}}
}

func pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

// Trending 趋势榜，窗口 day/week
func (s *TMDBService) Trending(ctx context.Context, window string, page int) (*model.MediaPage, error) {
	if window != "day" {
		window = "week"
	}
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/trending/all/"+window, pageParams(page))
}

// PopularMovies 热门电影
func (s *TMDBService) PopularMovies(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/movie/popular", pageParams(page))
}

// PopularTVShows 热门剧集
func (s *TMDBService) PopularTVShows(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/tv/popular", pageParams(page))
}

// TopRatedMovies 高分电影
func (s *TMDBService) TopRatedMovies(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/movie/top_rated", pageParams(page))
}

// TopRatedTVShows 高分剧集
func (s *TMDBService) TopRatedTVShows(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/tv/top_rated", pageParams(page))
}

// NowPlayingMovies 正在上映
func (s *TMDBService) NowPlayingMovies(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/movie/now_playing", pageParams(page))
}

// OnAirTVShows 正在播出的剧集
func (s *TMDBService) OnAirTVShows(ctx context.Context, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	return s.fetchPage(ctx, "/tv/on_the_air", pageParams(page))
}

// Search 多类型文本搜索
func (s *TMDBService) Search(ctx context.Context, query string, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	params := pageParams(page)
	params.Set("query", query)
	return s.fetchPage(ctx, "/search/multi", params)
}

// DiscoverParams discover 查询条件
type DiscoverParams struct {
	MediaType string  // movie / tv，默认 movie
	GenreID   int
	YearMin   int
	YearMax   int
	RatingMin float64
	RatingMax float64
	SortBy    string // 默认 popularity.desc
	Page      int
}

// Discover 条件筛选
func (s *TMDBService) Discover(ctx context.Context, p DiscoverParams) (*model.MediaPage, error) {
	page, ok := clampPage(p.Page)
	if !ok {
		return emptyPage(page), nil
	}

	mediaType := normalizeMediaType(p.MediaType)
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}

	params := pageParams(page)
	params.Set("sort_by", sortBy)
	if p.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(p.GenreID))
	}

	// 电影与剧集的日期字段不同
	dateField := "release_date"
	if mediaType == model.MediaTypeTV {
		dateField = "first_air_date"
	}
	if p.YearMin > 0 {
		params.Set(dateField+".gte", fmt.Sprintf("%d-01-01", p.YearMin))
	}
	if p.YearMax > 0 {
		params.Set(dateField+".lte", fmt.Sprintf("%d-12-31", p.YearMax))
	}
	if p.RatingMin > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(p.RatingMin, 'f', 1, 64))
	}
	if p.RatingMax > 0 {
		params.Set("vote_average.lte", strconv.FormatFloat(p.RatingMax, 'f', 1, 64))
	}

	return s.fetchPage(ctx, "/discover/"+mediaType, params)
}

// RecentlyAdded 最近 30 天上线的内容
func (s *TMDBService) RecentlyAdded(ctx context.Context, mediaType string, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}

	mediaType = normalizeMediaType(mediaType)
	since := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	params := pageParams(page)
	if mediaType == model.MediaTypeTV {
		params.Set("sort_by", "first_air_date.desc")
		params.Set("first_air_date.gte", since)
	} else {
		params.Set("sort_by", "release_date.desc")
		params.Set("release_date.gte", since)
	}
	return s.fetchPage(ctx, "/discover/"+mediaType, params)
}

// Recommendations 相似推荐
func (s *TMDBService) Recommendations(ctx context.Context, id int, mediaType string, page int) (*model.MediaPage, error) {
	page, ok := clampPage(page)
	if !ok {
		return emptyPage(page), nil
	}
	mediaType = normalizeMediaType(mediaType)
	return s.fetchPage(ctx, fmt.Sprintf("/%s/%d/recommendations", mediaType, id), pageParams(page))
}

// MediaByGenre 按类型取热门内容（固定第一页）
func (s *TMDBService) MediaByGenre(ctx context.Context, genreID int, mediaType string) ([]model.MediaSummary, error) {
	page, err := s.Discover(ctx, DiscoverParams{
		MediaType: mediaType,
		GenreID:   genreID,
		Page:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Results) > 20 {
		return page.Results[:20], nil
	}
	return page.Results, nil
}

// Details 媒体详情
func (s *TMDBService) Details(ctx context.Context, id int, mediaType string) (*model.MediaDetails, error) {
	mediaType = normalizeMediaType(mediaType)
	key := fmt.Sprintf("details/%s/%d", mediaType, id)
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.MediaDetails), nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw struct {
			tmdbMediaItem
			Genres           []model.Genre `json:"genres"`
			Runtime          int           `json:"runtime"`
			EpisodeRunTime   []int         `json:"episode_run_time"`
			NumberOfSeasons  int           `json:"number_of_seasons"`
			NumberOfEpisodes int           `json:"number_of_episodes"`
			Status           string        `json:"status"`
			Tagline          string        `json:"tagline"`
		}
		path := fmt.Sprintf("/%s/%d", mediaType, id)
		if err := s.client.GetJSON(ctx, s.buildURL(path, nil), &raw); err != nil {
			return nil, fmt.Errorf("获取详情失败: %w", err)
		}

		details := &model.MediaDetails{
			MediaSummary:     raw.toSummary(),
			Genres:           raw.Genres,
			Runtime:          raw.Runtime,
			EpisodeRunTime:   raw.EpisodeRunTime,
			NumberOfSeasons:  raw.NumberOfSeasons,
			NumberOfEpisodes: raw.NumberOfEpisodes,
			Status:           raw.Status,
			Tagline:          raw.Tagline,
		}
		details.MediaType = mediaType
		s.cache.Set(key, details, 30*time.Minute)
		return details, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.MediaDetails), nil
}

// maxCastMembers 演职员表最多保留的演员数
const maxCastMembers = 20

// keyCrewJobs 幕后人员只保留这些核心职位
var keyCrewJobs = map[string]bool{
	"Director":           true,
	"Producer":           true,
	"Executive Producer": true,
	"Writer":             true,
	"Screenplay":         true,
}

// Credits 演职员表，演员取前 20 位，幕后只保留核心职位
func (s *TMDBService) Credits(ctx context.Context, id int, mediaType string) (*model.MediaCredits, error) {
	mediaType = normalizeMediaType(mediaType)
	key := fmt.Sprintf("credits/%s/%d", mediaType, id)
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.MediaCredits), nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw model.MediaCredits
		path := fmt.Sprintf("/%s/%d/credits", mediaType, id)
		if err := s.client.GetJSON(ctx, s.buildURL(path, nil), &raw); err != nil {
			return nil, fmt.Errorf("获取演职员表失败: %w", err)
		}

		credits := &model.MediaCredits{
			Cast: raw.Cast,
			Crew: make([]model.CrewMember, 0, len(raw.Crew)),
		}
		if credits.Cast == nil {
			credits.Cast = []model.CastMember{}
		}
		if len(credits.Cast) > maxCastMembers {
			credits.Cast = credits.Cast[:maxCastMembers]
		}
		for _, member := range raw.Crew {
			if keyCrewJobs[member.Job] {
				credits.Crew = append(credits.Crew, member)
			}
		}
		s.cache.Set(key, credits, 30*time.Minute)
		return credits, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.MediaCredits), nil
}

// Videos 预告片列表
// 只保留 YouTube 上带 key 的 Trailer/Teaser，官方优先，正式预告排在花絮前
func (s *TMDBService) Videos(ctx context.Context, id int, mediaType string) ([]model.MediaVideo, error) {
	mediaType = normalizeMediaType(mediaType)
	key := fmt.Sprintf("videos/%s/%d", mediaType, id)
	if v, ok := s.cache.Get(key); ok {
		return v.([]model.MediaVideo), nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw struct {
			Results []model.MediaVideo `json:"results"`
		}
		path := fmt.Sprintf("/%s/%d/videos", mediaType, id)
		if err := s.client.GetJSON(ctx, s.buildURL(path, nil), &raw); err != nil {
			return nil, fmt.Errorf("获取预告片失败: %w", err)
		}

		videos := make([]model.MediaVideo, 0, len(raw.Results))
		for _, v := range raw.Results {
			if v.Site != "YouTube" || v.Key == "" {
				continue
			}
			if v.Type != "Trailer" && v.Type != "Teaser" {
				continue
			}
			videos = append(videos, v)
		}
		sort.SliceStable(videos, func(i, j int) bool {
			if videos[i].Official != videos[j].Official {
				return videos[i].Official
			}
			return videos[i].Type == "Trailer" && videos[j].Type == "Teaser"
		})
		s.cache.Set(key, videos, 30*time.Minute)
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]model.MediaVideo), nil
}

// Genres 类型列表（变化极少，缓存 6 小时）
func (s *TMDBService) Genres(ctx context.Context, mediaType string) ([]model.Genre, error) {
	mediaType = normalizeMediaType(mediaType)
	key := "genres/" + mediaType
	if v, ok := s.cache.Get(key); ok {
		return v.([]model.Genre), nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw struct {
			Genres []model.Genre `json:"genres"`
		}
		if err := s.client.GetJSON(ctx, s.buildURL("/genre/"+mediaType+"/list", nil), &raw); err != nil {
			return nil, fmt.Errorf("获取类型列表失败: %w", err)
		}
		s.cache.Set(key, raw.Genres, 6*time.Hour)
		return raw.Genres, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]model.Genre), nil
}

// SearchByGenre 按类型名称搜索
// 同时查电影和剧集，并按轮替顺序合并，保证同样输入产出同样顺序
func (s *TMDBService) SearchByGenre(ctx context.Context, name string, page int) (*model.MediaPage, error) {
	movieGenres, err := s.Genres(ctx, model.MediaTypeMovie)
	if err != nil {
		return nil, err
	}
	tvGenres, err := s.Genres(ctx, model.MediaTypeTV)
	if err != nil {
		log.Printf("[TMDB] 获取剧集类型失败，仅按电影类型匹配: %v", err)
	}

	matched := matchGenre(append(movieGenres, tvGenres...), name)
	if matched == nil {
		// 没有匹配的类型，退回文本搜索
		return s.Search(ctx, name, page)
	}

	moviePage, movieErr := s.Discover(ctx, DiscoverParams{MediaType: model.MediaTypeMovie, GenreID: matched.ID, Page: page})
	tvPage, tvErr := s.Discover(ctx, DiscoverParams{MediaType: model.MediaTypeTV, GenreID: matched.ID, Page: page})
	if movieErr != nil && tvErr != nil {
		return nil, movieErr
	}
	if movieErr != nil {
		moviePage = emptyPage(page)
	}
	if tvErr != nil {
		tvPage = emptyPage(page)
	}

	combined := interleave(moviePage.Results, tvPage.Results, 12)
	totalPages := moviePage.TotalPages
	if tvPage.TotalPages > totalPages {
		totalPages = tvPage.TotalPages
	}

	return &model.MediaPage{
		Page:         page,
		Results:      combined,
		TotalPages:   totalPages,
		TotalResults: moviePage.TotalResults + tvPage.TotalResults,
	}, nil
}

// ImageURL 拼接图片地址，path 为空时返回空串
func (s *TMDBService) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	switch size {
	case "original", "w500", "w780", "w1280":
	default:
		size = "w500"
	}
	return s.cfg.ImageBaseURL + "/" + size + path
}

func normalizeMediaType(t string) string {
	if t == model.MediaTypeTV {
		return model.MediaTypeTV
	}
	return model.MediaTypeMovie
}

// matchGenre 按名称模糊匹配类型
func matchGenre(genres []model.Genre, name string) *model.Genre {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for i := range genres {
		if strings.Contains(strings.ToLower(genres[i].Name), name) {
			return &genres[i]
		}
	}
	return nil
}

// interleave 轮替合并两个结果集，最多 limit 条
func interleave(a, b []model.MediaSummary, limit int) []model.MediaSummary {
	combined := make([]model.MediaSummary, 0, limit)
	for i := 0; len(combined) < limit && (i < len(a) || i < len(b)); i++ {
		if i < len(a) {
			combined = append(combined, a[i])
		}
		if len(combined) < limit && i < len(b) {
			combined = append(combined, b[i])
		}
	}
	return combined
}
