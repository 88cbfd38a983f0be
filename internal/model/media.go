package model

// MediaSummary 媒体摘要（来自 TMDB 列表接口）
// 一经获取不再修改，落库时作为完整副本保存
type MediaSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type"`
	GenreIDs     []int   `json:"genre_ids"`
}

// 媒体类型
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// DisplayTitle 展示标题（缺失时使用兜底文案）
func (m *MediaSummary) DisplayTitle() string {
	if m.Title == "" {
		return "Unknown Title"
	}
	return m.Title
}

// ResolvedType 推断媒体类型（有首播日期的按剧集处理）
func (m *MediaSummary) ResolvedType() string {
	if m.MediaType != "" {
		return m.MediaType
	}
	if m.FirstAirDate != "" {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// Year 上映/首播年份，无法解析时返回 0
func (m *MediaSummary) Year() int {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	return year
}

// Genre 类型标签
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MediaPage 分页结果
type MediaPage struct {
	Page         int            `json:"page"`
	Results      []MediaSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// CastMember 演员条目
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember 幕后人员条目
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// MediaCredits 演职员表
type MediaCredits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MediaVideo 预告片视频条目
type MediaVideo struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// MediaDetails 媒体详情（详情接口，比摘要多出片长/季集等字段）
type MediaDetails struct {
	MediaSummary
	Genres           []Genre `json:"genres"`
	Runtime          int     `json:"runtime,omitempty"`
	EpisodeRunTime   []int   `json:"episode_run_time,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Status           string  `json:"status"`
	Tagline          string  `json:"tagline"`
}
