package model

// genreNames TMDB 类型 ID 到英文名的映射（用于统计展示）
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName 返回类型名称，未知 ID 返回 Unknown
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return "Unknown"
}

// BrowseGenre 浏览页类型项，电影和剧集的 TMDB ID 不同
type BrowseGenre struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	MovieGenreID int    `json:"movie_genre_id"`
	TVGenreID    int    `json:"tv_genre_id"`
}

// BrowseGenres 首页类型浏览列表
var BrowseGenres = []BrowseGenre{
	{ID: 1, Name: "Action", MovieGenreID: 28, TVGenreID: 10759},
	{ID: 2, Name: "Comedy", MovieGenreID: 35, TVGenreID: 35},
	{ID: 3, Name: "Horror", MovieGenreID: 27, TVGenreID: 9648},
	{ID: 4, Name: "Drama", MovieGenreID: 18, TVGenreID: 18},
	{ID: 5, Name: "Thriller", MovieGenreID: 53, TVGenreID: 9648},
	{ID: 6, Name: "Romance", MovieGenreID: 10749, TVGenreID: 10749},
	{ID: 7, Name: "Sci-Fi", MovieGenreID: 878, TVGenreID: 10765},
	{ID: 8, Name: "Fantasy", MovieGenreID: 14, TVGenreID: 10765},
	{ID: 9, Name: "Crime", MovieGenreID: 80, TVGenreID: 80},
	{ID: 10, Name: "Animation", MovieGenreID: 16, TVGenreID: 16},
}
