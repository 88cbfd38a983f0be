package model

import "time"

// SeasonalCollection 节日合集，手工维护，仅用于拼装 discover 查询参数
type SeasonalCollection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Keywords    []string `json:"keywords"`
	GenreIDs    []int    `json:"genre_ids"`
	Months      []int    `json:"-"` // 生效月份
	IsActive    bool     `json:"is_active"`
}

// SeasonalCollections 节日合集定义
var SeasonalCollections = []SeasonalCollection{
	{
		ID:          "christmas",
		Name:        "Christmas Movies",
		Description: "Festive films to get you in the holiday spirit",
		Icon:        "🎄",
		Keywords:    []string{"christmas", "holiday", "santa", "xmas"},
		GenreIDs:    []int{35, 10751},
		Months:      []int{11, 12},
	},
	{
		ID:          "halloween",
		Name:        "Halloween Horror",
		Description: "Spine-chilling movies for the spooky season",
		Icon:        "🎃",
		Keywords:    []string{"halloween", "horror", "scary", "ghost"},
		GenreIDs:    []int{27},
		Months:      []int{10},
	},
	{
		ID:          "summer",
		Name:        "Summer Blockbusters",
		Description: "Action-packed movies perfect for summer nights",
		Icon:        "☀️",
		Keywords:    []string{"summer", "beach", "vacation"},
		GenreIDs:    []int{28, 12},
		Months:      []int{6, 7, 8},
	},
	{
		ID:          "valentines",
		Name:        "Valentine's Romance",
		Description: "Love stories for the most romantic day of the year",
		Icon:        "💕",
		Keywords:    []string{"valentine", "love", "romance"},
		GenreIDs:    []int{10749},
		Months:      []int{2},
	},
}

// ActiveSeasonalCollections 返回当前月份生效的节日合集
func ActiveSeasonalCollections(now time.Time) []SeasonalCollection {
	month := int(now.Month())
	active := make([]SeasonalCollection, 0)
	for _, c := range SeasonalCollections {
		for _, m := range c.Months {
			if m == month {
				c.IsActive = true
				active = append(active, c)
				break
			}
		}
	}
	return active
}

// DecadeCollection 年代合集
type DecadeCollection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
}

// DecadeCollections 年代合集定义
var DecadeCollections = []DecadeCollection{
	{ID: "2020s", Name: "2020s Hits", Description: "The latest and greatest from this decade", StartYear: 2020, EndYear: 2029},
	{ID: "2010s", Name: "2010s Classics", Description: "Defining movies and shows of the 2010s", StartYear: 2010, EndYear: 2019},
	{ID: "2000s", Name: "2000s Nostalgia", Description: "Y2K era entertainment at its finest", StartYear: 2000, EndYear: 2009},
	{ID: "90s", Name: "90s Gold", Description: "The golden age of cinema and television", StartYear: 1990, EndYear: 1999},
	{ID: "80s", Name: "80s Retro", Description: "Neon lights, synthesizers, and iconic movies", StartYear: 1980, EndYear: 1989},
}

// FindDecade 按 ID 查找年代合集
func FindDecade(id string) *DecadeCollection {
	for i := range DecadeCollections {
		if DecadeCollections[i].ID == id {
			return &DecadeCollections[i]
		}
	}
	return nil
}
