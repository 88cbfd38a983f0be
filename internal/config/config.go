package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env             string
	Port            string
	SiteName        string
	DBDriver        string // sqlite 或 postgres
	DBPath          string // sqlite 数据库文件
	DatabaseURL     string // postgres 连接串
	TMDBAPIKey      string
	TMDBBaseURL     string
	ImageBaseURL    string
	NotifyPoll      time.Duration // 通知轮询间隔
	TrendingRefresh time.Duration // 热门榜自动刷新间隔
	PopularRefresh  time.Duration // 人气榜自动刷新间隔
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "streamvue")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	apiKey := getEnv("TMDB_API_KEY", "")
	if apiKey == "" {
		fmt.Println("【警告】未设置 TMDB_API_KEY，目录接口将无法访问。")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "5006"),
		SiteName:        getEnv("SITE_NAME", "Streamvue"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBPath:          getEnv("DB_PATH", "streamvue.db"),
		DatabaseURL:     dbURL,
		TMDBAPIKey:      apiKey,
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		ImageBaseURL:    getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
		NotifyPoll:      getEnvMinutes("NOTIFY_POLL_MINUTES", 30),
		TrendingRefresh: getEnvMinutes("TRENDING_REFRESH_MINUTES", 30),
		PopularRefresh:  getEnvMinutes("POPULAR_REFRESH_MINUTES", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvMinutes(key string, defaultMinutes int) time.Duration {
	minutes, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultMinutes)))
	if err != nil || minutes <= 0 {
		minutes = defaultMinutes
	}
	return time.Duration(minutes) * time.Minute
}
