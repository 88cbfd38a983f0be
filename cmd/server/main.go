package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/streamvue/internal/config"
	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/handler"
	"github.com/user/streamvue/internal/repository"
	"github.com/user/streamvue/internal/router"
	"github.com/user/streamvue/internal/service"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	db, err := repository.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 事件总线
	bus := event.NewBus()

	// 初始化服务
	tmdbSvc := service.NewTMDBService(cfg)
	historySvc := service.NewHistoryService(repos.History, bus)
	ratingSvc := service.NewRatingService(repos.Rating, bus)
	watchlistSvc := service.NewWatchlistService(repos.Watchlist, bus)
	recommendSvc := service.NewRecommendService(tmdbSvc, historySvc)
	statsSvc := service.NewStatsService(repos.History, repos.Rating, repos.Watchlist)
	notifySvc := service.NewNotifyService(repos.Notification, repos.Watchlist, tmdbSvc, bus)
	searchSvc := service.NewSearchService(tmdbSvc, repos.SearchHistory, bus)
	settingsSvc := service.NewSettingsService(repos.Setting, bus)
	cleanupSvc := service.NewCleanupService(repos)

	// 定时刷新：热门榜单预热缓存并广播目录刷新事件
	refreshMgr := service.NewRefreshManager()
	refreshMgr.Register("trending", func(ctx context.Context) error {
		if _, err := tmdbSvc.Trending(ctx, "day", 1); err != nil {
			return err
		}
		bus.Publish(event.TopicCatalogRefresh, map[string]string{"section": "trending"})
		return nil
	}, service.RefreshConfig{Interval: cfg.TrendingRefresh, Enabled: cfg.TrendingRefresh > 0})
	refreshMgr.Register("popular", func(ctx context.Context) error {
		if _, err := tmdbSvc.PopularMovies(ctx, 1); err != nil {
			return err
		}
		if _, err := tmdbSvc.PopularTVShows(ctx, 1); err != nil {
			return err
		}
		bus.Publish(event.TopicCatalogRefresh, map[string]string{"section": "popular"})
		return nil
	}, service.RefreshConfig{Interval: cfg.PopularRefresh, Enabled: cfg.PopularRefresh > 0})
	refreshMgr.Register("cleanup", cleanupSvc.Run, service.RefreshConfig{Interval: 24 * time.Hour, Enabled: true})

	// 后台通知检查
	notifySvc.StartPolling(cfg.NotifyPoll)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(cfg, handler.Services{
		TMDB:      tmdbSvc,
		History:   historySvc,
		Rating:    ratingSvc,
		Watchlist: watchlistSvc,
		Recommend: recommendSvc,
		Stats:     statsSvc,
		Notify:    notifySvc,
		Search:    searchSvc,
		Settings:  settingsSvc,
		Refresh:   refreshMgr,
	}, bus)

	r := router.New(h)

	// 配置 HTTP 服务器
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 先停掉后台任务再关 HTTP
	refreshMgr.Stop()
	notifySvc.StopPolling()

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}
