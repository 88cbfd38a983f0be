package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/streamvue/internal/event"
	"github.com/user/streamvue/internal/model"
	"github.com/user/streamvue/internal/repository"
)

// RatingService 用户评分服务
type RatingService struct {
	repo *repository.RatingRepository
	bus  *event.Bus
}

// NewRatingService 创建评分服务
func NewRatingService(repo *repository.RatingRepository, bus *event.Bus) *RatingService {
	return &RatingService{repo: repo, bus: bus}
}

// Rate 评分（1-10），同一媒体重复评分覆盖旧值
func (s *RatingService) Rate(mediaID, rating int, review string) (*model.UserRating, error) {
	if rating < 1 || rating > 10 {
		return nil, fmt.Errorf("评分必须在 1-10 之间: %d", rating)
	}

	userRating := &model.UserRating{
		MediaID: mediaID,
		Rating:  rating,
		Review:  review,
		RatedAt: time.Now(),
	}
	if err := s.repo.Upsert(userRating); err != nil {
		return nil, err
	}

	s.bus.Publish(event.TopicUserRatings, nil)
	return userRating, nil
}

// Get 获取某个媒体的评分，未评分返回 nil
func (s *RatingService) Get(mediaID int) *model.UserRating {
	rating, err := s.repo.Get(mediaID)
	if err != nil {
		log.Printf("[Rating] 读取评分失败: %v", err)
		return nil
	}
	return rating
}

// List 获取全部评分
func (s *RatingService) List() []*model.UserRating {
	ratings, err := s.repo.List()
	if err != nil {
		log.Printf("[Rating] 读取评分列表失败: %v", err)
		return []*model.UserRating{}
	}
	return ratings
}
