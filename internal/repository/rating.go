package repository

import (
	"errors"

	"github.com/user/streamvue/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert 评分，同一媒体重复评分直接覆盖
func (r *RatingRepository) Upsert(rating *model.UserRating) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "rated_at"}),
	}).Create(rating).Error
}

// Get 获取某个媒体的评分，未评分返回 nil
func (r *RatingRepository) Get(mediaID int) (*model.UserRating, error) {
	var rating model.UserRating
	err := r.db.Where("media_id = ?", mediaID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// List 获取全部评分，按评分时间倒序
func (r *RatingRepository) List() ([]*model.UserRating, error) {
	var ratings []*model.UserRating
	err := r.db.Order("rated_at DESC").Find(&ratings).Error
	return ratings, err
}

// Count 统计评分数量
func (r *RatingRepository) Count() (int, error) {
	var count int64
	err := r.db.Model(&model.UserRating{}).Count(&count).Error
	return int(count), err
}
