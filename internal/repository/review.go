package repository

import (
	"errors"
	"time"

	"github.com/user/kinobase/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert 写入或更新影评，唯一键是 (user_id, movie_id)
func (r *ReviewRepository) Upsert(review *model.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	review.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(review).Error
}

// Delete 删除影评
func (r *ReviewRepository) Delete(userID int, movieID string) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&model.Review{}).Error
}

// GetByUserAndMovie 获取用户对某部电影的影评
func (r *ReviewRepository) GetByUserAndMovie(userID int, movieID string) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByMovie 获取某部电影的影评列表（带用户信息）
func (r *ReviewRepository) ListByMovie(movieID string, limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// ListByUser 获取用户的影评列表
func (r *ReviewRepository) ListByUser(userID, limit, offset int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}
