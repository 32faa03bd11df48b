package repository

import (
	"errors"
	"time"

	"github.com/user/kinobase/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// All 获取全部片库，搜索内核在内存里过滤，保持库内顺序稳定
func (r *MovieRepository) All() ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Order("id ASC").Find(&movies).Error
	return movies, err
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Count 片库条目数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// BulkUpsert 批量写入片库，用于首次启动灌入内置数据
func (r *MovieRepository) BulkUpsert(movies []model.Movie) error {
	now := time.Now()
	for i := range movies {
		movies[i].UpdatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(movies, 100).Error
}
