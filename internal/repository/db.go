package repository

import (
	"fmt"

	"github.com/user/kinobase/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动建表
	if err := db.AutoMigrate(
		&model.Movie{},
		&model.User{},
		&model.Favorite{},
		&model.Review{},
		&model.SearchLog{},
		&model.TrendingKeyword{},
	); err != nil {
		return nil, fmt.Errorf("自动建表失败: %w", err)
	}

	return db, nil
}

// NewRepositories 创建 PostgreSQL 仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Movie:     NewMovieRepository(db),
		User:      NewUserRepository(db),
		Favorite:  NewFavoriteRepository(db),
		Review:    NewReviewRepository(db),
		SearchLog: NewSearchLogRepository(db),
	}
}
