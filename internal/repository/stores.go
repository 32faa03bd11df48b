package repository

import (
	"github.com/user/kinobase/internal/model"
)

// 存储层抽象：搜索/收藏/影评逻辑只依赖这些接口，
// 不关心背后是 PostgreSQL 还是内存模式

// MovieStore 片库只读为主，BulkUpsert 仅用于灌入内置数据
type MovieStore interface {
	All() ([]model.Movie, error)
	FindByID(id string) (*model.Movie, error)
	Count() (int64, error)
	BulkUpsert(movies []model.Movie) error
}

// UserStore 用户存储
type UserStore interface {
	Create(email, username, password string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
	UpdatePassword(userID int, newPassword string) error
}

// FavoriteStore 收藏存储
type FavoriteStore interface {
	Add(userID int, movieID string) error
	Remove(userID int, movieID string) error
	IsFavorited(userID int, movieID string) (bool, error)
	ListByUser(userID, limit, offset int) ([]*model.Favorite, error)
	CountByUser(userID int) (int, error)
}

// ReviewStore 影评存储（每个用户对每部电影最多一条）
type ReviewStore interface {
	Upsert(review *model.Review) error
	Delete(userID int, movieID string) error
	GetByUserAndMovie(userID int, movieID string) (*model.Review, error)
	ListByMovie(movieID string, limit int) ([]*model.Review, error)
	ListByUser(userID, limit, offset int) ([]*model.Review, error)
}

// SearchLogStore 搜索日志与热搜统计
type SearchLogStore interface {
	Log(keyword string, userID *int, ipHash string) error
	GetTrending(hours, limit int) ([]*model.TrendingKeyword, error)
	DeleteOldKeywords(days int) (int64, error)
	DeleteOldLogs(days int) (int64, error)
}

// Repositories 仓库集合
type Repositories struct {
	Movie     MovieStore
	User      UserStore
	Favorite  FavoriteStore
	Review    ReviewStore
	SearchLog SearchLogStore
}
