package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/user/kinobase/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// 内存模式存储：无数据库部署时的完整后端，也是测试替身
// 所有实现都用互斥锁保护，语义与 PostgreSQL 仓库一致

// NewMemoryRepositories 创建内存仓库集合并灌入片库种子数据
func NewMemoryRepositories(seed []model.Movie) *Repositories {
	movies := NewMemoryMovieStore(seed)
	users := NewMemoryUserStore()
	favorites := NewMemoryFavoriteStore()
	favorites.AttachMovies(movies)
	reviews := NewMemoryReviewStore()
	reviews.AttachUsers(users)
	return &Repositories{
		Movie:     movies,
		User:      users,
		Favorite:  favorites,
		Review:    reviews,
		SearchLog: NewMemorySearchLogStore(),
	}
}

// MemoryMovieStore 内存片库
type MemoryMovieStore struct {
	mu     sync.RWMutex
	order  []string // 保持写入顺序，All 的输出必须稳定
	movies map[string]model.Movie
}

func NewMemoryMovieStore(seed []model.Movie) *MemoryMovieStore {
	s := &MemoryMovieStore{movies: make(map[string]model.Movie)}
	s.BulkUpsert(seed)
	return s
}

func (s *MemoryMovieStore) All() ([]model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Movie, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.movies[id])
	}
	return out, nil
}

func (s *MemoryMovieStore) FindByID(id string) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *MemoryMovieStore) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.movies)), nil
}

func (s *MemoryMovieStore) BulkUpsert(movies []model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, m := range movies {
		m.UpdatedAt = now
		if _, exists := s.movies[m.ID]; !exists {
			s.order = append(s.order, m.ID)
		}
		s.movies[m.ID] = m
	}
	return nil
}

// MemoryUserStore 内存用户存储
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[int]*model.User)}
}

func (s *MemoryUserStore) Create(email, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := &model.User{
		ID:           s.nextID,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryUserStore) FindByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindByID(id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryUserStore) CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *MemoryUserStore) UpdatePassword(userID int, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.PasswordHash = string(hash)
	}
	return nil
}

// MemoryFavoriteStore 内存收藏存储
type MemoryFavoriteStore struct {
	mu        sync.RWMutex
	nextID    int
	favorites []*model.Favorite
	movies    *MemoryMovieStore // 可选，用于 ListByUser 填充电影信息
}

func NewMemoryFavoriteStore() *MemoryFavoriteStore {
	return &MemoryFavoriteStore{nextID: 1}
}

// AttachMovies 关联片库，ListByUser 时填充收藏对应的电影
func (s *MemoryFavoriteStore) AttachMovies(movies *MemoryMovieStore) {
	s.movies = movies
}

func (s *MemoryFavoriteStore) Add(userID int, movieID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return nil // 重复收藏静默忽略
		}
	}
	s.favorites = append(s.favorites, &model.Favorite{
		ID:        s.nextID,
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now(),
	})
	s.nextID++
	return nil
}

func (s *MemoryFavoriteStore) Remove(userID int, movieID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.favorites[:0]
	for _, f := range s.favorites {
		if f.UserID != userID || f.MovieID != movieID {
			out = append(out, f)
		}
	}
	s.favorites = out
	return nil
}

func (s *MemoryFavoriteStore) IsFavorited(userID int, movieID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryFavoriteStore) ListByUser(userID, limit, offset int) ([]*model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*model.Favorite, 0)
	for _, f := range s.favorites {
		if f.UserID == userID {
			copied := *f
			matched = append(matched, &copied)
		}
	}
	// 与数据库实现一致：按收藏时间倒序
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	matched = paginate(matched, limit, offset)
	if s.movies != nil {
		for _, f := range matched {
			f.Movie, _ = s.movies.FindByID(f.MovieID)
		}
	}
	return matched, nil
}

func (s *MemoryFavoriteStore) CountByUser(userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, f := range s.favorites {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MemoryReviewStore 内存影评存储
type MemoryReviewStore struct {
	mu      sync.RWMutex
	nextID  int
	reviews []*model.Review
	users   *MemoryUserStore // 可选，用于 ListByMovie 填充用户信息
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{nextID: 1}
}

// AttachUsers 关联用户存储，ListByMovie 时填充影评作者
func (s *MemoryReviewStore) AttachUsers(users *MemoryUserStore) {
	s.users = users
}

func (s *MemoryReviewStore) Upsert(review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, r := range s.reviews {
		if r.UserID == review.UserID && r.MovieID == review.MovieID {
			r.Rating = review.Rating
			r.Comment = review.Comment
			r.UpdatedAt = now
			review.ID = r.ID
			return nil
		}
	}
	review.ID = s.nextID
	review.CreatedAt = now
	review.UpdatedAt = now
	s.nextID++
	copied := *review
	s.reviews = append(s.reviews, &copied)
	return nil
}

func (s *MemoryReviewStore) Delete(userID int, movieID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.reviews[:0]
	for _, r := range s.reviews {
		if r.UserID != userID || r.MovieID != movieID {
			out = append(out, r)
		}
	}
	s.reviews = out
	return nil
}

func (s *MemoryReviewStore) GetByUserAndMovie(userID int, movieID string) (*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryReviewStore) ListByMovie(movieID string, limit int) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*model.Review, 0)
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			copied := *r
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	if s.users != nil {
		for _, r := range matched {
			r.User, _ = s.users.FindByID(r.UserID)
		}
	}
	return matched, nil
}

func (s *MemoryReviewStore) ListByUser(userID, limit, offset int) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*model.Review, 0)
	for _, r := range s.reviews {
		if r.UserID == userID {
			copied := *r
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return paginate(matched, limit, offset), nil
}

// MemorySearchLogStore 内存搜索日志
type MemorySearchLogStore struct {
	mu       sync.Mutex
	nextID   int
	logs     []*model.SearchLog
	trending map[string]*model.TrendingKeyword
}

func NewMemorySearchLogStore() *MemorySearchLogStore {
	return &MemorySearchLogStore{nextID: 1, trending: make(map[string]*model.TrendingKeyword)}
}

func (s *MemorySearchLogStore) Log(keyword string, userID *int, ipHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.logs = append(s.logs, &model.SearchLog{
		ID:        s.nextID,
		Keyword:   keyword,
		UserID:    userID,
		IPHash:    ipHash,
		CreatedAt: now,
	})
	s.nextID++

	if t, ok := s.trending[keyword]; ok {
		t.Count++
		t.LastSearchedAt = now
	} else {
		s.trending[keyword] = &model.TrendingKeyword{Keyword: keyword, Count: 1, LastSearchedAt: now}
	}
	return nil
}

func (s *MemorySearchLogStore) GetTrending(hours, limit int) ([]*model.TrendingKeyword, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Time{}
	if hours > 0 {
		cutoff = time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	out := make([]*model.TrendingKeyword, 0, len(s.trending))
	for _, t := range s.trending {
		if t.LastSearchedAt.After(cutoff) {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemorySearchLogStore) DeleteOldKeywords(days int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	var deleted int64
	for k, t := range s.trending {
		if t.LastSearchedAt.Before(cutoff) {
			delete(s.trending, k)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemorySearchLogStore) DeleteOldLogs(days int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	kept := s.logs[:0]
	var deleted int64
	for _, l := range s.logs {
		if l.CreatedAt.Before(cutoff) {
			deleted++
		} else {
			kept = append(kept, l)
		}
	}
	s.logs = kept
	return deleted, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
