package service

import (
	"log"
	"strings"
	"time"

	"github.com/user/kinobase/internal/model"
	"github.com/user/kinobase/internal/repository"
	"github.com/user/kinobase/internal/search"
	"github.com/user/kinobase/internal/utils"
	"golang.org/x/sync/singleflight"
)

// SearchService 搜索服务：把解析/匹配内核接到片库和缓存上
type SearchService struct {
	movies repository.MovieStore
	logs   repository.SearchLogStore
	cache  *utils.SearchCache[[]model.Movie]
	sf     singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(movies repository.MovieStore, logs repository.SearchLogStore) *SearchService {
	return &SearchService{
		movies: movies,
		logs:   logs,
		cache:  utils.NewSearchCache[[]model.Movie](512, 10*time.Minute),
	}
}

// Search 自由文本搜索
// 1. 命中缓存直接返回
// 2. 未命中用 singleflight 合并并发的同词查询
// 3. 片库读取失败按空片库降级，不向上抛错（浏览功能宁可空结果也不报错）
// 4. 搜索词异步记入日志，失败不影响结果
func (s *SearchService) Search(keyword string, userID *int, ipHash string) []model.Movie {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []model.Movie{}
	}

	go func() {
		if err := s.logs.Log(keyword, userID, ipHash); err != nil {
			log.Printf("[SearchService] 记录搜索日志失败: %v", err)
		}
	}()

	cacheKey := strings.ToLower(keyword)
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit
	}

	val, _, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		result := search.Search(s.loadCatalog(), keyword)
		s.cache.Set(cacheKey, result)
		return result, nil
	})
	return val.([]model.Movie)
}

// ParseQuery 只做解析，给调用方展示"系统理解成了什么"
func (s *SearchService) ParseQuery(keyword string) search.FilterSet {
	return search.Parse(keyword)
}

// Filter 结构化条件过滤，不走缓存（条件组合太多，缓存命中率低）
func (s *SearchService) Filter(fs search.FilterSet) []model.Movie {
	return search.Filter(s.loadCatalog(), fs)
}

// InvalidateCache 片库变更后清掉搜索缓存
func (s *SearchService) InvalidateCache() {
	s.cache.Clear()
}

// loadCatalog 读取全部片库，失败时降级为空片库
func (s *SearchService) loadCatalog() []model.Movie {
	movies, err := s.movies.All()
	if err != nil {
		log.Printf("[SearchService] 读取片库失败，按空片库降级: %v", err)
		return []model.Movie{}
	}
	return movies
}
