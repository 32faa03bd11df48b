package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/kinobase/internal/repository"
	"github.com/user/kinobase/internal/utils"
)

// CatalogStats 片库统计（都是对结果集的简单归约）
type CatalogStats struct {
	Total         int            `json:"total"`
	RatingBuckets map[string]int `json:"rating_buckets"` // "8-10" 这样的区间
	GenreCounts   map[string]int `json:"genre_counts"`
	DecadeCounts  map[string]int `json:"decade_counts"` // "1990s"
	BudgetBuckets map[string]int `json:"budget_buckets"`
}

// StatsService 片库统计服务
type StatsService struct {
	movies repository.MovieStore
}

func NewStatsService(movies repository.MovieStore) *StatsService {
	return &StatsService{movies: movies}
}

const statsCacheKey = "catalog:stats"

// Stats 计算片库分布统计，结果缓存 10 分钟
// 与搜索一致的降级策略：片库读取失败时按空片库统计
func (s *StatsService) Stats() *CatalogStats {
	if cached, found := utils.CacheGet(statsCacheKey); found {
		if stats, ok := cached.(*CatalogStats); ok {
			return stats
		}
	}

	movies, err := s.movies.All()
	if err != nil {
		log.Printf("[StatsService] 读取片库失败，按空片库统计: %v", err)
		movies = nil
	}

	stats := &CatalogStats{
		Total:         len(movies),
		RatingBuckets: make(map[string]int),
		GenreCounts:   make(map[string]int),
		DecadeCounts:  make(map[string]int),
		BudgetBuckets: make(map[string]int),
	}

	for _, m := range movies {
		stats.RatingBuckets[ratingBucket(m.Rating)]++
		for _, g := range m.Genres {
			stats.GenreCounts[g]++
		}
		if m.ReleaseYear > 0 {
			stats.DecadeCounts[fmt.Sprintf("%d0s", m.ReleaseYear/10)]++
		}
		stats.BudgetBuckets[budgetBucket(m.Budget)]++
	}

	utils.CacheSet(statsCacheKey, stats, 10*time.Minute)
	return stats
}

func ratingBucket(r float64) string {
	switch {
	case r >= 8:
		return "8-10"
	case r >= 6:
		return "6-8"
	case r >= 4:
		return "4-6"
	case r >= 2:
		return "2-4"
	default:
		return "0-2"
	}
}

func budgetBucket(b int64) string {
	switch {
	case b >= 100_000_000:
		return "100M+"
	case b >= 50_000_000:
		return "50M-100M"
	case b >= 10_000_000:
		return "10M-50M"
	case b >= 1_000_000:
		return "1M-10M"
	default:
		return "<1M"
	}
}
