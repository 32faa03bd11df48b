package service

import (
	"errors"
	"testing"

	"github.com/user/kinobase/internal/model"
	"github.com/user/kinobase/internal/repository"
	"github.com/user/kinobase/internal/utils"
)

// flakyMovieStore 可控的片库替身
type flakyMovieStore struct {
	movies []model.Movie
	fail   bool
	calls  int
}

func (s *flakyMovieStore) All() ([]model.Movie, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	return s.movies, nil
}

func (s *flakyMovieStore) FindByID(id string) (*model.Movie, error) {
	for i := range s.movies {
		if s.movies[i].ID == id {
			return &s.movies[i], nil
		}
	}
	return nil, nil
}

func (s *flakyMovieStore) Count() (int64, error) { return int64(len(s.movies)), nil }

func (s *flakyMovieStore) BulkUpsert(movies []model.Movie) error { return nil }

func testMovies() []model.Movie {
	return []model.Movie{
		{ID: "tt0001", Title: "Inception", Genres: []string{"Sci-Fi"}, Actors: []string{"Leonardo DiCaprio"}},
		{ID: "tt0002", Title: "Whiplash", Genres: []string{"Drama"}, Actors: []string{"Miles Teller"}},
	}
}

func newTestService(store repository.MovieStore) *SearchService {
	return NewSearchService(store, repository.NewMemorySearchLogStore())
}

func TestSearchServiceBasic(t *testing.T) {
	svc := newTestService(&flakyMovieStore{movies: testMovies()})

	got := svc.Search("Inception", nil, "")
	if len(got) != 1 || got[0].ID != "tt0001" {
		t.Fatalf("Search(Inception) = %v", got)
	}

	// 空白查询直接返回空，不触发片库读取
	if got := svc.Search("   ", nil, ""); len(got) != 0 {
		t.Errorf("空查询应返回空结果, got %v", got)
	}
}

// 片库故障时降级为空结果，绝不向调用方抛错
func TestSearchServiceFailOpen(t *testing.T) {
	store := &flakyMovieStore{movies: testMovies(), fail: true}
	svc := newTestService(store)

	got := svc.Search("Inception", nil, "")
	if len(got) != 0 {
		t.Fatalf("故障时应返回空结果, got %v", got)
	}

	got = svc.Filter(map[string]string{"genre": "drama"})
	if len(got) != 0 {
		t.Fatalf("故障时 Filter 应返回空结果, got %v", got)
	}
}

func TestSearchServiceCaching(t *testing.T) {
	store := &flakyMovieStore{movies: testMovies()}
	svc := newTestService(store)

	first := svc.Search("whiplash", nil, "")
	if len(first) != 1 {
		t.Fatalf("first search: %v", first)
	}
	callsAfterFirst := store.calls

	// 同词（含大小写差异）命中缓存，不再读片库
	second := svc.Search("Whiplash", nil, "")
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Fatalf("second search: %v", second)
	}
	if store.calls != callsAfterFirst {
		t.Errorf("缓存命中不应再读片库: %d -> %d", callsAfterFirst, store.calls)
	}

	// 清缓存后重新读取
	svc.InvalidateCache()
	_ = svc.Search("whiplash", nil, "")
	if store.calls == callsAfterFirst {
		t.Error("清缓存后应重新读片库")
	}
}

func TestStatsService(t *testing.T) {
	utils.InitCache()
	movies := []model.Movie{
		{ID: "a", Rating: 8.8, ReleaseYear: 2010, Budget: 160_000_000, Genres: []string{"Action", "Sci-Fi"}},
		{ID: "b", Rating: 7.2, ReleaseYear: 2014, Budget: 3_300_000, Genres: []string{"Drama"}},
		{ID: "c", Rating: 8.5, ReleaseYear: 1999, Budget: 63_000_000, Genres: []string{"Action"}},
	}
	svc := NewStatsService(&flakyMovieStore{movies: movies})

	stats := svc.Stats()
	if stats.Total != 3 {
		t.Errorf("Total = %d", stats.Total)
	}
	if stats.RatingBuckets["8-10"] != 2 || stats.RatingBuckets["6-8"] != 1 {
		t.Errorf("RatingBuckets = %v", stats.RatingBuckets)
	}
	if stats.GenreCounts["Action"] != 2 {
		t.Errorf("GenreCounts = %v", stats.GenreCounts)
	}
	if stats.DecadeCounts["2010s"] != 2 || stats.DecadeCounts["1990s"] != 1 {
		t.Errorf("DecadeCounts = %v", stats.DecadeCounts)
	}
	if stats.BudgetBuckets["100M+"] != 1 || stats.BudgetBuckets["50M-100M"] != 1 || stats.BudgetBuckets["1M-10M"] != 1 {
		t.Errorf("BudgetBuckets = %v", stats.BudgetBuckets)
	}
}
