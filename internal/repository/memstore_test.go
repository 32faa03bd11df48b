package repository

import (
	"testing"

	"github.com/user/kinobase/internal/model"
)

func seedMovies() []model.Movie {
	return []model.Movie{
		{ID: "tt0001", Title: "First", Genres: []string{"Drama"}},
		{ID: "tt0002", Title: "Second", Genres: []string{"Comedy"}},
		{ID: "tt0003", Title: "Third", Genres: []string{"Action"}},
	}
}

func TestMemoryMovieStore(t *testing.T) {
	repos := NewMemoryRepositories(seedMovies())

	all, err := repos.Movie.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(all))
	}
	// All 必须保持灌入顺序
	for i, want := range []string{"tt0001", "tt0002", "tt0003"} {
		if all[i].ID != want {
			t.Errorf("position %d: want %s, got %s", i, want, all[i].ID)
		}
	}

	m, err := repos.Movie.FindByID("tt0002")
	if err != nil || m == nil {
		t.Fatalf("FindByID: %v, %v", m, err)
	}
	if m.Title != "Second" {
		t.Errorf("want Second, got %s", m.Title)
	}

	// 不存在的 ID 返回 nil, nil
	m, err = repos.Movie.FindByID("tt9999")
	if err != nil || m != nil {
		t.Errorf("missing id: want nil/nil, got %v, %v", m, err)
	}

	// 重复灌入不产生重复条目
	if err := repos.Movie.BulkUpsert(seedMovies()); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}
	count, _ := repos.Movie.Count()
	if count != 3 {
		t.Errorf("after re-seed: want 3, got %d", count)
	}
}

func TestMemoryUserStore(t *testing.T) {
	repos := NewMemoryRepositories(nil)

	user, err := repos.User.Create("a@example.com", "alice", "secret123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 || user.PasswordHash == "secret123" {
		t.Fatalf("密码未哈希或 ID 未分配: %+v", user)
	}

	found, err := repos.User.FindByEmail("a@example.com")
	if err != nil || found == nil {
		t.Fatalf("FindByEmail: %v, %v", found, err)
	}
	if !repos.User.CheckPassword(found, "secret123") {
		t.Error("正确密码未通过验证")
	}
	if repos.User.CheckPassword(found, "wrong") {
		t.Error("错误密码通过了验证")
	}

	if err := repos.User.UpdatePassword(user.ID, "newpass456"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	found, _ = repos.User.FindByID(user.ID)
	if !repos.User.CheckPassword(found, "newpass456") {
		t.Error("新密码未通过验证")
	}
}

func TestMemoryFavoriteStore(t *testing.T) {
	repos := NewMemoryRepositories(seedMovies())

	if err := repos.Favorite.Add(1, "tt0001"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// 重复收藏静默忽略
	if err := repos.Favorite.Add(1, "tt0001"); err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	_ = repos.Favorite.Add(1, "tt0003")
	_ = repos.Favorite.Add(2, "tt0002")

	count, _ := repos.Favorite.CountByUser(1)
	if count != 2 {
		t.Errorf("user 1: want 2 favorites, got %d", count)
	}

	ok, _ := repos.Favorite.IsFavorited(1, "tt0001")
	if !ok {
		t.Error("tt0001 应为已收藏")
	}

	list, err := repos.Favorite.ListByUser(1, 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2, got %d", len(list))
	}
	// 关联的电影信息已填充
	for _, f := range list {
		if f.Movie == nil {
			t.Errorf("收藏 %s 未填充电影信息", f.MovieID)
		}
	}

	_ = repos.Favorite.Remove(1, "tt0001")
	ok, _ = repos.Favorite.IsFavorited(1, "tt0001")
	if ok {
		t.Error("取消收藏后仍为已收藏")
	}
}

func TestMemoryReviewStore(t *testing.T) {
	repos := NewMemoryRepositories(seedMovies())
	user, _ := repos.User.Create("a@example.com", "alice", "secret123")

	review := &model.Review{UserID: user.ID, MovieID: "tt0001", Rating: 4, Comment: "不错"}
	if err := repos.Review.Upsert(review); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if review.ID == 0 {
		t.Fatal("Upsert 未分配 ID")
	}

	// 同一用户同一电影再写一次是编辑
	updated := &model.Review{UserID: user.ID, MovieID: "tt0001", Rating: 5, Comment: "二刷更佳"}
	if err := repos.Review.Upsert(updated); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if updated.ID != review.ID {
		t.Errorf("编辑应复用原 ID %d, got %d", review.ID, updated.ID)
	}

	got, _ := repos.Review.GetByUserAndMovie(user.ID, "tt0001")
	if got == nil || got.Rating != 5 || got.Comment != "二刷更佳" {
		t.Fatalf("编辑未生效: %+v", got)
	}

	list, _ := repos.Review.ListByMovie("tt0001", 10)
	if len(list) != 1 {
		t.Fatalf("want 1 review, got %d", len(list))
	}
	if list[0].User == nil || list[0].User.Username != "alice" {
		t.Error("影评未填充作者信息")
	}

	_ = repos.Review.Delete(user.ID, "tt0001")
	got, _ = repos.Review.GetByUserAndMovie(user.ID, "tt0001")
	if got != nil {
		t.Error("删除后仍能查到影评")
	}
}

func TestMemorySearchLogStore(t *testing.T) {
	repos := NewMemoryRepositories(nil)

	for i := 0; i < 3; i++ {
		_ = repos.SearchLog.Log("matrix", nil, "abcd1234")
	}
	_ = repos.SearchLog.Log("inception", nil, "abcd1234")

	trending, err := repos.SearchLog.GetTrending(24, 10)
	if err != nil {
		t.Fatalf("GetTrending: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("want 2 keywords, got %d", len(trending))
	}
	if trending[0].Keyword != "matrix" || trending[0].Count != 3 {
		t.Errorf("热搜排序错误: %+v", trending[0])
	}

	// 刚写入的数据不会被清理
	deleted, _ := repos.SearchLog.DeleteOldLogs(1)
	if deleted != 0 {
		t.Errorf("新日志被误删 %d 条", deleted)
	}
}
