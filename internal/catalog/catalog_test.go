package catalog

import "testing"

func TestLoad(t *testing.T) {
	movies, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(movies) == 0 {
		t.Fatal("内置片库为空")
	}

	seen := make(map[string]bool, len(movies))
	for _, m := range movies {
		if m.ID == "" || m.Title == "" {
			t.Errorf("片库条目缺少 ID 或标题: %+v", m)
		}
		if seen[m.ID] {
			t.Errorf("片库条目 ID 重复: %s", m.ID)
		}
		seen[m.ID] = true
		if m.Rating < 0 || m.Rating > 10 {
			t.Errorf("%s 评分超出 0-10 范围: %v", m.ID, m.Rating)
		}
		if m.ReleaseYear < 1900 || m.ReleaseYear > 2100 {
			t.Errorf("%s 年份异常: %d", m.ID, m.ReleaseYear)
		}
		if len(m.Genres) == 0 {
			t.Errorf("%s 缺少类型", m.ID)
		}
	}
}
