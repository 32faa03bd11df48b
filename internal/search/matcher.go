package search

import (
	"sort"
	"strings"

	"github.com/user/kinobase/internal/model"
)

// Search 自由文本搜索
// 决策顺序：
// 1. 标题与整句完全一致（忽略大小写）时直接短路，只返回这一条
// 2. 解析出演员条件时单独处理：先按其余条件过滤，再要求演员命中
// 3. 只解析出标题条件时做宽松标题搜索并按相关度排序
// 4. 其余情况按通用 AND 过滤，保持片库原顺序
func Search(movies []model.Movie, query string) []model.Movie {
	q := strings.TrimSpace(query)

	for i := range movies {
		if strings.EqualFold(movies[i].Title, q) {
			return []model.Movie{movies[i]}
		}
	}

	fs := Parse(q)

	if actor, ok := fs["actor"]; ok {
		delete(fs, "actor")
		return filterByActor(movies, fs, actor)
	}

	if title, ok := fs["title"]; ok && len(fs) == 1 {
		return searchByTitle(movies, title)
	}

	return Filter(movies, fs)
}

// Filter 通用过滤入口：所有条件按 AND 组合，结果保持输入顺序
// 调用方已有结构化条件时直接走这里，不做短路和排序
func Filter(movies []model.Movie, fs FilterSet) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for i := range movies {
		if matchAll(&movies[i], fs) {
			out = append(out, movies[i])
		}
	}
	return out
}

// filterByActor 演员条件与其余条件分开判定
func filterByActor(movies []model.Movie, fs FilterSet, actor string) []model.Movie {
	out := make([]model.Movie, 0)
	for i := range movies {
		if !matchAll(&movies[i], fs) {
			continue
		}
		if matchField(&movies[i], "actor", actor) {
			out = append(out, movies[i])
		}
	}
	return out
}

// searchByTitle 宽松标题搜索
// 完全一致的排最前，其余按标题长度升序（短标题视为更特定的命中）
func searchByTitle(movies []model.Movie, title string) []model.Movie {
	out := make([]model.Movie, 0)
	for i := range movies {
		if containsFold(movies[i].Title, title) {
			out = append(out, movies[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		exactI := strings.EqualFold(out[i].Title, title)
		exactJ := strings.EqualFold(out[j].Title, title)
		if exactI != exactJ {
			return exactI
		}
		return len(out[i].Title) < len(out[j].Title)
	})

	return out
}
