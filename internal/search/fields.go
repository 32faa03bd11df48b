package search

import (
	"strconv"
	"strings"

	"github.com/user/kinobase/internal/model"
)

// FilterSet 结构化过滤条件：字段名 -> 必须包含的子串
// 空值表示该条件不生效
type FilterSet map[string]string

// movieField 可过滤字段的取值方式
// 标量字段按字符串化后的子串匹配，多值字段按任一元素的子串匹配
type movieField struct {
	multi  bool
	value  func(m *model.Movie) string
	values func(m *model.Movie) []string
}

// movieFields 全部可过滤字段
// 过滤条件里出现未注册的字段名时，该条件视为永不匹配
var movieFields = map[string]movieField{
	"title":          {value: func(m *model.Movie) string { return m.Title }},
	"duration":       {value: func(m *model.Movie) string { return strconv.Itoa(m.Duration) }},
	"language":       {value: func(m *model.Movie) string { return m.Language }},
	"country":        {value: func(m *model.Movie) string { return m.Country }},
	"budget":         {value: func(m *model.Movie) string { return strconv.FormatInt(m.Budget, 10) }},
	"year":           {value: func(m *model.Movie) string { return strconv.Itoa(m.ReleaseYear) }},
	"rating":         {value: func(m *model.Movie) string { return strconv.FormatFloat(m.Rating, 'f', 1, 64) }},
	"content_rating": {value: func(m *model.Movie) string { return m.ContentRating }},
	"producer":       {value: func(m *model.Movie) string { return m.Producer }},
	"award":          {value: func(m *model.Movie) string { return m.Awards }},
	"director":       {value: func(m *model.Movie) string { return m.Director }},
	"reviewer":       {value: func(m *model.Movie) string { return m.Reviewer }},
	"genre":          {multi: true, values: func(m *model.Movie) []string { return m.Genres }},
	"plot_keyword":   {multi: true, values: func(m *model.Movie) []string { return m.PlotKeywords }},
	"actor":          {multi: true, values: func(m *model.Movie) []string { return m.Actors }},
	"song":           {multi: true, values: func(m *model.Movie) []string { return m.Songs }},
}

// matchField 单字段匹配规则
func matchField(m *model.Movie, name, want string) bool {
	if want == "" {
		return true
	}
	f, ok := movieFields[name]
	if !ok {
		return false
	}
	if f.multi {
		for _, v := range f.values(m) {
			if containsFold(v, want) {
				return true
			}
		}
		return false
	}
	return containsFold(f.value(m), want)
}

// matchAll 所有过滤条件按 AND 组合
func matchAll(m *model.Movie, fs FilterSet) bool {
	for name, want := range fs {
		if !matchField(m, name, want) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
