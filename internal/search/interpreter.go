package search

import (
	"regexp"
	"strings"
)

// extractor 一条抽取规则：触发词命中后，跳过可选的连接词，
// 捕获其后一段允许字符的连续串作为该字段的过滤值
type extractor struct {
	field string
	re    *regexp.Regexp
}

// newExtractor 把 (字段, 触发词, 连接词, 捕获字符集) 编译成抽取规则
// 连接词里的单词需要词边界（避免把 "Isabelle" 的开头当成 "is"），
// "=" 和 ":" 则可以紧跟触发词
func newExtractor(field, triggers, connectors, capture string) extractor {
	pattern := `(?i)\b(?:` + triggers + `)\b(?:\s+(?:` + connectors + `)\b|\s*[=:])?\s*['"]?(` + capture + `)`
	return extractor{
		field: field,
		re:    regexp.MustCompile(pattern),
	}
}

// extractors 抽取规则表，逐条独立运行，一条查询可以同时命中多个字段
// 顺序固定：year 在 country 之前，共享触发词 "from" 时两者都可能写入，
// 先后关系决定了歧义时的表现，调整顺序会改变结果
var extractors = []extractor{
	newExtractor("genre", `genres?`, `is|are`, `[a-zA-Z ]+`),
	newExtractor("title", `movie|film|title`, `name|called|titled|is`, `[a-zA-Z0-9' ]+`),
	newExtractor("director", `director`, `is`, `[a-zA-Z ]+`),
	newExtractor("actor", `actor|star|cast`, `is`, `[a-zA-Z ]+`),
	newExtractor("year", `year|released|from`, `is`, `[0-9]{4}`),
	newExtractor("country", `country|from`, `is`, `[a-zA-Z ]+`),
	newExtractor("language", `language|in`, `is`, `[a-zA-Z ]+`),
	newExtractor("plot_keyword", `keyword|about|plot|theme`, `is`, `[a-zA-Z ]+`),
}

// genreVocabulary 兜底分类用的类型词表
var genreVocabulary = []string{
	"action", "comedy", "drama", "horror", "sci-fi",
	"thriller", "romance", "adventure", "fantasy",
}

// Parse 把自由文本查询解析为结构化过滤条件
// 纯函数，任何输入都不报错，解析不出结果时返回空集或兜底条件
func Parse(query string) FilterSet {
	fs := make(FilterSet)

	for _, ex := range extractors {
		m := ex.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		val := strings.Trim(m[1], ` '"`)
		if val != "" {
			fs[ex.field] = val
		}
	}

	// 兜底：没有任何规则命中时，把整句当成单一条件
	// 含类型词表里的词就按类型过滤，否则按标题过滤
	if len(fs) == 0 {
		q := strings.TrimSpace(query)
		if q != "" {
			if containsGenreWord(q) {
				fs["genre"] = q
			} else {
				fs["title"] = q
			}
		}
	}

	return fs
}

func containsGenreWord(q string) bool {
	lower := strings.ToLower(q)
	for _, g := range genreVocabulary {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}
