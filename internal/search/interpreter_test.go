package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseExtractors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  FilterSet
	}{
		{
			name:  "genre with connector",
			query: "genre is comedy",
			want:  FilterSet{"genre": "comedy"},
		},
		{
			name:  "genre plural",
			query: "genres are action",
			want:  FilterSet{"genre": "action"},
		},
		{
			name:  "genre with colon",
			query: "genre: horror",
			want:  FilterSet{"genre": "horror"},
		},
		{
			name:  "title with called",
			query: "movie called The Matrix",
			want:  FilterSet{"title": "The Matrix"},
		},
		{
			name:  "title quoted",
			query: `film titled "Blade Runner 2049"`,
			want:  FilterSet{"title": "Blade Runner 2049"},
		},
		{
			name:  "director",
			query: "director is Christopher Nolan",
			want:  FilterSet{"director": "Christopher Nolan"},
		},
		{
			name:  "actor",
			query: "actor Tom Hanks",
			want:  FilterSet{"actor": "Tom Hanks"},
		},
		{
			name:  "actor via star trigger",
			query: "star is Meryl Streep",
			want:  FilterSet{"actor": "Meryl Streep"},
		},
		{
			name:  "year via released",
			query: "released 2014",
			want:  FilterSet{"year": "2014"},
		},
		{
			name:  "language via in",
			query: "in French",
			want:  FilterSet{"language": "French"},
		},
		{
			name:  "plot keyword via about",
			query: "about space travel",
			want:  FilterSet{"plot_keyword": "space travel"},
		},
		{
			name:  "multiple fields in one query",
			query: "year 2014 genre drama",
			want:  FilterSet{"genre": "drama", "year": "2014"},
		},
		{
			name:  "word connector not eaten from capture",
			query: "director Isabelle Huppert",
			want:  FilterSet{"director": "Isabelle Huppert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

// "from" 同时是 year 和 country 的触发词，年份查询只有 year 命中，
// 国家查询只有 country 命中
func TestParseFromAmbiguity(t *testing.T) {
	got := Parse("from 2010")
	want := FilterSet{"year": "2010"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(from 2010) mismatch (-want +got):\n%s", diff)
	}

	got = Parse("from France")
	want = FilterSet{"country": "France"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(from France) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		query string
		want  FilterSet
	}{
		// 类型词表命中 -> 按类型过滤
		{"thriller", FilterSet{"genre": "thriller"}},
		{"Sci-Fi", FilterSet{"genre": "Sci-Fi"}},
		// 其余整句当标题
		{"Whiplash", FilterSet{"title": "Whiplash"}},
		{"The Godfather", FilterSet{"title": "The Godfather"}},
		// 空查询返回空集
		{"", FilterSet{}},
		{"   ", FilterSet{}},
	}

	for _, tt := range tests {
		got := Parse(tt.query)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}
