package model

import (
	"time"

	"github.com/lib/pq"
)

// Movie 电影模型（固定片库条目）
// 多值字段（类型/关键词/演员/插曲）在库中存为 text[]，
// 源数据里的竖线分隔形式在导入时拆分为数组
type Movie struct {
	ID            string         `json:"id" db:"id" gorm:"primaryKey"`
	Title         string         `json:"title" db:"title"`
	Duration      int            `json:"duration" db:"duration"` // 片长（分钟）
	PlotKeywords  pq.StringArray `json:"plot_keywords" db:"plot_keywords" gorm:"type:text[]"`
	Language      string         `json:"language" db:"language"`
	Country       string         `json:"country" db:"country"`
	Budget        int64          `json:"budget" db:"budget"`
	ReleaseYear   int            `json:"release_year" db:"release_year" gorm:"index"`
	Rating        float64        `json:"rating" db:"rating" gorm:"index"` // 0.0 - 10.0
	ContentRating string         `json:"content_rating" db:"content_rating"`
	Genres        pq.StringArray `json:"genres" db:"genres" gorm:"type:text[]"`
	Producer      string         `json:"producer" db:"producer"`
	Awards        string         `json:"awards" db:"awards"`
	Director      string         `json:"director" db:"director"`
	Actors        pq.StringArray `json:"actors" db:"actors" gorm:"type:text[]"`
	Reviewer      string         `json:"reviewer" db:"reviewer"` // 主评人
	Songs         pq.StringArray `json:"songs" db:"songs" gorm:"type:text[]"`
	Poster        string         `json:"poster,omitempty" db:"poster"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
