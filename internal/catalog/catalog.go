package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/user/kinobase/internal/model"
)

//go:embed movies.json
var moviesJSON []byte

// Load 解析内置片库
// 片库随二进制发布，内存模式直接用它，数据库模式用它做首次灌库
func Load() ([]model.Movie, error) {
	var movies []model.Movie
	if err := json.Unmarshal(moviesJSON, &movies); err != nil {
		return nil, fmt.Errorf("解析内置片库失败: %w", err)
	}
	return movies, nil
}

// MustLoad 内置数据损坏属于构建错误，直接 panic
func MustLoad() []model.Movie {
	movies, err := Load()
	if err != nil {
		panic(err)
	}
	return movies
}
