package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/kinobase/internal/handler"
	"github.com/user/kinobase/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开页面 ====================
	pages := r.Group("")
	pages.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		pages.GET("/", h.Home)
		pages.GET("/search", h.Search)
		pages.GET("/movie/:id", h.Movie)
	}

	// ==================== 认证页面 ====================
	auth := r.Group("/auth")
	{
		auth.GET("/login", h.LoginPage)
		auth.POST("/login", h.Login)
		auth.GET("/register", h.RegisterPage)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
	}

	// ==================== 用户中心（需要登录）====================
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		dashboard.GET("/favorites", h.Favorites)
	}

	// ==================== JSON API ====================
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		api.GET("/movies", h.ListMovies)
		api.GET("/movies/search", h.SearchMovies)
		api.GET("/movies/:id", h.GetMovie)
		api.GET("/movies/:id/reviews", h.ListReviews)
		api.POST("/movies/:id/reviews", h.UpsertReview)
		api.DELETE("/movies/:id/reviews", h.DeleteReview)

		api.GET("/favorites", h.ListFavorites)
		api.POST("/favorites/:id", h.AddFavorite)
		api.DELETE("/favorites/:id", h.RemoveFavorite)

		api.GET("/stats", h.GetStats)
		api.GET("/trending", h.GetTrending)
	}

	r.NoRoute(h.NotFound)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		"stars": func(rating int) string {
			if rating < 0 || rating > 5 {
				return ""
			}
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},
		"budget": func(b int64) string {
			switch {
			case b >= 1_000_000:
				return fmt.Sprintf("$%.0fM", float64(b)/1_000_000)
			case b > 0:
				return fmt.Sprintf("$%d", b)
			default:
				return "未知"
			}
		},
	}

	// 注册所有页面模板
	pages := []string{
		"home", "search", "movie", "favorites",
		"login", "register", "404",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
