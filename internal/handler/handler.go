package handler

import (
	"net/http"
	"regexp"
	"sort"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/kinobase/internal/config"
	"github.com/user/kinobase/internal/middleware"
	"github.com/user/kinobase/internal/model"
	"github.com/user/kinobase/internal/repository"
	"github.com/user/kinobase/internal/service"
	"github.com/user/kinobase/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos         *repository.Repositories
	Config        *config.Config
	SearchService *service.SearchService
	StatsService  *service.StatsService
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 注册用户名校验规则（字母/数字/下划线，3-20 位）
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	}

	return &Handler{
		Repos:         repos,
		Config:        cfg,
		SearchService: service.NewSearchService(repos.Movie, repos.SearchLog),
		StatsService:  service.NewStatsService(repos.Movie),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	for k, v := range data {
		res[k] = v
	}

	return res
}

// ==================== 公开页面 ====================

// Home 首页：热搜词 + 高分片单
func (h *Handler) Home(c *gin.Context) {
	trending, _ := h.Repos.SearchLog.GetTrending(24, 10)

	movies, err := h.Repos.Movie.All()
	if err != nil {
		movies = nil // 浏览页容错降级，片库读不到就展示空列表
	}
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
	if len(movies) > 12 {
		movies = movies[:12]
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":    h.Config.SiteName + " - 电影片库",
		"Trending": trending,
		"Movies":   movies,
	}))
}

// Search 搜索结果页
func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	results := h.SearchService.Search(keyword, middleware.GetUserIDPtr(c), utils.HashIP(c.ClientIP()))
	parsed := h.SearchService.ParseQuery(keyword)

	c.HTML(http.StatusOK, "search.html", h.RenderData(c, gin.H{
		"Title":   keyword + " - 搜索结果",
		"Keyword": keyword,
		"Parsed":  parsed,
		"Results": results,
	}))
}

// Movie 电影详情页
func (h *Handler) Movie(c *gin.Context) {
	id := c.Param("id")
	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil || movie == nil {
		c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{"Title": "未找到"}))
		return
	}

	reviews, _ := h.Repos.Review.ListByMovie(id, 50)

	data := gin.H{
		"Title":   movie.Title,
		"Movie":   movie,
		"Reviews": reviews,
	}

	if userID := middleware.GetUserID(c); userID != 0 {
		isFav, _ := h.Repos.Favorite.IsFavorited(userID, id)
		data["IsFavorited"] = isFav
		if own, _ := h.Repos.Review.GetByUserAndMovie(userID, id); own != nil {
			data["OwnReview"] = own
		}
	}

	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, data))
}

// Favorites 收藏页（需登录）
func (h *Handler) Favorites(c *gin.Context) {
	userID := middleware.GetUserID(c)
	favorites, _ := h.Repos.Favorite.ListByUser(userID, 100, 0)
	count, _ := h.Repos.Favorite.CountByUser(userID)

	c.HTML(http.StatusOK, "favorites.html", h.RenderData(c, gin.H{
		"Title":     "我的收藏",
		"Favorites": favorites,
		"Count":     count,
	}))
}

// NotFound 404 页面
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{"Title": "未找到"}))
}
