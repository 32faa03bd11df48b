package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/kinobase/internal/middleware"
	"github.com/user/kinobase/internal/model"
	"github.com/user/kinobase/internal/search"
	"github.com/user/kinobase/internal/utils"
)

// filterParams 结构化过滤支持的查询参数，名字与过滤字段一一对应
var filterParams = []string{
	"title", "genre", "director", "actor", "year",
	"country", "language", "plot_keyword", "content_rating",
}

// ListMovies 结构化过滤：GET /api/movies?genre=drama&year=2014
func (h *Handler) ListMovies(c *gin.Context) {
	fs := make(search.FilterSet)
	for _, p := range filterParams {
		if v := c.Query(p); v != "" {
			fs[p] = v
		}
	}
	utils.Success(c, h.SearchService.Filter(fs))
}

// SearchMovies 自由文本搜索：GET /api/movies/search?q=actor+tom+hanks
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.BadRequest(c, "缺少查询参数 q")
		return
	}

	results := h.SearchService.Search(keyword, middleware.GetUserIDPtr(c), utils.HashIP(c.ClientIP()))
	utils.Success(c, gin.H{
		"keyword": keyword,
		"parsed":  h.SearchService.ParseQuery(keyword),
		"results": results,
	})
}

// GetMovie 电影详情：GET /api/movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	movie, err := h.Repos.Movie.FindByID(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, movie)
}

// GetStats 片库统计：GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	utils.Success(c, h.StatsService.Stats())
}

// GetTrending 热搜关键词：GET /api/trending
func (h *Handler) GetTrending(c *gin.Context) {
	trending, err := h.Repos.SearchLog.GetTrending(24, 10)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, trending)
}

// ==================== 收藏 ====================

// AddFavorite 添加收藏：POST /api/favorites/:id
func (h *Handler) AddFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	movieID := c.Param("id")
	movie, err := h.Repos.Movie.FindByID(movieID)
	if err != nil || movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	if err := h.Repos.Favorite.Add(userID, movieID); err != nil {
		utils.InternalServerError(c, "收藏失败")
		return
	}
	utils.Success(c, gin.H{"favorited": true})
}

// RemoveFavorite 取消收藏：DELETE /api/favorites/:id
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	if err := h.Repos.Favorite.Remove(userID, c.Param("id")); err != nil {
		utils.InternalServerError(c, "取消收藏失败")
		return
	}
	utils.Success(c, gin.H{"favorited": false})
}

// ListFavorites 收藏列表：GET /api/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	favorites, err := h.Repos.Favorite.ListByUser(userID, 100, 0)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, favorites)
}

// ==================== 影评 ====================

// ReviewRequest 影评请求
type ReviewRequest struct {
	Rating  int    `form:"rating" json:"rating" binding:"required,min=1,max=5"`
	Comment string `form:"comment" json:"comment" binding:"max=2000"`
}

// UpsertReview 写影评（已有则编辑）：POST /api/movies/:id/reviews
func (h *Handler) UpsertReview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, "评分需在 1-5 星之间，短评不超过 2000 字")
		return
	}

	movieID := c.Param("id")
	movie, err := h.Repos.Movie.FindByID(movieID)
	if err != nil || movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	review := &model.Review{
		UserID:  userID,
		MovieID: movieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.Repos.Review.Upsert(review); err != nil {
		utils.InternalServerError(c, "保存影评失败")
		return
	}
	utils.Success(c, review)
}

// DeleteReview 删除自己的影评：DELETE /api/movies/:id/reviews
func (h *Handler) DeleteReview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	if err := h.Repos.Review.Delete(userID, c.Param("id")); err != nil {
		utils.InternalServerError(c, "删除影评失败")
		return
	}
	utils.Success(c, nil)
}

// ListReviews 电影影评列表：GET /api/movies/:id/reviews
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.Repos.Review.ListByMovie(c.Param("id"), 50)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, reviews)
}
