package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/kinobase/internal/middleware"
	"github.com/user/kinobase/internal/model"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required,username"`
	Password string `form:"password" json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginPage 登录页
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录",
		"Redirect": c.Query("redirect"),
	}))
}

// RegisterPage 注册页
func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{"Title": "注册"}))
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", h.RenderData(c, gin.H{
			"Title": "注册",
			"Error": "请检查邮箱、用户名（3-20 位字母/数字/下划线）和密码（至少 8 位）",
		}))
		return
	}

	if existing, _ := h.Repos.User.FindByEmail(req.Email); existing != nil {
		c.HTML(http.StatusBadRequest, "register.html", h.RenderData(c, gin.H{
			"Title": "注册",
			"Error": "该邮箱已注册",
		}))
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", h.RenderData(c, gin.H{
			"Title": "注册",
			"Error": "注册失败，请稍后重试",
		}))
		return
	}

	h.signIn(c, user)
	c.Redirect(http.StatusFound, "/")
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", h.RenderData(c, gin.H{
			"Title": "登录",
			"Error": "请输入邮箱和密码",
		}))
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil || user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		c.HTML(http.StatusUnauthorized, "login.html", h.RenderData(c, gin.H{
			"Title": "登录",
			"Error": "邮箱或密码错误",
		}))
		return
	}

	h.signIn(c, user)

	redirect := c.PostForm("redirect")
	if redirect == "" || redirect[0] != '/' {
		redirect = "/"
	}
	c.Redirect(http.StatusFound, redirect)
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("userinfo")
	_ = session.Save()

	c.SetCookie("token", "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// signIn 签发 JWT Cookie 并写入 Session 用户信息
func (h *Handler) signIn(c *gin.Context, user *model.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Username, h.Config.AppSecret, h.Config.JWTExpiry)
	if err == nil {
		c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	}

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
	_ = session.Save()
}
