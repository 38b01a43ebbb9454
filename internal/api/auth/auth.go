package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/password"
	"github.com/PelvinDreams/auth-api/internal/store"
)

// UserStore 是注册流程需要的仓储能力。
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
}

// Handler 提供注册接口。
//
// 当前没有登录/会话签发流程：凭据只做哈希与存储。
type Handler struct {
	users  UserStore
	logger *slog.Logger
}

// NewHandler 创建 Auth Handler。
func NewHandler(users UserStore, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

type signupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup 创建新用户。
//
// POST /api/auth/signup
//
// 邮箱统一小写去空白后入库；重复邮箱由 users.email 唯一索引
// 报冲突，这里不做先查后写。
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	hash, err := password.Hash(req.Password)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("hash password failed", slog.String("email", email), slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	user := model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         model.DefaultRole,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		if h.logger != nil {
			h.logger.Error("create user failed", slog.String("email", email), slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	if h.logger != nil {
		h.logger.Info("user signed up", slog.String("email", email))
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created", "id": user.ID.Hex()})
}
