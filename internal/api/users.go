package api

import (
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/metrics"
	"github.com/PelvinDreams/auth-api/internal/pkg/password"
	"github.com/PelvinDreams/auth-api/internal/store"
)

// createUserRequest 创建用户的请求参数。
type createUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// updateUserRequest 更新用户的请求参数。
//
// 所有字段都是指针：nil 表示请求里没出现该字段，保持原值。
type updateUserRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// handleCreateUser 处理创建用户的请求。
//
// POST /api/users
func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		s.logger.Error("hash password failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = model.DefaultRole
	}
	user := model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		s.logger.Error("create user failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created", "id": user.ID.Hex()})
}

// handleListUsers 返回全部用户。
//
// GET /api/users
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list users failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list users failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// handleGetUser 按 ID 返回单个用户。
//
// GET /api/users/:id
func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		s.logger.Error("get user failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get user failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleUpdateUser 对用户做部分更新，只覆盖请求中出现的字段。
//
// PUT /api/users/:id
func (s *Server) handleUpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.UserUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		upd.Email = &email
	}
	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			s.logger.Error("hash password failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
			return
		}
		upd.PasswordHash = &hash
	}

	if err := s.users.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, store.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		default:
			s.logger.Error("update user failed", slog.String("error", err.Error()))
			metrics.StoreErrorsTotal.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// handleDeleteUser 按 ID 删除用户。
//
// DELETE /api/users/:id
//
// 不级联删除该用户的任务。对已删除的 ID 再次调用得到 404。
func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		s.logger.Error("delete user failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete user failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
