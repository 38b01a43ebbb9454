package api

import (
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/metrics"
	"github.com/PelvinDreams/auth-api/internal/store"
)

// createTaskRequest 创建任务的请求参数。
type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UserID      string `json:"userId" binding:"required"`
}

// updateTaskRequest 更新任务的请求参数，指针语义同 updateUserRequest。
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	UserID      *string `json:"userId"`
}

// handleCreateTask 处理创建任务的请求。
//
// POST /api/tasks
//
// 不校验 userId 指向的用户是否存在。
func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.DefaultTaskStatus
	}
	task := model.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      status,
		UserID:      req.UserID,
	}
	if err := s.tasks.Create(c.Request.Context(), &task); err != nil {
		s.logger.Error("create task failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create task failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "task created", "id": task.ID.Hex()})
}

// handleListTasks 返回全部任务。
//
// GET /api/tasks
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list tasks failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list tasks failed"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// handleGetTask 按 ID 返回单个任务。
//
// GET /api/tasks/:id
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		s.logger.Error("get task failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get task failed"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTask 对任务做部分更新，只覆盖请求中出现的字段。
//
// PUT /api/tasks/:id
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		UserID:      req.UserID,
	}
	if err := s.tasks.Update(c.Request.Context(), c.Param("id"), upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		s.logger.Error("update task failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update task failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

// handleDeleteTask 按 ID 删除任务。
//
// DELETE /api/tasks/:id
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		s.logger.Error("delete task failed", slog.String("error", err.Error()))
		metrics.StoreErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete task failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
