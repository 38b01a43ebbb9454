package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PelvinDreams/auth-api/internal/api/auth"
	"github.com/PelvinDreams/auth-api/internal/api/middleware"
	"github.com/PelvinDreams/auth-api/internal/config"
	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/metrics"
	"github.com/PelvinDreams/auth-api/internal/store"
)

// Server 封装了 API 服务所需的依赖和路由处理。
//
// 它持有配置、日志、Mongo 仓储与 Gin 路由引擎。所有依赖在
// NewServer 里装配一次，handler 不触碰任何全局状态。
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	st     *store.Store
	users  UserStore
	tasks  TaskStore
	router *gin.Engine
	auth   *auth.Handler
}

// UserStore 是用户仓储的消费端接口，便于测试替换。
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, upd store.UserUpdate) error
	Delete(ctx context.Context, id string) error
}

// TaskStore 是任务仓储的消费端接口。
type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	List(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, id string, upd store.TaskUpdate) error
	Delete(ctx context.Context, id string) error
}

// NewServer 初始化 API 服务器。
//
// 它负责：
// 1. 连接 MongoDB 并验证连通性
// 2. 创建必要的索引（users.email 唯一索引）
// 3. 初始化 Gin 路由引擎
//
// 参数:
//
//	ctx: 上下文
//	cfg: 配置对象
//	logger: 日志记录器
//
// 返回值:
//
//	*Server: 初始化完成的服务器实例
//	error: 初始化失败返回错误
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	st, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureIndexes(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	metrics.InitMetrics()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())

	users := st.Users()
	s := &Server{
		cfg:    cfg,
		logger: logger,
		st:     st,
		users:  users,
		tasks:  st.Tasks(),
		router: r,
		auth:   auth.NewHandler(users, logger),
	}
	s.registerRoutes()
	return s, nil
}

// Router 返回 HTTP 路由处理器。
func (s *Server) Router() http.Handler {
	return s.router
}

// Close 断开数据库连接。
func (s *Server) Close(ctx context.Context) error {
	if s.st == nil {
		return nil
	}
	return s.st.Close(ctx)
}

// registerRoutes 注册所有的 API 路由。
func (s *Server) registerRoutes() {
	// Prometheus metrics 端点
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/healthz", s.handleHealthz)

	api := s.router.Group("/api")
	api.POST("/auth/signup", s.auth.Signup)

	api.POST("/users", s.handleCreateUser)
	api.GET("/users", s.handleListUsers)
	api.GET("/users/:id", s.handleGetUser)
	api.PUT("/users/:id", s.handleUpdateUser)
	api.DELETE("/users/:id", s.handleDeleteUser)

	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks", s.handleListTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
}

func (s *Server) handleHealthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.st == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}
	if err := s.st.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
