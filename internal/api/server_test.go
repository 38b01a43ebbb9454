package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/PelvinDreams/auth-api/internal/api/auth"
	"github.com/PelvinDreams/auth-api/internal/config"
	"github.com/PelvinDreams/auth-api/internal/model"
	"github.com/PelvinDreams/auth-api/internal/pkg/metrics"
	"github.com/PelvinDreams/auth-api/internal/store"
)

type mockUserStore struct {
	createFunc func(ctx context.Context, u *model.User) error
	listFunc   func(ctx context.Context) ([]model.User, error)
	getFunc    func(ctx context.Context, id string) (*model.User, error)
	updateFunc func(ctx context.Context, id string, upd store.UserUpdate) error
	deleteFunc func(ctx context.Context, id string) error

	createCalls int
	lastCreated *model.User
	lastUpdate  store.UserUpdate
}

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	m.createCalls++
	m.lastCreated = u
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []model.User{}, nil
}

func (m *mockUserStore) Get(ctx context.Context, id string) (*model.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Update(ctx context.Context, id string, upd store.UserUpdate) error {
	m.lastUpdate = upd
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTaskStore struct {
	createFunc func(ctx context.Context, task *model.Task) error
	listFunc   func(ctx context.Context) ([]model.Task, error)
	getFunc    func(ctx context.Context, id string) (*model.Task, error)
	updateFunc func(ctx context.Context, id string, upd store.TaskUpdate) error
	deleteFunc func(ctx context.Context, id string) error

	createCalls int
	lastCreated *model.Task
	lastUpdate  store.TaskUpdate
}

func (m *mockTaskStore) Create(ctx context.Context, task *model.Task) error {
	m.createCalls++
	m.lastCreated = task
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) List(ctx context.Context) ([]model.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []model.Task{}, nil
}

func (m *mockTaskStore) Get(ctx context.Context, id string) (*model.Task, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTaskStore) Update(ctx context.Context, id string, upd store.TaskUpdate) error {
	m.lastUpdate = upd
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// newTestServer 装配一个不连数据库的 Server，路由与生产一致。
func newTestServer(users UserStore, tasks TaskStore) *Server {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	s := &Server{
		cfg:    &config.Config{},
		logger: logger,
		users:  users,
		tasks:  tasks,
		router: r,
		auth:   auth.NewHandler(users, logger),
	}
	s.registerRoutes()
	return s
}
