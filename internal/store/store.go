package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store 持有 Mongo 客户端与数据库句柄，是所有仓储的构造入口。
//
// 连接在进程启动时建立、在收到退出信号时断开，
// 不在请求路径上做任何连接管理。
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect 连接 MongoDB 并用 Ping 验证连通性。
//
// 参数:
//
//	ctx: 上下文（调用方应设置超时）
//	uri: 连接字符串
//	dbName: 数据库名
//
// 返回值:
//
//	*Store: 已验证连通的 Store
//	error: 连接或 Ping 失败返回错误
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes 创建必要的索引。
//
// users.email 的唯一索引是邮箱冲突检测的唯一来源：
// 插入重复邮箱由 Mongo 报 duplicate key，这里不做先查后写。
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure email index: %w", err)
	}
	return nil
}

// Ping 检查数据库连通性，供健康检查使用。
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Users 返回用户仓储。
func (s *Store) Users() *UserStore {
	return &UserStore{coll: s.db.Collection(usersCollection)}
}

// Tasks 返回任务仓储。
func (s *Store) Tasks() *TaskStore {
	return &TaskStore{coll: s.db.Collection(tasksCollection)}
}

// Close 断开 Mongo 连接。
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// parseID 把路径参数解析为 ObjectID。
//
// 格式非法的 ID 与不存在的 ID 对外表现一致（都映射为 404），
// 所以这里直接返回 ErrNotFound 而不是单独的校验错误。
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
