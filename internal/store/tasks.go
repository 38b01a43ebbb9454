package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PelvinDreams/auth-api/internal/model"
)

// TaskStore 是任务集合的仓储。
type TaskStore struct {
	coll *mongo.Collection
}

// TaskUpdate 描述一次任务部分更新，语义同 UserUpdate。
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	UserID      *string
}

// Create 插入任务并回填生成的 ID。
//
// 不校验 UserID 指向的用户是否存在。
func (s *TaskStore) Create(ctx context.Context, t *model.Task) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = model.DefaultTaskStatus
	}

	res, err := s.coll.InsertOne(ctx, t)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List 返回全部任务。集合为空时返回空切片而不是 nil。
func (s *TaskStore) List(ctx context.Context) ([]model.Task, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	tasks := []model.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// Get 按 ID 查询单个任务。
func (s *TaskStore) Get(ctx context.Context, id string) (*model.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var t model.Task
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

// Update 对任务做部分更新，只覆盖 upd 中非 nil 的字段。
func (s *TaskStore) Update(ctx context.Context, id string, upd TaskUpdate) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": taskSetDoc(upd)})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 按 ID 删除任务。
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// taskSetDoc 由非 nil 字段构造 $set 文档，并刷新 updatedAt。
func taskSetDoc(upd TaskUpdate) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.UserID != nil {
		set["userId"] = *upd.UserID
	}
	return set
}
