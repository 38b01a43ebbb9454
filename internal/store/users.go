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

// UserStore 是用户集合的仓储。
type UserStore struct {
	coll *mongo.Collection
}

// UserUpdate 描述一次用户部分更新。
//
// nil 表示请求中未出现该字段、保持原值；非 nil 表示用请求值覆盖。
// 用指针区分“缺省”与“显式置空”，空字符串也会照常写入。
type UserUpdate struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// Create 插入用户并回填生成的 ID。
//
// 邮箱重复由唯一索引报 duplicate key，映射为 ErrConflict。
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = model.DefaultRole
	}

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List 返回全部用户。集合为空时返回空切片而不是 nil。
func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// Get 按 ID 查询单个用户。
func (s *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Update 对用户做部分更新，只覆盖 upd 中非 nil 的字段。
func (s *UserStore) Update(ctx context.Context, id string, upd UserUpdate) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": userSetDoc(upd)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 按 ID 删除用户。重复删除同一 ID 会得到 ErrNotFound。
func (s *UserStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// userSetDoc 由非 nil 字段构造 $set 文档，并刷新 updatedAt。
func userSetDoc(upd UserUpdate) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.FullName != nil {
		set["fullName"] = *upd.FullName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.PasswordHash != nil {
		set["passwordHash"] = *upd.PasswordHash
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	return set
}
