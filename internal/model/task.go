package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task 表示属于某个用户的待办任务。
//
// UserID 保存所属用户的 _id 十六进制字符串。本层不校验该用户
// 是否真实存在（无外键约束），删除用户也不会级联删除其任务。
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`                       // 标题（必填）
	Description string             `bson:"description,omitempty" json:"description"` // 描述（可选）
	Status      string             `bson:"status" json:"status"`                     // 状态，默认 "Pending"
	UserID      string             `bson:"userId" json:"userId"`                     // 所属用户 ID
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`               // 创建时间
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`               // 更新时间
}

// DefaultTaskStatus 是创建任务时未指定状态使用的默认值。
const DefaultTaskStatus = "Pending"
