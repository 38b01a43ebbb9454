package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 表示系统用户。
//
// PasswordHash 保存 bcrypt 哈希，JSON 序列化时始终省略，
// 避免把凭据（哪怕是哈希）返回给客户端。
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`   // 姓名（必填）
	Email        string             `bson:"email" json:"email"`         // 邮箱（唯一索引）
	PasswordHash string             `bson:"passwordHash" json:"-"`      // bcrypt 哈希
	Role         string             `bson:"role" json:"role"`           // 角色，默认 "User"
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"` // 创建时间
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"` // 更新时间
}

// DefaultRole 是创建用户时未指定角色使用的默认值。
const DefaultRole = "User"
