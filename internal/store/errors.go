package store

import "errors"

// 仓储层的哨兵错误。handler 用 errors.Is 匹配并映射为状态码，
// 其余错误一律视为内部错误。
var (
	// ErrNotFound 表示按 ID 查不到记录（包括格式非法的 ID）。
	ErrNotFound = errors.New("record not found")
	// ErrConflict 表示唯一键冲突（由 Mongo 唯一索引报出）。
	ErrConflict = errors.New("duplicate key")
)
