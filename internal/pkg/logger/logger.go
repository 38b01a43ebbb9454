// Package logger 构造进程统一使用的 slog.Logger。
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// NewDefault 按配置的级别创建输出到 stdout 的文本日志。
//
// 无法识别的级别回落到 info。
func NewDefault(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}
