// Package logging 创建各入口共用的 zerolog 控制台日志
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger 创建控制台日志
//
// 参数：
//   - level: 日志级别名称（trace/debug/info/warn/error），无法解析时使用 info
//   - verbose: 为 true 时至少输出 debug 级别
//   - out: 输出目标，nil 时为标准错误
func NewLogger(level string, verbose bool, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	if out == nil {
		out = os.Stderr
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}
