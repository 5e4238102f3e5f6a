package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	appConfig "pulse/config"
)

// 日志文件配置
const (
	LogFileName   = "pulse.log"
	MaxLogSizeMB  = 10 // 单个文件上限
	MaxLogBackups = 5  // 保留最近5个日志文件
)

var (
	isDevMode    bool
	loggerWriter io.Writer
	fileWriter   *lumberjack.Logger

	// 退出流程和 main 的 defer 都会调用 CloseLogger
	closeLoggerOnce sync.Once

	// MLog 应用层日志器
	MLog = slog.Default()
)

// PrefixHandler 为日志添加前缀的 Handler
type PrefixHandler struct {
	handler slog.Handler
	prefix  string
}

func NewPrefixHandler(w io.Writer, prefix string, opts *slog.HandlerOptions) *PrefixHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}
	return &PrefixHandler{
		handler: slog.NewTextHandler(w, opts),
		prefix:  prefix,
	}
}

func (h *PrefixHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *PrefixHandler) Handle(ctx context.Context, r slog.Record) error {
	r.Message = h.prefix + r.Message
	return h.handler.Handle(ctx, r)
}

func (h *PrefixHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrefixHandler{
		handler: h.handler.WithAttrs(attrs),
		prefix:  h.prefix,
	}
}

func (h *PrefixHandler) WithGroup(name string) slog.Handler {
	return &PrefixHandler{
		handler: h.handler.WithGroup(name),
		prefix:  h.prefix,
	}
}

// parseLevel 配置中的级别名转换为 slog 级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger 初始化日志系统
// devMode: 开发模式仅输出到控制台并使用 DEBUG 级别,否则同时写入轮转日志文件
func InitLogger(devMode bool, level string) error {
	isDevMode = devMode

	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if isDevMode {
		opts.Level = slog.LevelDebug
		loggerWriter = os.Stdout
	} else {
		logsDir, err := appConfig.GetLogsDir()
		if err != nil {
			return fmt.Errorf("创建日志目录失败: %w", err)
		}

		fileWriter = &lumberjack.Logger{
			Filename:   filepath.Join(logsDir, LogFileName),
			MaxSize:    MaxLogSizeMB,
			MaxBackups: MaxLogBackups,
			LocalTime:  true,
		}
		loggerWriter = io.MultiWriter(os.Stdout, fileWriter)
	}

	MLog = slog.New(NewPrefixHandler(loggerWriter, "[PULSE] ", opts))
	slog.SetDefault(MLog)

	if isDevMode {
		MLog.Info("日志模式: 开发模式(仅控制台输出)")
	} else {
		MLog.Info("日志模式: 生产模式(文件+控制台输出)", "path", fileWriter.Filename, "level", opts.Level)
	}
	return nil
}

// CloseLogger 关闭日志系统
func CloseLogger() {
	closeLoggerOnce.Do(func() {
		if fileWriter != nil {
			MLog.Info("关闭日志文件")
			fileWriter.Close()
			fileWriter = nil
		}
	})
}

// ConfigureSocketLogger socket 包使用 logrus,输出到与应用日志相同的位置
func ConfigureSocketLogger(level string) {
	logrus.SetOutput(loggerWriter)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil || isDevMode {
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)
	MLog.Debug("socket 日志已配置", "level", lvl.String())
}
