// Package logger 封装 zap，提供全局日志实例、文件滚动输出和 fiber 请求日志中间件
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once

// Config 日志配置
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
}

// Init 初始化全局日志，只有第一次调用生效
func Init(cfg *Config) {
	once.Do(func() {
		Set(New(cfg))
	})
}

// Set 替换全局日志实例
func Set(l *zap.Logger) {
	zap.ReplaceGlobals(l)
}

// New 创建日志实例，nil 配置输出 info 级别控制台日志到 stdout
func New(cfg *Config) *zap.Logger {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *Config, stdout, stderr io.Writer) *zap.Logger {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "console", Output: "stdout"}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.NewMultiWriteSyncer(writers(cfg, stdout, stderr)...)
	core := zapcore.NewCore(encoder, sink, ParseLevel(cfg.Level))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// writers 按 Output 选择输出目标；file 需要 FilePath
func writers(cfg *Config, stdout, stderr io.Writer) []zapcore.WriteSyncer {
	var ws []zapcore.WriteSyncer
	output := strings.ToLower(cfg.Output)

	switch output {
	case "", "stdout", "both":
		ws = append(ws, zapcore.AddSync(stdout))
	case "stderr":
		ws = append(ws, zapcore.AddSync(stderr))
	}

	if (output == "file" || output == "both") && cfg.FilePath != "" {
		ws = append(ws, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}))
	}
	return ws
}

// ParseLevel 不区分大小写，未知级别按 info 处理
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil || level > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return level
}

// L 获取全局日志实例，未初始化时为 Nop
func L() *zap.Logger {
	return zap.L()
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

// Sync 刷新缓冲
func Sync() {
	_ = L().Sync()
}
