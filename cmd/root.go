// Package cmd 提供 calculator CLI 的命令实现
package cmd

import (
	"fmt"
	"os"

	"yqhp/calculator/internal/config"
	"yqhp/calculator/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// Version 是当前版本号
	Version = "1.0.0"
	// Banner 是版本信息中显示的 ASCII 艺术
	Banner = `
   ┌───────────┐
   │      3.14 │  Calculator %s
   ├──┬──┬──┬──┤
   │ 7│ 8│ 9│ ÷│
   └──┴──┴──┴──┘
`
)

// annotationStdio 标记占用 stdout 的命令，其日志改写到 stderr
const annotationStdio = "stdio"

var (
	// 全局配置
	cfgFile string
	debug   bool
	quiet   bool

	appConfig *config.Config
)

// rootCmd 是根命令
var rootCmd = &cobra.Command{
	Use:   "calculator",
	Short: "表达式计算器",
	Long: `calculator 对中缀算术表达式求值：分词、调度场算法转换为后缀表达式，再用操作数栈求值。
支持 + - * / % ^、阶乘 !、括号、sin cos tan sqrt log ln 以及常量 pi、e。

可作为命令行工具、HTTP 服务、MCP 工具或交互式终端计算器使用。`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

// Execute 执行根命令
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// 全局 flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "静默模式，只输出错误日志")

	// 禁用默认的 completion 命令
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// 自定义版本模板
	rootCmd.SetVersionTemplate(fmt.Sprintf(Banner, Version) + "\n")
}

// initApp 加载配置并初始化日志
func initApp(cmd *cobra.Command, args []string) error {
	overrides := make(map[string]string)
	switch {
	case debug:
		overrides["log.level"] = "debug"
	case quiet:
		overrides["log.level"] = "error"
	}
	if cmd.Annotations[annotationStdio] == "true" {
		overrides["log.output"] = "stderr"
	}

	cfg, err := config.NewLoader().
		WithConfigPath(cfgFile).
		WithCmdArgs(overrides).
		Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	logger.Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", cfgFile),
		zap.String("env", cfg.App.Env),
	)
	return nil
}

// GetRootCmd 返回根命令（用于测试）
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// currentConfig 返回已加载的配置，未加载时返回默认配置
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}
