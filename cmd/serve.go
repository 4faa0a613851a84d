package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"yqhp/calculator/internal/logger"
	"yqhp/calculator/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddress string

// serveCmd 是 serve 子命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 计算服务",
	Long: `启动 REST API 服务。

接口：
  GET  /health                 健康检查
  POST /api/v1/calc/evaluate   求值器语义 {"expression": "2+3*4"}
  POST /api/v1/calc/display    面板语义 {"display": "50%", "precision": 6}
  POST /api/v1/calc/keys       按键回放 {"keys": ["2", "+", "3", "="]}
  GET  /api/v1/calc/functions  支持的运算符、函数和常量
  GET  /api/v1/calc/stats      求值统计与延迟分位数`,
	Example: `  calculator serve
  calculator serve --address :9000
  CALC_SERVER_ENABLE_CORS=true calculator serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "监听地址 (覆盖配置)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	if serveAddress != "" {
		cfg.Server.Address = serveAddress
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, nil)
	logger.Info("starting calculator server",
		zap.String("address", cfg.Server.Address),
		zap.Bool("cors", cfg.Server.EnableCORS),
	)

	if err := srv.StartWithContext(ctx); err != nil {
		return fmt.Errorf("服务运行失败: %w", err)
	}
	logger.Info("calculator server stopped")
	return nil
}
