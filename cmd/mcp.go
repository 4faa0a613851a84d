package cmd

import (
	"yqhp/calculator/internal/mcptool"

	"github.com/spf13/cobra"
)

// mcpCmd 是 mcp 子命令
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "以 MCP 工具服务运行 (stdio)",
	Long: `通过标准输入输出提供 MCP 工具 "calculate"。
参数 expression 为表达式，mode 可选 raw（默认）或 display。
stdout 专用于协议通信，日志统一写到 stderr。`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		annotationStdio: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		return mcptool.ServeStdio(mcptool.Config{
			Name:      cfg.MCP.Name,
			Version:   cfg.MCP.Version,
			Precision: cfg.Display.Precision,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
