package cmd

import (
	"yqhp/calculator/internal/display"
	"yqhp/calculator/internal/tui"

	"github.com/spf13/cobra"
)

// tuiCmd 是 tui 子命令
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "交互式终端计算器",
	Long: `启动交互式终端计算器。回车求值，↑/↓ 调出历史，ctrl+l 清空历史，esc 退出。
输入支持面板符号 × ÷ − √ π，% 表示除以 100。`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		annotationStdio: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		pad := display.NewPad(cfg.Display.Precision, cfg.Display.HistorySize)
		return tui.Run(pad)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
