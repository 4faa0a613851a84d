package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"yqhp/calculator/internal/display"
	"yqhp/calculator/internal/expression"

	"github.com/spf13/cobra"
)

var (
	// eval 命令的 flags
	evalDisplay   bool
	evalRPN       bool
	evalPrecision int
)

// errSomeFailed 批量求值时有表达式失败
var errSomeFailed = errors.New("some expressions could not be evaluated")

// evalCmd 是 eval 子命令
var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "计算表达式",
	Long: `计算一个表达式并输出结果。多个参数用空格拼接为一个表达式。
不带参数时从标准输入逐行读取表达式，每行输出一个结果。

默认使用求值器语义（% 为取余，错误以非零退出码返回）；
--display 使用计算器面板语义（× ÷ − √ π 可用，% 表示除以 100，错误显示为 Error）。`,
	Example: `  calculator eval "2+3*4"
  calculator eval --rpn "(2+3)*4"
  calculator eval --display "50%"
  calculator eval --precision 6 "1/3"
  printf '1+1\n2^10\n' | calculator eval`,
	Args: cobra.ArbitraryArgs,
	Annotations: map[string]string{
		annotationStdio: "true",
	},
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVar(&evalDisplay, "display", false, "使用计算器面板语义")
	evalCmd.Flags().BoolVar(&evalRPN, "rpn", false, "同时输出后缀表达式")
	evalCmd.Flags().IntVarP(&evalPrecision, "precision", "p", -1, "有效数字位数 (0 为最短表示，默认取配置)")
}

func runEval(cmd *cobra.Command, args []string) error {
	precision := evalPrecision
	if precision < 0 {
		precision = currentConfig().Display.Precision
	}
	if precision > 17 {
		return fmt.Errorf("precision must be between 0 and 17, got %d", precision)
	}

	out := cmd.OutOrStdout()

	if len(args) > 0 {
		return evalOne(out, strings.Join(args, " "), precision)
	}

	var failed bool
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := evalOne(out, line, precision); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", line, err)
			failed = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取标准输入失败: %w", err)
	}
	if failed {
		return errSomeFailed
	}
	return nil
}

func evalOne(out io.Writer, expr string, precision int) error {
	if evalDisplay {
		if evalRPN {
			if rpn, err := expression.Compile(display.Preprocess(expr)); err == nil {
				fmt.Fprintln(out, rpn.String())
			}
		}
		fmt.Fprintln(out, display.Calculate(expr, precision))
		return nil
	}

	evaluator := expression.NewEvaluator()
	rpn, err := evaluator.Compile(expr)
	if err != nil {
		return fmt.Errorf("%s: %w", expression.KindOf(err), err)
	}
	if evalRPN {
		fmt.Fprintln(out, rpn.String())
	}

	v, err := evaluator.Run(rpn)
	if err != nil {
		return fmt.Errorf("%s: %w", expression.KindOf(err), err)
	}
	fmt.Fprintln(out, display.Format(v, precision))
	return nil
}
