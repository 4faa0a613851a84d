// Package mcptool exposes the calculator as an MCP tool.
package mcptool

import (
	"context"
	"fmt"

	"yqhp/calculator/internal/display"
	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// ToolName is the name the calculator tool is registered under.
const ToolName = "calculate"

// Evaluation modes.
const (
	ModeRaw     = "raw"
	ModeDisplay = "display"
)

// Config 工具服务配置
type Config struct {
	Name      string
	Version   string
	Precision int
}

// Tool evaluates expressions on behalf of MCP clients.
type Tool struct {
	evaluator expression.Evaluator
	precision int
}

// NewTool creates a Tool. A nil evaluator uses the default.
func NewTool(evaluator expression.Evaluator, precision int) *Tool {
	if evaluator == nil {
		evaluator = expression.NewEvaluator()
	}
	return &Tool{evaluator: evaluator, precision: precision}
}

// Definition describes the tool's input schema.
func (t *Tool) Definition() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Evaluate a calculator expression. Supports + - * / % ^, postfix ! (factorial), "+
			"parentheses, sin cos tan (radians), sqrt, log (base 10), ln and the constants pi and e."),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Expression to evaluate, e.g. \"2+3*4\" or \"sqrt(16)\""),
		),
		mcp.WithString("mode",
			mcp.Description("raw: evaluator semantics, % is remainder. display: keypad semantics, % means /100 and ×÷−√π are accepted"),
			mcp.Enum(ModeRaw, ModeDisplay),
		),
	)
}

// Handle implements server.ToolHandlerFunc.
func (t *Tool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch mode := req.GetString("mode", ModeRaw); mode {
	case ModeRaw:
		return t.raw(expr), nil
	case ModeDisplay:
		return t.keypad(expr), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q, expected %s or %s", mode, ModeRaw, ModeDisplay)), nil
	}
}

func (t *Tool) raw(expr string) *mcp.CallToolResult {
	v, err := t.evaluator.EvaluateString(expr)
	if err != nil {
		logger.Debug("tool evaluation failed",
			zap.String("expression", expr),
			zap.String("kind", expression.KindOf(err).String()),
			zap.Error(err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", expression.KindOf(err), err))
	}
	return mcp.NewToolResultText(display.Format(v, t.precision))
}

// keypad answers like the calculator display: a failed expression shows
// ErrorText as an ordinary result.
func (t *Tool) keypad(expr string) *mcp.CallToolResult {
	return mcp.NewToolResultText(display.Calculate(expr, t.precision))
}

// NewServer builds an MCP server with the calculator tool registered.
func NewServer(cfg Config, evaluator expression.Evaluator) *server.MCPServer {
	s := server.NewMCPServer(cfg.Name, cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	tool := NewTool(evaluator, cfg.Precision)
	s.AddTool(tool.Definition(), tool.Handle)
	return s
}

// ServeStdio serves the calculator tool over stdin/stdout until the client
// disconnects.
func ServeStdio(cfg Config) error {
	logger.Info("mcp server starting on stdio", zap.String("name", cfg.Name), zap.String("version", cfg.Version))
	return server.ServeStdio(NewServer(cfg, nil))
}
