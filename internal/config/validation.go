package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/slice"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
	logOutputs = []string{"stdout", "stderr", "file", "both"}

	hostnameLabel = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
)

// ValidationError 单个字段的校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors 汇总所有字段错误，一次返回
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// HasErrors reports whether any field failed.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator 配置校验器
type Validator struct {
	errors ValidationErrors
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) fail(field, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *Validator) oneOf(field, value string, allowed []string) {
	if value != "" && !slice.Contain(allowed, strings.ToLower(value)) {
		v.fail(field, "invalid value '%s', must be one of: %s", value, strings.Join(allowed, ", "))
	}
}

func (v *Validator) nonNegative(field string, n int) {
	if n < 0 {
		v.fail(field, "must be non-negative, got %d", n)
	}
}

func (v *Validator) timeout(field string, d time.Duration) {
	switch {
	case d < 0:
		v.fail(field, "timeout must be non-negative")
	case d > 0 && d < time.Second:
		v.fail(field, "timeout should be at least 1 second, got %s", d)
	}
}

// Validate 校验全部配置，返回 ValidationErrors 或 nil
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil

	switch {
	case cfg.Server.Address == "":
		v.fail("server.address", "address is required")
	case !isValidAddress(cfg.Server.Address):
		v.fail("server.address", "invalid address format, expected host:port or :port")
	}
	v.timeout("server.read_timeout", cfg.Server.ReadTimeout)
	v.timeout("server.write_timeout", cfg.Server.WriteTimeout)
	v.nonNegative("server.max_expression", cfg.Server.MaxExpression)

	if cfg.Log.Level == "" {
		v.fail("log.level", "log level is required")
	}
	v.oneOf("log.level", cfg.Log.Level, logLevels)
	v.oneOf("log.format", cfg.Log.Format, logFormats)
	v.oneOf("log.output", cfg.Log.Output, logOutputs)
	if out := strings.ToLower(cfg.Log.Output); (out == "file" || out == "both") && cfg.Log.FilePath == "" {
		v.fail("log.file_path", "file path is required when logging to a file")
	}
	v.nonNegative("log.max_size", cfg.Log.MaxSize)
	v.nonNegative("log.max_backups", cfg.Log.MaxBackups)
	v.nonNegative("log.max_age", cfg.Log.MaxAge)

	// float64 carries 17 significant digits at most
	if cfg.Display.Precision < 0 || cfg.Display.Precision > 17 {
		v.fail("display.precision", "precision must be between 0 and 17")
	}
	if cfg.Display.HistorySize <= 0 {
		v.fail("display.history_size", "history size must be positive")
	}

	if cfg.MCP.Name == "" {
		v.fail("mcp.name", "tool server name is required")
	}

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

// isValidAddress accepts ":port", "host:port" and "ip:port".
func isValidAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if _, err := net.LookupPort("tcp", port); err != nil {
		return false
	}
	return host == "" || net.ParseIP(host) != nil || isValidHostname(host)
}

func isValidHostname(hostname string) bool {
	if len(hostname) > 253 {
		return false
	}
	for _, label := range strings.Split(hostname, ".") {
		if !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}

// Validate 校验配置
func (c *Config) Validate() error {
	return NewValidator().Validate(c)
}

// LoadAndValidate 加载并校验配置文件
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
