package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix 环境变量前缀。server.read_timeout 对应 CALC_SERVER_READ_TIMEOUT
const DefaultEnvPrefix = "CALC_"

// Config represents the complete configuration for the calculator.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"` // dev, test, prod
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address       string        `yaml:"address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	EnableCORS    bool          `yaml:"enable_cors"`
	MaxExpression int           `yaml:"max_expression"` // bytes, 0 = unlimited
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`   // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	Output     string `yaml:"output"` // stdout, stderr, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// DisplayConfig 显示配置
type DisplayConfig struct {
	Precision   int `yaml:"precision"` // significant digits, 0 = shortest
	HistorySize int `yaml:"history_size"`
}

// MCPConfig holds the identity the tool server announces.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "calculator",
			Version: "1.0.0",
			Env:     "dev",
		},
		Server: ServerConfig{
			Address:       ":8080",
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  30 * time.Second,
			EnableCORS:    false,
			MaxExpression: 4096,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			FilePath:   "logs/calculator.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Display: DisplayConfig{
			Precision:   0,
			HistorySize: 50,
		},
		MCP: MCPConfig{
			Name:    "calculator",
			Version: "1.0.0",
		},
	}
}

// Loader 按 默认值 < 配置文件 < 环境变量 < 命令行 的顺序合并配置
type Loader struct {
	configPath string
	envPrefix  string
	overrides  map[string]string
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{envPrefix: DefaultEnvPrefix}
}

// WithConfigPath 设置 YAML 配置文件路径，文件不存在时忽略
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithCmdArgs 设置命令行覆盖项，键为点分路径，如 "log.level"
func (l *Loader) WithCmdArgs(args map[string]string) *Loader {
	l.overrides = args
	return l
}

// Load 加载配置
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("解析配置文件失败: %w", err)
			}
		}
	}

	// 覆盖项写到配置的 YAML 节点树上，再整体解码回结构体，类型转换交给 yaml
	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, fmt.Errorf("编码配置失败: %w", err)
	}

	walkScalars(&root, nil, func(path []string, node *yaml.Node) {
		name := l.envPrefix + strings.ToUpper(strings.Join(path, "_"))
		if value, ok := os.LookupEnv(name); ok && value != "" {
			setScalar(node, value)
		}
	})

	for key, value := range l.overrides {
		node := lookupPath(&root, strings.Split(key, "."))
		if node == nil {
			return nil, fmt.Errorf("未知的配置路径: %s", key)
		}
		setScalar(node, value)
	}

	if err := root.Decode(cfg); err != nil {
		return nil, fmt.Errorf("应用配置覆盖失败: %w", err)
	}
	return cfg, nil
}

func walkScalars(node *yaml.Node, path []string, fn func([]string, *yaml.Node)) {
	if node.Kind == yaml.ScalarNode {
		fn(path, node)
		return
	}
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		next := append(path[:len(path):len(path)], node.Content[i].Value)
		walkScalars(node.Content[i+1], next, fn)
	}
}

// lookupPath 返回路径对应的标量节点，路径不存在或不是叶子时返回 nil
func lookupPath(node *yaml.Node, path []string) *yaml.Node {
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		var found *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				found = node.Content[i+1]
				break
			}
		}
		if found == nil {
			return nil
		}
		node = found
	}
	if node.Kind != yaml.ScalarNode {
		return nil
	}
	return node
}

// setScalar 字符串字段保留 !!str 标签，其余按字面值重新推断类型
func setScalar(node *yaml.Node, value string) {
	if node.Tag != "!!str" {
		node.Tag = ""
	}
	node.Style = 0
	node.Value = value
}

// Serialize 将配置序列化为 YAML
func (c *Config) Serialize() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseConfig 在默认值之上解析 YAML 配置
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}

// LoadFromFile 从文件加载配置
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}
