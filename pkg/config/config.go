// Package config 加载 Actor 运行时的配置
//
// 配置按以下顺序叠加，后者覆盖前者：
//  1. [Default] 中的默认值
//  2. YAML 或 JSON 文件（按扩展名判断）/ 内存中的文档
//
// 示例 YAML：
//
//	name: demo
//	mailbox_size: 0
//	dead_letter_logging: true
//	shutdown_timeout: 10s
//	log_level: info
//	log_format: text
package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/lwmacct/251216-go-pkg-wactor/pkg/substrate"
)

// Format 配置文档格式
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 运行时配置
type Config struct {
	// Name 系统名称
	Name string `koanf:"name"`
	// MailboxSize 输入管道默认容量，0 表示无界
	MailboxSize int `koanf:"mailbox_size"`
	// DeadLetterLogging 是否记录死信
	DeadLetterLogging bool `koanf:"dead_letter_logging"`
	// ShutdownTimeout 关闭时等待进程退出的时间
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// LogLevel 日志级别：debug | info | warn | error
	LogLevel string `koanf:"log_level"`
	// LogFormat 日志格式：text | json
	LogFormat string `koanf:"log_format"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Name:              "wactor",
		MailboxSize:       0,
		DeadLetterLogging: true,
		ShutdownTimeout:   30 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load 从文件加载配置，path 为空时只使用默认值
func Load(path string) (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		format, err := formatOf(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser(format)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
		}
	}
	return unmarshal(k)
}

// LoadBytes 从内存中的文档加载配置
func LoadBytes(data []byte, format Format) (*Config, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	k, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(rawbytes.Provider(data), parser(format)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return unmarshal(k)
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parser(format Format) koanf.Parser {
	if format == FormatJSON {
		return json.Parser()
	}
	return yaml.Parser()
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.MailboxSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMailboxSize, c.MailboxSize)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidShutdownTimeout, c.ShutdownTimeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}

// SystemConfig 转换为隔离基座配置
func (c *Config) SystemConfig(logger *slog.Logger) *substrate.Config {
	cfg := substrate.DefaultConfig()
	cfg.MailboxSize = c.MailboxSize
	cfg.EnableDeadLetterLogging = c.DeadLetterLogging
	if c.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = c.ShutdownTimeout
	}
	cfg.Logger = logger
	return cfg
}

// NewLogger 按配置创建日志器
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}
