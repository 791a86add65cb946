package config

import (
	"errors"
	"fmt"
	"time"
)

// 摘要后端类型
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// 截断模式
const (
	TruncateWhitespace = "whitespace"
	TruncateSegment    = "segment"
)

// Config 应用配置根结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SummarizerConfig 摘要网关配置
type SummarizerConfig struct {
	Backend string       `mapstructure:"backend"` // remote, local
	Bounds  BoundsConfig `mapstructure:"bounds"`
	Remote  RemoteConfig `mapstructure:"remote"`
	Local   LocalConfig  `mapstructure:"local"`
}

// BoundsConfig 长度参数推导配置
// max_length = min(UpperCap, n*LengthFactor), min_length = max(LowerFloor, n*MinFactor)
type BoundsConfig struct {
	DefaultSentences int    `mapstructure:"default_sentences"`
	UpperCap         int    `mapstructure:"upper_cap"`
	LengthFactor     int    `mapstructure:"length_factor"`
	LowerFloor       int    `mapstructure:"lower_floor"`
	MinFactor        int    `mapstructure:"min_factor"`
	WordLimit        int    `mapstructure:"word_limit"`
	TruncateMode     string `mapstructure:"truncate_mode"` // whitespace, segment
}

// RemoteConfig 远程推理 API 配置
type RemoteConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	APIToken string        `mapstructure:"api_token"` // 环境变量 HF_API_TOKEN
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LocalConfig 本地模型配置 (Eino ChatModel)
type LocalConfig struct {
	Provider  string `mapstructure:"provider"` // openai, azure, ark
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Serialize bool   `mapstructure:"serialize"` // 单槽串行执行
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// DefaultBounds 默认长度参数
func DefaultBounds() BoundsConfig {
	return BoundsConfig{
		DefaultSentences: 5,
		UpperCap:         256,
		LengthFactor:     25,
		LowerFloor:       20,
		MinFactor:        8,
		WordLimit:        800,
		TruncateMode:     TruncateWhitespace,
	}
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return c.Summarizer.Validate()
}

// Validate 验证摘要配置
func (c *SummarizerConfig) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}

	switch c.Backend {
	case BackendRemote:
		if c.Remote.BaseURL == "" || c.Remote.Model == "" {
			return errors.New("remote backend requires base_url and model")
		}
		if c.Remote.Timeout <= 0 {
			return errors.New("remote backend timeout must be positive")
		}
	case BackendLocal:
		switch c.Local.Provider {
		case "openai", "azure", "ark", "":
		default:
			return fmt.Errorf("unsupported local provider: %s", c.Local.Provider)
		}
	default:
		return fmt.Errorf("invalid summarizer backend %q, must be remote/local", c.Backend)
	}

	return nil
}

// Validate 验证长度参数
func (b *BoundsConfig) Validate() error {
	if b.DefaultSentences <= 0 {
		return errors.New("bounds.default_sentences must be positive")
	}
	if b.UpperCap <= 0 || b.LengthFactor <= 0 || b.MinFactor <= 0 || b.LowerFloor <= 0 {
		return errors.New("bounds caps and factors must be positive")
	}
	if b.LowerFloor > b.UpperCap {
		return errors.New("bounds.lower_floor must not exceed bounds.upper_cap")
	}
	if b.WordLimit <= 0 {
		return errors.New("bounds.word_limit must be positive")
	}
	if b.TruncateMode != TruncateWhitespace && b.TruncateMode != TruncateSegment {
		return fmt.Errorf("invalid truncate_mode %q, must be whitespace/segment", b.TruncateMode)
	}
	return nil
}
