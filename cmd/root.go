package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"notesum/internal/ai"
	"notesum/internal/config"
	"notesum/internal/pkg/hfinference"
	"notesum/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "notesum",
	Short: "Notesum - AI notes summariser API",
	Long: `Notesum shortens free text by calling a hosted inference API
or a process-wide local model, and exposes it over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	rootCmd.PersistentFlags().String("backend", config.BackendRemote, "summarizer backend (remote/local)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("summarizer.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.notesum")
	}

	// 环境变量设置
	viper.SetEnvPrefix("NOTESUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 远程凭证沿用通用变量名 HF_API_TOKEN
	_ = viper.BindEnv("summarizer.remote.api_token", "NOTESUM_SUMMARIZER_REMOTE_API_TOKEN", ai.TokenEnv)

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	// 需大于远程推理超时
	viper.SetDefault("server.write_timeout", "90s")

	// Summarizer
	bounds := config.DefaultBounds()
	viper.SetDefault("summarizer.backend", config.BackendRemote)
	viper.SetDefault("summarizer.bounds.default_sentences", bounds.DefaultSentences)
	viper.SetDefault("summarizer.bounds.upper_cap", bounds.UpperCap)
	viper.SetDefault("summarizer.bounds.length_factor", bounds.LengthFactor)
	viper.SetDefault("summarizer.bounds.lower_floor", bounds.LowerFloor)
	viper.SetDefault("summarizer.bounds.min_factor", bounds.MinFactor)
	viper.SetDefault("summarizer.bounds.word_limit", bounds.WordLimit)
	viper.SetDefault("summarizer.bounds.truncate_mode", bounds.TruncateMode)
	viper.SetDefault("summarizer.remote.base_url", hfinference.DefaultBaseURL)
	viper.SetDefault("summarizer.remote.model", hfinference.DefaultModel)
	viper.SetDefault("summarizer.remote.timeout", hfinference.DefaultTimeout)
	viper.SetDefault("summarizer.local.provider", "openai")
	viper.SetDefault("summarizer.local.api_key", "local")
	viper.SetDefault("summarizer.local.serialize", true)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
