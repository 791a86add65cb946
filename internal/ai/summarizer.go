package ai

import (
	"context"
	"fmt"

	"notesum/internal/config"
)

// Input 单次摘要调用参数
type Input struct {
	Text          string
	MaxLength     int
	MinLength     int
	Deterministic bool
}

// Summarizer 摘要能力
// 远程推理 API 与本地模型两种实现，由配置选择
type Summarizer interface {
	// Name 后端名称
	Name() string
	// Start 初始化共享资源（进程启动时调用）
	Start(ctx context.Context) error
	// Ready 返回后端当前是否可用
	Ready() error
	// Summarize 返回未裁剪的摘要文本
	Summarize(ctx context.Context, in *Input) (string, error)
	// Close 释放资源
	Close() error
}

// NewSummarizer 根据配置创建摘要后端
func NewSummarizer(cfg *config.SummarizerConfig) (Summarizer, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		return NewRemoteSummarizer(&cfg.Remote), nil
	case config.BackendLocal:
		return NewLocalSummarizer(&cfg.Local), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer backend: %s", cfg.Backend)
	}
}
