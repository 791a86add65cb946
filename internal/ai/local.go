package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"

	"notesum/internal/ai/chain"
	"notesum/internal/ai/component"
	"notesum/internal/config"
)

var errLocalClosed = errors.New("local summarizer closed")

// ModelFactory 创建 ChatModel
type ModelFactory func(ctx context.Context, cfg *config.LocalConfig) (model.BaseChatModel, error)

// LocalSummarizer 进程内共享模型后端
// 模型在 Start 或首次调用时初始化一次，之后只读复用
type LocalSummarizer struct {
	cfg     *config.LocalConfig
	factory ModelFactory

	once   sync.Once
	chain  *chain.SummarizeChain
	err    error
	loaded atomic.Bool
	closed atomic.Bool

	// slot 为 nil 时允许并发调用
	slot chan struct{}
	done chan struct{}
}

// LocalOption 本地后端选项
type LocalOption func(*LocalSummarizer)

// WithModelFactory 替换 ChatModel 构建方式（测试时注入）
func WithModelFactory(f ModelFactory) LocalOption {
	return func(s *LocalSummarizer) {
		s.factory = f
	}
}

// NewLocalSummarizer 创建本地后端
func NewLocalSummarizer(cfg *config.LocalConfig, opts ...LocalOption) *LocalSummarizer {
	s := &LocalSummarizer{
		cfg:     cfg,
		factory: component.NewChatModel,
		done:    make(chan struct{}),
	}
	if cfg.Serialize {
		s.slot = make(chan struct{}, 1)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name 后端名称
func (s *LocalSummarizer) Name() string {
	return config.BackendLocal
}

// Start 预加载模型
func (s *LocalSummarizer) Start(ctx context.Context) error {
	return s.init(ctx)
}

func (s *LocalSummarizer) init(ctx context.Context) error {
	s.once.Do(func() {
		cm, err := s.factory(ctx, s.cfg)
		if err != nil {
			s.err = fmt.Errorf("create chat model: %w", err)
			return
		}
		c, err := chain.NewSummarizeChain(ctx, cm)
		if err != nil {
			s.err = err
			return
		}
		s.chain = c
		s.loaded.Store(true)
		log.Info().
			Str("provider", s.cfg.Provider).
			Str("model", s.cfg.Model).
			Bool("serialize", s.slot != nil).
			Msg("local summarization model loaded")
	})
	return s.err
}

// Ready 模型是否已加载
func (s *LocalSummarizer) Ready() error {
	if s.closed.Load() {
		return errLocalClosed
	}
	if !s.loaded.Load() {
		return errors.New("local model not loaded")
	}
	return nil
}

// Summarize 通过共享模型生成摘要
func (s *LocalSummarizer) Summarize(ctx context.Context, in *Input) (string, error) {
	if s.closed.Load() {
		return "", shuttingDown()
	}
	if err := s.init(ctx); err != nil {
		return "", &BackendError{
			Kind:       ErrBackendLoading,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Local summarization model is not available.",
			Err:        err,
		}
	}

	if s.slot != nil {
		select {
		case s.slot <- struct{}{}:
			defer func() { <-s.slot }()
			if s.closed.Load() {
				return "", shuttingDown()
			}
		case <-s.done:
			return "", shuttingDown()
		case <-ctx.Done():
			return "", &BackendError{
				Kind:       ErrBackendTransport,
				StatusCode: http.StatusGatewayTimeout,
				Message:    "Timed out waiting for the local model",
				Err:        ctx.Err(),
			}
		}
	}

	out, err := s.chain.Run(ctx, &chain.SummarizeRequest{
		Text:          in.Text,
		MaxLength:     in.MaxLength,
		MinLength:     in.MinLength,
		Deterministic: in.Deterministic,
	})
	switch {
	case errors.Is(err, chain.ErrEmptyOutput):
		return "", &BackendError{
			Kind:       ErrMalformedResponse,
			StatusCode: http.StatusInternalServerError,
			Message:    "Unexpected response from local model: empty output",
			Err:        err,
		}
	case err != nil:
		return "", &BackendError{
			Kind:       ErrBackendTransport,
			StatusCode: http.StatusBadGateway,
			Message:    "Error running local summarization model",
			Err:        err,
		}
	}

	return out, nil
}

// Close 停止接受新调用，排队中的调用立即失败
// 串行模式下等待进行中的调用结束
func (s *LocalSummarizer) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.done)
	if s.slot != nil {
		s.slot <- struct{}{}
	}
	return nil
}

func shuttingDown() error {
	return &BackendError{
		Kind:       ErrBackendLoading,
		StatusCode: http.StatusServiceUnavailable,
		Message:    "Local summarization model is shutting down.",
		Err:        errLocalClosed,
	}
}
