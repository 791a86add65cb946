package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"notesum/internal/ai"
	"notesum/internal/config"
	"notesum/internal/model"
	"notesum/internal/pkg/textutil"
)

// EmptyTextPlaceholder 空输入时返回的固定摘要
const EmptyTextPlaceholder = "Please provide some text to summarise."

// SummarizeService 摘要服务
type SummarizeService struct {
	summarizer ai.Summarizer
	bounds     config.BoundsConfig
	segmenter  *textutil.Segmenter
}

// NewSummarizeService 创建摘要服务
func NewSummarizeService(summarizer ai.Summarizer, bounds config.BoundsConfig) *SummarizeService {
	svc := &SummarizeService{
		summarizer: summarizer,
		bounds:     bounds,
	}
	if bounds.TruncateMode == config.TruncateSegment {
		svc.segmenter = textutil.NewSegmenter()
	}
	return svc
}

// Backend 当前后端名称
func (s *SummarizeService) Backend() string {
	return s.summarizer.Name()
}

// Ready 后端是否可用
func (s *SummarizeService) Ready() error {
	return s.summarizer.Ready()
}

// Summarize 执行摘要
// 后端错误原样返回（*ai.BackendError），由调用方映射为响应
func (s *SummarizeService) Summarize(ctx context.Context, req *model.SummarizeRequest) (*model.SummarizeResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return &model.SummarizeResponse{Summary: EmptyTextPlaceholder}, nil
	}

	sentences := TargetSentences(req.MaxSentences, &s.bounds)
	bounds := ComputeBounds(sentences, &s.bounds)

	text, words := s.truncate(text)

	logger := log.With().
		Str("backend", s.summarizer.Name()).
		Int("sentences", sentences).
		Int("max_length", bounds.MaxLength).
		Int("min_length", bounds.MinLength).
		Logger()

	if words > s.bounds.WordLimit {
		logger.Debug().Int("words", words).Int("word_limit", s.bounds.WordLimit).Msg("input truncated")
	}

	summary, err := s.summarizer.Summarize(ctx, &ai.Input{
		Text:          text,
		MaxLength:     bounds.MaxLength,
		MinLength:     bounds.MinLength,
		Deterministic: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("summarize failed")
		return nil, err
	}

	summary = strings.TrimSpace(summary)
	logger.Info().Int("summary_len", len(summary)).Msg("summarize completed")

	return &model.SummarizeResponse{Summary: summary}, nil
}

func (s *SummarizeService) truncate(text string) (string, int) {
	if s.segmenter != nil {
		return s.segmenter.Truncate(text, s.bounds.WordLimit)
	}
	return textutil.TruncateWords(text, s.bounds.WordLimit)
}
