package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"notesum/internal/config"
	"notesum/internal/pkg/hfinference"
)

// TokenEnv 远程后端凭证环境变量
const TokenEnv = "HF_API_TOKEN"

// RemoteSummarizer 托管推理 API 后端
type RemoteSummarizer struct {
	client *hfinference.Client
}

// NewRemoteSummarizer 创建远程后端
func NewRemoteSummarizer(cfg *config.RemoteConfig, opts ...hfinference.Option) *RemoteSummarizer {
	return &RemoteSummarizer{
		client: hfinference.NewClient(cfg.BaseURL, cfg.Model, cfg.APIToken, cfg.Timeout, opts...),
	}
}

// Name 后端名称
func (s *RemoteSummarizer) Name() string {
	return config.BackendRemote
}

// Start 远程后端无需预热
func (s *RemoteSummarizer) Start(ctx context.Context) error {
	if !s.client.HasToken() {
		log.Warn().Str("env", TokenEnv).Str("model", s.client.Model()).Msg("remote summarizer has no API token, requests will fail")
		return nil
	}
	log.Info().Str("model", s.client.Model()).Msg("remote summarizer configured")
	return nil
}

// Ready 凭证是否就绪
func (s *RemoteSummarizer) Ready() error {
	if !s.client.HasToken() {
		return missingCredential()
	}
	return nil
}

// Summarize 调用推理 API 并解释响应
func (s *RemoteSummarizer) Summarize(ctx context.Context, in *Input) (string, error) {
	if !s.client.HasToken() {
		return "", missingCredential()
	}

	resp, err := s.client.Summarize(ctx, &hfinference.Request{
		Inputs: in.Text,
		Parameters: hfinference.Parameters{
			MaxLength: in.MaxLength,
			MinLength: in.MinLength,
			DoSample:  !in.Deterministic,
		},
	})
	if err != nil {
		return "", &BackendError{
			Kind:       ErrBackendTransport,
			StatusCode: http.StatusBadGateway,
			Message:    "Error contacting summarization backend",
			Err:        err,
		}
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", &BackendError{
			Kind:       ErrBackendLoading,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Model is still loading on the inference backend, please try again in a few seconds.",
			Payload:    string(resp.Body),
		}
	case !resp.OK():
		return "", &BackendError{
			Kind:       ErrBackendStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Inference backend error (%d): %s", resp.StatusCode, resp.Body),
			Payload:    string(resp.Body),
		}
	}

	summary, err := hfinference.ParseSummary(resp.Body)
	if err != nil {
		return "", &BackendError{
			Kind:       ErrMalformedResponse,
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("Unexpected response from inference backend: %s", resp.Body),
			Payload:    string(resp.Body),
			Err:        err,
		}
	}

	return summary, nil
}

// Close 远程后端无资源需要释放
func (s *RemoteSummarizer) Close() error {
	return nil
}

func missingCredential() error {
	return &BackendError{
		Kind:       ErrMissingCredential,
		StatusCode: http.StatusInternalServerError,
		Message:    TokenEnv + " is not configured on the server.",
	}
}
