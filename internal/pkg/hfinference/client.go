// Package hfinference 托管推理 API 客户端（Hugging Face Inference API 兼容）
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "sshleifer/distilbart-cnn-12-6"
	DefaultTimeout = 60 * time.Second

	maxPayloadBytes = 1 << 20
)

// Client 推理 API 客户端
// 只负责一次同步 HTTP 调用，不做重试
type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义 http.Client（测试时注入）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建推理客户端
func NewClient(baseURL, model, token string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parameters 摘要生成参数
type Parameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

// Request 推理请求体
type Request struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

// Result 单条摘要结果
type Result struct {
	SummaryText *string `json:"summary_text"`
}

// Response 原始 HTTP 响应
type Response struct {
	StatusCode int
	Body       []byte
}

// OK 是否为 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Model 当前模型名
func (c *Client) Model() string {
	return c.model
}

// HasToken 是否配置了凭证
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Endpoint 模型推理地址
func (c *Client) Endpoint() string {
	return c.baseURL + "/models/" + c.model
}

// Summarize 调用推理 API
// 返回的 error 只表示传输层失败；非 2xx 响应通过 Response 返回给调用方解释
func (c *Client) Summarize(ctx context.Context, req *Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("body_size", len(body)).
		Msg("inference call finished")

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// ParseSummary 从响应体中解析第一条 summary_text
func ParseSummary(body []byte) (string, error) {
	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("decode results: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty result list")
	}
	if results[0].SummaryText == nil {
		return "", fmt.Errorf("summary_text missing")
	}
	return *results[0].SummaryText, nil
}
