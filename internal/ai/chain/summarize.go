package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = `You are a summarization model. Rewrite the user's text as a shorter summary.

Rules:
- Write plain prose in the same language as the input.
- Aim for between {min_length} and {max_length} tokens.
- Keep only the key facts, names and numbers.
- Output the summary only, with no preamble.`

// ErrEmptyOutput 模型返回空内容
var ErrEmptyOutput = errors.New("empty response from chat model")

// SummarizeChain 摘要链
// 工作流: 输入文本 -> Prompt模板 -> ChatModel -> 摘要
type SummarizeChain struct {
	runnable compose.Runnable[map[string]any, *schema.Message]
}

// SummarizeRequest 摘要请求
type SummarizeRequest struct {
	Text          string
	MaxLength     int // 对应 MaxTokens
	MinLength     int // 仅作为提示词约束
	Deterministic bool
}

// NewSummarizeChain 编译摘要链
func NewSummarizeChain(ctx context.Context, chatModel model.BaseChatModel) (*SummarizeChain, error) {
	tpl := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{text}"),
	)

	runnable, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(tpl).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile summarize chain: %w", err)
	}

	return &SummarizeChain{runnable: runnable}, nil
}

// Run 执行摘要
func (c *SummarizeChain) Run(ctx context.Context, req *SummarizeRequest) (string, error) {
	opts := []model.Option{model.WithMaxTokens(req.MaxLength)}
	if req.Deterministic {
		opts = append(opts, model.WithTemperature(0))
	}

	msg, err := c.runnable.Invoke(ctx, map[string]any{
		"text":       req.Text,
		"max_length": req.MaxLength,
		"min_length": req.MinLength,
	}, compose.WithChatModelOption(opts...))
	if err != nil {
		return "", err
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyOutput
	}
	return msg.Content, nil
}
