package ai

import (
	"errors"
	"fmt"
)

// 摘要后端错误分类
var (
	ErrMissingCredential = errors.New("summarizer credential missing")
	ErrBackendLoading    = errors.New("summarizer backend is loading")
	ErrBackendTransport  = errors.New("summarizer backend unreachable")
	ErrBackendStatus     = errors.New("summarizer backend returned an error")
	ErrMalformedResponse = errors.New("summarizer backend returned an unexpected payload")
)

// BackendError 后端调用失败详情
// StatusCode 为建议返回给客户端的 HTTP 状态码
type BackendError struct {
	Kind       error
	StatusCode int
	Message    string
	Payload    string
	Err        error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is 匹配错误分类
func (e *BackendError) Is(target error) bool {
	return e.Kind == target
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
