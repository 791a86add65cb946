package model

// SummarizeResponse 摘要响应
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// MessageResponse 服务标识响应
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse 错误响应
// Detail 为面向用户的错误原因
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
