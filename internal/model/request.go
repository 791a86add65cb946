package model

// SummarizeRequest 摘要请求
// max_sentences 为空或 0 时使用默认句数
type SummarizeRequest struct {
	Text         string `json:"text" example:"Artificial Intelligence (AI) is transforming many industries..."`
	MaxSentences *int   `json:"max_sentences,omitempty" binding:"omitempty,gte=0" example:"5"`
}
