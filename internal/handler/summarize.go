package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"notesum/internal/ai"
	"notesum/internal/model"
	"notesum/internal/service"
)

// SummarizeHandler 摘要处理器
type SummarizeHandler struct {
	summarizeSvc *service.SummarizeService
}

// NewSummarizeHandler 创建摘要处理器
func NewSummarizeHandler(summarizeSvc *service.SummarizeService) *SummarizeHandler {
	return &SummarizeHandler{
		summarizeSvc: summarizeSvc,
	}
}

// Summarize 文本摘要接口
// @Summary Summarize text
// @Tags    summarize
// @Accept  json
// @Produce json
// @Param   request body model.SummarizeRequest true "text to summarise"
// @Success 200 {object} model.SummarizeResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router  /summarize [post]
func (h *SummarizeHandler) Summarize(c *gin.Context) {
	var req model.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	// 客户端断开不会中断进行中的后端调用，超时由后端自身控制
	ctx := context.WithoutCancel(c.Request.Context())

	resp, err := h.summarizeSvc.Summarize(ctx, &req)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// errorResponse 将后端错误映射为 HTTP 状态码与响应体
func errorResponse(err error) (int, model.ErrorResponse) {
	var be *ai.BackendError
	if !errors.As(err, &be) {
		log.Error().Err(err).Msg("unexpected summarize error")
		return http.StatusInternalServerError, model.ErrorResponse{
			Code:    50000,
			Message: "Internal Server Error",
			Detail:  "Internal Server Error",
		}
	}

	status := be.StatusCode
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	return status, model.ErrorResponse{
		Code:    errorCode(be, status),
		Message: errorMessage(be),
		Detail:  be.Message,
	}
}

func errorCode(be *ai.BackendError, status int) int {
	switch {
	case errors.Is(be, ai.ErrMissingCredential):
		return 50001
	case errors.Is(be, ai.ErrMalformedResponse):
		return 50002
	case errors.Is(be, ai.ErrBackendTransport):
		return status*100 + 1
	case errors.Is(be, ai.ErrBackendLoading):
		return 50301
	default:
		return status * 100
	}
}

func errorMessage(be *ai.BackendError) string {
	switch {
	case errors.Is(be, ai.ErrMissingCredential):
		return "Summarizer not configured"
	case errors.Is(be, ai.ErrMalformedResponse):
		return "Unexpected backend response"
	case errors.Is(be, ai.ErrBackendTransport):
		return "Backend unreachable"
	case errors.Is(be, ai.ErrBackendLoading):
		return "Backend loading"
	default:
		return "Backend error"
	}
}
