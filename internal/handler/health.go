package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notesum/internal/model"
)

// ServiceMessage 根路径返回的服务标识
const ServiceMessage = "AI Notes Summariser API is running"

// ReadinessChecker 就绪检查
type ReadinessChecker interface {
	Backend() string
	Ready() error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(checker ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Root 服务标识
// @Summary Service identity
// @Tags    health
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Router  / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.MessageResponse{Message: ServiceMessage})
}

// Health 健康检查
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.checker.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"backend": h.checker.Backend(),
			"detail":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"backend": h.checker.Backend(),
	})
}
