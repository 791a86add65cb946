package id

import (
	"github.com/google/uuid"
)

// New 生成新的请求ID（UUID string格式）
func New() string {
	return uuid.New().String()
}

// IsValid 验证请求ID是否为合法UUID
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
