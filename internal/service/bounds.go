package service

import "notesum/internal/config"

// LengthBounds 单次请求的摘要长度范围
type LengthBounds struct {
	MaxLength int
	MinLength int
}

// TargetSentences 解析目标句数，空值或非正数使用默认值
func TargetSentences(maxSentences *int, cfg *config.BoundsConfig) int {
	if maxSentences == nil || *maxSentences <= 0 {
		return cfg.DefaultSentences
	}
	return *maxSentences
}

// ComputeBounds 根据目标句数推导长度范围，保证 MaxLength >= MinLength
func ComputeBounds(sentences int, cfg *config.BoundsConfig) LengthBounds {
	maxLength := scaled(sentences, cfg.LengthFactor, cfg.UpperCap)
	minLength := max(cfg.LowerFloor, scaled(sentences, cfg.MinFactor, cfg.UpperCap))
	if minLength > maxLength {
		minLength = maxLength
	}
	return LengthBounds{MaxLength: maxLength, MinLength: minLength}
}

// scaled 返回 min(limit, n*factor)，乘积溢出前即饱和到 limit
func scaled(n, factor, limit int) int {
	if factor > 0 && n > limit/factor {
		return limit
	}
	return min(limit, n*factor)
}
