// Package textutil 提供输入文本的预算截断
package textutil

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-ego/gse"
	"github.com/rs/zerolog/log"
)

// TruncateWords 按空白切分，保留前 limit 个词并以单个空格重新拼接
// 返回截断后的文本和原始词数
func TruncateWords(text string, limit int) (string, int) {
	words := strings.Fields(text)
	if limit <= 0 || len(words) <= limit {
		return text, len(words)
	}
	return strings.Join(words[:limit], " "), len(words)
}

// Segmenter 基于 gse 分词的截断器，用于没有空白分词边界的文本（中日韩）
type Segmenter struct {
	once sync.Once
	seg  *gse.Segmenter
	err  error
}

// NewSegmenter 创建分词截断器，词典在首次使用时加载
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func (s *Segmenter) load() error {
	s.once.Do(func() {
		seg := &gse.Segmenter{}
		if err := seg.LoadDict(); err != nil {
			s.err = err
			return
		}
		s.seg = seg
		log.Debug().Msg("gse dictionary loaded")
	})
	return s.err
}

// Truncate 保留前 limit 个非空白词元
// 词典加载失败时降级为按空白截断
func (s *Segmenter) Truncate(text string, limit int) (string, int) {
	if err := s.load(); err != nil {
		log.Warn().Err(err).Msg("gse unavailable, falling back to whitespace truncation")
		return TruncateWords(text, limit)
	}

	out, count := joinTokens(s.seg.Cut(text, true), limit)
	if limit <= 0 || count <= limit {
		return text, count
	}
	return out, count
}

// joinTokens 拼接前 limit 个非空白词元，词元之间的空白串合并为一个空格
// 返回拼接结果和非空白词元总数
func joinTokens(tokens []string, limit int) (string, int) {
	count := 0
	pending := false
	var b strings.Builder
	for _, tok := range tokens {
		if isBlank(tok) {
			if count > 0 {
				pending = true
			}
			continue
		}
		count++
		if limit > 0 && count > limit {
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteString(tok)
	}
	return b.String(), count
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
