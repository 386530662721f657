package matcher

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/locator"
)

const (
	DefaultRegexCacheSize = 100
	regexMatchTimeout     = 100 * time.Millisecond
)

// regexCache 编译结果的 LRU 缓存，非法的模式缓存为 nil
type regexCache struct {
	entries *lru.Cache[string, *regexp2.Regexp]
	logger  *zap.Logger
}

func newRegexCache(size int, logger *zap.Logger) *regexCache {
	if size <= 0 {
		size = DefaultRegexCacheSize
	}
	entries, err := lru.New[string, *regexp2.Regexp](size)
	if err != nil {
		// 只有 size <= 0 时才会出错
		panic(err)
	}
	return &regexCache{entries: entries, logger: logger}
}

func (c *regexCache) get(pattern string) *regexp2.Regexp {
	if re, ok := c.entries.Get(pattern); ok {
		return re
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		c.logger.Debug("invalid regex pattern", zap.String("pattern", pattern), zap.Error(err))
		re = nil
	} else {
		re.MatchTimeout = regexMatchTimeout
	}
	c.entries.Add(pattern, re)
	return re
}

// match 非法模式或匹配超时都视为不匹配
func (c *regexCache) match(pattern, value string) bool {
	re := c.get(pattern)
	if re == nil {
		return false
	}
	ok, err := re.MatchString(value)
	if err != nil {
		c.logger.Debug("regex match failed", zap.String("pattern", pattern), zap.Error(err))
		return false
	}
	return ok
}

func (c *regexCache) len() int {
	return c.entries.Len()
}

// matchValue 按运算符比较节点的属性值和目标值
func (e *Evaluator) matchValue(op locator.Operator, actual string, target locator.Value) bool {
	text := target.Text()

	switch op {
	case locator.OpEqual:
		return e.valueEquals(actual, target)
	case locator.OpNotEqual:
		return !e.valueEquals(actual, target)
	case locator.OpPrefix:
		return strings.HasPrefix(e.fold(actual), e.fold(text))
	case locator.OpSuffix:
		return strings.HasSuffix(e.fold(actual), e.fold(text))
	case locator.OpSubstring:
		return strings.Contains(e.fold(actual), e.fold(text))
	case locator.OpWord:
		for _, word := range strings.Fields(actual) {
			if e.equal(word, text) {
				return true
			}
		}
		return false
	case locator.OpDash:
		a, t := e.fold(actual), e.fold(text)
		return a == t || strings.HasPrefix(a, t+"-")
	case locator.OpRegex:
		return e.regexes.match(text, actual)
	case locator.OpLess:
		return parseNumber(actual, math.MaxFloat64) < targetNumber(target, -math.MaxFloat64)
	case locator.OpLessEqual:
		return parseNumber(actual, math.MaxFloat64) <= targetNumber(target, -math.MaxFloat64)
	case locator.OpGreater:
		return parseNumber(actual, -math.MaxFloat64) > targetNumber(target, math.MaxFloat64)
	case locator.OpGreaterEqual:
		return parseNumber(actual, -math.MaxFloat64) >= targetNumber(target, math.MaxFloat64)
	}
	return false
}

// valueEquals 数值目标先按数值比较，再按文本比较
func (e *Evaluator) valueEquals(actual string, target locator.Value) bool {
	if target.Kind == locator.ValueNumber {
		if n, err := strconv.ParseFloat(strings.TrimSpace(actual), 64); err == nil && n == target.Num {
			return true
		}
	}
	return e.equal(actual, target.Text())
}

func parseNumber(s string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) {
		return fallback
	}
	return n
}

func targetNumber(v locator.Value, fallback float64) float64 {
	if v.Kind == locator.ValueNumber {
		return v.Num
	}
	return parseNumber(v.Str, fallback)
}

func (e *Evaluator) equal(a, b string) bool {
	if e.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func (e *Evaluator) fold(s string) string {
	if e.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func (e *Evaluator) contains(s, sub string) bool {
	return strings.Contains(e.fold(s), e.fold(sub))
}
