package toolkit

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/locator"
)

// DefaultNormalizerCacheSize 规范化结果的缓存容量
const DefaultNormalizerCacheSize = 1000

// Normalizer 按当前工具包模式规范化定位器，结果带缓存
// 返回的 *UnifiedLocator 是共享的，调用方不要修改
type Normalizer struct {
	mu     sync.RWMutex
	mode   Type
	size   int
	cache  *lru.Cache[string, *UnifiedLocator]
	logger *zap.Logger
}

func NewNormalizer(mode Type, size int, logger *zap.Logger) *Normalizer {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, _ := lru.New[string, *UnifiedLocator](size)
	return &Normalizer{mode: mode, size: size, cache: cache, logger: logger}
}

// Mode 当前工具包模式
func (n *Normalizer) Mode() Type {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mode
}

// SetMode 切换模式会清空缓存
func (n *Normalizer) SetMode(mode Type) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.mode != mode {
		n.mode = mode
		n.cache.Purge()
	}
}

// Normalize 解析顺序：XPath、前缀、#id、Eclipse 标识、CSS
// 失败时返回 *ParseError，其中带有修改建议
func (n *Normalizer) Normalize(input string) (*UnifiedLocator, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	key := strings.TrimSpace(input)
	if u, ok := n.cache.Get(key); ok {
		return u, nil
	}

	u, err := n.normalize(key)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Suggestions = append(perr.Suggestions, n.suggest(key)...)
		}
		n.logger.Debug("normalize locator failed", zap.String("locator", key), zap.Error(err))
		return nil, err
	}

	n.cache.Add(key, u)
	return u, nil
}

func (n *Normalizer) normalize(s string) (*UnifiedLocator, error) {
	if s == "" {
		return nil, newParseError("locator cannot be empty")
	}

	if strings.HasPrefix(s, "//") || (strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "/:")) {
		if _, err := locator.Parse(s); err != nil {
			return nil, fromLocatorError(err)
		}
		return n.result(s, KindXPath, s), nil
	}

	if u, ok, err := n.parsePrefix(s); ok {
		return u, err
	}

	if strings.HasPrefix(s, "#") {
		id := s[1:]
		if id == "" {
			return nil, newParseError("empty id in # locator")
		}
		return n.result(s, KindName, id), nil
	}

	if isEclipseID(s) {
		return &UnifiedLocator{Original: s, Kind: KindToolkit, Value: s, Toolkit: RCP, Scope: "rcp", Selector: s}, nil
	}

	u, err := parseCSS(s)
	if err != nil {
		return nil, err
	}
	u.Toolkit = n.mode
	if u.Value != "" {
		u.Value = n.normalizeClassName(u.Value)
	}
	return u, nil
}

func (n *Normalizer) result(original string, kind Kind, value string) *UnifiedLocator {
	return &UnifiedLocator{Original: original, Kind: kind, Value: value, Toolkit: n.mode}
}

// parsePrefix 第二个返回值表示前缀已识别
func (n *Normalizer) parsePrefix(s string) (*UnifiedLocator, bool, error) {
	prefix, value, ok := strings.Cut(s, ":")
	if !ok || strings.HasPrefix(value, "/") {
		return nil, false, nil
	}
	prefix = strings.ToLower(prefix)

	requireValue := func() error {
		if value == "" {
			return newParseError("empty value in %s: locator", prefix)
		}
		return nil
	}

	switch prefix {
	case "name", "id":
		if err := requireValue(); err != nil {
			return nil, true, err
		}
		return n.result(s, KindName, value), true, nil

	case "text":
		if err := requireValue(); err != nil {
			return nil, true, err
		}
		switch {
		case strings.HasPrefix(value, "*"):
			return n.result(s, KindTextContains, value[1:]), true, nil
		case strings.HasPrefix(value, "~"):
			pattern := value[1:]
			if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
				return nil, true, &ParseError{Message: "invalid text regex: " + err.Error(), Position: len("text:~"), Err: err}
			}
			return n.result(s, KindTextRegex, pattern), true, nil
		}
		return n.result(s, KindText, value), true, nil

	case "class":
		if err := requireValue(); err != nil {
			return nil, true, err
		}
		return n.result(s, KindClass, n.normalizeClassName(value)), true, nil

	case "index":
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 0 {
			return nil, true, newParseError("invalid index value '%s': expected non-negative integer", value)
		}
		return n.result(s, KindIndex, strconv.Itoa(idx)), true, nil

	case "tooltip":
		if err := requireValue(); err != nil {
			return nil, true, err
		}
		return n.result(s, KindTooltip, value), true, nil

	case "accessible", "accessiblename":
		if err := requireValue(); err != nil {
			return nil, true, err
		}
		return n.result(s, KindAccessibleName, value), true, nil

	case "swing", "swt", "rcp":
		t, _ := ParseType(prefix)
		return &UnifiedLocator{Original: s, Kind: KindToolkit, Value: value, Toolkit: t, Scope: prefix, Selector: value}, true, nil

	case "view", "editor", "perspective", "menu":
		return &UnifiedLocator{Original: s, Kind: KindToolkit, Value: value, Toolkit: RCP, Scope: "rcp:" + prefix, Selector: value}, true, nil
	}
	return nil, false, nil
}

// isEclipseID 至少三段，以 org、com、net 或 eclipse 开头，如 org.eclipse.ui.views.ProblemView
func isEclipseID(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 3 {
		return false
	}
	switch strings.ToLower(parts[0]) {
	case "org", "com", "net", "eclipse":
		return true
	}
	return false
}

// NormalizeClassName 对应表中有的换成当前模式的简单类名
// 否则 Swing 补上 J 前缀，SWT 去掉 J 前缀
func (n *Normalizer) NormalizeClassName(name string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.normalizeClassName(name)
}

func (n *Normalizer) normalizeClassName(name string) string {
	if m, ok := lookup[strings.ToLower(name)]; ok {
		return m.Native(n.mode)
	}
	if n.mode.IsSWT() {
		if strings.HasPrefix(name, "J") && len(name) > 1 {
			return name[1:]
		}
		return name
	}
	if !strings.HasPrefix(name, "J") && !strings.Contains(name, ".") {
		return "J" + name
	}
	return name
}

// MapType 规范名
func (n *Normalizer) MapType(name string) string {
	if m, ok := lookup[strings.ToLower(name)]; ok {
		return m.Canonical
	}
	return name
}

// SuggestCorrections 根据常见错误给出建议
func (n *Normalizer) SuggestCorrections(input string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.suggest(input)
}

func (n *Normalizer) suggest(input string) []string {
	var suggestions []string

	if n.mode.IsSWT() {
		for _, r := range []struct{ swing, swt string }{
			{"JButton", "Button"},
			{"JTextField", "Text"},
			{"JLabel", "Label"},
		} {
			if strings.Contains(input, r.swing) {
				suggestions = append(suggestions, "In SWT mode, use '"+r.swt+"' instead of '"+r.swing+"'")
			}
		}
	}

	if n.mode == Swing {
		for _, prefix := range []string{"name", "text"} {
			if value, ok := strings.CutPrefix(input, prefix+":"); ok {
				suggestions = append(suggestions, "CSS-style syntax recommended: ["+prefix+"='"+value+"']")
			}
		}
	}

	lower := strings.ToLower(input)
	for _, r := range []struct{ word, name, hint string }{
		{"textfield", "TextField", "capital F"},
		{"checkbox", "CheckBox", "capital B"},
		{"combobox", "ComboBox", "capital B"},
	} {
		if strings.Contains(lower, r.word) && !strings.Contains(lower, "j"+r.word) {
			suggestions = append(suggestions, "Did you mean '"+r.name+"' ("+r.hint+")?")
		}
	}

	if strings.Contains(input, "[") && strings.Contains(input, "=") && !strings.ContainsAny(input, `'"`) {
		suggestions = append(suggestions, "Attribute values should be quoted: [attr='value']")
	}

	return suggestions
}

// ClearCache 清空缓存
func (n *Normalizer) ClearCache() {
	n.cache.Purge()
}

// CacheStats 当前条目数和容量
func (n *Normalizer) CacheStats() (size, capacity int) {
	return n.cache.Len(), n.size
}
