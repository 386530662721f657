package matcher

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
)

// Evaluator 判断节点是否匹配定位器
// 可以在多个 goroutine 间共享
type Evaluator struct {
	caseSensitive bool
	regexSize     int
	regexes       *regexCache
	logger        *zap.Logger
}

type Option func(*Evaluator)

// WithCaseSensitive 字符串比较是否区分大小写，默认不区分
func WithCaseSensitive(on bool) Option {
	return func(e *Evaluator) { e.caseSensitive = on }
}

// WithRegexCacheSize 正则缓存容量，默认 100
func WithRegexCacheSize(size int) Option {
	return func(e *Evaluator) { e.regexSize = size }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		regexSize: DefaultRegexCacheSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.regexes = newRegexCache(e.regexSize, e.logger)
	return e
}

// CaseSensitive 是否区分大小写
func (e *Evaluator) CaseSensitive() bool {
	return e.caseSensitive
}

// Result 匹配结果
type Result struct {
	Matches    bool
	Confidence float64
	Matched    []string // 命中的条件，如 type:JButton、attr:text
}

func matched(conditions []string) Result {
	return Result{Matches: true, Confidence: 1.0, Matched: conditions}
}

// Evaluate 依次尝试各个备选项，第一个匹配的生效
// ctx 为 nil 时把 node 当作根节点
func (e *Evaluator) Evaluate(loc *locator.Locator, node component.Node, ctx *Context) Result {
	if ctx == nil {
		ctx = RootContext(node)
	}
	for _, sel := range loc.Selectors {
		if conditions, ok := e.evaluateComplex(sel, node, ctx); ok {
			return matched(conditions)
		}
	}
	return Result{}
}

// Matches 只返回是否匹配
func (e *Evaluator) Matches(loc *locator.Locator, node component.Node, ctx *Context) bool {
	return e.Evaluate(loc, node, ctx).Matches
}

func (e *Evaluator) evaluateComplex(sel *locator.ComplexSelector, node component.Node, ctx *Context) ([]string, bool) {
	if len(sel.Compounds) == 0 {
		return nil, false
	}
	last := len(sel.Compounds) - 1

	var conditions []string
	if !e.matchCompound(sel.Compounds[last], node, ctx, &conditions) {
		return nil, false
	}
	if !e.matchChain(sel.Compounds, last, ctx) {
		return nil, false
	}
	return conditions, true
}

// matchChain 从右向左匹配组合符链
// compounds[i] 已经匹配了 ctx 所在的节点，每一步把上下文移到匹配到的祖先或兄弟，失败时回溯
func (e *Evaluator) matchChain(compounds []*locator.CompoundSelector, i int, ctx *Context) bool {
	if i == 0 {
		return true
	}
	prev := compounds[i-1]

	try := func(node component.Node, next *Context) bool {
		return e.matchCompound(prev, node, next, nil) && e.matchChain(compounds, i-1, next)
	}

	switch prev.Combinator {
	case locator.CombinatorChild:
		if ctx.reachable() == 0 {
			return false
		}
		return try(ctx.Ancestors[0], ctx.ancestor(0))

	case locator.CombinatorAdjacent:
		if ctx.Index == 0 {
			return false
		}
		j := ctx.Index - 1
		return try(ctx.Siblings[j], ctx.sibling(j))

	case locator.CombinatorSibling:
		for j := ctx.Index - 1; j >= 0; j-- {
			if try(ctx.Siblings[j], ctx.sibling(j)) {
				return true
			}
		}
		return false

	default:
		// 后代和级联都是在祖先中查找
		for k, n := 0, ctx.reachable(); k < n; k++ {
			if try(ctx.Ancestors[k], ctx.ancestor(k)) {
				return true
			}
		}
		return false
	}
}

// matchCompound 复合选择器的各个条件都要满足
// conditions 不为 nil 时记录命中的条件
func (e *Evaluator) matchCompound(c *locator.CompoundSelector, node component.Node, ctx *Context, conditions *[]string) bool {
	info := node.Snapshot()
	record := func(s string) {
		if conditions != nil {
			*conditions = append(*conditions, s)
		}
	}

	if c.Type != nil {
		if !e.matchType(c.Type, info, ctx) {
			return false
		}
		record(describeType(c.Type))
	}

	if c.ID != "" {
		if !e.matchID(c.ID, info) {
			return false
		}
		record("id:" + c.ID)
	}

	for _, class := range c.Classes {
		if !e.matchClass(class, info) {
			return false
		}
		record("class:" + class)
	}

	for _, attr := range c.Attributes {
		if !e.matchAttribute(attr, info) {
			return false
		}
		record("attr:" + attr.Name)
	}

	for _, pseudo := range c.Pseudos {
		if !e.matchPseudo(pseudo, node, ctx) {
			return false
		}
		record("pseudo:" + pseudo.String())
	}

	return true
}

func describeType(t *locator.TypeSelector) string {
	if t.Kind == locator.TypePrefix {
		return "prefix:" + t.Key + "=" + t.Value
	}
	return "type:" + t.String()
}

// matchType 类型名与 simple_name 比较，JButton 也可以写成 Button
func (e *Evaluator) matchType(t *locator.TypeSelector, info *component.Info, ctx *Context) bool {
	switch t.Kind {
	case locator.TypeUniversal:
		return true
	case locator.TypePrefix:
		return e.matchPrefix(t.Key, t.Value, info, ctx)
	}

	simple := info.Type.SimpleName
	if e.equal(simple, t.Name) {
		return true
	}
	return strings.HasPrefix(simple, "J") && e.equal(simple[1:], t.Name)
}

// matchPrefix name:value 等简写
func (e *Evaluator) matchPrefix(key, value string, info *component.Info, ctx *Context) bool {
	var (
		actual string
		ok     bool
	)
	switch key {
	case "class":
		return e.matchClass(value, info)
	case "id":
		return e.matchID(value, info)
	case "index":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		return err == nil && ctx != nil && n == ctx.Index
	case "name":
		actual, ok = deref(info.Identity.Name)
	case "internalname":
		actual, ok = deref(info.Identity.InternalName)
	case "text":
		actual, ok = deref(info.Identity.Text)
	case "tooltip":
		actual, ok = deref(info.Identity.Tooltip)
	case "label":
		actual, ok = deref(info.Identity.LabelText)
	case "accessiblename", "accessible":
		actual, ok = deref(info.Accessibility.Name)
	}
	return ok && e.equal(actual, value)
}

// matchID 先比较 internal_name，再比较 name
func (e *Evaluator) matchID(id string, info *component.Info) bool {
	if v, ok := deref(info.Identity.InternalName); ok && e.equal(v, id) {
		return true
	}
	if v, ok := deref(info.Identity.Name); ok && e.equal(v, id) {
		return true
	}
	return false
}

// matchClass 类名去掉 J 前缀后比较，也匹配无障碍角色和状态
func (e *Evaluator) matchClass(class string, info *component.Info) bool {
	simple := strings.TrimPrefix(info.Type.SimpleName, "J")
	if e.equal(simple, strings.TrimPrefix(class, "J")) {
		return true
	}
	if role, ok := deref(info.Accessibility.Role); ok && e.equal(role, class) {
		return true
	}
	for _, state := range info.Accessibility.States {
		if e.equal(state, class) {
			return true
		}
	}
	return false
}
