package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
	"github.com/glesirok/uilocator/pkg/matcher"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

// Engine 在组件树上执行查询
type Engine struct {
	cache     *locator.Cache
	evaluator *matcher.Evaluator
	toolkit   toolkit.Type
	logger    *zap.Logger
}

type Option func(*Engine)

// WithToolkit params 查询和控件类型判断使用的默认工具包
func WithToolkit(t toolkit.Type) Option {
	return func(e *Engine) { e.toolkit = t }
}

func WithEvaluator(ev *matcher.Evaluator) Option {
	return func(e *Engine) { e.evaluator = ev }
}

func WithCache(c *locator.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		toolkit: toolkit.Swing,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = locator.NewCache(locator.DefaultCacheCapacity, locator.DefaultCacheTTL)
	}
	if e.evaluator == nil {
		e.evaluator = matcher.New(matcher.WithLogger(e.logger))
	}
	return e
}

// Toolkit 默认工具包
func (e *Engine) Toolkit() toolkit.Type {
	return e.toolkit
}

// CacheStats 定位器缓存统计
func (e *Engine) CacheStats() locator.CacheStats {
	return e.cache.Stats()
}

// Find 解析定位器并查找所有匹配的组件
func (e *Engine) Find(root component.Node, text string) ([]component.Node, error) {
	loc, err := e.cache.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse locator: %w", err)
	}
	return e.evaluator.Find(loc, root), nil
}

// Apply 执行查询，只有定位器无法解析或查询类型未知时返回错误
func (e *Engine) Apply(root component.Node, q *Query) (*Outcome, error) {
	return e.apply([]component.Node{root}, q)
}

// ApplyTree 在所有顶层组件上执行查询，匹配结果合并后再判断
func (e *Engine) ApplyTree(tree *component.Tree, q *Query) (*Outcome, error) {
	roots := make([]component.Node, len(tree.Roots))
	for i, root := range tree.Roots {
		roots[i] = root
	}
	return e.apply(roots, q)
}

func (e *Engine) apply(roots []component.Node, q *Query) (*Outcome, error) {
	out := &Outcome{Query: q.Label(), Action: q.Action, Locator: q.Locator}

	if q.Action == ActionParams {
		return e.params(q, out)
	}

	loc, err := e.cache.Parse(q.Locator)
	if err != nil {
		return nil, fmt.Errorf("parse locator: %w", err)
	}
	var nodes []component.Node
	for _, root := range roots {
		nodes = append(nodes, e.evaluator.Find(loc, root)...)
	}
	out.Count = len(nodes)
	out.Matches = e.summarize(nodes)

	switch q.Action {
	case ActionFind:
		out.Passed = true
	case ActionCount:
		if q.Expect == nil {
			return nil, fmt.Errorf("expect is required for action %s", q.Action)
		}
		out.Passed = out.Count == *q.Expect
		if !out.Passed {
			out.Message = fmt.Sprintf("expected %d matches, got %d", *q.Expect, out.Count)
		}
	case ActionExists:
		out.Passed = out.Count > 0
		if !out.Passed {
			out.Message = "no component matched"
		}
	case ActionAbsent:
		out.Passed = out.Count == 0
		if !out.Passed {
			out.Message = fmt.Sprintf("expected no match, got %d", out.Count)
		}
	case ActionUnique:
		out.Passed = out.Count == 1
		if !out.Passed {
			out.Message = fmt.Sprintf("expected exactly one match, got %d", out.Count)
		}
	default:
		return nil, fmt.Errorf("unknown action: %s", q.Action)
	}

	e.logger.Debug("query applied",
		zap.String("query", out.Query),
		zap.Int("count", out.Count),
		zap.Bool("passed", out.Passed),
	)
	return out, nil
}

// params 不访问组件树，只转换定位器
func (e *Engine) params(q *Query, out *Outcome) (*Outcome, error) {
	t := q.Toolkit
	if t == 0 {
		t = e.toolkit
	}
	params, err := toolkit.Params(q.Locator, t)
	if err != nil {
		return nil, fmt.Errorf("convert locator: %w", err)
	}
	out.Params = params
	out.Passed = true
	return out, nil
}

func (e *Engine) summarize(nodes []component.Node) []Match {
	if len(nodes) == 0 {
		return nil
	}
	matches := make([]Match, len(nodes))
	for i, n := range nodes {
		info := n.Snapshot()
		matches[i] = Match{
			Path:    info.ID.TreePath,
			Type:    info.Type.SimpleName,
			Element: string(toolkit.ElementOf(info.Type.ClassName, e.toolkit)),
			Label:   fmt.Sprint(n),
		}
	}
	return matches
}
