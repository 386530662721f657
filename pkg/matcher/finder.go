package matcher

import (
	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
)

// Find 在以 root 为根的树中查找所有匹配的节点，按文档顺序返回
// 含有 >> 的备选项按级联方式逐段查找，第一个级联备选项的结果直接返回
func (e *Evaluator) Find(loc *locator.Locator, root component.Node) []component.Node {
	for _, sel := range loc.Selectors {
		if sel.IsCascaded() {
			return e.findCascaded(sel, root)
		}
	}

	var results []component.Node
	e.walk(root, RootContext(root), func(n component.Node, ctx *Context) {
		if e.Evaluate(loc, n, ctx).Matches {
			results = append(results, n)
		}
	})
	return results
}

// FindFirst 第一个匹配的节点
func (e *Evaluator) FindFirst(loc *locator.Locator, root component.Node) (component.Node, bool) {
	results := e.Find(loc, root)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

func (e *Evaluator) Count(loc *locator.Locator, root component.Node) int {
	return len(e.Find(loc, root))
}

func (e *Evaluator) Exists(loc *locator.Locator, root component.Node) bool {
	return len(e.Find(loc, root)) > 0
}

// walk 先序遍历，为每个节点构造上下文
func (e *Evaluator) walk(n component.Node, ctx *Context, visit func(component.Node, *Context)) {
	visit(n, ctx)
	children := n.ChildNodes()
	for i, child := range children {
		e.walk(child, ctx.child(n, children, i), visit)
	}
}

type located struct {
	node component.Node
	ctx  *Context
}

// findCascaded 逐段查找
// 每一段在上一段每个结果的后代中查找（不含结果本身），结果按节点去重
// 某一段为空时整体为空；有捕获段时返回第一个捕获段的结果，否则返回最后一段的结果
func (e *Evaluator) findCascaded(sel *locator.ComplexSelector, root component.Node) []component.Node {
	current := []located{{node: root, ctx: RootContext(root)}}
	var captured []located
	hasCaptured := false

	for i, seg := range sel.Segments {
		var next []located
		seen := make(map[component.Node]bool)

		for _, scope := range current {
			scoped := scope.ctx.within(scope.node)
			children := scope.node.ChildNodes()
			for j, child := range children {
				e.walk(child, scoped.child(scope.node, children, j), func(n component.Node, ctx *Context) {
					if seen[n] || !e.matchSegment(seg, n, ctx) {
						return
					}
					seen[n] = true
					next = append(next, located{node: n, ctx: ctx.within(nil)})
				})
			}
		}

		e.logger.Debug("cascaded stage",
			zap.Int("stage", i),
			zap.String("segment", seg.Raw),
			zap.Int("contexts", len(current)),
			zap.Int("matches", len(next)),
		)

		if seg.Capture && !hasCaptured {
			captured, hasCaptured = next, true
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}

	if hasCaptured {
		return nodes(captured)
	}
	return nodes(current)
}

// matchSegment 段内是一条普通的组合符链
func (e *Evaluator) matchSegment(seg *locator.CascadedSegment, n component.Node, ctx *Context) bool {
	last := len(seg.Compounds) - 1
	return e.matchCompound(seg.Compounds[last], n, ctx, nil) && e.matchChain(seg.Compounds, last, ctx)
}

func nodes(items []located) []component.Node {
	out := make([]component.Node, len(items))
	for i, it := range items {
		out[i] = it.node
	}
	return out
}
