package matcher

import (
	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
)

func (e *Evaluator) matchPseudo(p *locator.PseudoSelector, node component.Node, ctx *Context) bool {
	info := node.Snapshot()
	state := info.State

	switch p.Kind {
	case locator.PseudoFirstChild:
		return ctx.Index == 0
	case locator.PseudoLastChild:
		return ctx.Index == len(ctx.Siblings)-1
	case locator.PseudoNthChild:
		return p.Nth.Matches(ctx.Position())
	case locator.PseudoNthLastChild:
		return p.Nth.Matches(ctx.PositionFromEnd())
	case locator.PseudoOnlyChild:
		return len(ctx.Siblings) == 1

	case locator.PseudoFirstOfType:
		pos, _ := typePosition(info, ctx)
		return pos == 1
	case locator.PseudoLastOfType:
		pos, total := typePosition(info, ctx)
		return pos == total
	case locator.PseudoNthOfType:
		pos, _ := typePosition(info, ctx)
		return p.Nth.Matches(pos)
	case locator.PseudoNthLastOfType:
		pos, total := typePosition(info, ctx)
		return p.Nth.Matches(total - pos + 1)
	case locator.PseudoOnlyOfType:
		_, total := typePosition(info, ctx)
		return total == 1

	case locator.PseudoEmpty:
		return len(node.ChildNodes()) == 0
	case locator.PseudoRoot:
		return ctx.Parent == nil

	case locator.PseudoEnabled:
		return state.Enabled
	case locator.PseudoDisabled:
		return !state.Enabled
	case locator.PseudoVisible:
		return state.Visible
	case locator.PseudoHidden:
		return !state.Visible
	case locator.PseudoShowing:
		return state.Showing
	case locator.PseudoFocused:
		return state.Focused
	case locator.PseudoSelected:
		return state.Selected != nil && *state.Selected
	case locator.PseudoEditable:
		return state.Editable != nil && *state.Editable
	case locator.PseudoReadOnly:
		return state.Editable != nil && !*state.Editable

	case locator.PseudoNot:
		return !e.matchCompound(p.Inner, node, ctx, nil)
	case locator.PseudoHas:
		return e.hasDescendant(p.Inner, node, ctx)
	case locator.PseudoContains:
		return e.containsText(info, p.Text)
	}
	return false
}

// typePosition 在同类型兄弟中的位置（从 1 开始）和同类型兄弟总数
func typePosition(info *component.Info, ctx *Context) (pos, total int) {
	name := info.Type.SimpleName
	for i, s := range ctx.Siblings {
		if s.Snapshot().Type.SimpleName != name {
			continue
		}
		total++
		if i == ctx.Index {
			pos = total
		}
	}
	return pos, total
}

// hasDescendant 深度优先查找匹配的后代，不含自身
func (e *Evaluator) hasDescendant(c *locator.CompoundSelector, node component.Node, ctx *Context) bool {
	children := node.ChildNodes()
	for i, child := range children {
		childCtx := ctx.child(node, children, i)
		if e.matchCompound(c, child, childCtx, nil) {
			return true
		}
		if e.hasDescendant(c, child, childCtx) {
			return true
		}
	}
	return false
}

// containsText 在 text、title 和无障碍名称中查找
func (e *Evaluator) containsText(info *component.Info, text string) bool {
	for _, field := range []*string{info.Identity.Text, info.Identity.Title, info.Accessibility.Name} {
		if field != nil && e.contains(*field, text) {
			return true
		}
	}
	return false
}
