package matcher

import "github.com/glesirok/uilocator/pkg/component"

// Context 节点在树中的位置，结构伪类和组合符都依赖它
type Context struct {
	Root      component.Node
	Parent    component.Node   // 根节点为 nil
	Ancestors []component.Node // 由近到远，不含自身
	Siblings  []component.Node // 含自身
	Index     int              // 在 Siblings 中的下标，从 0 开始

	// scope 不为空时，组合符只能回溯到 scope 之内的祖先
	scope component.Node
}

// RootContext 根节点的上下文，兄弟列表只有它自己
func RootContext(root component.Node) *Context {
	return &Context{
		Root:     root,
		Siblings: []component.Node{root},
	}
}

// Position 从 1 开始的位置
func (c *Context) Position() int {
	return c.Index + 1
}

// PositionFromEnd 从末尾数起、从 1 开始的位置
func (c *Context) PositionFromEnd() int {
	return len(c.Siblings) - c.Index
}

func (c *Context) SiblingCount() int {
	return len(c.Siblings)
}

// child 第 i 个子节点的上下文，c 是 parent 的上下文
func (c *Context) child(parent component.Node, children []component.Node, i int) *Context {
	ancestors := make([]component.Node, 0, len(c.Ancestors)+1)
	ancestors = append(ancestors, parent)
	ancestors = append(ancestors, c.Ancestors...)
	return &Context{
		Root:      c.Root,
		Parent:    parent,
		Ancestors: ancestors,
		Siblings:  children,
		Index:     i,
		scope:     c.scope,
	}
}

// ancestor 第 k 个祖先的上下文
func (c *Context) ancestor(k int) *Context {
	node := c.Ancestors[k]
	rest := c.Ancestors[k+1:]

	ctx := &Context{Root: c.Root, Ancestors: rest, scope: c.scope}
	if len(rest) == 0 {
		ctx.Siblings = []component.Node{node}
		return ctx
	}
	ctx.Parent = rest[0]
	ctx.Siblings = rest[0].ChildNodes()
	ctx.Index = indexOf(ctx.Siblings, node)
	return ctx
}

// sibling 第 j 个兄弟的上下文
func (c *Context) sibling(j int) *Context {
	return &Context{
		Root:      c.Root,
		Parent:    c.Parent,
		Ancestors: c.Ancestors,
		Siblings:  c.Siblings,
		Index:     j,
		scope:     c.scope,
	}
}

// reachable 组合符可以回溯的祖先个数
func (c *Context) reachable() int {
	if c.scope == nil {
		return len(c.Ancestors)
	}
	for k, a := range c.Ancestors {
		if a == c.scope {
			return k
		}
	}
	return len(c.Ancestors)
}

// within 以 scope 为边界的副本
func (c *Context) within(scope component.Node) *Context {
	ctx := *c
	ctx.scope = scope
	return &ctx
}

func indexOf(nodes []component.Node, n component.Node) int {
	for i, x := range nodes {
		if x == n {
			return i
		}
	}
	return 0
}
