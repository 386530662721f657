package component

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node 是匹配器看到的组件
// 实现必须是指针类型，匹配结果按节点身份去重
type Node interface {
	Snapshot() *Info
	ChildNodes() []Node
}

// Info 组件除子节点以外的全部信息
type Info struct {
	ID            ID                     `yaml:"id"`
	Type          TypeInfo               `yaml:"component_type"`
	Identity      Identity               `yaml:"identity,omitempty"`
	Geometry      Geometry               `yaml:"geometry,omitempty"`
	State         State                  `yaml:"state"`
	Accessibility Accessibility          `yaml:"accessibility,omitempty"`
	Properties    map[string]interface{} `yaml:"properties,omitempty"`
	Metadata      Metadata               `yaml:"metadata"`
}

// ID 组件在快照中的位置
type ID struct {
	HashCode int64  `yaml:"hash_code"`
	TreePath string `yaml:"tree_path"` // 如 "0.1.2"
	Depth    int    `yaml:"depth"`
}

type TypeInfo struct {
	ClassName  string   `yaml:"class_name"`
	SimpleName string   `yaml:"simple_name"`
	Interfaces []string `yaml:"interfaces,omitempty"`
	Hierarchy  []string `yaml:"class_hierarchy,omitempty"`
}

// Identity 命名相关的字段，未设置时为 nil
type Identity struct {
	Name          *string `yaml:"name,omitempty"`
	Text          *string `yaml:"text,omitempty"`
	InternalName  *string `yaml:"internal_name,omitempty"`
	Title         *string `yaml:"title,omitempty"`
	Tooltip       *string `yaml:"tooltip,omitempty"`
	ActionCommand *string `yaml:"action_command,omitempty"`
	LabelText     *string `yaml:"label_text,omitempty"`
}

type Geometry struct {
	Bounds Bounds `yaml:"bounds"`
}

type Bounds struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// State 状态标志
// Selected 和 Editable 只对部分组件有意义，未知时为 nil
type State struct {
	Visible   bool  `yaml:"visible"`
	Showing   bool  `yaml:"showing"`
	Enabled   bool  `yaml:"enabled"`
	Focusable bool  `yaml:"focusable"`
	Focused   bool  `yaml:"focused"`
	Selected  *bool `yaml:"selected,omitempty"`
	Editable  *bool `yaml:"editable,omitempty"`
}

// DefaultState 可见、可用、可获得焦点
func DefaultState() State {
	return State{Visible: true, Showing: true, Enabled: true, Focusable: true}
}

type Accessibility struct {
	Name        *string  `yaml:"accessible_name,omitempty"`
	Description *string  `yaml:"accessible_description,omitempty"`
	Role        *string  `yaml:"accessible_role,omitempty"`
	States      []string `yaml:"accessible_state,omitempty"`
	Actions     []string `yaml:"accessible_actions,omitempty"`
}

// Metadata 遍历时使用的派生信息，加载时重新计算
type Metadata struct {
	ChildCount   int `yaml:"child_count"`
	SiblingIndex int `yaml:"sibling_index"`
}

// Component 快照中的组件
type Component struct {
	Info     `yaml:",inline"`
	Children []*Component `yaml:"children,omitempty"`
}

// New 创建只有类名的组件，状态取默认值
func New(className string, children ...*Component) *Component {
	c := &Component{
		Info: Info{
			Type:  TypeInfo{ClassName: className, SimpleName: SimpleName(className)},
			State: DefaultState(),
		},
		Children: children,
	}
	c.Metadata.ChildCount = len(children)
	return c
}

func (c *Component) Snapshot() *Info {
	return &c.Info
}

func (c *Component) ChildNodes() []Node {
	nodes := make([]Node, len(c.Children))
	for i, child := range c.Children {
		nodes[i] = child
	}
	return nodes
}

// UnmarshalYAML 缺失的状态字段取默认值
func (c *Component) UnmarshalYAML(value *yaml.Node) error {
	type plain Component
	p := plain{Info: Info{State: DefaultState()}}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Component(p)
	return nil
}

// String 简短描述，如 JButton#okButton "OK"
func (c *Component) String() string {
	var b strings.Builder
	b.WriteString(c.Type.SimpleName)
	if c.Identity.Name != nil && *c.Identity.Name != "" {
		b.WriteString("#" + *c.Identity.Name)
	}
	if c.Identity.Text != nil && *c.Identity.Text != "" {
		fmt.Fprintf(&b, " %q", *c.Identity.Text)
	}
	return b.String()
}

// SimpleName 去掉包名，javax.swing.JButton 得到 JButton
func SimpleName(className string) string {
	if i := strings.LastIndexByte(className, '.'); i >= 0 {
		return className[i+1:]
	}
	return className
}

// Ptr 返回值的指针，方便构造可选字段
func Ptr[T any](v T) *T {
	return &v
}

// Walk 先序遍历，fn 返回 false 时不再进入该节点的子树
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.ChildNodes() {
		Walk(child, fn)
	}
}
