package locator

// Locator 表示解析后的完整定位器
// Selectors 之间是“或”关系，任意一个匹配即视为匹配
type Locator struct {
	Selectors []*ComplexSelector
	Original  string // 原始输入
	IsXPath   bool   // 是否以 XPath 语法输入
}

// ComplexSelector 表示由组合符连接的一串复合选择器，如 "A > B C"
type ComplexSelector struct {
	Compounds []*CompoundSelector
	Segments  []*CascadedSegment // 仅当链中含有 >> 时非空
}

// CascadedSegment 表示 >> 之间的一段
type CascadedSegment struct {
	Capture   bool                // 以 *Type 开头的段，返回该段的结果
	Compounds []*CompoundSelector // 段内子链，最后一个的组合符忽略
	Raw       string
}

// CompoundSelector 作用于单个节点的全部条件，条件之间是“与”关系
type CompoundSelector struct {
	Type       *TypeSelector
	ID         string // 空串表示没有 #id
	Classes    []string
	Attributes []*AttributeSelector
	Pseudos    []*PseudoSelector
	Capture    bool       // 级联段的捕获标记
	Combinator Combinator // 与下一个复合选择器之间的组合符
}

type TypeKind int

const (
	TypeName      TypeKind = iota // JButton
	TypeUniversal                 // *
	TypePrefix                    // name:value 简写
)

// TypeSelector 类型选择器
type TypeSelector struct {
	Kind  TypeKind
	Name  string // TypeName 时的类型名
	Key   string // TypePrefix 时的前缀（小写）
	Value string // TypePrefix 时的值
}

type Combinator int

const (
	CombinatorNone       Combinator = iota // 链尾
	CombinatorDescendant                   // 空白
	CombinatorChild                        // >
	CombinatorAdjacent                     // +
	CombinatorSibling                      // ~
	CombinatorCascaded                     // >>
)

// AttributeSelector 属性选择器，Matcher 为空时只检查属性是否存在
type AttributeSelector struct {
	Name    string
	Matcher *AttributeMatcher
}

// AttributeMatcher 属性比较条件
type AttributeMatcher struct {
	Op    Operator
	Value Value
}

type Operator int

const (
	OpEqual        Operator = iota // =
	OpNotEqual                     // !=
	OpPrefix                       // ^=
	OpSuffix                       // $=
	OpSubstring                    // *=
	OpWord                         // ~=
	OpDash                         // |=
	OpRegex                        // /=
	OpLess                         // <
	OpLessEqual                    // <=
	OpGreater                      // >
	OpGreaterEqual                 // >=
)

// IsNumeric 是否为数值比较
func (op Operator) IsNumeric() bool {
	return op >= OpLess
}

type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
)

// Value 属性值，未加引号且能解析为浮点数的值为数值
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// StringValue 构造字符串值
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// NumberValue 构造数值
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

type PseudoKind int

const (
	PseudoFirstChild PseudoKind = iota
	PseudoLastChild
	PseudoNthChild
	PseudoNthLastChild
	PseudoOnlyChild
	PseudoFirstOfType
	PseudoLastOfType
	PseudoNthOfType
	PseudoNthLastOfType
	PseudoOnlyOfType
	PseudoEmpty
	PseudoRoot

	PseudoEnabled
	PseudoDisabled
	PseudoVisible
	PseudoHidden
	PseudoShowing
	PseudoFocused
	PseudoSelected
	PseudoEditable
	PseudoReadOnly

	PseudoNot
	PseudoHas
	PseudoContains
)

// PseudoSelector 伪类
type PseudoSelector struct {
	Kind  PseudoKind
	Nth   NthExpr           // nth-* 系列
	Inner *CompoundSelector // :not() / :has()
	Text  string            // :contains()
}

// Structural 是否依赖兄弟节点位置
func (p *PseudoSelector) Structural() bool {
	return p.Kind <= PseudoRoot
}

// ForType 构造只含一个类型选择器的定位器
func ForType(name string) *Locator {
	compound := &CompoundSelector{Type: &TypeSelector{Kind: TypeName, Name: name}}
	return &Locator{
		Selectors: []*ComplexSelector{{Compounds: []*CompoundSelector{compound}}},
		Original:  name,
	}
}

// IsUniversal 定位器是否只是 *
func (l *Locator) IsUniversal() bool {
	if len(l.Selectors) != 1 || len(l.Selectors[0].Compounds) != 1 {
		return false
	}
	c := l.Selectors[0].Compounds[0]
	return c.Type != nil && c.Type.Kind == TypeUniversal && c.conditionCount() == 1
}

// IsCascaded 链中是否含有 >>
func (s *ComplexSelector) IsCascaded() bool {
	for _, c := range s.Compounds {
		if c.Combinator == CombinatorCascaded {
			return true
		}
	}
	return false
}

// HasCapture 是否有段带捕获标记
func (s *ComplexSelector) HasCapture() bool {
	return s.CaptureIndex() >= 0
}

// CaptureIndex 第一个捕获段的下标，没有则为 -1
func (s *ComplexSelector) CaptureIndex() int {
	for i, seg := range s.Segments {
		if seg.Capture {
			return i
		}
	}
	return -1
}

// Last 链中最右边的复合选择器
func (s *ComplexSelector) Last() *CompoundSelector {
	return s.Compounds[len(s.Compounds)-1]
}

func (c *CompoundSelector) conditionCount() int {
	n := len(c.Classes) + len(c.Attributes) + len(c.Pseudos)
	if c.Type != nil {
		n++
	}
	if c.ID != "" {
		n++
	}
	return n
}

// IsEmpty 没有任何条件
func (c *CompoundSelector) IsEmpty() bool {
	return c.conditionCount() == 0
}
