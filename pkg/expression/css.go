package expression

import (
	"strconv"
	"strings"

	"github.com/glesirok/uilocator/pkg/locator"
)

// Operator 简化后的属性运算符
type Operator int

const (
	OpExists Operator = iota // 只检查属性是否存在
	OpEquals
	OpNotEquals
	OpContains
	OpStartsWith
	OpEndsWith
	OpMatches
)

var operatorNames = [...]string{
	OpExists:     "exists",
	OpEquals:     "equals",
	OpNotEquals:  "not_equals",
	OpContains:   "contains",
	OpStartsWith: "starts_with",
	OpEndsWith:   "ends_with",
	OpMatches:    "matches",
}

func (op Operator) String() string {
	return operatorNames[op]
}

// mapOperator 12 个运算符映射到 6 个，数值比较退化为 equals
func mapOperator(op locator.Operator) Operator {
	switch op {
	case locator.OpNotEqual:
		return OpNotEquals
	case locator.OpSubstring, locator.OpWord:
		return OpContains
	case locator.OpPrefix, locator.OpDash:
		return OpStartsWith
	case locator.OpSuffix:
		return OpEndsWith
	case locator.OpRegex:
		return OpMatches
	default:
		return OpEquals
	}
}

// CSS 第一个备选项的复合选择器链
type CSS struct {
	Segments []*Segment
	source   string
}

func (c *CSS) Kind() Kind { return KindCSS }

func (c *CSS) String() string { return c.source }

// Segment 组合符之间的一段
type Segment struct {
	Element    string // 类型名，* 或空串
	ID         string
	Classes    []string
	Attributes []Attribute
	Pseudos    []Pseudo
	Combinator locator.Combinator // 与下一段之间的组合符
}

type Attribute struct {
	Name  string
	Op    Operator
	Value string
}

// PseudoKind 简化后的伪类
type PseudoKind int

const (
	PseudoFirstChild PseudoKind = iota
	PseudoLastChild
	PseudoNthChild // N 为负数时从末尾数
	PseudoOnlyChild
	PseudoFirstOfType
	PseudoLastOfType
	PseudoOnlyOfType
	PseudoEmpty
	PseudoRoot
	PseudoEnabled
	PseudoDisabled
	PseudoVisible
	PseudoHidden
	PseudoShowing
	PseudoFocus
	PseudoSelected
	PseudoEditable
	PseudoReadOnly
	PseudoNot
	PseudoHas
	PseudoContains
)

type Pseudo struct {
	Kind  PseudoKind
	N     int
	Inner *Segment
	Text  string
}

func (p Pseudo) String() string {
	switch p.Kind {
	case PseudoNthChild:
		return ":nth-child(" + strconv.Itoa(p.N) + ")"
	case PseudoNot, PseudoHas:
		name := ":not("
		if p.Kind == PseudoHas {
			name = ":has("
		}
		return name + p.Inner.Describe() + ")"
	case PseudoContains:
		return ":contains(" + p.Text + ")"
	}
	return ":" + pseudoNames[p.Kind]
}

var pseudoNames = map[PseudoKind]string{
	PseudoFirstChild:  "first-child",
	PseudoLastChild:   "last-child",
	PseudoOnlyChild:   "only-child",
	PseudoFirstOfType: "first-of-type",
	PseudoLastOfType:  "last-of-type",
	PseudoOnlyOfType:  "only-of-type",
	PseudoEmpty:       "empty",
	PseudoRoot:        "root",
	PseudoEnabled:     "enabled",
	PseudoDisabled:    "disabled",
	PseudoVisible:     "visible",
	PseudoHidden:      "hidden",
	PseudoShowing:     "showing",
	PseudoFocus:       "focus",
	PseudoSelected:    "selected",
	PseudoEditable:    "editable",
	PseudoReadOnly:    "readonly",
}

// FromCSS 只取第一个备选项
func FromCSS(loc *locator.Locator) *CSS {
	css := &CSS{source: loc.Original}
	if len(loc.Selectors) == 0 {
		return css
	}
	for _, c := range loc.Selectors[0].Compounds {
		css.Segments = append(css.Segments, segmentFrom(c))
	}
	return css
}

func segmentFrom(c *locator.CompoundSelector) *Segment {
	seg := &Segment{
		ID:         c.ID,
		Classes:    append([]string(nil), c.Classes...),
		Combinator: c.Combinator,
	}

	if c.Type != nil {
		switch c.Type.Kind {
		case locator.TypeName:
			seg.Element = c.Type.Name
		case locator.TypeUniversal:
			seg.Element = "*"
		case locator.TypePrefix:
			seg.Attributes = append(seg.Attributes, Attribute{Name: c.Type.Key, Op: OpEquals, Value: c.Type.Value})
		}
	}

	for _, a := range c.Attributes {
		attr := Attribute{Name: a.Name}
		if a.Matcher != nil {
			attr.Op = mapOperator(a.Matcher.Op)
			attr.Value = a.Matcher.Value.Text()
		}
		seg.Attributes = append(seg.Attributes, attr)
	}

	for _, p := range c.Pseudos {
		seg.Pseudos = append(seg.Pseudos, pseudoFrom(p))
	}
	return seg
}

// pseudoFrom nth 系列按固定规则化简
func pseudoFrom(p *locator.PseudoSelector) Pseudo {
	switch p.Kind {
	case locator.PseudoNthChild:
		return Pseudo{Kind: PseudoNthChild, N: nthValue(p.Nth)}
	case locator.PseudoNthLastChild:
		if p.Nth.Kind == locator.NthIndex {
			return Pseudo{Kind: PseudoNthChild, N: -p.Nth.B}
		}
		return Pseudo{Kind: PseudoNthChild, N: -1}
	case locator.PseudoNthOfType:
		return Pseudo{Kind: PseudoFirstOfType}
	case locator.PseudoNthLastOfType:
		return Pseudo{Kind: PseudoLastOfType}
	case locator.PseudoNot:
		return Pseudo{Kind: PseudoNot, Inner: segmentFrom(p.Inner)}
	case locator.PseudoHas:
		return Pseudo{Kind: PseudoHas, Inner: segmentFrom(p.Inner)}
	case locator.PseudoContains:
		return Pseudo{Kind: PseudoContains, Text: p.Text}
	}
	return Pseudo{Kind: simplePseudo[p.Kind]}
}

func nthValue(e locator.NthExpr) int {
	switch e.Kind {
	case locator.NthOdd:
		return 1
	case locator.NthEven:
		return 2
	default:
		return e.B
	}
}

var simplePseudo = map[locator.PseudoKind]PseudoKind{
	locator.PseudoFirstChild:  PseudoFirstChild,
	locator.PseudoLastChild:   PseudoLastChild,
	locator.PseudoOnlyChild:   PseudoOnlyChild,
	locator.PseudoFirstOfType: PseudoFirstOfType,
	locator.PseudoLastOfType:  PseudoLastOfType,
	locator.PseudoOnlyOfType:  PseudoOnlyOfType,
	locator.PseudoEmpty:       PseudoEmpty,
	locator.PseudoRoot:        PseudoRoot,
	locator.PseudoEnabled:     PseudoEnabled,
	locator.PseudoDisabled:    PseudoDisabled,
	locator.PseudoVisible:     PseudoVisible,
	locator.PseudoHidden:      PseudoHidden,
	locator.PseudoShowing:     PseudoShowing,
	locator.PseudoFocused:     PseudoFocus,
	locator.PseudoSelected:    PseudoSelected,
	locator.PseudoEditable:    PseudoEditable,
	locator.PseudoReadOnly:    PseudoReadOnly,
}

// Describe 段的简短描述，用于日志和命令行输出
func (s *Segment) Describe() string {
	var b strings.Builder
	b.WriteString(s.Element)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	for _, a := range s.Attributes {
		if a.Op == OpExists {
			b.WriteString("[" + a.Name + "]")
			continue
		}
		b.WriteString("[" + a.Name + " " + a.Op.String() + " " + strconv.Quote(a.Value) + "]")
	}
	for _, p := range s.Pseudos {
		b.WriteString(p.String())
	}
	return b.String()
}
