package expression

import (
	"strconv"
	"strings"

	"github.com/glesirok/uilocator/pkg/locator"
)

// Axis XPath 轴
type Axis int

const (
	AxisChild Axis = iota
	AxisDescendant
	AxisParent
	AxisAncestor
	AxisFollowing
	AxisPreceding
	AxisFollowingSibling
	AxisPrecedingSibling
	AxisSelf
	AxisDescendantOrSelf
	AxisAncestorOrSelf
)

var axisNames = [...]string{
	AxisChild:            "child",
	AxisDescendant:       "descendant",
	AxisParent:           "parent",
	AxisAncestor:         "ancestor",
	AxisFollowing:        "following",
	AxisPreceding:        "preceding",
	AxisFollowingSibling: "following-sibling",
	AxisPrecedingSibling: "preceding-sibling",
	AxisSelf:             "self",
	AxisDescendantOrSelf: "descendant-or-self",
	AxisAncestorOrSelf:   "ancestor-or-self",
}

func (a Axis) String() string {
	return axisNames[a]
}

// XPath 路径表达式
type XPath struct {
	Steps            []*Step
	Absolute         bool
	DescendantSearch bool // 以 // 开头
	source           string
}

func (x *XPath) Kind() Kind { return KindXPath }

func (x *XPath) String() string { return x.source }

type Step struct {
	Axis       Axis
	NodeTest   string
	Predicates []Predicate
}

type PredicateKind int

const (
	PredicateAttributeExists PredicateKind = iota
	PredicateAttributeEquals
	PredicateContains
	PredicateStartsWith
	PredicateIndex
	PredicateExpression // 其他条件，Value 为原样文本
)

type Predicate struct {
	Kind  PredicateKind
	Name  string
	Value string
	Index int
}

func (p Predicate) String() string {
	switch p.Kind {
	case PredicateAttributeExists:
		return "[@" + p.Name + "]"
	case PredicateAttributeEquals:
		return "[@" + p.Name + "='" + p.Value + "']"
	case PredicateContains:
		return "[contains(@" + p.Name + ",'" + p.Value + "')]"
	case PredicateStartsWith:
		return "[starts-with(@" + p.Name + ",'" + p.Value + "')]"
	case PredicateIndex:
		return "[" + strconv.Itoa(p.Index) + "]"
	}
	return "[" + p.Value + "]"
}

// FromXPath 由语法树重建路径
// 第一步在 // 下是 descendant，之后每一步由前一个组合符决定
func FromXPath(loc *locator.Locator) *XPath {
	x := &XPath{
		source:           loc.Original,
		DescendantSearch: strings.HasPrefix(strings.TrimSpace(loc.Original), "//"),
		Absolute:         loc.IsXPath,
	}
	if len(loc.Selectors) == 0 {
		return x
	}

	compounds := loc.Selectors[0].Compounds
	for i, c := range compounds {
		axis := AxisChild
		switch {
		case i == 0 && x.DescendantSearch:
			axis = AxisDescendant
		case i > 0 && compounds[i-1].Combinator != locator.CombinatorChild:
			axis = AxisDescendant
		}
		x.Steps = append(x.Steps, stepFrom(c, axis))
	}
	return x
}

func stepFrom(c *locator.CompoundSelector, axis Axis) *Step {
	step := &Step{Axis: axis, NodeTest: "*"}
	if c.Type != nil && c.Type.Kind == locator.TypeName {
		step.NodeTest = c.Type.Name
	}

	for _, a := range c.Attributes {
		step.Predicates = append(step.Predicates, attributePredicate(a))
	}

	for _, p := range c.Pseudos {
		switch p.Kind {
		case locator.PseudoRoot:
			// 绝对路径由 Absolute 表示
		case locator.PseudoNthChild:
			if p.Nth.Kind == locator.NthIndex {
				step.Predicates = append(step.Predicates, Predicate{Kind: PredicateIndex, Index: p.Nth.B})
				continue
			}
			step.Predicates = append(step.Predicates, Predicate{Kind: PredicateExpression, Value: p.String()})
		case locator.PseudoLastChild:
			step.Predicates = append(step.Predicates, Predicate{Kind: PredicateExpression, Value: "last()"})
		case locator.PseudoContains:
			step.Predicates = append(step.Predicates, Predicate{Kind: PredicateContains, Name: "text", Value: p.Text})
		default:
			step.Predicates = append(step.Predicates, Predicate{Kind: PredicateExpression, Value: p.String()})
		}
	}
	return step
}

func attributePredicate(a *locator.AttributeSelector) Predicate {
	if a.Matcher == nil {
		return Predicate{Kind: PredicateAttributeExists, Name: a.Name}
	}
	value := a.Matcher.Value.Text()
	switch a.Matcher.Op {
	case locator.OpEqual:
		return Predicate{Kind: PredicateAttributeEquals, Name: a.Name, Value: value}
	case locator.OpPrefix:
		return Predicate{Kind: PredicateStartsWith, Name: a.Name, Value: value}
	case locator.OpSubstring:
		return Predicate{Kind: PredicateContains, Name: a.Name, Value: value}
	}
	return Predicate{Kind: PredicateExpression, Name: a.Name, Value: "@" + a.Name + a.Matcher.Op.String() + a.Matcher.Value.String()}
}
