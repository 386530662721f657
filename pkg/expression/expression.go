package expression

import (
	"fmt"
	"strings"

	"github.com/glesirok/uilocator/pkg/locator"
)

// Kind 表达式类别
type Kind int

const (
	KindSimple Kind = iota
	KindCSS
	KindXPath
	KindToolkit
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCSS:
		return "css"
	case KindXPath:
		return "xpath"
	case KindToolkit:
		return "toolkit"
	}
	return "unknown"
}

// Expression 定位器的扁平表示，不需要遍历完整语法树
type Expression interface {
	Kind() Kind
	String() string
}

// Parse 把定位器文本归类为 Simple、Toolkit、XPath 或 CSS
// 优先级：prefix:value 简写 > swing:/swt:/rcp: 前缀 > 以 / 开头的 XPath > CSS
func Parse(input string) (Expression, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		_, err := locator.Parse(input)
		return nil, err
	}

	if simple, ok := parseSimple(trimmed); ok {
		return simple, nil
	}

	if tk, ok, err := parseToolkit(trimmed); ok {
		return tk, err
	}

	loc, err := locator.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse locator: %w", err)
	}
	if strings.HasPrefix(trimmed, "/") {
		return FromXPath(loc), nil
	}
	return FromCSS(loc), nil
}

// SimpleType prefix:value 的前缀
type SimpleType int

const (
	SimpleName SimpleType = iota
	SimpleInternalName
	SimpleText
	SimpleTooltip
	SimpleClass
	SimpleIndex
	SimpleID
	SimpleLabel
	SimpleAccessibleName
)

var simplePrefixes = map[string]SimpleType{
	"name":            SimpleName,
	"internalname":    SimpleInternalName,
	"internal_name":   SimpleInternalName,
	"internal-name":   SimpleInternalName,
	"text":            SimpleText,
	"tooltip":         SimpleTooltip,
	"class":           SimpleClass,
	"index":           SimpleIndex,
	"id":              SimpleID,
	"label":           SimpleLabel,
	"accessiblename":  SimpleAccessibleName,
	"accessible_name": SimpleAccessibleName,
	"accessible-name": SimpleAccessibleName,
}

var simpleNames = [...]string{
	SimpleName:           "name",
	SimpleInternalName:   "internalname",
	SimpleText:           "text",
	SimpleTooltip:        "tooltip",
	SimpleClass:          "class",
	SimpleIndex:          "index",
	SimpleID:             "id",
	SimpleLabel:          "label",
	SimpleAccessibleName: "accessiblename",
}

func (t SimpleType) String() string {
	if int(t) < len(simpleNames) {
		return simpleNames[t]
	}
	return "unknown"
}

// Simple prefix:value 形式
type Simple struct {
	Type  SimpleType
	Value string
}

func (s *Simple) Kind() Kind { return KindSimple }

func (s *Simple) String() string {
	return s.Type.String() + ":" + s.Value
}

// parseSimple 以 : 开头的是伪类，前缀里有 CSS 字符的也不算简写
func parseSimple(input string) (*Simple, bool) {
	if strings.HasPrefix(input, ":") {
		return nil, false
	}
	prefix, value, ok := strings.Cut(input, ":")
	if !ok || strings.ContainsAny(prefix, "[.# ") {
		return nil, false
	}
	t, ok := simplePrefixes[strings.ToLower(prefix)]
	if !ok {
		return nil, false
	}
	return &Simple{Type: t, Value: value}, true
}

// Toolkit 限定工具包的选择器，如 swing:JButton[text='OK']
type Toolkit struct {
	Toolkit  string // swing、swt 或 rcp，小写
	Selector string
	Inner    Expression
}

func (t *Toolkit) Kind() Kind { return KindToolkit }

func (t *Toolkit) String() string {
	return t.Toolkit + ":" + t.Selector
}

func parseToolkit(input string) (*Toolkit, bool, error) {
	prefix, selector, ok := strings.Cut(input, ":")
	if !ok {
		return nil, false, nil
	}
	name := strings.ToLower(prefix)
	switch name {
	case "swing", "swt", "rcp":
	default:
		return nil, false, nil
	}

	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, true, fmt.Errorf("empty selector after %s:", name)
	}
	inner, err := Parse(selector)
	if err != nil {
		return nil, true, fmt.Errorf("parse %s selector: %w", name, err)
	}
	return &Toolkit{Toolkit: name, Selector: selector, Inner: inner}, true, nil
}
