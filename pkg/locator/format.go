package locator

import (
	"strconv"
	"strings"
)

// String 返回原始输入
func (l *Locator) String() string {
	return l.Original
}

// Canonical 按 AST 重新生成 CSS 写法的定位器文本
func (l *Locator) Canonical() string {
	parts := make([]string, len(l.Selectors))
	for i, s := range l.Selectors {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func (s *ComplexSelector) String() string {
	return chainString(s.Compounds)
}

func chainString(compounds []*CompoundSelector) string {
	var b strings.Builder
	for i, c := range compounds {
		b.WriteString(c.String())
		if i < len(compounds)-1 {
			b.WriteString(c.Combinator.String())
		}
	}
	return b.String()
}

func (c Combinator) String() string {
	switch c {
	case CombinatorDescendant:
		return " "
	case CombinatorChild:
		return " > "
	case CombinatorAdjacent:
		return " + "
	case CombinatorSibling:
		return " ~ "
	case CombinatorCascaded:
		return " >> "
	}
	return ""
}

func (c *CompoundSelector) String() string {
	var b strings.Builder
	if c.Capture {
		b.WriteByte('*')
	}
	if c.Type != nil {
		b.WriteString(c.Type.String())
	}
	if c.ID != "" {
		b.WriteByte('#')
		b.WriteString(c.ID)
	}
	for _, class := range c.Classes {
		b.WriteByte('.')
		b.WriteString(class)
	}
	for _, attr := range c.Attributes {
		b.WriteString(attr.String())
	}
	for _, pseudo := range c.Pseudos {
		b.WriteString(pseudo.String())
	}
	return b.String()
}

func (t *TypeSelector) String() string {
	switch t.Kind {
	case TypeUniversal:
		return "*"
	case TypePrefix:
		return t.Key + ":" + t.Value
	}
	return t.Name
}

func (a *AttributeSelector) String() string {
	if a.Matcher == nil {
		return "[" + a.Name + "]"
	}
	return "[" + a.Name + a.Matcher.Op.String() + a.Matcher.Value.String() + "]"
}

var operatorText = map[Operator]string{
	OpEqual:        "=",
	OpNotEqual:     "!=",
	OpPrefix:       "^=",
	OpSuffix:       "$=",
	OpSubstring:    "*=",
	OpWord:         "~=",
	OpDash:         "|=",
	OpRegex:        "/=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
}

func (op Operator) String() string {
	return operatorText[op]
}

// String 字符串值带单引号
func (v Value) String() string {
	if v.Kind == ValueNumber {
		return v.Text()
	}
	return quote(v.Str)
}

// Text 不带引号的文本形式
func (v Value) Text() string {
	if v.Kind == ValueNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

var pseudoText = map[PseudoKind]string{
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
	PseudoFocused:     "focused",
	PseudoSelected:    "selected",
	PseudoEditable:    "editable",
	PseudoReadOnly:    "readonly",

	PseudoNthChild:      "nth-child",
	PseudoNthLastChild:  "nth-last-child",
	PseudoNthOfType:     "nth-of-type",
	PseudoNthLastOfType: "nth-last-of-type",
	PseudoNot:           "not",
	PseudoHas:           "has",
	PseudoContains:      "contains",
}

// Name 伪类名，不含冒号
func (k PseudoKind) Name() string {
	return pseudoText[k]
}

func (p *PseudoSelector) String() string {
	name := ":" + p.Kind.Name()
	switch p.Kind {
	case PseudoNthChild, PseudoNthLastChild, PseudoNthOfType, PseudoNthLastOfType:
		return name + "(" + p.Nth.String() + ")"
	case PseudoNot, PseudoHas:
		return name + "(" + p.Inner.String() + ")"
	case PseudoContains:
		return name + "(" + quote(p.Text) + ")"
	}
	return name
}
