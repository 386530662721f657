package toolkit

import (
	"errors"
	"strconv"
	"strings"

	"github.com/glesirok/uilocator/pkg/locator"
)

// Kind 统一定位器的类别
type Kind int

const (
	KindName Kind = iota
	KindText
	KindTextContains
	KindTextRegex
	KindClass
	KindIndex
	KindID
	KindTooltip
	KindAccessibleName
	KindCSS
	KindXPath
	KindToolkit
)

var kindNames = [...]string{
	KindName:           "name",
	KindText:           "text",
	KindTextContains:   "text_contains",
	KindTextRegex:      "text_regex",
	KindClass:          "class",
	KindIndex:          "index",
	KindID:             "id",
	KindTooltip:        "tooltip",
	KindAccessibleName: "accessible",
	KindCSS:            "css",
	KindXPath:          "xpath",
	KindToolkit:        "toolkit",
}

func (k Kind) String() string {
	return kindNames[k]
}

// UnifiedLocator 跨工具包的定位器
type UnifiedLocator struct {
	Original   string
	Kind       Kind
	Value      string
	Toolkit    Type   // 零值表示未指定
	Scope      string // KindToolkit 时的前缀，如 swing、rcp:view
	Selector   string // KindToolkit 时前缀之后的部分
	Predicates []Predicate
}

// MatchOp 谓词中的比较方式
type MatchOp int

const (
	MatchEquals MatchOp = iota
	MatchNotEquals
	MatchContains
	MatchStartsWith
	MatchEndsWith
	MatchRegex
	MatchWord
	MatchLess
	MatchLessEqual
	MatchGreater
	MatchGreaterEqual
)

var matchOpText = [...]string{
	MatchEquals:       "=",
	MatchNotEquals:    "!=",
	MatchContains:     "*=",
	MatchStartsWith:   "^=",
	MatchEndsWith:     "$=",
	MatchRegex:        "/=",
	MatchWord:         "~=",
	MatchLess:         "<",
	MatchLessEqual:    "<=",
	MatchGreater:      ">",
	MatchGreaterEqual: ">=",
}

func (op MatchOp) String() string {
	return matchOpText[op]
}

var matchOps = map[locator.Operator]MatchOp{
	locator.OpEqual:        MatchEquals,
	locator.OpNotEqual:     MatchNotEquals,
	locator.OpSubstring:    MatchContains,
	locator.OpPrefix:       MatchStartsWith,
	locator.OpDash:         MatchStartsWith,
	locator.OpSuffix:       MatchEndsWith,
	locator.OpRegex:        MatchRegex,
	locator.OpWord:         MatchWord,
	locator.OpLess:         MatchLess,
	locator.OpLessEqual:    MatchLessEqual,
	locator.OpGreater:      MatchGreater,
	locator.OpGreaterEqual: MatchGreaterEqual,
}

type PredicateKind int

const (
	PredicateAttribute PredicateKind = iota
	PredicatePseudo
	PredicateIndex
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateAttribute:
		return "attribute"
	case PredicatePseudo:
		return "pseudo"
	}
	return "index"
}

// Predicate 附加条件
// 属性：Name Op Value；伪类：Value 为 :enabled 这样的文本；位置：Index
type Predicate struct {
	Kind  PredicateKind
	Name  string
	Op    MatchOp
	Value string
	Index int
}

func (p Predicate) String() string {
	switch p.Kind {
	case PredicateAttribute:
		if p.Value == "" && p.Op == MatchEquals {
			return "[" + p.Name + "]"
		}
		return "[" + p.Name + p.Op.String() + "'" + p.Value + "']"
	case PredicatePseudo:
		return p.Value
	}
	return "[" + strconv.Itoa(p.Index) + "]"
}

// ParseUnified 解析统一定位器，不依赖工具包模式
//   - name: text: class: index: id: tooltip: accessible: 前缀
//   - swing: swt: rcp: 限定工具包
//   - #id 等同于 name:
//   - 以 // 或 (// 开头的是 XPath
//   - 含有 [ 或 : 的按 CSS 解析，其他的当作类名
func ParseUnified(input string) (*UnifiedLocator, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, newParseError("locator cannot be empty")
	}

	if prefix, value, ok := strings.Cut(trimmed, ":"); ok {
		switch p := strings.ToLower(prefix); p {
		case "name", "text", "class", "id", "tooltip", "accessible":
			return &UnifiedLocator{Original: trimmed, Kind: prefixKinds[p], Value: value}, nil
		case "index":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, newParseError("invalid index value %q: expected non-negative integer", value)
			}
			return &UnifiedLocator{Original: trimmed, Kind: KindIndex, Value: strconv.Itoa(n)}, nil
		case "swing", "swt", "rcp":
			t, _ := ParseType(p)
			return &UnifiedLocator{Original: trimmed, Kind: KindToolkit, Value: value, Toolkit: t, Scope: p, Selector: value}, nil
		}
	}

	if strings.HasPrefix(trimmed, "#") {
		return &UnifiedLocator{Original: trimmed, Kind: KindName, Value: trimmed[1:]}, nil
	}

	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "(//") {
		return &UnifiedLocator{Original: trimmed, Kind: KindXPath, Value: trimmed}, nil
	}

	if strings.ContainsAny(trimmed, "[:") {
		return parseCSS(trimmed)
	}

	return &UnifiedLocator{Original: trimmed, Kind: KindClass, Value: trimmed}, nil
}

var prefixKinds = map[string]Kind{
	"name":       KindName,
	"text":       KindText,
	"class":      KindClass,
	"id":         KindID,
	"tooltip":    KindTooltip,
	"accessible": KindAccessibleName,
}

// parseCSS 用定位器语法解析，取最右边的复合选择器作为目标
// Value 为目标的类型名，其余条件都是谓词
func parseCSS(input string) (*UnifiedLocator, error) {
	loc, err := locator.Parse(input)
	if err != nil {
		return nil, fromLocatorError(err)
	}

	u := &UnifiedLocator{Original: input, Kind: KindCSS}
	target := loc.Selectors[0].Last()

	if t := target.Type; t != nil {
		switch t.Kind {
		case locator.TypeName:
			u.Value = t.Name
		case locator.TypePrefix:
			u.Predicates = append(u.Predicates, Predicate{Kind: PredicateAttribute, Name: t.Key, Op: MatchEquals, Value: t.Value})
		}
	}
	if target.ID != "" {
		u.Predicates = append(u.Predicates, Predicate{Kind: PredicateAttribute, Name: "name", Op: MatchEquals, Value: target.ID})
	}
	for _, class := range target.Classes {
		u.Predicates = append(u.Predicates, Predicate{Kind: PredicateAttribute, Name: "class", Op: MatchEquals, Value: class})
	}
	for _, a := range target.Attributes {
		p := Predicate{Kind: PredicateAttribute, Name: a.Name}
		if a.Matcher != nil {
			p.Op = matchOps[a.Matcher.Op]
			p.Value = a.Matcher.Value.Text()
		}
		u.Predicates = append(u.Predicates, p)
	}
	for _, ps := range target.Pseudos {
		if ps.Kind == locator.PseudoNthChild && ps.Nth.Kind == locator.NthIndex {
			u.Predicates = append(u.Predicates, Predicate{Kind: PredicateIndex, Index: ps.Nth.B})
			continue
		}
		u.Predicates = append(u.Predicates, Predicate{Kind: PredicatePseudo, Value: ps.String()})
	}
	return u, nil
}

// fromLocatorError 保留位置信息和底层错误
func fromLocatorError(err error) *ParseError {
	var perr *locator.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Message: perr.Message, Position: perr.Position, Err: err}
	}
	return &ParseError{Message: err.Error(), Position: -1, Err: err}
}

// NormalizeFor 类名按目标工具包转换，其他字段不变
func (u *UnifiedLocator) NormalizeFor(t Type) *UnifiedLocator {
	out := *u
	out.Toolkit = t
	out.Predicates = append([]Predicate(nil), u.Predicates...)
	if u.Kind == KindClass || u.Kind == KindCSS {
		out.Value = NativeFor(u.Value, t)
	}
	return &out
}

// Locator 转换为定位器语法，供本地匹配使用
func (u *UnifiedLocator) Locator() string {
	switch u.Kind {
	case KindName:
		return "name:" + u.Value
	case KindText:
		return "text:" + u.Value
	case KindTextContains:
		return "[text*=" + quoteValue(u.Value) + "]"
	case KindTextRegex:
		return "[text/=" + quoteValue(u.Value) + "]"
	case KindClass:
		return u.Value
	case KindIndex:
		return "index:" + u.Value
	case KindID:
		return "id:" + u.Value
	case KindTooltip:
		return "tooltip:" + u.Value
	case KindAccessibleName:
		return "accessiblename:" + u.Value
	case KindToolkit:
		return u.Selector
	}
	return u.Original
}

func quoteValue(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
