package locator

import (
	"fmt"
	"strconv"
	"strings"
)

type NthKind int

const (
	NthIndex NthKind = iota // 固定位置
	NthOdd                  // 1, 3, 5...
	NthEven                 // 2, 4, 6...
	NthFormula              // an+b
)

// NthExpr 位置表达式，位置从 1 开始
// NthIndex 时位置保存在 B 中
type NthExpr struct {
	Kind NthKind
	A    int
	B    int
}

func Index(i int) NthExpr      { return NthExpr{Kind: NthIndex, B: i} }
func Odd() NthExpr             { return NthExpr{Kind: NthOdd} }
func Even() NthExpr            { return NthExpr{Kind: NthEven} }
func Formula(a, b int) NthExpr { return NthExpr{Kind: NthFormula, A: a, B: b} }

// Matches 判断 1-based 位置是否满足表达式
func (e NthExpr) Matches(pos int) bool {
	switch e.Kind {
	case NthIndex:
		return pos == e.B
	case NthOdd:
		return pos%2 == 1
	case NthEven:
		return pos%2 == 0
	case NthFormula:
		if e.A == 0 {
			return pos == e.B
		}
		n := pos - e.B
		return n%e.A == 0 && n/e.A >= 0
	}
	return false
}

func (e NthExpr) String() string {
	switch e.Kind {
	case NthOdd:
		return "odd"
	case NthEven:
		return "even"
	case NthFormula:
		if e.B >= 0 {
			return fmt.Sprintf("%dn+%d", e.A, e.B)
		}
		return fmt.Sprintf("%dn%d", e.A, e.B)
	default:
		return strconv.Itoa(e.B)
	}
}

// ParseNth 解析 nth 参数
// 支持：odd、even、3、2n+1、2n-1、-n+3、n
func ParseNth(s string) (NthExpr, error) {
	expr := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if expr == "" {
		return NthExpr{}, fmt.Errorf("empty nth expression")
	}

	switch expr {
	case "odd":
		return Odd(), nil
	case "even":
		return Even(), nil
	}

	if i, err := strconv.Atoi(expr); err == nil {
		return Index(i), nil
	}

	nPos := strings.IndexByte(expr, 'n')
	if nPos == -1 {
		return NthExpr{}, fmt.Errorf("invalid nth expression '%s'", s)
	}

	aPart := expr[:nPos]
	bPart := expr[nPos+1:]

	var a int
	switch aPart {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		v, err := strconv.Atoi(aPart)
		if err != nil {
			return NthExpr{}, fmt.Errorf("invalid nth coefficient '%s'", aPart)
		}
		a = v
	}

	b := 0
	if bPart != "" {
		if bPart[0] != '+' && bPart[0] != '-' {
			return NthExpr{}, fmt.Errorf("invalid nth offset '%s'", bPart)
		}
		v, err := strconv.Atoi(bPart)
		if err != nil {
			return NthExpr{}, fmt.Errorf("invalid nth offset '%s'", bPart)
		}
		b = v
	}

	return Formula(a, b), nil
}
