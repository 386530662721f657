package locator

import (
	"strconv"
	"strings"
)

// parseXPathUnion 解析 XPath，支持用 | 连接多个路径
func (p *parser) parseXPathUnion() ([]*ComplexSelector, error) {
	var selectors []*ComplexSelector
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.fail(ErrUnexpectedEOF, "expected xpath expression")
		}
		if p.peek() != '/' {
			return nil, p.fail(ErrInvalidXPath, "xpath expression must start with '/'")
		}

		sel, err := p.parseXPath()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)

		p.skipSpace()
		if p.eof() {
			return selectors, nil
		}
		if p.peek() != '|' {
			return nil, p.fail(ErrUnexpectedChar, "unexpected character in xpath")
		}
		p.pos++
	}
}

// parseXPath 解析一条路径
// 第一个步骤前的 // 表示从任意位置开始匹配，单个 / 表示从根节点开始
// 之后的步骤由前面的 / 或 // 决定是子节点还是后代
func (p *parser) parseXPath() (*ComplexSelector, error) {
	var compounds []*CompoundSelector

	absolute := !p.hasPrefix("//")
	first := true

	for !p.eof() && p.peek() == '/' {
		sep := CombinatorChild
		if p.hasPrefix("//") {
			sep = CombinatorDescendant
			p.pos += 2
		} else {
			p.pos++
		}

		if !first {
			compounds[len(compounds)-1].Combinator = sep
		}

		step, err := p.parseXPathStep()
		if err != nil {
			return nil, err
		}
		if first && absolute {
			step.Pseudos = append([]*PseudoSelector{{Kind: PseudoRoot}}, step.Pseudos...)
		}
		compounds = append(compounds, step)
		first = false
	}

	if len(compounds) == 0 {
		return nil, p.fail(ErrInvalidXPath, "expected xpath step")
	}
	if !p.eof() && p.peek() != '|' && !isSpace(p.peek()) {
		return nil, p.fail(ErrInvalidXPath, "unexpected character in xpath step")
	}

	return &ComplexSelector{Compounds: compounds}, nil
}

// parseXPathStep 解析节点测试和谓词
func (p *parser) parseXPathStep() (*CompoundSelector, error) {
	step := &CompoundSelector{}

	switch {
	case p.eof():
		return nil, p.fail(ErrUnexpectedEOF, "expected xpath node test")
	case p.peek() == '*':
		p.pos++
		step.Type = &TypeSelector{Kind: TypeUniversal}
	default:
		name := p.readIdent()
		if name == "" {
			return nil, p.fail(ErrInvalidXPath, "expected xpath node test")
		}
		if p.hasPrefix("::") {
			return nil, p.fail(ErrInvalidXPath, "explicit xpath axes are not supported")
		}
		step.Type = &TypeSelector{Kind: TypeName, Name: name}
	}

	for !p.eof() && p.peek() == '[' {
		if err := p.parseXPathPredicate(step); err != nil {
			return nil, err
		}
	}

	return step, nil
}

// parseXPathPredicate 解析 [...]，多个条件可以用 and 连接
func (p *parser) parseXPathPredicate(step *CompoundSelector) error {
	open := p.pos
	p.pos++ // [

	for {
		p.skipSpace()
		if p.eof() {
			return p.failAt(ErrUnclosed, open, "unclosed xpath predicate")
		}
		if err := p.parseXPathTerm(step); err != nil {
			return err
		}
		p.skipSpace()
		if p.eof() {
			return p.failAt(ErrUnclosed, open, "unclosed xpath predicate")
		}
		if p.peek() == ']' {
			p.pos++
			return nil
		}
		if p.hasPrefix("and") && !isIdentRuneByte(p.peekAt(3)) {
			p.pos += 3
			continue
		}
		return p.fail(ErrInvalidXPath, "expected ']' or 'and'")
	}
}

// parseXPathTerm 单个谓词条件
//   - 3              位置
//   - @attr          属性存在
//   - @attr='v'      属性比较
//   - contains(@a,'v') / contains(text(),'v')
//   - starts-with(@a,'v')
//   - text()='v'
//   - last()
func (p *parser) parseXPathTerm(step *CompoundSelector) error {
	start := p.pos
	c := p.peek()

	switch {
	case c >= '0' && c <= '9':
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil || n < 1 {
			return p.failAt(ErrInvalidXPath, start, "xpath position must be a positive integer")
		}
		step.Pseudos = append(step.Pseudos, &PseudoSelector{Kind: PseudoNthChild, Nth: Index(n)})
		return nil

	case c == '@':
		p.pos++
		name := p.readIdent()
		if name == "" {
			return p.fail(ErrInvalidXPath, "expected attribute name after '@'")
		}
		attr, err := p.parseXPathComparison(name)
		if err != nil {
			return err
		}
		step.Attributes = append(step.Attributes, attr)
		return nil

	case p.hasPrefix("last()"):
		p.pos += len("last()")
		step.Pseudos = append(step.Pseudos, &PseudoSelector{Kind: PseudoLastChild})
		return nil

	case p.hasPrefix("text()"):
		p.pos += len("text()")
		attr, err := p.parseXPathComparison("text")
		if err != nil {
			return err
		}
		if attr.Matcher == nil {
			attr = &AttributeSelector{Name: "text"}
		}
		step.Attributes = append(step.Attributes, attr)
		return nil

	case p.hasPrefix("contains("):
		p.pos += len("contains(")
		_, value, err := p.parseXPathFuncArgs(start)
		if err != nil {
			return err
		}
		step.Pseudos = append(step.Pseudos, &PseudoSelector{Kind: PseudoContains, Text: value})
		return nil

	case p.hasPrefix("starts-with("):
		p.pos += len("starts-with(")
		attrName, value, err := p.parseXPathFuncArgs(start)
		if err != nil {
			return err
		}
		step.Attributes = append(step.Attributes, &AttributeSelector{
			Name:    attrName,
			Matcher: &AttributeMatcher{Op: OpPrefix, Value: StringValue(value)},
		})
		return nil
	}

	return p.fail(ErrInvalidXPath, "unsupported xpath predicate")
}

// parseXPathComparison 读取属性名之后可选的比较部分
func (p *parser) parseXPathComparison(name string) (*AttributeSelector, error) {
	p.skipSpace()
	if p.eof() || p.peek() == ']' || p.hasPrefix("and") {
		return &AttributeSelector{Name: name}, nil
	}

	var op Operator
	switch {
	case p.hasPrefix("!="):
		op, p.pos = OpNotEqual, p.pos+2
	case p.hasPrefix("<="):
		op, p.pos = OpLessEqual, p.pos+2
	case p.hasPrefix(">="):
		op, p.pos = OpGreaterEqual, p.pos+2
	case p.hasPrefix("="):
		op, p.pos = OpEqual, p.pos+1
	case p.hasPrefix("<"):
		op, p.pos = OpLess, p.pos+1
	case p.hasPrefix(">"):
		op, p.pos = OpGreater, p.pos+1
	default:
		return nil, p.fail(ErrInvalidXPath, "unsupported xpath operator")
	}
	p.skipSpace()

	value, err := p.readXPathLiteral()
	if err != nil {
		return nil, err
	}
	return &AttributeSelector{Name: name, Matcher: &AttributeMatcher{Op: op, Value: value}}, nil
}

// readXPathLiteral 字符串字面量或数字
func (p *parser) readXPathLiteral() (Value, error) {
	if p.eof() {
		return Value{}, p.fail(ErrUnexpectedEOF, "expected xpath literal")
	}
	if q := p.peek(); q == '\'' || q == '"' {
		s, err := p.readQuoted()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	}

	start := p.pos
	for !p.eof() && strings.IndexByte("0123456789+-.eE", p.peek()) >= 0 {
		p.pos++
	}
	raw := p.src[start:p.pos]
	n, err := strconv.ParseFloat(raw, 64)
	if raw == "" || err != nil {
		return Value{}, p.failAt(ErrInvalidXPath, start, "expected quoted string or number")
	}
	return NumberValue(n), nil
}

// parseXPathFuncArgs 解析 (@attr, 'value') 或 (text(), 'value')，左括号已读取
func (p *parser) parseXPathFuncArgs(start int) (string, string, error) {
	p.skipSpace()

	var attrName string
	switch {
	case p.peek() == '@':
		p.pos++
		attrName = p.readIdent()
		if attrName == "" {
			return "", "", p.fail(ErrInvalidXPath, "expected attribute name after '@'")
		}
	case p.hasPrefix("text()"):
		p.pos += len("text()")
		attrName = "text"
	case p.hasPrefix("."):
		p.pos++
		attrName = "text"
	default:
		return "", "", p.fail(ErrInvalidXPath, "expected '@attribute' or 'text()'")
	}

	p.skipSpace()
	if p.peek() != ',' {
		return "", "", p.fail(ErrInvalidXPath, "expected ','")
	}
	p.pos++
	p.skipSpace()

	if q := p.peek(); q != '\'' && q != '"' {
		return "", "", p.fail(ErrInvalidXPath, "expected quoted string")
	}
	value, err := p.readQuoted()
	if err != nil {
		return "", "", err
	}

	p.skipSpace()
	if p.eof() {
		return "", "", p.failAt(ErrUnclosed, start, "unclosed xpath function call")
	}
	if p.peek() != ')' {
		return "", "", p.fail(ErrInvalidXPath, "expected ')'")
	}
	p.pos++
	return attrName, value, nil
}

func isIdentRuneByte(c byte) bool {
	return c != 0 && (c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'))
}
