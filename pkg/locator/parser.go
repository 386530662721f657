package locator

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// prefixKeys 简写前缀 prefix:value
var prefixKeys = map[string]bool{
	"name":           true,
	"internalname":   true,
	"text":           true,
	"tooltip":        true,
	"class":          true,
	"index":          true,
	"id":             true,
	"label":          true,
	"accessiblename": true,
}

// pseudoNames 不带参数的伪类
var pseudoNames = map[string]PseudoKind{
	"first-child":   PseudoFirstChild,
	"last-child":    PseudoLastChild,
	"only-child":    PseudoOnlyChild,
	"first-of-type": PseudoFirstOfType,
	"last-of-type":  PseudoLastOfType,
	"only-of-type":  PseudoOnlyOfType,
	"empty":         PseudoEmpty,
	"root":          PseudoRoot,
	"enabled":       PseudoEnabled,
	"disabled":      PseudoDisabled,
	"visible":       PseudoVisible,
	"hidden":        PseudoHidden,
	"showing":       PseudoShowing,
	"focused":       PseudoFocused,
	"focus":         PseudoFocused,
	"selected":      PseudoSelected,
	"checked":       PseudoSelected,
	"editable":      PseudoEditable,
	"readonly":      PseudoReadOnly,
	"read-only":     PseudoReadOnly,
}

// nthNames 接受 nth 表达式的伪类
var nthNames = map[string]PseudoKind{
	"nth-child":        PseudoNthChild,
	"nth-last-child":   PseudoNthLastChild,
	"nth-of-type":      PseudoNthOfType,
	"nth-last-of-type": PseudoNthLastOfType,
}

// Parse 解析定位器字符串
// 按优先级识别三种写法：
//   - name:value 等简写
//   - 以 / 开头的 XPath
//   - 其余按 CSS 选择器处理
func Parse(input string) (*Locator, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, newParseError(input, ErrEmptyInput, 0, "empty locator expression")
	}

	p := &parser{
		src: input,
		pos: len(input) - len(strings.TrimLeftFunc(input, unicode.IsSpace)),
	}
	p.end = p.pos + len(trimmed)

	if loc, ok := p.parseShorthand(trimmed); ok {
		return loc, nil
	}

	var (
		selectors []*ComplexSelector
		err       error
		isXPath   bool
	)
	if trimmed[0] == '/' {
		isXPath = true
		selectors, err = p.parseXPathUnion()
	} else {
		selectors, err = p.parseSelectorList()
	}
	if err != nil {
		return nil, err
	}

	if len(selectors) == 0 {
		return nil, newParseError(input, ErrInvalidSelector, 0, "no valid selectors found")
	}

	return &Locator{Selectors: selectors, Original: input, IsXPath: isXPath}, nil
}

// MustParse 解析失败时 panic，只用于常量定位器
func MustParse(input string) *Locator {
	loc, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return loc
}

type parser struct {
	src string
	pos int
	end int
}

func (p *parser) eof() bool {
	return p.pos >= p.end
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= p.end {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:p.end], s)
}

func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
	return p.pos > start
}

func (p *parser) fail(kind ErrorKind, msg string) *ParseError {
	return newParseError(p.src, kind, p.pos, msg)
}

func (p *parser) failAt(kind ErrorKind, pos int, msg string) *ParseError {
	return newParseError(p.src, kind, pos, msg)
}

// parseShorthand 识别 prefix:value 简写
// 前缀中不能出现 [ . # 和空格，否则按 CSS 处理（如 JButton:enabled）
func (p *parser) parseShorthand(trimmed string) (*Locator, bool) {
	colon := strings.IndexByte(trimmed, ':')
	if colon <= 0 {
		return nil, false
	}

	prefix := trimmed[:colon]
	if strings.ContainsAny(prefix, "[.# ") {
		return nil, false
	}

	key := strings.ToLower(prefix)
	if !prefixKeys[key] {
		return nil, false
	}

	compound := &CompoundSelector{
		Type: &TypeSelector{Kind: TypePrefix, Key: key, Value: trimmed[colon+1:]},
	}
	return &Locator{
		Selectors: []*ComplexSelector{{Compounds: []*CompoundSelector{compound}}},
		Original:  p.src,
	}, true
}

// parseSelectorList 解析逗号分隔的备选项
func (p *parser) parseSelectorList() ([]*ComplexSelector, error) {
	var selectors []*ComplexSelector

	for {
		p.skipSpace()
		if p.eof() {
			if len(selectors) > 0 {
				return nil, p.fail(ErrUnexpectedEOF, "expected selector after ','")
			}
			return nil, p.fail(ErrUnexpectedEOF, "expected selector")
		}
		if p.peek() == ',' {
			return nil, p.fail(ErrInvalidSelector, "empty selector in list")
		}

		sel, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)

		p.skipSpace()
		if p.eof() {
			return selectors, nil
		}
		if p.peek() != ',' {
			return nil, p.fail(ErrUnexpectedChar, "unexpected character in selector")
		}
		p.pos++
	}
}

// parseComplex 解析一条组合符链
func (p *parser) parseComplex() (*ComplexSelector, error) {
	var compounds []*CompoundSelector
	segStart := []int{0}

	for {
		start := p.pos
		compound, err := p.parseCompound(true)
		if err != nil {
			return nil, err
		}
		if compound == nil {
			if p.eof() {
				return nil, p.fail(ErrUnexpectedEOF, "expected selector")
			}
			return nil, p.fail(ErrInvalidSelector, "expected selector")
		}
		if compound.Capture && len(compounds) != segStart[len(segStart)-1] {
			return nil, p.failAt(ErrInvalidSelector, start, "capture marker must start a cascaded segment")
		}
		compounds = append(compounds, compound)

		hadSpace := p.skipSpace()
		if p.eof() || p.peek() == ',' || p.peek() == ')' {
			break
		}

		comb := CombinatorNone
		switch p.peek() {
		case '>':
			if p.peekAt(1) == '>' {
				comb = CombinatorCascaded
				p.pos += 2
			} else {
				comb = CombinatorChild
				p.pos++
			}
		case '+':
			comb = CombinatorAdjacent
			p.pos++
		case '~':
			comb = CombinatorSibling
			p.pos++
		default:
			if !hadSpace {
				return nil, p.fail(ErrUnexpectedChar, "unexpected character in selector")
			}
			comb = CombinatorDescendant
		}

		compound.Combinator = comb
		if comb == CombinatorCascaded {
			segStart = append(segStart, len(compounds))
		}

		p.skipSpace()
		if p.eof() {
			return nil, p.fail(ErrUnexpectedEOF, "expected selector after combinator")
		}
	}

	sel := &ComplexSelector{Compounds: compounds}
	if sel.IsCascaded() {
		sel.Segments = buildSegments(compounds, segStart)
	} else if compounds[0].Capture {
		return nil, p.fail(ErrInvalidSelector, "capture marker requires a cascaded (>>) selector")
	}
	return sel, nil
}

// buildSegments 按 >> 切分级联段
func buildSegments(compounds []*CompoundSelector, starts []int) []*CascadedSegment {
	segments := make([]*CascadedSegment, 0, len(starts))
	for i, start := range starts {
		end := len(compounds)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		part := compounds[start:end]
		segments = append(segments, &CascadedSegment{
			Capture:   part[0].Capture,
			Compounds: part,
			Raw:       chainString(part),
		})
	}
	return segments
}

// parseCompound 解析复合选择器，什么都没读到时返回 nil
func (p *parser) parseCompound(allowCapture bool) (*CompoundSelector, error) {
	compound := &CompoundSelector{}

	if p.peek() == '*' {
		start := p.pos
		p.pos++
		if name := p.readIdent(); name != "" {
			if !allowCapture {
				return nil, p.failAt(ErrInvalidSelector, start, "capture marker is not allowed here")
			}
			compound.Capture = true
			compound.Type = &TypeSelector{Kind: TypeName, Name: name}
		} else {
			compound.Type = &TypeSelector{Kind: TypeUniversal}
		}
	} else if name := p.readIdent(); name != "" {
		compound.Type = &TypeSelector{Kind: TypeName, Name: name}
	}

	for !p.eof() {
		switch p.peek() {
		case '#':
			start := p.pos
			p.pos++
			id := p.readName()
			if id == "" {
				return nil, p.failAt(ErrInvalidSelector, start, "expected identifier after '#'")
			}
			if compound.ID != "" {
				return nil, p.failAt(ErrInvalidSelector, start, "duplicate id selector")
			}
			compound.ID = id
		case '.':
			start := p.pos
			p.pos++
			class := p.readName()
			if class == "" {
				return nil, p.failAt(ErrInvalidSelector, start, "expected class name after '.'")
			}
			compound.Classes = append(compound.Classes, class)
		case '[':
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			compound.Attributes = append(compound.Attributes, attr)
		case ':':
			pseudo, err := p.parsePseudo()
			if err != nil {
				return nil, err
			}
			compound.Pseudos = append(compound.Pseudos, pseudo)
		default:
			return finishCompound(compound), nil
		}
	}

	return finishCompound(compound), nil
}

func finishCompound(c *CompoundSelector) *CompoundSelector {
	if c.IsEmpty() {
		return nil
	}
	return c
}

// parseAttribute 解析 [attr op value]
func (p *parser) parseAttribute() (*AttributeSelector, error) {
	open := p.pos
	p.pos++ // [
	p.skipSpace()

	name := p.readIdent()
	if name == "" {
		if p.eof() {
			return nil, p.failAt(ErrUnclosed, open, "unclosed attribute selector")
		}
		return nil, p.fail(ErrInvalidAttribute, "expected attribute name")
	}
	p.skipSpace()

	if p.eof() {
		return nil, p.failAt(ErrUnclosed, open, "unclosed attribute selector")
	}
	if p.peek() == ']' {
		p.pos++
		return &AttributeSelector{Name: name}, nil
	}

	op, ok := p.readOperator()
	if !ok {
		return nil, p.fail(ErrInvalidAttribute, "unknown attribute operator")
	}
	p.skipSpace()

	if p.eof() {
		return nil, p.failAt(ErrUnclosed, open, "unclosed attribute selector")
	}

	var value Value
	if q := p.peek(); q == '\'' || q == '"' {
		s, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		value = StringValue(s)
	} else {
		start := p.pos
		for !p.eof() && p.peek() != ']' && !isSpace(p.peek()) {
			p.pos++
		}
		raw := p.src[start:p.pos]
		if raw == "" {
			return nil, p.fail(ErrInvalidAttribute, "expected attribute value")
		}
		value = parseUnquoted(raw)
	}

	p.skipSpace()
	if p.eof() {
		return nil, p.failAt(ErrUnclosed, open, "unclosed attribute selector")
	}
	if p.peek() != ']' {
		return nil, p.fail(ErrInvalidAttribute, "expected ']'")
	}
	p.pos++

	return &AttributeSelector{Name: name, Matcher: &AttributeMatcher{Op: op, Value: value}}, nil
}

// operators 双字符的放在前面
var operators = []struct {
	text string
	op   Operator
}{
	{"!=", OpNotEqual},
	{"^=", OpPrefix},
	{"$=", OpSuffix},
	{"*=", OpSubstring},
	{"~=", OpWord},
	{"|=", OpDash},
	{"/=", OpRegex},
	{"<=", OpLessEqual},
	{">=", OpGreaterEqual},
	{"=", OpEqual},
	{"<", OpLess},
	{">", OpGreater},
}

func (p *parser) readOperator() (Operator, bool) {
	for _, o := range operators {
		if p.hasPrefix(o.text) {
			p.pos += len(o.text)
			return o.op, true
		}
	}
	return 0, false
}

// parseUnquoted 未加引号的值，像数字的按数值处理
func parseUnquoted(raw string) Value {
	if looksNumeric(raw) {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return NumberValue(n)
		}
	}
	return StringValue(raw)
}

func looksNumeric(s string) bool {
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digits
}

// readQuoted 读取单引号或双引号字符串
// 只有 \' \" \\ 是转义，其余反斜杠原样保留，正则里的 \d 之类不受影响
func (p *parser) readQuoted() (string, error) {
	open := p.pos
	quote := p.peek()
	p.pos++

	var b strings.Builder
	for {
		if p.eof() {
			return "", p.failAt(ErrUnclosed, open, "unterminated string")
		}
		c := p.peek()
		switch c {
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.failAt(ErrUnclosed, open, "unterminated string")
			}
			if next := p.peek(); next != '\'' && next != '"' && next != '\\' {
				b.WriteByte('\\')
				continue
			}
			b.WriteByte(p.peek())
			p.pos++
		case quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// parsePseudo 解析 :name 或 :name(args)
func (p *parser) parsePseudo() (*PseudoSelector, error) {
	start := p.pos
	p.pos++ // :

	name := strings.ToLower(p.readIdent())
	if name == "" {
		return nil, p.failAt(ErrInvalidPseudo, start, "expected pseudo-class name")
	}
	hasArgs := p.peek() == '('

	if kind, ok := nthNames[name]; ok {
		if !hasArgs {
			return &PseudoSelector{Kind: kind, Nth: Index(1)}, nil
		}
		p.pos++
		argStart := p.pos
		for !p.eof() && p.peek() != ')' {
			p.pos++
		}
		if p.eof() {
			return nil, p.failAt(ErrUnclosed, start, "unclosed pseudo-class argument")
		}
		nth, err := ParseNth(p.src[argStart:p.pos])
		if err != nil {
			return nil, p.failAt(ErrInvalidPseudo, argStart, err.Error())
		}
		p.pos++
		return &PseudoSelector{Kind: kind, Nth: nth}, nil
	}

	switch name {
	case "not", "has":
		if !hasArgs {
			return nil, p.failAt(ErrInvalidPseudo, start, ":"+name+"() requires a selector argument")
		}
		p.pos++
		p.skipSpace()
		inner, err := p.parseCompound(false)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			if p.eof() {
				return nil, p.failAt(ErrUnclosed, start, "unclosed pseudo-class argument")
			}
			return nil, p.fail(ErrInvalidPseudo, "expected selector inside :"+name+"()")
		}
		p.skipSpace()
		if p.eof() {
			return nil, p.failAt(ErrUnclosed, start, "unclosed pseudo-class argument")
		}
		if p.peek() != ')' {
			return nil, p.fail(ErrInvalidPseudo, "only a compound selector is allowed inside :"+name+"()")
		}
		p.pos++
		kind := PseudoNot
		if name == "has" {
			kind = PseudoHas
		}
		return &PseudoSelector{Kind: kind, Inner: inner}, nil

	case "contains":
		if !hasArgs {
			return nil, p.failAt(ErrInvalidPseudo, start, ":contains() requires a text argument")
		}
		p.pos++
		p.skipSpace()
		var text string
		if q := p.peek(); q == '\'' || q == '"' {
			s, err := p.readQuoted()
			if err != nil {
				return nil, err
			}
			text = s
			p.skipSpace()
		} else {
			argStart := p.pos
			for !p.eof() && p.peek() != ')' {
				p.pos++
			}
			text = strings.TrimSpace(p.src[argStart:p.pos])
		}
		if p.eof() {
			return nil, p.failAt(ErrUnclosed, start, "unclosed pseudo-class argument")
		}
		if p.peek() != ')' {
			return nil, p.fail(ErrInvalidPseudo, "expected ')'")
		}
		p.pos++
		if text == "" {
			return nil, p.failAt(ErrInvalidPseudo, start, ":contains() requires a text argument")
		}
		return &PseudoSelector{Kind: PseudoContains, Text: text}, nil
	}

	kind, ok := pseudoNames[name]
	if !ok {
		return nil, p.failAt(ErrInvalidPseudo, start, "unknown pseudo-class ':"+name+"'")
	}
	if hasArgs {
		return nil, p.failAt(ErrInvalidPseudo, start, "pseudo-class ':"+name+"' takes no arguments")
	}
	return &PseudoSelector{Kind: kind}, nil
}

// readIdent 读取标识符，没有则返回空串
func (p *parser) readIdent() string {
	start := p.pos
	if !isIdentStart(p.peek()) {
		return ""
	}
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentRune(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// readName 读取 #id 或 .class 的名字，允许以数字开头
func (p *parser) readName() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentRune(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '-' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
