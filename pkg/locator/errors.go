package locator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrSyntax 所有解析错误都可以用 errors.Is 与之比较
var ErrSyntax = errors.New("locator syntax error")

type ErrorKind int

const (
	ErrEmptyInput ErrorKind = iota
	ErrUnexpectedChar
	ErrUnexpectedEOF
	ErrInvalidSelector
	ErrInvalidAttribute
	ErrInvalidPseudo
	ErrInvalidXPath
	ErrUnclosed
	ErrSyntaxError
)

var errorKindNames = map[ErrorKind]string{
	ErrEmptyInput:       "empty input",
	ErrUnexpectedChar:   "unexpected character",
	ErrUnexpectedEOF:    "unexpected end of input",
	ErrInvalidSelector:  "invalid selector",
	ErrInvalidAttribute: "invalid attribute",
	ErrInvalidPseudo:    "invalid pseudo-class",
	ErrInvalidXPath:     "invalid xpath",
	ErrUnclosed:         "unclosed",
	ErrSyntaxError:      "syntax error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError 解析失败的位置与原因
type ParseError struct {
	Message  string
	Kind     ErrorKind
	Position int // 字节偏移
	Line     int // 从 1 开始
	Column   int // 从 1 开始，按字符计
	Fragment string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	if e.Fragment != "" {
		fmt.Fprintf(&b, " near '%s'", e.Fragment)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// newParseError 根据输入计算行列号
func newParseError(input string, kind ErrorKind, pos int, msg string) *ParseError {
	if pos > len(input) {
		pos = len(input)
	}
	line, col := 1, 1
	lineStart := 0
	for i := 0; i < pos; i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = utf8.RuneCountInString(input[lineStart:pos]) + 1

	return &ParseError{
		Message:  msg,
		Kind:     kind,
		Position: pos,
		Line:     line,
		Column:   col,
		Fragment: fragmentAt(input, pos),
	}
}

// fragmentAt 取出错位置附近的一小段输入
func fragmentAt(input string, pos int) string {
	if pos >= len(input) {
		return ""
	}
	end := pos
	for n := 0; end < len(input) && n < 12; n++ {
		_, size := utf8.DecodeRuneInString(input[end:])
		end += size
	}
	return input[pos:end]
}
