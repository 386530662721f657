package toolkit

import (
	"fmt"
	"strings"
)

// ParseError 统一定位器的解析错误，带有修改建议
type ParseError struct {
	Message     string
	Position    int // 没有位置时为 -1
	Suggestions []string
	Err         error // 底层的 locator.ParseError
}

func newParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Position: -1}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Position >= 0 {
		fmt.Fprintf(&b, " at position %d", e.Position)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
