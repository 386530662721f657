package toolkit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type GUI 工具包，零值表示未指定
type Type int

const (
	Swing Type = iota + 1
	SWT
	RCP
)

func (t Type) String() string {
	switch t {
	case Swing:
		return "swing"
	case SWT:
		return "swt"
	case RCP:
		return "rcp"
	}
	return ""
}

// IsSWT SWT 和 RCP 共用 SWT 的类名
func (t Type) IsSWT() bool {
	return t == SWT || t == RCP
}

// ParseType 不区分大小写
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swing":
		return Swing, nil
	case "swt":
		return SWT, nil
	case "rcp", "eclipse":
		return RCP, nil
	}
	return 0, fmt.Errorf("unknown toolkit: %q", s)
}

func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*t = 0
		return nil
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
