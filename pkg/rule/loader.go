package rule

import (
	"fmt"
	"os"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uilocator/pkg/engine"
	"github.com/glesirok/uilocator/pkg/locator"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

// Config 表示查询集文件
type Config struct {
	Toolkit       toolkit.Type    `yaml:"toolkit,omitempty"`        // 为空时由调用方决定
	CaseSensitive *bool           `yaml:"case_sensitive,omitempty"` // 为空时由调用方决定
	Queries       []*engine.Query `yaml:"queries"`
}

// LoadFromFile 从文件加载查询集
func LoadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Load(data)
}

// Load 解析并校验查询集
func Load(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if len(config.Queries) == 0 {
		return nil, fmt.Errorf("no queries defined")
	}

	for i, q := range config.Queries {
		if q == nil {
			return nil, fmt.Errorf("query %d: empty entry", i)
		}
		if err := Validate(q); err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
	}

	return &config, nil
}

// Validate 校验查询的合法性
func Validate(q *engine.Query) error {
	if q.Locator == "" {
		return fmt.Errorf("locator is required")
	}

	switch q.Action {
	case engine.ActionParams:
		// params 使用统一定位器语法，不经过 CSS 解析器
		if _, err := toolkit.ParseUnified(q.Locator); err != nil {
			return fmt.Errorf("invalid locator %q: %w", q.Locator, err)
		}
		return nil

	case engine.ActionCount:
		if q.Expect == nil {
			return fmt.Errorf("expect is required for action %s", q.Action)
		}
		if *q.Expect < 0 {
			return fmt.Errorf("expect must not be negative")
		}

	case engine.ActionFind, engine.ActionExists, engine.ActionAbsent, engine.ActionUnique:
		// 只需要定位器

	default:
		return fmt.Errorf("unknown action: %s", q.Action)
	}

	loc, err := locator.Parse(q.Locator)
	if err != nil {
		return fmt.Errorf("invalid locator %q: %w", q.Locator, err)
	}
	return checkPatterns(loc)
}

// checkPatterns 求值时无效的正则只会不匹配，这里提前报错
func checkPatterns(loc *locator.Locator) error {
	for _, sel := range loc.Selectors {
		for _, c := range sel.Compounds {
			if err := checkCompound(c); err != nil {
				return err
			}
		}
		for _, seg := range sel.Segments {
			for _, c := range seg.Compounds {
				if err := checkCompound(c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkCompound(c *locator.CompoundSelector) error {
	if c == nil {
		return nil
	}
	for _, attr := range c.Attributes {
		if attr.Matcher == nil || attr.Matcher.Op != locator.OpRegex {
			continue
		}
		pattern := attr.Matcher.Value.Text()
		if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
			return fmt.Errorf("invalid regex for [%s]: %w", attr.Name, err)
		}
	}
	for _, p := range c.Pseudos {
		if err := checkCompound(p.Inner); err != nil {
			return err
		}
	}
	return nil
}
