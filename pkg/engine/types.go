package engine

import "github.com/glesirok/uilocator/pkg/toolkit"

// ActionType 定义查询类型
type ActionType string

const (
	ActionFind   ActionType = "find"
	ActionCount  ActionType = "count"
	ActionExists ActionType = "exists"
	ActionAbsent ActionType = "absent"
	ActionUnique ActionType = "unique"
	ActionParams ActionType = "params"
)

// Query 表示一条查询
type Query struct {
	Name    string       `yaml:"name,omitempty"`
	Action  ActionType   `yaml:"action"`
	Locator string       `yaml:"locator"`
	Expect  *int         `yaml:"expect,omitempty"`  // 用于 count
	Toolkit toolkit.Type `yaml:"toolkit,omitempty"` // 用于 params，为空时使用引擎的默认值
}

// Label 报告中显示的名字
func (q *Query) Label() string {
	if q.Name != "" {
		return q.Name
	}
	return string(q.Action) + " " + q.Locator
}

// Outcome 查询结果，断言失败不是错误
type Outcome struct {
	Query   string                 `yaml:"query"`
	Action  ActionType             `yaml:"action"`
	Locator string                 `yaml:"locator"`
	Passed  bool                   `yaml:"passed"`
	Count   int                    `yaml:"count"`
	Message string                 `yaml:"message,omitempty"`
	Matches []Match                `yaml:"matches,omitempty"`
	Params  map[string]interface{} `yaml:"params,omitempty"`
}

// Match 匹配到的组件摘要
type Match struct {
	Path    string `yaml:"path"`
	Type    string `yaml:"type"`
	Element string `yaml:"element"`
	Label   string `yaml:"label"`
}
