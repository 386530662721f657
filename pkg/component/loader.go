package component

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSnapshot 快照结构不符合 schema
var ErrInvalidSnapshot = errors.New("invalid snapshot")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Tree 一次采集得到的组件树，可能有多个顶层窗口
type Tree struct {
	Metadata TreeMetadata `yaml:"metadata,omitempty"`
	Roots    []*Component `yaml:"roots"`
}

type TreeMetadata struct {
	WindowTitle     string `yaml:"window_title,omitempty"`
	ApplicationName string `yaml:"application_name,omitempty"`
	CaptureTime     string `yaml:"capture_time,omitempty"`
	Toolkit         string `yaml:"toolkit,omitempty"`
}

// LoadFile 读取 YAML 或 JSON 快照文件
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	tree, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tree, nil
}

// Load 解析快照
// 顶层可以是带 roots 的树，也可以是单个组件
// 加载后重新计算 depth、tree_path、sibling_index 等派生字段
func Load(data []byte) (*Tree, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
	}

	fields, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidSnapshot)
	}
	_, isTree := fields["roots"]

	if err := validate(doc, isTree); err != nil {
		return nil, err
	}

	tree := &Tree{}
	if isTree {
		if err := yaml.Unmarshal(data, tree); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
	} else {
		root := &Component{}
		if err := yaml.Unmarshal(data, root); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		tree.Roots = []*Component{root}
	}

	for i, root := range tree.Roots {
		derive(root, strconv.Itoa(i), 0, 0)
	}
	return tree, nil
}

// derive 填充派生字段，已有的 tree_path 和 simple_name 保留
func derive(c *Component, path string, depth, index int) {
	if c.ID.TreePath == "" {
		c.ID.TreePath = path
	}
	c.ID.Depth = depth
	c.Metadata.SiblingIndex = index
	c.Metadata.ChildCount = len(c.Children)
	if c.Type.SimpleName == "" {
		c.Type.SimpleName = SimpleName(c.Type.ClassName)
	}
	for i, child := range c.Children {
		derive(child, path+"."+strconv.Itoa(i), depth+1, i)
	}
}

// Root 第一个顶层组件，没有时为 nil
func (t *Tree) Root() *Component {
	if len(t.Roots) == 0 {
		return nil
	}
	return t.Roots[0]
}

// Statistics 树的统计信息
type Statistics struct {
	TotalComponents int            `yaml:"total_components"`
	MaxDepth        int            `yaml:"max_depth"`
	VisibleCount    int            `yaml:"visible_count"`
	EnabledCount    int            `yaml:"enabled_count"`
	TypeCounts      map[string]int `yaml:"type_counts"`
}

func (t *Tree) Statistics() Statistics {
	stats := Statistics{TypeCounts: map[string]int{}}
	for _, root := range t.Roots {
		Walk(root, func(n Node) bool {
			info := n.Snapshot()
			stats.TotalComponents++
			if info.ID.Depth > stats.MaxDepth {
				stats.MaxDepth = info.ID.Depth
			}
			if info.State.Visible {
				stats.VisibleCount++
			}
			if info.State.Enabled {
				stats.EnabledCount++
			}
			stats.TypeCounts[info.Type.SimpleName]++
			return true
		})
	}
	return stats
}

// FindByPath 按 tree_path 查找组件
func (t *Tree) FindByPath(path string) *Component {
	var found *Component
	for _, root := range t.Roots {
		Walk(root, func(n Node) bool {
			if found != nil {
				return false
			}
			c := n.(*Component)
			if c.ID.TreePath == path {
				found = c
				return false
			}
			return strings.HasPrefix(path, c.ID.TreePath+".")
		})
	}
	return found
}

var (
	treeSchema      *gojsonschema.Schema
	componentSchema *gojsonschema.Schema
)

func init() {
	var err error
	if treeSchema, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(treeSchemaJSON)); err != nil {
		panic(fmt.Sprintf("compile tree schema: %v", err))
	}
	if componentSchema, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(componentSchemaJSON)); err != nil {
		panic(fmt.Sprintf("compile component schema: %v", err))
	}
}

func validate(doc interface{}, isTree bool) error {
	schema := componentSchema
	if isTree {
		schema = treeSchema
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if result.Valid() {
		return nil
	}

	var b strings.Builder
	for _, e := range result.Errors() {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, b.String())
}
