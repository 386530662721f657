package matcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
)

// attributeValue 按属性名取节点的值，名字不区分大小写，支持下划线和连字符写法
// 未知的名字到 properties 中查找
func attributeValue(name string, info *component.Info) (string, bool) {
	switch strings.ToLower(name) {
	case "name":
		return deref(info.Identity.Name)
	case "internalname", "internal_name", "internal-name":
		return deref(info.Identity.InternalName)
	case "text":
		return deref(info.Identity.Text)
	case "title":
		return deref(info.Identity.Title)
	case "tooltip", "tooltiptext":
		return deref(info.Identity.Tooltip)
	case "actioncommand", "action_command", "action-command":
		return deref(info.Identity.ActionCommand)
	case "label", "labeltext":
		return deref(info.Identity.LabelText)
	case "class", "classname", "class_name":
		return info.Type.ClassName, true
	case "simplename", "simple_name", "type":
		return info.Type.SimpleName, true
	case "enabled":
		return strconv.FormatBool(info.State.Enabled), true
	case "visible":
		return strconv.FormatBool(info.State.Visible), true
	case "showing":
		return strconv.FormatBool(info.State.Showing), true
	case "focused", "focus":
		return strconv.FormatBool(info.State.Focused), true
	case "focusable":
		return strconv.FormatBool(info.State.Focusable), true
	case "selected", "checked":
		return derefBool(info.State.Selected)
	case "editable":
		return derefBool(info.State.Editable)
	case "x":
		return strconv.Itoa(info.Geometry.Bounds.X), true
	case "y":
		return strconv.Itoa(info.Geometry.Bounds.Y), true
	case "width":
		return strconv.Itoa(info.Geometry.Bounds.Width), true
	case "height":
		return strconv.Itoa(info.Geometry.Bounds.Height), true
	case "index", "siblingindex", "sibling_index":
		return strconv.Itoa(info.Metadata.SiblingIndex), true
	case "depth":
		return strconv.Itoa(info.ID.Depth), true
	case "childcount", "child_count", "children":
		return strconv.Itoa(info.Metadata.ChildCount), true
	case "hashcode", "hash_code":
		return strconv.FormatInt(info.ID.HashCode, 10), true
	case "treepath", "tree_path":
		return info.ID.TreePath, true
	case "accessiblename", "accessible_name", "accessible-name":
		return deref(info.Accessibility.Name)
	case "accessibledescription", "accessible_description", "accessible-description":
		return deref(info.Accessibility.Description)
	case "accessiblerole", "accessible_role", "accessible-role":
		return deref(info.Accessibility.Role)
	}
	return propertyValue(name, info.Properties)
}

// propertyValue 先精确匹配，再忽略大小写
func propertyValue(name string, props map[string]interface{}) (string, bool) {
	if len(props) == 0 {
		return "", false
	}
	if v, ok := props[name]; ok {
		return formatProperty(v)
	}
	for k, v := range props {
		if strings.EqualFold(k, name) {
			return formatProperty(v)
		}
	}
	return "", false
}

func formatProperty(v interface{}) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func derefBool(b *bool) (string, bool) {
	if b == nil {
		return "", false
	}
	return strconv.FormatBool(*b), true
}

// matchAttribute 没有比较条件时只检查属性是否存在
func (e *Evaluator) matchAttribute(attr *locator.AttributeSelector, info *component.Info) bool {
	value, ok := attributeValue(attr.Name, info)
	if !ok {
		return false
	}
	if attr.Matcher == nil {
		return true
	}
	return e.matchValue(attr.Matcher.Op, value, attr.Matcher.Value)
}
