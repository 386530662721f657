package toolkit

import "strconv"

// ToParams 转换为工具包查询接口使用的参数
// Swing 的 id 是组件的 hashCode，SWT 和 RCP 的 id 是控件 id
func ToParams(u *UnifiedLocator, t Type) map[string]interface{} {
	switch u.Kind {
	case KindName, KindText, KindTooltip, KindAccessibleName:
		return map[string]interface{}{
			"locatorType": u.Kind.String(),
			"value":       u.Value,
		}
	case KindTextContains, KindTextRegex:
		mode := "contains"
		if u.Kind == KindTextRegex {
			mode = "regex"
		}
		return map[string]interface{}{
			"locatorType": "text",
			"value":       u.Value,
			"matchMode":   mode,
		}
	case KindClass, KindCSS:
		params := map[string]interface{}{
			"locatorType": "class",
			"value":       NativeFor(u.Value, t),
		}
		if len(u.Predicates) > 0 {
			params["predicates"] = predicateParams(u.Predicates)
		}
		return params
	case KindIndex:
		n, _ := strconv.Atoi(u.Value)
		return map[string]interface{}{
			"locatorType": "index",
			"value":       n,
		}
	case KindID:
		id, _ := strconv.ParseInt(u.Value, 10, 64)
		locatorType := "hashCode"
		if t.IsSWT() {
			locatorType = "id"
		}
		return map[string]interface{}{
			"locatorType": locatorType,
			"value":       id,
		}
	case KindXPath:
		return map[string]interface{}{
			"locatorType": "xpath",
			"xpath":       u.Value,
		}
	}
	return map[string]interface{}{
		"locator": u.Selector,
	}
}

func predicateParams(predicates []Predicate) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(predicates))
	for _, p := range predicates {
		switch p.Kind {
		case PredicateAttribute:
			out = append(out, map[string]interface{}{
				"type":  "attribute",
				"name":  p.Name,
				"op":    p.Op.String(),
				"value": p.Value,
			})
		case PredicatePseudo:
			out = append(out, map[string]interface{}{
				"type":  "pseudo",
				"value": p.Value,
			})
		case PredicateIndex:
			out = append(out, map[string]interface{}{
				"type":  "index",
				"value": p.Index,
			})
		}
	}
	return out
}

// Params 解析后直接转换
func Params(input string, t Type) (map[string]interface{}, error) {
	u, err := ParseUnified(input)
	if err != nil {
		return nil, err
	}
	return ToParams(u, t), nil
}
