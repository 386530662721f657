package engine

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

const loginYAML = `
component_type:
  class_name: javax.swing.JDialog
identity:
  title: Login
children:
  - component_type:
      class_name: javax.swing.JPanel
    children:
      - component_type:
          class_name: javax.swing.JTextField
        identity:
          name: user
      - component_type:
          class_name: javax.swing.JButton
        identity:
          name: ok
          text: OK
      - component_type:
          class_name: javax.swing.JButton
        identity:
          name: cancel
          text: Cancel
        state:
          enabled: false
`

func loadRoot(t *testing.T) *component.Component {
	t.Helper()
	tree, err := component.Load([]byte(loginYAML))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return tree.Root()
}

func expect(n int) *int { return &n }

func TestApply(t *testing.T) {
	root := loadRoot(t)
	e := NewEngine(WithLogger(zaptest.NewLogger(t)))

	tests := []struct {
		name    string
		query   Query
		passed  bool
		count   int
		message string
	}{
		{"find", Query{Action: ActionFind, Locator: "JButton"}, true, 2, ""},
		{"find none still passes", Query{Action: ActionFind, Locator: "JTable"}, true, 0, ""},
		{"count ok", Query{Action: ActionCount, Locator: "JButton", Expect: expect(2)}, true, 2, ""},
		{"count mismatch", Query{Action: ActionCount, Locator: "JButton:enabled", Expect: expect(2)}, false, 1, "expected 2 matches, got 1"},
		{"exists", Query{Action: ActionExists, Locator: "#ok"}, true, 1, ""},
		{"exists fails", Query{Action: ActionExists, Locator: "#missing"}, false, 0, "no component matched"},
		{"absent", Query{Action: ActionAbsent, Locator: "JTable"}, true, 0, ""},
		{"absent fails", Query{Action: ActionAbsent, Locator: "JButton"}, false, 2, "expected no match, got 2"},
		{"unique", Query{Action: ActionUnique, Locator: "JButton[text='OK']"}, true, 1, ""},
		{"unique fails", Query{Action: ActionUnique, Locator: "JButton"}, false, 2, "expected exactly one match, got 2"},
		{"xpath", Query{Action: ActionUnique, Locator: "//JPanel/JTextField[@name='user']"}, true, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Apply(root, &tt.query)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if out.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v", out.Passed, tt.passed)
			}
			if out.Count != tt.count {
				t.Errorf("Count = %d, want %d", out.Count, tt.count)
			}
			if out.Message != tt.message {
				t.Errorf("Message = %q, want %q", out.Message, tt.message)
			}
			if len(out.Matches) != tt.count {
				t.Errorf("len(Matches) = %d, want %d", len(out.Matches), tt.count)
			}
		})
	}
}

func TestApplyMatches(t *testing.T) {
	root := loadRoot(t)
	e := NewEngine()

	out, err := e.Apply(root, &Query{Name: "ok button", Action: ActionFind, Locator: "#ok"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out.Query != "ok button" {
		t.Errorf("Query = %q, want %q", out.Query, "ok button")
	}
	if len(out.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1", len(out.Matches))
	}
	got := out.Matches[0]
	want := Match{Path: "0.0.1", Type: "JButton", Element: "button", Label: `JButton#ok "OK"`}
	if got != want {
		t.Errorf("Matches[0] = %+v, want %+v", got, want)
	}
}

func TestApplyErrors(t *testing.T) {
	root := loadRoot(t)
	e := NewEngine()

	t.Run("invalid locator", func(t *testing.T) {
		_, err := e.Apply(root, &Query{Action: ActionFind, Locator: "JButton["})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "parse locator") {
			t.Errorf("error = %v, want parse locator prefix", err)
		}
		var perr *locator.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("error %v does not wrap *locator.ParseError", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := e.Apply(root, &Query{Action: "click", Locator: "JButton"})
		if err == nil || !strings.Contains(err.Error(), "unknown action: click") {
			t.Errorf("error = %v, want unknown action", err)
		}
	})

	t.Run("count without expect", func(t *testing.T) {
		_, err := e.Apply(root, &Query{Action: ActionCount, Locator: "JButton"})
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestApplyParams(t *testing.T) {
	root := loadRoot(t)

	tests := []struct {
		name        string
		engine      toolkit.Type
		query       toolkit.Type
		locatorType string
		value       interface{}
	}{
		{"engine default", toolkit.Swing, 0, "class", "JButton"},
		{"engine swt", toolkit.SWT, 0, "class", "Button"},
		{"query overrides", toolkit.Swing, toolkit.SWT, "class", "Button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(WithToolkit(tt.engine))
			out, err := e.Apply(root, &Query{Action: ActionParams, Locator: "JButton", Toolkit: tt.query})
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !out.Passed {
				t.Error("params query should pass")
			}
			if out.Params["locatorType"] != tt.locatorType {
				t.Errorf("locatorType = %v, want %v", out.Params["locatorType"], tt.locatorType)
			}
			if out.Params["value"] != tt.value {
				t.Errorf("value = %v, want %v", out.Params["value"], tt.value)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := NewEngine().Apply(root, &Query{Action: ActionParams, Locator: ""})
		if err == nil {
			t.Error("expected error for empty locator")
		}
	})
}

func TestFindUsesCache(t *testing.T) {
	root := loadRoot(t)
	e := NewEngine(WithCache(locator.NewCache(10, 0)))

	for i := 0; i < 3; i++ {
		nodes, err := e.Find(root, "JButton")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if len(nodes) != 2 {
			t.Fatalf("len(nodes) = %d, want 2", len(nodes))
		}
	}

	stats := e.CacheStats()
	if stats.Misses != 1 || stats.Hits != 2 {
		t.Errorf("stats = %+v, want 1 miss and 2 hits", stats)
	}
}

func TestApplyTree(t *testing.T) {
	tree := &component.Tree{Roots: []*component.Component{
		component.New("javax.swing.JFrame", component.New("javax.swing.JButton")),
		component.New("javax.swing.JDialog", component.New("javax.swing.JButton")),
	}}
	e := NewEngine()

	out, err := e.ApplyTree(tree, &Query{Action: ActionCount, Locator: "JButton", Expect: expect(2)})
	if err != nil {
		t.Fatalf("ApplyTree() error = %v", err)
	}
	if !out.Passed || out.Count != 2 {
		t.Errorf("outcome = %+v, want 2 matches across roots", out)
	}

	empty := &component.Tree{}
	if _, err := e.ApplyTree(empty, &Query{Action: ActionFind, Locator: "JButton["}); err == nil {
		t.Error("expected parse error even without roots")
	}
}
