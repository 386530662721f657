package rule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glesirok/uilocator/pkg/engine"
	"github.com/glesirok/uilocator/pkg/toolkit"
)

const suiteYAML = `
toolkit: swt
case_sensitive: true
queries:
  - name: ok button
    action: unique
    locator: "#ok"
  - action: count
    locator: JButton
    expect: 2
  - action: params
    locator: "text:*Save"
    toolkit: swing
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(suiteYAML), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if config.Toolkit != toolkit.SWT {
		t.Errorf("Toolkit = %v, want swt", config.Toolkit)
	}
	if config.CaseSensitive == nil || !*config.CaseSensitive {
		t.Errorf("CaseSensitive = %v, want true", config.CaseSensitive)
	}
	if len(config.Queries) != 3 {
		t.Fatalf("len(Queries) = %d, want 3", len(config.Queries))
	}

	q := config.Queries[1]
	if q.Action != engine.ActionCount || q.Expect == nil || *q.Expect != 2 {
		t.Errorf("Queries[1] = %+v, want count with expect 2", q)
	}
	if config.Queries[2].Toolkit != toolkit.Swing {
		t.Errorf("Queries[2].Toolkit = %v, want swing", config.Queries[2].Toolkit)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read file") {
		t.Errorf("error = %v, want read file error", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "queries: [", "unmarshal yaml"},
		{"no queries", "toolkit: swing\n", "no queries defined"},
		{"bad toolkit", "toolkit: qt\nqueries:\n  - action: find\n    locator: JButton\n", "unknown toolkit"},
		{"index in message", "queries:\n  - action: find\n    locator: JButton\n  - action: find\n", "query 1: locator is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	two := 2
	negative := -1

	tests := []struct {
		name    string
		query   engine.Query
		wantErr string
	}{
		{"find", engine.Query{Action: engine.ActionFind, Locator: "JPanel > JButton"}, ""},
		{"xpath", engine.Query{Action: engine.ActionExists, Locator: "//JButton[@name='ok']"}, ""},
		{"count", engine.Query{Action: engine.ActionCount, Locator: "JButton", Expect: &two}, ""},
		{"params unified", engine.Query{Action: engine.ActionParams, Locator: "index:3"}, ""},
		{"empty locator", engine.Query{Action: engine.ActionFind}, "locator is required"},
		{"unknown action", engine.Query{Action: "click", Locator: "JButton"}, "unknown action: click"},
		{"count without expect", engine.Query{Action: engine.ActionCount, Locator: "JButton"}, "expect is required"},
		{"negative expect", engine.Query{Action: engine.ActionCount, Locator: "JButton", Expect: &negative}, "must not be negative"},
		{"unparsable", engine.Query{Action: engine.ActionFind, Locator: "JButton[text="}, "invalid locator"},
		{"bad regex", engine.Query{Action: engine.ActionFind, Locator: "JButton[text/='(']"}, "invalid regex for [text]"},
		{"bad regex nested", engine.Query{Action: engine.ActionFind, Locator: "JPanel:has(JLabel[text/='['])"}, "invalid regex"},
		{"params bad index", engine.Query{Action: engine.ActionParams, Locator: "index:x"}, "invalid locator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.query)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}
