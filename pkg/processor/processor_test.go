package processor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/glesirok/uilocator/pkg/toolkit"
)

const snapshotYAML = `
metadata:
  window_title: Login
roots:
  - component_type:
      class_name: javax.swing.JDialog
    children:
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
`

const snapshotJSON = `{
  "component_type": {"class_name": "org.eclipse.swt.widgets.Shell"},
  "children": [
    {"component_type": {"class_name": "org.eclipse.swt.widgets.Button"}, "identity": {"text": "ok"}}
  ]
}`

const suite = `
queries:
  - name: has ok
    action: exists
    locator: "#ok"
  - action: count
    locator: JButton
    expect: 2
  - action: absent
    locator: JTable
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newProcessor(t *testing.T, suiteYAML string, opts ...Option) *Processor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	writeFile(t, path, suiteYAML)
	opts = append(opts, WithLogger(zaptest.NewLogger(t)))
	p, err := NewProcessor(path, opts...)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	return p
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "login.yaml")
	writeFile(t, input, snapshotYAML)

	p := newProcessor(t, suite)
	if _, err := uuid.Parse(p.RunID()); err != nil {
		t.Errorf("RunID() = %q is not a uuid: %v", p.RunID(), err)
	}

	output := filepath.Join(dir, "out", "login.report.yaml")
	report, err := p.ProcessFile(input, output, false)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("report failed: %+v", report.Summary)
	}
	if report.Summary != (Summary{Components: 3, Queries: 3, Passed: 3}) {
		t.Errorf("Summary = %+v", report.Summary)
	}
	if report.Window != "Login" {
		t.Errorf("Window = %q, want Login", report.Window)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded struct {
		RunID   string       `yaml:"run_id"`
		Toolkit toolkit.Type `yaml:"toolkit"`
		Summary Summary      `yaml:"summary"`
	}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if decoded.RunID != p.RunID() || decoded.Toolkit != toolkit.Swing || decoded.Summary.Passed != 3 {
		t.Errorf("decoded report = %+v", decoded)
	}
	if !strings.Contains(string(data), "\n  passed: 3\n") {
		t.Errorf("report is not indented with two spaces:\n%s", data)
	}
}

func TestProcessFileFailures(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "login.yaml")
	writeFile(t, input, snapshotYAML)

	p := newProcessor(t, `
queries:
  - action: unique
    locator: JButton
  - action: exists
    locator: JButton[text='OK']
`)
	report, err := p.ProcessFile(input, filepath.Join(dir, "r.yaml"), false)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if report.OK() {
		t.Error("report should fail")
	}
	if report.Summary.Passed != 1 || report.Summary.Failed != 1 {
		t.Errorf("Summary = %+v, want 1 passed and 1 failed", report.Summary)
	}
	if report.Outcomes[0].Message != "expected exactly one match, got 2" {
		t.Errorf("Message = %q", report.Outcomes[0].Message)
	}
}

func TestProcessFileDryRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "login.yaml")
	writeFile(t, input, snapshotYAML)

	var buf bytes.Buffer
	p := newProcessor(t, suite, WithOutput(&buf))
	output := filepath.Join(dir, "login.report.yaml")

	if _, err := p.ProcessFile(input, output, true); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "=== Dry-run: "+input+" ===\n") {
		t.Errorf("dry-run output = %q", buf.String())
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("dry-run wrote %s", output)
	}
}

func TestSuiteSettingsOverrideOptions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shell.json")
	writeFile(t, input, snapshotJSON)

	p := newProcessor(t, `
toolkit: swt
case_sensitive: true
queries:
  - action: exists
    locator: Button[text='ok']
  - action: absent
    locator: Button[text='OK']
  - action: params
    locator: JButton
`, WithToolkit(toolkit.Swing), WithCaseSensitive(false))

	report, err := p.ProcessFile(input, filepath.Join(dir, "r.yaml"), false)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("report failed: %+v", report.Outcomes)
	}
	if report.Toolkit != toolkit.SWT {
		t.Errorf("Toolkit = %v, want swt", report.Toolkit)
	}
	if got := report.Outcomes[2].Params["value"]; got != "Button" {
		t.Errorf("params value = %v, want Button", got)
	}
}

func TestProcessDirectory(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.yaml"), snapshotYAML)
	writeFile(t, filepath.Join(in, "nested", "b.yml"), snapshotYAML)
	writeFile(t, filepath.Join(in, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(in, "old.report.yaml"), "ignored")

	p := newProcessor(t, suite)

	t.Run("output dir", func(t *testing.T) {
		out := t.TempDir()
		reports, err := p.ProcessDirectory(in, out, false)
		if err != nil {
			t.Fatalf("ProcessDirectory() error = %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("len(reports) = %d, want 2", len(reports))
		}
		for _, rel := range []string{"a.report.yaml", filepath.Join("nested", "b.report.yaml")} {
			if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
				t.Errorf("missing report %s: %v", rel, err)
			}
		}
	})

	t.Run("next to snapshots", func(t *testing.T) {
		if _, err := p.ProcessDirectory(in, "", false); err != nil {
			t.Fatalf("ProcessDirectory() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(in, "nested", "b.report.yaml")); err != nil {
			t.Errorf("missing report: %v", err)
		}
		// 第二次运行跳过上次生成的报告
		reports, err := p.ProcessDirectory(in, "", false)
		if err != nil {
			t.Fatalf("ProcessDirectory() error = %v", err)
		}
		if len(reports) != 2 {
			t.Errorf("len(reports) = %d, want 2", len(reports))
		}
	})
}

func TestProcessDirectoryInvalidSnapshot(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "broken.yaml"), "roots: 3\n")

	p := newProcessor(t, suite)
	_, err := p.ProcessDirectory(in, t.TempDir(), false)
	if err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error = %v, want error naming broken.yaml", err)
	}
}

func TestNewProcessorErrors(t *testing.T) {
	if _, err := NewProcessor(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing suite")
	}

	path := filepath.Join(t.TempDir(), "suite.yaml")
	writeFile(t, path, "queries:\n  - action: count\n    locator: JButton\n")
	_, err := NewProcessor(path)
	if err == nil || !strings.Contains(err.Error(), "load suite: query 0") {
		t.Errorf("error = %v, want load suite error", err)
	}
}

func TestReportPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"login.yaml", "login.report.yaml"},
		{"dir/shell.json", "dir/shell.report.yaml"},
		{"noext", "noext.report.yaml"},
	}
	for _, tt := range tests {
		if got := ReportPath(tt.in); got != tt.want {
			t.Errorf("ReportPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
