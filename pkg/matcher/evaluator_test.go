package matcher

import (
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/glesirok/uilocator/pkg/component"
	"github.com/glesirok/uilocator/pkg/locator"
)

func node(class string, children ...*component.Component) *component.Component {
	return component.New("javax.swing."+class, children...)
}

func named(class, name string, children ...*component.Component) *component.Component {
	c := node(class, children...)
	c.Identity.Name = component.Ptr(name)
	return c
}

func withText(c *component.Component, text string) *component.Component {
	c.Identity.Text = component.Ptr(text)
	return c
}

// fixture
//
//	JFrame "Main"
//	├── JPanel#form
//	│   ├── JLabel "User"
//	│   ├── JTextField#user (editable)
//	│   ├── JLabel "Pass"
//	│   └── JPasswordField#pass (read-only)
//	├── JPanel#buttons
//	│   ├── JButton#ok "OK"
//	│   ├── JButton#cancel "Cancel" (disabled)
//	│   └── JButton#btn3 "Help"
//	└── JLabel "Ready"
func fixture() *component.Component {
	user := named("JTextField", "user")
	user.State.Editable = component.Ptr(true)
	pass := named("JPasswordField", "pass")
	pass.State.Editable = component.Ptr(false)

	ok := withText(named("JButton", "ok"), "OK")
	ok.Identity.InternalName = component.Ptr("okButton")
	ok.Geometry.Bounds = component.Bounds{X: 10, Y: 200, Width: 120, Height: 30}
	ok.Properties = map[string]interface{}{"mnemonic": "O", "rowCount": 3}

	cancel := withText(named("JButton", "cancel"), "Cancel")
	cancel.State.Enabled = false
	cancel.Geometry.Bounds = component.Bounds{X: 140, Y: 200, Width: 80, Height: 30}

	help := withText(named("JButton", "btn3"), "Help")
	help.Accessibility.Role = component.Ptr("push button")
	help.Accessibility.States = []string{"pressed"}
	help.Accessibility.Name = component.Ptr("Show help")

	frame := node("JFrame",
		named("JPanel", "form",
			withText(node("JLabel"), "User"),
			user,
			withText(node("JLabel"), "Pass"),
			pass,
		),
		named("JPanel", "buttons", ok, cancel, help),
		withText(node("JLabel"), "Ready"),
	)
	frame.Identity.Title = component.Ptr("Main")

	tree := &component.Tree{Roots: []*component.Component{frame}}
	reindex(tree)
	return frame
}

// reindex 让测试树与加载后的快照一致
func reindex(tree *component.Tree) {
	var visit func(c *component.Component, depth int)
	visit = func(c *component.Component, depth int) {
		c.ID.Depth = depth
		c.Metadata.ChildCount = len(c.Children)
		for i, child := range c.Children {
			child.Metadata.SiblingIndex = i
			visit(child, depth+1)
		}
	}
	for _, root := range tree.Roots {
		visit(root, 0)
	}
}

func find(t *testing.T, e *Evaluator, root component.Node, input string) []component.Node {
	t.Helper()
	loc, err := locator.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return e.Find(loc, root)
}

func names(nodes []component.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.(*component.Component).String()
	}
	return strings.Join(parts, ", ")
}

func TestFind(t *testing.T) {
	root := fixture()
	e := New(WithLogger(zaptest.NewLogger(t)))

	tests := []struct {
		input string
		want  string
	}{
		// 类型
		{"JButton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"Button", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"jbutton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"JTree", ``},

		// id、class、属性
		{"#okButton", `JButton#ok "OK"`},
		{"#cancel", `JButton#cancel "Cancel"`},
		{".Button.pressed", `JButton#btn3 "Help"`},
		{"JButton.JButton[text='ok']", `JButton#ok "OK"`},
		{"[text^='Pa']", `JLabel "Pass"`},
		{"[text$='el']", `JButton#cancel "Cancel"`},
		{"[text*='e']", `JLabel "User", JButton#cancel "Cancel", JButton#btn3 "Help", JLabel "Ready"`},
		{"[accessible-role~='push']", `JButton#btn3 "Help"`},
		{"[accessible_role|='push']", ``},
		{"[internal-name]", `JButton#ok "OK"`},
		{"[mnemonic=O]", `JButton#ok "OK"`},
		{"[ROWCOUNT=3]", `JButton#ok "OK"`},
		{"[text!='OK'][name]", `JButton#cancel "Cancel", JButton#btn3 "Help"`},

		// 数值
		{"[width>100]", `JButton#ok "OK"`},
		{"[width<=80][width>0]", `JButton#cancel "Cancel"`},
		{"[x=10]", `JButton#ok "OK"`},
		{"[x='10']", `JButton#ok "OK"`},
		{"[width>='100']", `JButton#ok "OK"`},
		{"JButton[width>abc]", ``},
		{"JButton[name<5]", ``},
		{"JButton[name>5]", ``},

		// 正则
		{`JButton[name/='^btn\d+$']`, `JButton#btn3 "Help"`},
		{`JButton[text/='^(OK|Help)$']`, `JButton#ok "OK", JButton#btn3 "Help"`},
		{`JButton[name/='(']`, ``},

		// 状态伪类
		{"JButton:enabled", `JButton#ok "OK", JButton#btn3 "Help"`},
		{"JButton:disabled", `JButton#cancel "Cancel"`},
		{":editable", `JTextField#user`},
		{":readonly", `JPasswordField#pass`},
		{":selected", ``},
		{":focused", ``},

		// 结构伪类
		{":root", `JFrame`},
		{"JPanel:first-child", `JPanel#form`},
		{"JLabel:last-child", `JLabel "Ready"`},
		{"JButton:nth-child(2)", `JButton#cancel "Cancel"`},
		{"JButton:nth-last-child(1)", `JButton#btn3 "Help"`},
		{"JButton:nth-child(odd)", `JButton#ok "OK", JButton#btn3 "Help"`},
		{"JLabel:first-of-type", `JLabel "User", JLabel "Ready"`},
		{"JLabel:last-of-type", `JLabel "Pass", JLabel "Ready"`},
		{"JLabel:nth-of-type(2)", `JLabel "Pass"`},
		{"JLabel:nth-last-of-type(2)", `JLabel "User"`},
		{"JTextField:only-of-type", `JTextField#user`},
		{"JFrame:only-child", `JFrame`},
		{"JPanel:empty", ``},
		{"JLabel:empty", `JLabel "User", JLabel "Pass", JLabel "Ready"`},

		// 函数伪类
		{"JPanel:has(JButton:disabled)", `JPanel#buttons`},
		{"JPanel:not(#form)", `JPanel#buttons`},
		{"JPanel:not(:has(JTextField))", `JPanel#buttons`},
		{"JButton:contains('ok')", `JButton#ok "OK"`},
		{"*:contains('help')", `JButton#btn3 "Help"`},
		{"*:contains(Main)", `JFrame`},

		// 组合符
		{"JPanel > JButton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"JFrame > JButton", ``},
		{"JFrame JButton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"JFrame > JPanel > JButton:last-child", `JButton#btn3 "Help"`},
		{"#form > JLabel + JTextField", `JTextField#user`},
		{"JLabel + JTextField", `JTextField#user`},
		{"JLabel + JPasswordField", `JPasswordField#pass`},
		{"JTextField ~ JLabel", `JLabel "Pass"`},
		{"JPanel ~ JLabel", `JLabel "Ready"`},
		{"#form ~ JPanel JButton:enabled", `JButton#ok "OK", JButton#btn3 "Help"`},
		{"#buttons JLabel", ``},

		// 备选项
		{"JTextField, JPasswordField", `JTextField#user, JPasswordField#pass`},

		// 简写
		{"name:ok", `JButton#ok "OK"`},
		{"text:cancel", `JButton#cancel "Cancel"`},
		{"id:okButton", `JButton#ok "OK"`},
		{"class:PasswordField", `JPasswordField#pass`},
		{"index:1", `JTextField#user, JPanel#buttons, JButton#cancel "Cancel"`},
		{"accessiblename:show help", `JButton#btn3 "Help"`},

		// XPath
		{"//JButton[@name='ok']", `JButton#ok "OK"`},
		{"/JFrame/JPanel[2]/JButton[last()]", `JButton#btn3 "Help"`},
		{"/JPanel", ``},
		{"//JPanel//JButton[contains(@text,'Can')]", `JButton#cancel "Cancel"`},
		{"//JButton[@width>=100]", `JButton#ok "OK"`},
		{"//JLabel | //JTextField", `JLabel "User", JTextField#user, JLabel "Pass", JLabel "Ready"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := names(find(t, e, root, tt.input)); got != tt.want {
				t.Errorf("Find(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindCascaded(t *testing.T) {
	root := fixture()
	e := New(WithLogger(zaptest.NewLogger(t)))

	tests := []struct {
		input string
		want  string
	}{
		{"JPanel >> JButton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"*JPanel >> JButton", `JPanel#form, JPanel#buttons`},
		{"*JPanel >> JTree", ``},
		{"JPanel >> *JButton:enabled >> JLabel", ``},
		{"JPanel >> JLabel + JTextField", `JTextField#user`},
		{"JFrame >> JButton", ``},
		{"#buttons >> JButton:first-child", `JButton#ok "OK"`},
		{"JPanel >> JPanel > JButton", ``},
		{"* >> JButton", `JButton#ok "OK", JButton#cancel "Cancel", JButton#btn3 "Help"`},
		{"JLabel, JPanel >> JButton:disabled", `JButton#cancel "Cancel"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := names(find(t, e, root, tt.input)); got != tt.want {
				t.Errorf("Find(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestChildVersusDescendant(t *testing.T) {
	c := node("JButton")
	b := node("JPanel", c)
	a := node("JFrame", b)
	e := New()

	if n := len(find(t, e, a, "JFrame > JButton")); n != 0 {
		t.Errorf("A > C matched %d nodes, want 0", n)
	}
	if n := len(find(t, e, a, "JFrame JButton")); n != 1 {
		t.Errorf("A C matched %d nodes, want 1", n)
	}
	if n := len(find(t, e, a, "JFrame > JPanel > JButton")); n != 1 {
		t.Errorf("A > B > C matched %d nodes, want 1", n)
	}
}

func TestNthChildAmongFive(t *testing.T) {
	var children []*component.Component
	for i := 0; i < 5; i++ {
		children = append(children, named("JButton", string(rune('a'+i))))
	}
	root := node("JPanel", children...)
	e := New()

	got := find(t, e, root, "JButton:nth-child(3)")
	if len(got) != 1 || got[0] != component.Node(children[2]) {
		t.Errorf("nth-child(3) = %s, want the third button", names(got))
	}
	got = find(t, e, root, "JButton:nth-child(2n+1)")
	if len(got) != 3 {
		t.Errorf("nth-child(2n+1) matched %d, want 3", len(got))
	}
}

func TestEvaluate(t *testing.T) {
	e := New()

	button := withText(named("JButton", "save"), "Save")
	loc := locator.MustParse("JLabel, JButton[text='Save']")
	res := e.Evaluate(loc, button, nil)
	if !res.Matches || res.Confidence != 1.0 {
		t.Fatalf("Evaluate = %+v, want match", res)
	}
	want := []string{"type:JButton", "attr:text"}
	if strings.Join(res.Matched, ",") != strings.Join(want, ",") {
		t.Errorf("Matched = %v, want %v", res.Matched, want)
	}

	button.State.Enabled = false
	res = e.Evaluate(locator.MustParse("JButton:enabled"), button, nil)
	if res.Matches || res.Confidence != 0 {
		t.Errorf("disabled button matched :enabled: %+v", res)
	}

	res = e.Evaluate(locator.MustParse("JButton:disabled:first-child"), button, nil)
	if want := "type:JButton,pseudo::disabled,pseudo::first-child"; strings.Join(res.Matched, ",") != want {
		t.Errorf("Matched = %v, want %s", res.Matched, want)
	}

	res = e.Evaluate(locator.MustParse("name:save"), button, nil)
	if len(res.Matched) != 1 || res.Matched[0] != "prefix:name=save" {
		t.Errorf("Matched = %v", res.Matched)
	}
}

func TestCaseSensitive(t *testing.T) {
	button := withText(named("JButton", "Save"), "Save")
	sensitive := New(WithCaseSensitive(true))
	if !sensitive.CaseSensitive() {
		t.Fatal("CaseSensitive() = false")
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"JButton", true},
		{"Button", true},
		{"jbutton", false},
		{"[text='Save']", true},
		{"[text='save']", false},
		{"[text^='sa']", false},
		{":contains('save')", false},
		{"#Save", true},
		{"#save", false},
	}
	for _, tt := range tests {
		if got := sensitive.Matches(locator.MustParse(tt.input), button, nil); got != tt.want {
			t.Errorf("case-sensitive %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFindIdempotent(t *testing.T) {
	root := fixture()
	e := New()
	for _, input := range []string{"JPanel > JButton", "*JPanel >> JButton", "JLabel:nth-of-type(2)"} {
		first := names(find(t, e, root, input))
		second := names(find(t, e, root, input))
		if first != second {
			t.Errorf("Find(%q) is not repeatable: %q vs %q", input, first, second)
		}
	}
}

func TestFindHelpers(t *testing.T) {
	root := fixture()
	e := New()

	first, ok := e.FindFirst(locator.MustParse("JButton"), root)
	if !ok || first.(*component.Component).String() != `JButton#ok "OK"` {
		t.Errorf("FindFirst = %v, %v", first, ok)
	}
	if _, ok := e.FindFirst(locator.MustParse("JTree"), root); ok {
		t.Error("FindFirst(JTree) should fail")
	}
	if n := e.Count(locator.MustParse("JLabel"), root); n != 3 {
		t.Errorf("Count(JLabel) = %d, want 3", n)
	}
	if !e.Exists(locator.MustParse("#user"), root) {
		t.Error("Exists(#user) = false")
	}
	if e.Exists(locator.MustParse("#nobody"), root) {
		t.Error("Exists(#nobody) = true")
	}
}

func TestRegexCache(t *testing.T) {
	e := New(WithRegexCacheSize(2))
	button := named("JButton", "btn1")

	for _, p := range []string{`^btn`, `\d$`, `^b.n`, `(`} {
		loc := locator.MustParse(`[name/='` + p + `']`)
		want := p != `(`
		if got := e.Matches(loc, button, nil); got != want {
			t.Errorf("pattern %q matched = %v, want %v", p, got, want)
		}
	}
	if n := e.regexes.len(); n != 2 {
		t.Errorf("regex cache holds %d entries, want 2", n)
	}
}

func TestConcurrentEvaluate(t *testing.T) {
	root := fixture()
	e := New()
	loc := locator.MustParse(`JPanel > JButton[name/='^(ok|cancel)$']`)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := e.Count(loc, root); n != 2 {
				errs <- names(e.Find(loc, root))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Find = %s", got)
	}
}
