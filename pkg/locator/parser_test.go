package locator

import (
	"errors"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := Parse(input)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q): expected *ParseError, got %v", input, err)
		}
		if perr.Kind != ErrEmptyInput {
			t.Errorf("Parse(%q): kind = %v, want %v", input, perr.Kind, ErrEmptyInput)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): error does not wrap ErrSyntax", input)
		}
	}
}

func TestParseIDShorthand(t *testing.T) {
	loc, err := Parse("#myButton")
	if err != nil {
		t.Fatal(err)
	}
	c := loc.Selectors[0].Compounds[0]
	if c.ID != "myButton" {
		t.Errorf("id = %q, want myButton", c.ID)
	}
	if c.Type != nil {
		t.Errorf("type = %v, want none", c.Type)
	}
	if loc.IsXPath {
		t.Error("IsXPath = true for css input")
	}
}

func TestParseXPathAttribute(t *testing.T) {
	loc, err := Parse("//JButton[@text='Save']")
	if err != nil {
		t.Fatal(err)
	}
	if !loc.IsXPath {
		t.Fatal("IsXPath = false")
	}
	c := loc.Selectors[0].Compounds[0]
	if c.Type == nil || c.Type.Name != "JButton" {
		t.Fatalf("type = %v, want JButton", c.Type)
	}
	if len(c.Attributes) != 1 {
		t.Fatalf("got %d attribute selectors, want 1", len(c.Attributes))
	}
	attr := c.Attributes[0]
	if attr.Name != "text" || attr.Matcher == nil || attr.Matcher.Op != OpEqual || attr.Matcher.Value != StringValue("Save") {
		t.Errorf("attribute = %s, want [text='Save']", attr)
	}
	if len(c.Pseudos) != 0 {
		t.Errorf("descendant search should not add pseudos, got %d", len(c.Pseudos))
	}
}

func TestParseXPathSteps(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"//JPanel/JButton", "JPanel > JButton"},
		{"//JPanel//JButton", "JPanel JButton"},
		{"/JFrame/JPanel", "JFrame:root > JPanel"},
		{"//JButton[2]", "JButton:nth-child(2)"},
		{"//JButton[last()]", "JButton:last-child"},
		{"//*[@name]", "*[name]"},
		{"//JButton[contains(@text,'Sa')]", "JButton:contains('Sa')"},
		{"//JButton[starts-with(@name,'ok')]", "JButton[name^='ok']"},
		{"//JButton[@width>=100]", "JButton[width>=100]"},
		{"//JButton[@text='OK' and @enabled='true']", "JButton[text='OK'][enabled='true']"},
		{"//JButton | //JLabel", "JButton, JLabel"},
		{"//JLabel[text()='Name']", "JLabel[text='Name']"},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if got := loc.Canonical(); got != tt.want {
			t.Errorf("Parse(%q).Canonical() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCSS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"JButton", "JButton"},
		{"*", "*"},
		{"JButton.primary.large", "JButton.primary.large"},
		{"JPanel > JButton", "JPanel > JButton"},
		{"JPanel JButton", "JPanel JButton"},
		{"JLabel + JTextField", "JLabel + JTextField"},
		{"JLabel ~ JTextField", "JLabel ~ JTextField"},
		{"JPanel>JButton", "JPanel > JButton"},
		{"JDialog >> JButton", "JDialog >> JButton"},
		{"JButton, JLabel", "JButton, JLabel"},
		{"[text=\"Save\"]", "[text='Save']"},
		{"[text='It\\'s']", "[text='It\\'s']"},
		{"JButton[text^=Sa]", "JButton[text^='Sa']"},
		{"JButton[ width >= 100 ]", "JButton[width>=100]"},
		{"JButton[x<10.5]", "JButton[x<10.5]"},
		{"JButton[name/='^btn\\d+$']", "JButton[name/='^btn\\\\d+$']"},
		{"JButton:enabled:visible", "JButton:enabled:visible"},
		{"JButton:focus", "JButton:focused"},
		{"JCheckBox:checked", "JCheckBox:selected"},
		{"JTextField:read-only", "JTextField:readonly"},
		{"JButton:nth-child(2n+1)", "JButton:nth-child(2n+1)"},
		{"JButton:nth-child(odd)", "JButton:nth-child(odd)"},
		{"JButton:nth-last-child(-n+3)", "JButton:nth-last-child(-1n+3)"},
		{"JButton:nth-of-type", "JButton:nth-of-type(1)"},
		{"JPanel:not(JButton)", "JPanel:not(JButton)"},
		{"JPanel:has(JButton.primary[text='OK'])", "JPanel:has(JButton.primary[text='OK'])"},
		{"JPanel:not(:has(JLabel))", "JPanel:not(:has(JLabel))"},
		{"JLabel:contains('Hello')", "JLabel:contains('Hello')"},
		{"JLabel:contains(Hello world)", "JLabel:contains('Hello world')"},
		{"*JPanel >> JButton", "*JPanel >> JButton"},
		{"  JButton  ", "JButton"},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if got := loc.Canonical(); got != tt.want {
			t.Errorf("Parse(%q).Canonical() = %q, want %q", tt.input, got, tt.want)
		}
		if loc.IsXPath {
			t.Errorf("Parse(%q): IsXPath = true", tt.input)
		}
	}
}

func TestParseShorthand(t *testing.T) {
	tests := []struct {
		input string
		key   string
		value string
	}{
		{"name:okButton", "name", "okButton"},
		{"Text:Click Me", "text", "Click Me"},
		{"internalname:btn", "internalname", "btn"},
		{"accessiblename:Save file", "accessiblename", "Save file"},
		{"index:3", "index", "3"},
		{"label:User", "label", "User"},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		ts := loc.Selectors[0].Compounds[0].Type
		if ts == nil || ts.Kind != TypePrefix {
			t.Errorf("Parse(%q): expected prefix selector, got %v", tt.input, ts)
			continue
		}
		if ts.Key != tt.key || ts.Value != tt.value {
			t.Errorf("Parse(%q) = %s:%s, want %s:%s", tt.input, ts.Key, ts.Value, tt.key, tt.value)
		}
	}

	// 带 CSS 特殊字符的前缀不是简写
	loc, err := Parse("JButton:enabled")
	if err != nil {
		t.Fatal(err)
	}
	if ts := loc.Selectors[0].Compounds[0].Type; ts.Kind != TypeName {
		t.Errorf("JButton:enabled parsed as %v", ts)
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"[width=100]", NumberValue(100)},
		{"[x=-2.5]", NumberValue(-2.5)},
		{"[width='100']", StringValue("100")},
		{"[text=Save]", StringValue("Save")},
		{"[text=NaN]", StringValue("NaN")},
		{"[text=e]", StringValue("e")},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		got := loc.Selectors[0].Compounds[0].Attributes[0].Matcher.Value
		if got != tt.want {
			t.Errorf("Parse(%q) value = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestParseCascadedSegments(t *testing.T) {
	loc, err := Parse("JFrame >> *JPanel.form >> JLabel + JTextField")
	if err != nil {
		t.Fatal(err)
	}
	sel := loc.Selectors[0]
	if !sel.IsCascaded() {
		t.Fatal("IsCascaded = false")
	}
	if len(sel.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(sel.Segments))
	}
	if got := sel.CaptureIndex(); got != 1 {
		t.Errorf("CaptureIndex = %d, want 1", got)
	}
	if got := sel.Segments[2].Raw; got != "JLabel + JTextField" {
		t.Errorf("segment raw = %q", got)
	}
	if len(sel.Segments[2].Compounds) != 2 {
		t.Errorf("last segment compounds = %d, want 2", len(sel.Segments[2].Compounds))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
	}{
		{"JButton[text='Save'", ErrUnclosed},
		{"JButton[text='Save]", ErrUnclosed},
		{"JButton[", ErrUnclosed},
		{"JButton[=x]", ErrInvalidAttribute},
		{"JButton[text?x]", ErrInvalidAttribute},
		{"JButton[text=]", ErrInvalidAttribute},
		{"JButton:bogus", ErrInvalidPseudo},
		{"JButton:nth-child(2x)", ErrInvalidPseudo},
		{"JButton:nth-child(2n+1", ErrUnclosed},
		{"JButton:enabled(1)", ErrInvalidPseudo},
		{"JButton:not()", ErrInvalidPseudo},
		{"JButton:not(JPanel > JLabel)", ErrInvalidPseudo},
		{"JButton:contains()", ErrInvalidPseudo},
		{"JButton:has", ErrInvalidPseudo},
		{"JButton >", ErrUnexpectedEOF},
		{"JButton,", ErrUnexpectedEOF},
		{",JButton", ErrInvalidSelector},
		{"JButton,,JLabel", ErrInvalidSelector},
		{"JButton#", ErrInvalidSelector},
		{"JButton#a#b", ErrInvalidSelector},
		{"*JPanel JButton", ErrInvalidSelector},
		{"JPanel >> JLabel *JButton", ErrInvalidSelector},
		{"JButton)", ErrUnexpectedChar},
		{"//", ErrUnexpectedEOF},
		{"//JButton[0]", ErrInvalidXPath},
		{"//JButton[@]", ErrInvalidXPath},
		{"//JButton[@text~'x']", ErrInvalidXPath},
		{"//JButton[foo()]", ErrInvalidXPath},
		{"//JButton[@text='x'", ErrUnclosed},
		{"//child::JButton", ErrInvalidXPath},
		{"//JButton | JLabel", ErrInvalidXPath},
	}
	for _, tt := range tests {
		loc, err := Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q): expected error, got %s", tt.input, loc.Canonical())
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): error %v is not a *ParseError", tt.input, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("Parse(%q): kind = %v, want %v (%v)", tt.input, perr.Kind, tt.kind, err)
		}
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse("JPanel\n  JButton:bogus")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 2 || perr.Column != 10 {
		t.Errorf("location = %d:%d, want 2:10", perr.Line, perr.Column)
	}
	if perr.Position != 16 {
		t.Errorf("position = %d, want 16", perr.Position)
	}
	if perr.Fragment != ":bogus" {
		t.Errorf("fragment = %q, want ':bogus'", perr.Fragment)
	}
}

func TestForTypeString(t *testing.T) {
	loc := ForType("JButton")
	if got := loc.String(); got != "JButton" {
		t.Errorf("String() = %q, want JButton", got)
	}
	if got := loc.Canonical(); got != "JButton" {
		t.Errorf("Canonical() = %q, want JButton", got)
	}
}

func TestParseDeterministic(t *testing.T) {
	inputs := []string{
		"JPanel > JButton:nth-child(2n+1)[text*='a']",
		"//JFrame//JButton[@name='ok']",
		"name:ok",
	}
	for _, input := range inputs {
		a, err := Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		if a.Canonical() != b.Canonical() || a.IsXPath != b.IsXPath {
			t.Errorf("Parse(%q) is not deterministic: %q vs %q", input, a.Canonical(), b.Canonical())
		}
	}
}
