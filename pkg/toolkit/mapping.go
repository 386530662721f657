package toolkit

import "strings"

// Category 控件分类
type Category int

const (
	CategoryButton Category = iota
	CategoryTextInput
	CategorySelection
	CategoryDataDisplay
	CategoryDisplay
	CategoryContainer
	CategoryMenu
	CategoryToolbar
	CategoryRange
	CategoryWindow
	CategoryDialog
)

var categoryNames = [...]string{
	CategoryButton:      "button",
	CategoryTextInput:   "text_input",
	CategorySelection:   "selection",
	CategoryDataDisplay: "data_display",
	CategoryDisplay:     "display",
	CategoryContainer:   "container",
	CategoryMenu:        "menu",
	CategoryToolbar:     "toolbar",
	CategoryRange:       "range",
	CategoryWindow:      "window",
	CategoryDialog:      "dialog",
}

func (c Category) String() string {
	return categoryNames[c]
}

// Mapping Swing 与 SWT 之间同一种控件的对应关系
type Mapping struct {
	SwingClass  string
	SwingSimple string
	SWTClass    string
	SWTSimple   string
	Canonical   string
	Category    Category
}

// Native 该控件在指定工具包中的简单类名
func (m *Mapping) Native(t Type) string {
	if t.IsSWT() {
		return m.SWTSimple
	}
	return m.SwingSimple
}

// Mappings 控件对应表
var Mappings = []Mapping{
	{"javax.swing.JButton", "JButton", "org.eclipse.swt.widgets.Button", "Button", "Button", CategoryButton},
	{"javax.swing.JToggleButton", "JToggleButton", "org.eclipse.swt.widgets.Button", "ToggleButton", "ToggleButton", CategoryButton},

	{"javax.swing.JTextField", "JTextField", "org.eclipse.swt.widgets.Text", "Text", "TextField", CategoryTextInput},
	{"javax.swing.JTextArea", "JTextArea", "org.eclipse.swt.custom.StyledText", "StyledText", "TextArea", CategoryTextInput},
	{"javax.swing.JPasswordField", "JPasswordField", "org.eclipse.swt.widgets.Text", "Text", "PasswordField", CategoryTextInput},
	{"javax.swing.JFormattedTextField", "JFormattedTextField", "org.eclipse.swt.widgets.Text", "Text", "FormattedTextField", CategoryTextInput},
	{"javax.swing.JEditorPane", "JEditorPane", "org.eclipse.swt.custom.StyledText", "StyledText", "EditorPane", CategoryTextInput},
	{"javax.swing.JTextPane", "JTextPane", "org.eclipse.swt.custom.StyledText", "StyledText", "TextPane", CategoryTextInput},

	{"javax.swing.JCheckBox", "JCheckBox", "org.eclipse.swt.widgets.Button", "CheckBox", "CheckBox", CategorySelection},
	{"javax.swing.JRadioButton", "JRadioButton", "org.eclipse.swt.widgets.Button", "RadioButton", "RadioButton", CategorySelection},
	{"javax.swing.JComboBox", "JComboBox", "org.eclipse.swt.widgets.Combo", "Combo", "ComboBox", CategorySelection},
	{"javax.swing.JList", "JList", "org.eclipse.swt.widgets.List", "List", "List", CategorySelection},

	{"javax.swing.JTable", "JTable", "org.eclipse.swt.widgets.Table", "Table", "Table", CategoryDataDisplay},
	{"javax.swing.JTree", "JTree", "org.eclipse.swt.widgets.Tree", "Tree", "Tree", CategoryDataDisplay},

	{"javax.swing.JLabel", "JLabel", "org.eclipse.swt.widgets.Label", "Label", "Label", CategoryDisplay},
	{"javax.swing.JProgressBar", "JProgressBar", "org.eclipse.swt.widgets.ProgressBar", "ProgressBar", "ProgressBar", CategoryDisplay},

	{"javax.swing.JPanel", "JPanel", "org.eclipse.swt.widgets.Composite", "Composite", "Panel", CategoryContainer},
	{"javax.swing.JScrollPane", "JScrollPane", "org.eclipse.swt.custom.ScrolledComposite", "ScrolledComposite", "ScrollPane", CategoryContainer},
	{"javax.swing.JSplitPane", "JSplitPane", "org.eclipse.swt.custom.SashForm", "SashForm", "SplitPane", CategoryContainer},
	{"javax.swing.JTabbedPane", "JTabbedPane", "org.eclipse.swt.widgets.TabFolder", "TabFolder", "TabFolder", CategoryContainer},
	{"javax.swing.JLayeredPane", "JLayeredPane", "org.eclipse.swt.widgets.Composite", "Composite", "LayeredPane", CategoryContainer},

	{"javax.swing.JMenuBar", "JMenuBar", "org.eclipse.swt.widgets.Menu", "MenuBar", "MenuBar", CategoryMenu},
	{"javax.swing.JMenu", "JMenu", "org.eclipse.swt.widgets.Menu", "Menu", "Menu", CategoryMenu},
	{"javax.swing.JMenuItem", "JMenuItem", "org.eclipse.swt.widgets.MenuItem", "MenuItem", "MenuItem", CategoryMenu},
	{"javax.swing.JPopupMenu", "JPopupMenu", "org.eclipse.swt.widgets.Menu", "PopupMenu", "PopupMenu", CategoryMenu},
	{"javax.swing.JCheckBoxMenuItem", "JCheckBoxMenuItem", "org.eclipse.swt.widgets.MenuItem", "CheckMenuItem", "CheckMenuItem", CategoryMenu},
	{"javax.swing.JRadioButtonMenuItem", "JRadioButtonMenuItem", "org.eclipse.swt.widgets.MenuItem", "RadioMenuItem", "RadioMenuItem", CategoryMenu},

	{"javax.swing.JToolBar", "JToolBar", "org.eclipse.swt.widgets.ToolBar", "ToolBar", "ToolBar", CategoryToolbar},

	{"javax.swing.JSlider", "JSlider", "org.eclipse.swt.widgets.Slider", "Slider", "Slider", CategoryRange},
	{"javax.swing.JSpinner", "JSpinner", "org.eclipse.swt.widgets.Spinner", "Spinner", "Spinner", CategoryRange},
	{"javax.swing.JScrollBar", "JScrollBar", "org.eclipse.swt.widgets.ScrollBar", "ScrollBar", "ScrollBar", CategoryRange},

	{"javax.swing.JFrame", "JFrame", "org.eclipse.swt.widgets.Shell", "Shell", "Window", CategoryWindow},
	{"javax.swing.JDialog", "JDialog", "org.eclipse.swt.widgets.Shell", "Shell", "Dialog", CategoryWindow},
	{"javax.swing.JInternalFrame", "JInternalFrame", "org.eclipse.swt.widgets.Shell", "Shell", "InternalFrame", CategoryWindow},

	{"javax.swing.JFileChooser", "JFileChooser", "org.eclipse.swt.widgets.FileDialog", "FileDialog", "FileChooser", CategoryDialog},
	{"javax.swing.JColorChooser", "JColorChooser", "org.eclipse.swt.widgets.ColorDialog", "ColorDialog", "ColorChooser", CategoryDialog},
	{"javax.swing.JOptionPane", "JOptionPane", "org.eclipse.swt.widgets.MessageBox", "MessageBox", "MessageDialog", CategoryDialog},

	{"javax.swing.JSeparator", "JSeparator", "org.eclipse.swt.widgets.Label", "Separator", "Separator", CategoryDisplay},
}

// lookup 小写名字到对应关系，包括规范名、两种简单类名和去掉 J 的 Swing 名
// 名字冲突时先出现的条目优先
var lookup = buildLookup()

func buildLookup() map[string]*Mapping {
	m := make(map[string]*Mapping, len(Mappings)*4)
	add := func(key string, mapping *Mapping) {
		key = strings.ToLower(key)
		if _, ok := m[key]; !ok {
			m[key] = mapping
		}
	}
	for i := range Mappings {
		mapping := &Mappings[i]
		add(mapping.Canonical, mapping)
		add(mapping.SwingSimple, mapping)
		add(mapping.SWTSimple, mapping)
		add(strings.TrimPrefix(mapping.SwingSimple, "J"), mapping)
	}
	return m
}

// Lookup 按任意一种写法查找，不区分大小写，也接受全限定类名
func Lookup(name string) (*Mapping, bool) {
	if m, ok := lookup[strings.ToLower(name)]; ok {
		return m, true
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		m, ok := lookup[strings.ToLower(name[i+1:])]
		return m, ok
	}
	return nil, false
}

// CanonicalName 规范名，查不到原样返回
func CanonicalName(name string) string {
	if m, ok := Lookup(name); ok {
		return m.Canonical
	}
	return name
}
