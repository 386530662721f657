package toolkit

// NormalizeClass 把各种写法统一成指定工具包的简单类名，未知名字原样返回
func NormalizeClass(name string, t Type) string {
	if t.IsSWT() {
		return normalizeSWTClass(name)
	}
	return normalizeSwingClass(name)
}

func normalizeSwingClass(name string) string {
	switch name {
	case "Button", "JButton":
		return "JButton"
	case "TextField", "JTextField", "Text":
		return "JTextField"
	case "TextArea", "JTextArea":
		return "JTextArea"
	case "Label", "JLabel":
		return "JLabel"
	case "ComboBox", "JComboBox", "Combo":
		return "JComboBox"
	case "List", "JList":
		return "JList"
	case "Table", "JTable":
		return "JTable"
	case "Tree", "JTree":
		return "JTree"
	case "CheckBox", "JCheckBox":
		return "JCheckBox"
	case "RadioButton", "JRadioButton":
		return "JRadioButton"
	case "Panel", "JPanel", "Composite":
		return "JPanel"
	case "Frame", "JFrame", "Shell":
		return "JFrame"
	case "Dialog", "JDialog":
		return "JDialog"
	case "ScrollPane", "JScrollPane":
		return "JScrollPane"
	case "SplitPane", "JSplitPane", "SashForm":
		return "JSplitPane"
	case "TabbedPane", "JTabbedPane", "TabFolder":
		return "JTabbedPane"
	case "MenuBar", "JMenuBar":
		return "JMenuBar"
	case "Menu", "JMenu":
		return "JMenu"
	case "MenuItem", "JMenuItem":
		return "JMenuItem"
	case "ToolBar", "JToolBar":
		return "JToolBar"
	case "ProgressBar", "JProgressBar":
		return "JProgressBar"
	case "Slider", "JSlider", "Scale":
		return "JSlider"
	case "Spinner", "JSpinner":
		return "JSpinner"
	case "PasswordField", "JPasswordField":
		return "JPasswordField"
	}
	return name
}

// normalizeSWTClass SWT 的复选框和单选框都是带样式的 Button
func normalizeSWTClass(name string) string {
	switch name {
	case "JButton", "Button":
		return "Button"
	case "JTextField", "TextField", "Text", "JTextArea", "TextArea", "JPasswordField", "PasswordField":
		return "Text"
	case "JLabel", "Label":
		return "Label"
	case "JComboBox", "ComboBox", "Combo":
		return "Combo"
	case "JList", "List":
		return "List"
	case "JTable", "Table":
		return "Table"
	case "JTree", "Tree":
		return "Tree"
	case "JCheckBox", "CheckBox", "JRadioButton", "RadioButton":
		return "Button"
	case "JPanel", "Panel", "Composite":
		return "Composite"
	case "JFrame", "Frame", "JDialog", "Dialog", "Shell":
		return "Shell"
	case "JScrollPane", "ScrollPane":
		return "ScrolledComposite"
	case "JSplitPane", "SplitPane", "SashForm":
		return "SashForm"
	case "JTabbedPane", "TabbedPane", "TabFolder":
		return "TabFolder"
	case "JMenuBar", "MenuBar", "Menu", "JMenu":
		return "Menu"
	case "JMenuItem", "MenuItem":
		return "MenuItem"
	case "JToolBar", "ToolBar":
		return "ToolBar"
	case "JProgressBar", "ProgressBar":
		return "ProgressBar"
	case "JSlider", "Slider", "Scale":
		return "Scale"
	case "JSpinner", "Spinner":
		return "Spinner"
	case "Group":
		return "Group"
	}
	return name
}

var (
	swingContainers = set("JPanel", "JFrame", "JDialog", "JInternalFrame", "JScrollPane", "JSplitPane",
		"JTabbedPane", "JDesktopPane", "JLayeredPane", "JRootPane", "JViewport")
	swtContainers = set("Composite", "ScrolledComposite", "Group", "Shell", "TabFolder", "CTabFolder",
		"SashForm", "Canvas")

	swingTextInputs = set("JTextField", "JFormattedTextField", "JTextArea", "JEditorPane", "JTextPane",
		"JPasswordField", "JSpinner")
	swtTextInputs = set("Text", "StyledText", "Spinner")

	swingButtons = set("JButton", "JToggleButton", "JCheckBox", "JRadioButton", "JMenuItem",
		"JCheckBoxMenuItem", "JRadioButtonMenuItem")
	swtButtons = set("Button", "MenuItem", "ToolItem")
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// IsContainer 是否为容器类控件
func IsContainer(simpleName string, t Type) bool {
	if t.IsSWT() {
		return swtContainers[simpleName]
	}
	return swingContainers[simpleName]
}

// IsTextInput 是否可以输入文本
func IsTextInput(simpleName string, t Type) bool {
	if t.IsSWT() {
		return swtTextInputs[simpleName]
	}
	return swingTextInputs[simpleName]
}

// IsButton 是否为按钮类控件，包括菜单项
func IsButton(simpleName string, t Type) bool {
	if t.IsSWT() {
		return swtButtons[simpleName]
	}
	return swingButtons[simpleName]
}
