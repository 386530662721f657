package toolkit

import "strings"

// ForSwing 把通用名或 SWT 名换成 Swing 类名
// 已经以 J 开头或是全限定名的直接返回
func ForSwing(value string) string {
	if strings.HasPrefix(value, "J") || strings.Contains(value, ".") {
		return value
	}
	switch value {
	case "Button":
		return "JButton"
	case "TextField", "Text":
		return "JTextField"
	case "TextArea":
		return "JTextArea"
	case "Label":
		return "JLabel"
	case "ComboBox", "Combo":
		return "JComboBox"
	case "List":
		return "JList"
	case "Table":
		return "JTable"
	case "Tree":
		return "JTree"
	case "CheckBox":
		return "JCheckBox"
	case "RadioButton":
		return "JRadioButton"
	case "Panel", "Composite":
		return "JPanel"
	case "Frame", "Shell", "Window":
		return "JFrame"
	case "Dialog":
		return "JDialog"
	case "ScrollPane", "ScrolledComposite":
		return "JScrollPane"
	case "SplitPane", "SashForm":
		return "JSplitPane"
	case "TabbedPane", "TabFolder":
		return "JTabbedPane"
	case "MenuBar":
		return "JMenuBar"
	case "Menu":
		return "JMenu"
	case "MenuItem":
		return "JMenuItem"
	case "PopupMenu":
		return "JPopupMenu"
	case "ToolBar":
		return "JToolBar"
	case "Slider", "Scale":
		return "JSlider"
	case "Spinner":
		return "JSpinner"
	case "ProgressBar":
		return "JProgressBar"
	}
	return value
}

// ForSWT 把 Swing 类名换成 SWT 类名，不以 J 开头的直接返回
func ForSWT(value string) string {
	if !strings.HasPrefix(value, "J") || len(value) < 2 {
		return value
	}
	bare := value[1:]
	switch bare {
	case "TextField", "TextArea", "TextPane", "EditorPane":
		return "Text"
	case "ComboBox":
		return "Combo"
	case "CheckBox", "RadioButton":
		return "Button"
	case "Panel":
		return "Composite"
	case "Frame", "Dialog":
		return "Shell"
	case "TabbedPane":
		return "TabFolder"
	case "SplitPane":
		return "SashForm"
	case "ScrollPane":
		return "ScrolledComposite"
	case "MenuBar":
		return "Menu"
	}
	return bare
}

// NativeFor 按工具包选择 ForSwing 或 ForSWT
func NativeFor(value string, t Type) string {
	if t.IsSWT() {
		return ForSWT(value)
	}
	return ForSwing(value)
}
