package toolkit

import "strings"

// ElementType 与工具包无关的控件类型
type ElementType string

const (
	ElementButton        ElementType = "button"
	ElementToggleButton  ElementType = "toggle_button"
	ElementCheckBox      ElementType = "check_box"
	ElementRadioButton   ElementType = "radio_button"
	ElementTextField     ElementType = "text_field"
	ElementTextArea      ElementType = "text_area"
	ElementPasswordField ElementType = "password_field"
	ElementSpinner       ElementType = "spinner"
	ElementComboBox      ElementType = "combo_box"
	ElementList          ElementType = "list"
	ElementTable         ElementType = "table"
	ElementTree          ElementType = "tree"
	ElementLabel         ElementType = "label"
	ElementProgressBar   ElementType = "progress_bar"
	ElementSlider        ElementType = "slider"
	ElementPanel         ElementType = "panel"
	ElementFrame         ElementType = "frame"
	ElementDialog        ElementType = "dialog"
	ElementShell         ElementType = "shell"
	ElementGroup         ElementType = "group"
	ElementScrollPane    ElementType = "scroll_pane"
	ElementSplitPane     ElementType = "split_pane"
	ElementTabbedPane    ElementType = "tabbed_pane"
	ElementMenuBar       ElementType = "menu_bar"
	ElementMenu          ElementType = "menu"
	ElementMenuItem      ElementType = "menu_item"
	ElementPopupMenu     ElementType = "popup_menu"
	ElementToolBar       ElementType = "tool_bar"
	ElementToolItem      ElementType = "tool_item"
	ElementView          ElementType = "view"
	ElementEditor        ElementType = "editor"
	ElementPerspective   ElementType = "perspective"
	ElementWidget        ElementType = "widget"
)

var swingElements = map[string]ElementType{
	"JButton":              ElementButton,
	"JToggleButton":        ElementToggleButton,
	"JCheckBox":            ElementCheckBox,
	"JRadioButton":         ElementRadioButton,
	"JTextField":           ElementTextField,
	"JFormattedTextField":  ElementTextField,
	"JTextArea":            ElementTextArea,
	"JEditorPane":          ElementTextArea,
	"JTextPane":            ElementTextArea,
	"JPasswordField":       ElementPasswordField,
	"JSpinner":             ElementSpinner,
	"JComboBox":            ElementComboBox,
	"JList":                ElementList,
	"JTable":               ElementTable,
	"JTree":                ElementTree,
	"JLabel":               ElementLabel,
	"JProgressBar":         ElementProgressBar,
	"JSlider":              ElementSlider,
	"JPanel":               ElementPanel,
	"JFrame":               ElementFrame,
	"JDialog":              ElementDialog,
	"JInternalFrame":       ElementFrame,
	"JScrollPane":          ElementScrollPane,
	"JSplitPane":           ElementSplitPane,
	"JTabbedPane":          ElementTabbedPane,
	"JDesktopPane":         ElementPanel,
	"JLayeredPane":         ElementPanel,
	"JRootPane":            ElementPanel,
	"JViewport":            ElementPanel,
	"JMenuBar":             ElementMenuBar,
	"JMenu":                ElementMenu,
	"JMenuItem":            ElementMenuItem,
	"JCheckBoxMenuItem":    ElementMenuItem,
	"JRadioButtonMenuItem": ElementMenuItem,
	"JPopupMenu":           ElementPopupMenu,
	"JToolBar":             ElementToolBar,
}

var swtElements = map[string]ElementType{
	"Button":            ElementButton,
	"Text":              ElementTextField,
	"StyledText":        ElementTextArea,
	"Label":             ElementLabel,
	"CLabel":            ElementLabel,
	"Combo":             ElementComboBox,
	"CCombo":            ElementComboBox,
	"List":              ElementList,
	"Table":             ElementTable,
	"Tree":              ElementTree,
	"Spinner":           ElementSpinner,
	"ProgressBar":       ElementProgressBar,
	"Scale":             ElementSlider,
	"Slider":            ElementSlider,
	"Composite":         ElementPanel,
	"ScrolledComposite": ElementScrollPane,
	"Group":             ElementGroup,
	"Shell":             ElementShell,
	"TabFolder":         ElementTabbedPane,
	"CTabFolder":        ElementTabbedPane,
	"SashForm":          ElementSplitPane,
	"Canvas":            ElementPanel,
	"Menu":              ElementMenu,
	"MenuItem":          ElementMenuItem,
	"ToolBar":           ElementToolBar,
	"ToolItem":          ElementToolItem,
	"CoolBar":           ElementToolBar,
	"CoolItem":          ElementToolItem,
	"ViewPart":          ElementView,
	"ViewSite":          ElementView,
	"EditorPart":        ElementEditor,
	"EditorSite":        ElementEditor,
	"WorkbenchPage":     ElementPanel,
	"Perspective":       ElementPerspective,
}

// ElementOf 按类名判断控件类型，className 可以是全限定名
func ElementOf(className string, t Type) ElementType {
	simple := className
	if i := strings.LastIndexByte(className, '.'); i >= 0 {
		simple = className[i+1:]
	}

	table := swingElements
	if t.IsSWT() {
		table = swtElements
	}
	if e, ok := table[simple]; ok {
		return e
	}
	return ElementWidget
}

// Group 控件类型的大类
func (e ElementType) Group() string {
	switch e {
	case ElementButton, ElementToggleButton, ElementCheckBox, ElementRadioButton:
		return "button"
	case ElementTextField, ElementTextArea, ElementPasswordField:
		return "text"
	case ElementComboBox:
		return "combobox"
	case ElementList, ElementTable, ElementTree, ElementLabel, ElementSlider, ElementSpinner:
		return string(e)
	case ElementProgressBar:
		return "progressbar"
	case ElementPanel, ElementFrame, ElementDialog, ElementShell, ElementGroup,
		ElementScrollPane, ElementSplitPane, ElementTabbedPane:
		return "container"
	case ElementMenuBar, ElementMenu, ElementMenuItem, ElementPopupMenu:
		return "menu"
	case ElementToolBar, ElementToolItem:
		return "toolbar"
	case ElementView, ElementEditor, ElementPerspective:
		return "rcp"
	}
	return "component"
}
