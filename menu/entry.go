package menu

// Entry 菜单模板中的一个节点
// 只有本包内的四种类型实现该接口: Separator, Action, Checkbox, Submenu
type Entry interface {
	isEntry()
}

// Role 原生菜单角色,由宿主自行渲染
type Role int

const (
	NoRole Role = iota
	RoleUndo
	RoleRedo
	RoleCut
	RoleCopy
	RolePaste
	RolePasteAndMatchStyle
	RoleDelete
	RoleSelectAll
	RoleResetZoom
	RoleZoomIn
	RoleZoomOut
	RoleToggleFullscreen
	RoleMinimize
	RoleClose
	RoleZoom
	RoleFront
	RoleHide
	RoleHideOthers
	RoleUnhide
	RoleQuit
	RoleSpeech
	RoleStartSpeaking
	RoleStopSpeaking
	RoleWindow
	RoleHelp
)

var roleNames = map[Role]string{
	NoRole:                 "",
	RoleUndo:               "undo",
	RoleRedo:               "redo",
	RoleCut:                "cut",
	RoleCopy:               "copy",
	RolePaste:              "paste",
	RolePasteAndMatchStyle: "pasteandmatchstyle",
	RoleDelete:             "delete",
	RoleSelectAll:          "selectall",
	RoleResetZoom:          "resetzoom",
	RoleZoomIn:             "zoomin",
	RoleZoomOut:            "zoomout",
	RoleToggleFullscreen:   "togglefullscreen",
	RoleMinimize:           "minimize",
	RoleClose:              "close",
	RoleZoom:               "zoom",
	RoleFront:              "front",
	RoleHide:               "hide",
	RoleHideOthers:         "hideothers",
	RoleUnhide:             "unhide",
	RoleQuit:               "quit",
	RoleSpeech:             "speech",
	RoleStartSpeaking:      "startspeaking",
	RoleStopSpeaking:       "stopspeaking",
	RoleWindow:             "window",
	RoleHelp:               "help",
}

func (r Role) String() string {
	return roleNames[r]
}

// Separator 分隔线
type Separator struct{}

// Action 普通菜单项
// 设置了 Role 且 OnClick 为空时由宿主使用原生实现,
// 设置了 OnClick 时总是调用 OnClick
type Action struct {
	Label       string
	Accelerator string
	Role        Role
	OnClick     func()
}

// Checkbox 复选菜单项
type Checkbox struct {
	Label   string
	Checked bool
	OnClick func()
}

// Submenu 子菜单
type Submenu struct {
	Label   string
	Role    Role
	Entries []Entry
}

func (Separator) isEntry() {}
func (Action) isEntry()    {}
func (Checkbox) isEntry()  {}
func (Submenu) isEntry()   {}

// Find 按标签路径查找菜单项,找不到返回 nil
func Find(entries []Entry, path ...string) Entry {
	if len(path) == 0 {
		return nil
	}
	for _, e := range entries {
		if label(e) != path[0] {
			continue
		}
		if len(path) == 1 {
			return e
		}
		if sub, ok := e.(Submenu); ok {
			return Find(sub.Entries, path[1:]...)
		}
		return nil
	}
	return nil
}

func label(e Entry) string {
	switch v := e.(type) {
	case Action:
		if v.Label == "" {
			return v.Role.String()
		}
		return v.Label
	case Checkbox:
		return v.Label
	case Submenu:
		if v.Label == "" {
			return v.Role.String()
		}
		return v.Label
	}
	return ""
}
