package menu

// Platform 菜单布局使用的平台
type Platform int

const (
	Linux Platform = iota
	Darwin
	Windows
)

func (p Platform) String() string {
	switch p {
	case Darwin:
		return "darwin"
	case Windows:
		return "windows"
	default:
		return "linux"
	}
}

// 托盘图标资源名,由宿主按自己的资源目录解析
const (
	IconMacTemplate  = "macTemplate.png"
	IconMacHighlight = "macHighlight.png"
	IconWindows      = "windows.ico"
	IconLinux        = "linux.png"
)

// Profile 平台相关的菜单参数
// 只在 ProfileFor 中根据平台分支一次,模板构建时不再判断平台
type Profile struct {
	Platform Platform

	TrayLabel       string // 最小化到托盘复选框的标签
	BadgeLabel      string // 未读角标复选框的标签
	TrayIcon        string
	TrayPressedIcon string // 为空表示不设置按下态图标

	AppMenu         bool // 是否在最前面插入应用菜单(Hide/Quit)
	SpeechMenu      bool // 编辑菜单是否追加 Speech 子菜单
	MacWindowMenu   bool // 窗口菜单是否使用 macOS 布局
	OpenAtLogin     bool // 是否显示开机启动
	AutoHideMenuBar bool // 是否显示自动隐藏菜单栏

	ShowDockOnShow   bool // 显示主窗口时同时显示 Dock 图标
	ClearBadgeCount  bool // 关闭角标时清零应用角标
	ClearTrayTitle   bool // 关闭角标时清空托盘标题
	ClearOverlayIcon bool // 关闭角标时清除任务栏叠加图标并重置托盘图标
	QuitAccelerator  string
}

// ProfileFor 根据 runtime.GOOS 返回平台参数
func ProfileFor(goos string) Profile {
	switch goos {
	case "darwin":
		return Profile{
			Platform:        Darwin,
			TrayLabel:       "Show in Menu Bar",
			BadgeLabel:      "Show Unread Count on Icon",
			TrayIcon:        IconMacTemplate,
			TrayPressedIcon: IconMacHighlight,
			AppMenu:         true,
			SpeechMenu:      true,
			MacWindowMenu:   true,
			ShowDockOnShow:  true,
			ClearBadgeCount: true,
			ClearTrayTitle:  true,
			QuitAccelerator: "Command+Q",
		}
	case "windows":
		return Profile{
			Platform:         Windows,
			TrayLabel:        "Show in Tray",
			BadgeLabel:       "Show Unread Indicator on Icon",
			TrayIcon:         IconWindows,
			OpenAtLogin:      true,
			AutoHideMenuBar:  true,
			ClearOverlayIcon: true,
			QuitAccelerator:  "Command+Q",
		}
	default:
		return Profile{
			Platform:        Linux,
			TrayLabel:       "Show in Tray",
			BadgeLabel:      "Show Unread Count on Icon",
			TrayIcon:        IconLinux,
			AutoHideMenuBar: true,
			ClearBadgeCount: true,
			QuitAccelerator: "Command+Q",
		}
	}
}
