package menu

import (
	"io"

	"pulse/prefs"
)

// Preferences 菜单读写偏好设置使用的接口,由 prefs.Store 实现
type Preferences interface {
	Bool(key prefs.Key) bool
	Toggle(key prefs.Key) (bool, error)
	Snooze(selection prefs.SnoozeSelection) error
	IsSnoozeActive() bool
	CurrentSnooze() prefs.SnoozeSelection
}

// Window 主窗口或回复窗口
type Window interface {
	Show()
	Focus()
	SetMenuBarVisibility(visible bool)
	SetAutoHideMenuBar(autoHide bool)
	// SetOverlayIcon 设置任务栏叠加图标,icon 为空表示清除(仅 Windows)
	SetOverlayIcon(icon string, description string)
}

// BrowserSurface 主窗口中承载网页的视图
type BrowserSurface interface {
	LoadURL(url string)
	OpenDevTools()
	// FitToWindow 菜单栏显示状态变化后重新计算视图尺寸
	FitToWindow()
}

// WindowProvider 窗口提供者,窗口的生命周期由它管理
// 窗口不存在时 MainWindow/ReplyWindow 必须返回 nil 接口
type WindowProvider interface {
	MainWindow() Window
	BrowserSurface() BrowserSurface
	CreateMainWindow()
	ReplyWindow() Window
	CreateReplyWindow()
}

// Tray 系统托盘图标
type Tray interface {
	SetTitle(title string)
	SetImage(icon string)
	SetPressedImage(icon string)
	SetToolTip(tip string)
	SetContextMenu(entries []Entry)
	OnClick(fn func())
	Destroy()
}

// Connection 与服务端的长连接,只需要能关闭
type Connection = io.Closer

// MessageBox 模态对话框参数
type MessageBox struct {
	Title   string
	Message string
	Detail  string
	Buttons []string
}

// Host GUI 宿主提供的能力
type Host interface {
	// InstallMenu 安装应用菜单,替换之前的菜单
	InstallMenu(entries []Entry)
	NewTray(icon string) Tray
	SetBadgeCount(count int)
	ShowDock()
	SetOpenAtLogin(enabled bool) error
	// ShowMessageBox 显示对话框,用户选择后以按钮下标回调
	ShowMessageBox(box MessageBox, onResponse func(button int)) error
	OpenExternal(url string)
	CheckForUpdates()
	Locale() string
	AppName() string
	Version() string
}

// Lifecycle 应用生命周期的拥有者
// 菜单不直接退出进程,只发出退出请求,由拥有者按顺序关闭连接后退出
type Lifecycle interface {
	RequestShutdown(conn Connection, relaunch bool)
}
