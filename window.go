package main

import (
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"github.com/wailsapp/wails/v3/pkg/services/dock"

	"pulse/menu"
	"pulse/prefs"
)

// windowManager 管理主窗口和回复窗口,实现 menu.WindowProvider
type windowManager struct {
	mainURL  string
	popupURL string
	prefs    *prefs.Store
	dock     *dock.DockService
	profile  menu.Profile
	onQuit   func()

	mu    sync.Mutex
	main  *application.WebviewWindow
	reply *application.WebviewWindow
}

// MainWindow 窗口不存在时返回 nil 接口
func (m *windowManager) MainWindow() menu.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.main == nil {
		return nil
	}
	return &mainWindow{w: m.main}
}

func (m *windowManager) BrowserSurface() menu.BrowserSurface {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.main == nil {
		return nil
	}
	return &browserSurface{w: m.main}
}

func (m *windowManager) ReplyWindow() menu.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reply == nil {
		return nil
	}
	return &mainWindow{w: m.reply}
}

// CreateMainWindow 创建主窗口,已存在时只显示
func (m *windowManager) CreateMainWindow() {
	m.mu.Lock()
	if m.main != nil {
		w := m.main
		m.mu.Unlock()
		w.Show()
		w.Focus()
		return
	}

	w := app.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:      "main",
		Title:     "Pulse SMS",
		Width:     1000,
		Height:    750,
		MinWidth:  400,
		MinHeight: 300,
		URL:       m.mainURL,
	})
	m.main = w
	m.mu.Unlock()

	// 最小化到托盘时关闭按钮只隐藏窗口
	w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		if m.prefs.Bool(prefs.MinimizeToTray) {
			e.Cancel()
			w.Hide()
			if m.profile.ShowDockOnShow {
				m.dock.HideAppIcon()
			}
			MLog.Debug("主窗口已隐藏到托盘")
			return
		}
		if m.profile.Platform != menu.Darwin {
			e.Cancel()
			m.onQuit()
			return
		}
		m.mu.Lock()
		m.main = nil
		m.mu.Unlock()
	})

	autoHide := m.prefs.Bool(prefs.AutoHideMenuBar)
	mw := &mainWindow{w: w}
	mw.SetMenuBarVisibility(!autoHide)
	w.Show()
	w.Focus()
	if m.profile.ShowDockOnShow {
		m.dock.ShowAppIcon()
	}
	MLog.Info("主窗口已创建", "url", m.mainURL)
}

// CreateReplyWindow 创建回复弹窗
func (m *windowManager) CreateReplyWindow() {
	m.mu.Lock()
	if m.reply != nil {
		w := m.reply
		m.mu.Unlock()
		w.Show()
		w.Focus()
		return
	}

	w := app.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:          "reply",
		Title:         "Pulse SMS",
		Width:         400,
		Height:        500,
		AlwaysOnTop:   true,
		DisableResize: true,
		URL:           m.popupURL,
	})
	m.reply = w
	m.mu.Unlock()

	w.OnWindowEvent(events.Common.WindowClosing, func(e *application.WindowEvent) {
		m.mu.Lock()
		m.reply = nil
		m.mu.Unlock()
	})

	w.Show()
	w.Focus()
}

// mainWindow wails 窗口适配 menu.Window
type mainWindow struct {
	w *application.WebviewWindow
}

func (w *mainWindow) Show()  { w.w.Show() }
func (w *mainWindow) Focus() { w.w.Focus() }

func (w *mainWindow) SetMenuBarVisibility(visible bool) {
	if visible {
		w.w.ShowMenuBar()
	} else {
		w.w.HideMenuBar()
	}
}

// SetAutoHideMenuBar wails 没有按 Alt 临时显示菜单栏的能力,隐藏由 SetMenuBarVisibility 完成
func (w *mainWindow) SetAutoHideMenuBar(autoHide bool) {
	MLog.Debug("自动隐藏菜单栏", "window", w.w.Name(), "autoHide", autoHide)
}

// SetOverlayIcon wails 不支持任务栏叠加图标,只记录状态
func (w *mainWindow) SetOverlayIcon(icon string, description string) {
	MLog.Debug("任务栏叠加图标", "icon", icon, "description", description)
}

// browserSurface 主窗口中的网页
type browserSurface struct {
	w *application.WebviewWindow
}

func (b *browserSurface) LoadURL(url string) {
	b.w.SetURL(url)
}

// OpenDevTools wails 没有关闭开发者工具的接口,只能打开
func (b *browserSurface) OpenDevTools() {
	b.w.OpenDevTools()
}

// FitToWindow 菜单栏显示状态变化后重设一次尺寸触发重新布局
func (b *browserSurface) FitToWindow() {
	width, height := b.w.Size()
	b.w.SetSize(width, height)
}
