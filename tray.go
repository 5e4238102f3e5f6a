package main

import (
	"embed"
	"path"
	"strings"

	"github.com/wailsapp/wails/v3/pkg/application"

	"pulse/menu"
)

//go:embed assets/appicon.png
var Icon []byte

//go:embed assets/tray
var trayAssets embed.FS

// trayIcon 按名称读取托盘图标,找不到时退回应用图标
func trayIcon(name string) []byte {
	data, err := trayAssets.ReadFile(path.Join("assets/tray", name))
	if err != nil {
		MLog.Warn("托盘图标不存在,使用应用图标", "icon", name, "error", err)
		return Icon
	}
	return data
}

// wailsTray 基于 wails SystemTray 的托盘
type wailsTray struct {
	tray *application.SystemTray
}

func newWailsTray(icon string) *wailsTray {
	t := &wailsTray{tray: app.SystemTray.New()}
	t.SetImage(icon)
	return t
}

func (t *wailsTray) SetTitle(title string) {
	t.tray.SetLabel(title)
}

func (t *wailsTray) SetImage(icon string) {
	data := trayIcon(icon)
	// macOS 模板图标会随菜单栏明暗自动反色
	if strings.Contains(icon, "Template") {
		t.tray.SetTemplateIcon(data)
		return
	}
	t.tray.SetIcon(data)
}

// SetPressedImage wails 没有按下态图标,用深色模式图标代替
func (t *wailsTray) SetPressedImage(icon string) {
	t.tray.SetDarkModeIcon(trayIcon(icon))
}

func (t *wailsTray) SetToolTip(tip string) {
	t.tray.SetTooltip(tip)
}

func (t *wailsTray) SetContextMenu(entries []menu.Entry) {
	t.tray.SetMenu(renderMenu(entries))
}

func (t *wailsTray) OnClick(fn func()) {
	t.tray.OnClick(func() {
		application.InvokeAsync(fn)
	})
}

func (t *wailsTray) Destroy() {
	t.tray.Destroy()
}
