package main

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/services/dock"

	"pulse/autostart"
	"pulse/locale"
	"pulse/menu"
)

const appName = "Pulse SMS"

// wailsHost 基于 wails 实现 menu.Host
type wailsHost struct {
	dock            *dock.DockService
	autoStart       *autostart.AutoStart
	checkForUpdates func()

	localeOnce sync.Once
	locale     string
}

func (h *wailsHost) InstallMenu(entries []menu.Entry) {
	app.Menu.Set(renderMenu(entries))
}

func (h *wailsHost) NewTray(icon string) menu.Tray {
	return newWailsTray(icon)
}

func (h *wailsHost) SetBadgeCount(count int) {
	var err error
	if count <= 0 {
		err = h.dock.RemoveBadge()
	} else {
		err = h.dock.SetBadge(strconv.Itoa(count))
	}
	if err != nil {
		MLog.Debug("设置 Dock 角标失败", "count", count, "error", err)
	}
}

func (h *wailsHost) ShowDock() {
	h.dock.ShowAppIcon()
}

func (h *wailsHost) SetOpenAtLogin(enabled bool) error {
	changed, err := h.autoStart.Sync(enabled)
	if err != nil {
		return fmt.Errorf("更新开机启动失败: %w", err)
	}
	if changed {
		MLog.Info("开机启动已更新", "enabled", enabled)
	}
	return nil
}

// ShowMessageBox 显示询问对话框,按钮按顺序对应下标
func (h *wailsHost) ShowMessageBox(box menu.MessageBox, onResponse func(button int)) error {
	if len(box.Buttons) == 0 {
		return fmt.Errorf("对话框至少需要一个按钮")
	}

	dialog := application.QuestionDialog()
	dialog.SetTitle(box.Title)
	message := box.Message
	if box.Detail != "" {
		message += "\n\n" + box.Detail
	}
	dialog.SetMessage(message)
	dialog.SetIcon(Icon)

	for i, label := range box.Buttons {
		button := dialog.AddButton(label)
		button.OnClick(func() {
			application.InvokeAsync(func() { onResponse(i) })
		})
		if i == 0 {
			dialog.SetDefaultButton(button)
		}
		if i == len(box.Buttons)-1 && i > 0 {
			dialog.SetCancelButton(button)
		}
	}
	dialog.Show()
	return nil
}

func (h *wailsHost) OpenExternal(url string) {
	if err := app.Browser.OpenURL(url); err != nil {
		MLog.Warn("打开链接失败", "url", url, "error", err)
	}
}

func (h *wailsHost) CheckForUpdates() {
	h.checkForUpdates()
}

// Locale 进程启动后系统语言不会变化,只检测一次
func (h *wailsHost) Locale() string {
	h.localeOnce.Do(func() {
		h.locale = locale.Detect()
		MLog.Debug("检测到系统语言", "locale", h.locale)
	})
	return h.locale
}

func (h *wailsHost) AppName() string {
	return appName
}

func (h *wailsHost) Version() string {
	return "Version " + GetVersion()
}
