package main

import (
	"context"
	"fmt"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"pulse/menu"
	"pulse/update"
)

// nativeRoles 可以交给 wails 原生渲染的菜单角色
var nativeRoles = map[menu.Role]application.Role{
	menu.RoleUndo:               application.Undo,
	menu.RoleRedo:               application.Redo,
	menu.RoleCut:                application.Cut,
	menu.RoleCopy:               application.Copy,
	menu.RolePaste:              application.Paste,
	menu.RolePasteAndMatchStyle: application.PasteAndMatchStyle,
	menu.RoleDelete:             application.Delete,
	menu.RoleSelectAll:          application.SelectAll,
	menu.RoleResetZoom:          application.ResetZoom,
	menu.RoleZoomIn:             application.ZoomIn,
	menu.RoleZoomOut:            application.ZoomOut,
	menu.RoleToggleFullscreen:   application.ToggleFullscreen,
	menu.RoleMinimize:           application.Minimise,
	menu.RoleClose:              application.CloseWindow,
	menu.RoleZoom:               application.Zoom,
	menu.RoleFront:              application.Front,
	menu.RoleHide:               application.Hide,
	menu.RoleHideOthers:         application.HideOthers,
	menu.RoleUnhide:             application.UnHide,
	menu.RoleQuit:               application.Quit,
	menu.RoleSpeech:             application.SpeechMenu,
	menu.RoleStartSpeaking:      application.StartSpeaking,
	menu.RoleStopSpeaking:       application.StopSpeaking,
}

// renderMenu 把菜单模板转换为 wails 菜单
func renderMenu(entries []menu.Entry) *application.Menu {
	m := app.NewMenu()
	renderInto(m, entries)
	return m
}

func renderInto(m *application.Menu, entries []menu.Entry) {
	for _, entry := range entries {
		switch e := entry.(type) {
		case menu.Separator:
			m.AddSeparator()

		case menu.Action:
			// 有点击回调的条目总是按普通菜单项渲染
			if role, ok := nativeRoles[e.Role]; ok && e.OnClick == nil {
				m.AddRole(role)
				continue
			}
			label := e.Label
			if label == "" {
				label = e.Role.String()
			}
			if label == "" {
				MLog.Debug("跳过没有标签的菜单项", "role", e.Role)
				continue
			}
			item := m.Add(label)
			if e.Accelerator != "" {
				item.SetAccelerator(e.Accelerator)
			}
			if e.OnClick != nil {
				item.OnClick(onMainThread(e.OnClick))
			}

		case menu.Checkbox:
			item := m.AddCheckbox(e.Label, e.Checked)
			if e.OnClick != nil {
				item.OnClick(onMainThread(e.OnClick))
			}

		case menu.Submenu:
			if role, ok := nativeRoles[e.Role]; ok {
				m.AddRole(role)
				continue
			}
			renderInto(m.AddSubmenu(e.Label), e.Entries)
		}
	}
}

// onMainThread 菜单回调统一切换到主线程执行,Controller 只在主线程上被调用
func onMainThread(fn func()) func(*application.Context) {
	return func(_ *application.Context) {
		application.InvokeAsync(fn)
	}
}

// checkAndUpdateOrNotify 检查更新,有更新则下载,完成后通过生命周期重启
func checkAndUpdateOrNotify(updater *update.Updater, onUpdated func()) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		info, err := updater.CheckForUpdates(ctx)
		if err != nil {
			MLog.Error("检查更新失败", "error", err)
			showInfo("Update Check Failed", fmt.Sprintf("Unable to check for updates: %v", err))
			return
		}

		if !info.HasUpdate {
			showInfo("No Updates Available", fmt.Sprintf("You are running the latest version (%s).", info.Current))
			return
		}

		showInfo("Downloading Update", fmt.Sprintf("Updating %s -> %s.\n\nPulse will restart when the download finishes.", info.Current, info.Latest))

		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := updater.ApplyUpdate(ctx); err != nil {
			MLog.Error("自动更新失败", "error", err)
			showInfo("Update Failed", fmt.Sprintf("The update could not be applied: %v", err))
			return
		}

		MLog.Info("更新下载完成,准备重启应用")
		onUpdated()
	}()
}

// startBackgroundUpdateChecker 启动 5 分钟后首次检查,之后每 24 小时检查一次,只记录日志
func startBackgroundUpdateChecker(ctx context.Context, updater *update.Updater) {
	go func() {
		timer := time.NewTimer(5 * time.Minute)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			info, err := updater.CheckForUpdates(checkCtx)
			cancel()
			switch {
			case err != nil:
				MLog.Error("后台检查更新失败", "error", err)
			case info.HasUpdate:
				MLog.Info("后台检查发现新版本", "当前", info.Current, "最新", info.Latest)
			default:
				MLog.Debug("后台检查:当前已是最新版本")
			}
			timer.Reset(24 * time.Hour)
		}
	}()
}

func showInfo(title, message string) {
	dialog := application.InfoDialog()
	dialog.SetTitle(title)
	dialog.SetMessage(message)
	dialog.Show()
}
