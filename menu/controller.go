package menu

import (
	"fmt"
	"log/slog"

	"pulse/locale"
	"pulse/prefs"
)

const (
	trayToolTip            = "Pulse SMS"
	noUnreadDescription    = "No Unread Conversations"
	notificationPrefsLabel = "Notification Preferences"
)

// Links 帮助菜单中的外部链接
type Links struct {
	Releases        string
	Help            string
	PlatformSupport string
	GooglePlay      string
}

// DefaultLinks 默认的帮助链接
func DefaultLinks() Links {
	return Links{
		Releases:        "https://github.com/klinker-apps/messenger-desktop/releases",
		Help:            "https://messenger.klinkerapps.com/help",
		PlatformSupport: "https://messenger.klinkerapps.com/overview",
		GooglePlay:      "https://play.google.com/store/apps/details?id=xyz.klinker.messenger",
	}
}

// Options 创建 Controller 的参数
type Options struct {
	Profile   Profile
	Prefs     Preferences
	Host      Host
	Lifecycle Lifecycle
	Logger    *slog.Logger
	WebURL    string // 重新加载时打开的地址
	Links     Links
}

// Controller 构建并安装应用菜单和托盘菜单
// 所有方法都应在 GUI 主线程上调用
type Controller struct {
	profile   Profile
	prefs     Preferences
	host      Host
	lifecycle Lifecycle
	logger    *slog.Logger
	webURL    string
	links     Links

	windows WindowProvider
	conn    Connection
	tray    Tray
}

// NewController 创建菜单控制器
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	links := opts.Links
	if links == (Links{}) {
		links = DefaultLinks()
	}
	return &Controller{
		profile:   opts.Profile,
		prefs:     opts.Prefs,
		host:      opts.Host,
		lifecycle: opts.Lifecycle,
		logger:    logger,
		webURL:    opts.WebURL,
		links:     links,
	}
}

// Tray 返回当前持有的托盘,没有时为 nil
func (c *Controller) Tray() Tray {
	return c.tray
}

// BuildMenu 根据当前偏好设置构建并安装应用菜单
// 安装后主窗口的菜单栏可见性总是与自动隐藏设置保持一致
func (c *Controller) BuildMenu(windows WindowProvider, tray Tray, conn Connection) {
	c.windows = windows
	c.tray = tray
	c.conn = conn

	c.host.InstallMenu(c.template())
	c.syncMenuBar()
}

// Refresh 重新构建应用菜单和托盘菜单,用于偏好设置在菜单之外发生变化后
func (c *Controller) Refresh() {
	if c.windows == nil {
		return
	}
	c.host.InstallMenu(c.template())
	c.syncMenuBar()
	if c.tray != nil {
		c.tray.SetContextMenu(c.trayTemplate(c.windows, c.conn))
	}
}

func (c *Controller) syncMenuBar() {
	w := c.windows.MainWindow()
	if w == nil {
		return
	}
	autoHide := c.prefs.Bool(prefs.AutoHideMenuBar)
	w.SetMenuBarVisibility(!autoHide)
	w.SetAutoHideMenuBar(autoHide)
}

// BuildTray 创建托盘图标,最小化到托盘关闭时返回 nil
// 调用方负责在再次调用前销毁旧的托盘
func (c *Controller) BuildTray(windows WindowProvider, conn Connection) Tray {
	if !c.prefs.Bool(prefs.MinimizeToTray) {
		return nil
	}

	tray := c.host.NewTray(c.profile.TrayIcon)
	if c.profile.TrayPressedIcon != "" {
		tray.SetPressedImage(c.profile.TrayPressedIcon)
	}
	tray.SetToolTip(trayToolTip)
	tray.SetContextMenu(c.trayTemplate(windows, conn))
	tray.OnClick(func() {
		c.ShowWindow(windows)
	})

	c.logger.Info("托盘图标已创建", "icon", c.profile.TrayIcon)
	return tray
}

// ShowWindow 显示主窗口,不存在时请求创建
func (c *Controller) ShowWindow(windows WindowProvider) {
	if w := windows.MainWindow(); w != nil {
		w.Show()
		if c.profile.ShowDockOnShow {
			c.host.ShowDock()
		}
		return
	}
	windows.CreateMainWindow()
}

// ShowPopupWindow 显示并聚焦回复窗口,不存在时请求创建
func (c *Controller) ShowPopupWindow(windows WindowProvider) {
	if w := windows.ReplyWindow(); w != nil {
		w.Show()
		w.Focus()
		return
	}
	windows.CreateReplyWindow()
}

// toggle 翻转偏好设置并返回新值
// 落盘失败只记录日志,内存中的值已经生效
func (c *Controller) toggle(key prefs.Key) bool {
	value, err := c.prefs.Toggle(key)
	if err != nil {
		c.logger.Error("保存偏好设置失败", "key", key, "error", err)
	}
	return value
}

func (c *Controller) trayTemplate(windows WindowProvider, conn Connection) []Entry {
	return []Entry{
		Action{
			Label:   "Show Pulse",
			OnClick: func() { c.ShowWindow(windows) },
		},
		Action{
			Label:   "Show Popup Window",
			OnClick: func() { c.ShowPopupWindow(windows) },
		},
		c.notificationMenu(),
		Action{
			Label:       "Quit",
			Accelerator: c.profile.QuitAccelerator,
			OnClick:     func() { c.quit(conn, false) },
		},
	}
}

func (c *Controller) quit(conn Connection, relaunch bool) {
	c.logger.Info("请求退出应用", "relaunch", relaunch)
	c.lifecycle.RequestShutdown(conn, relaunch)
}

func (c *Controller) notificationMenu() Submenu {
	snoozeActive := c.prefs.IsSnoozeActive()
	current := c.prefs.CurrentSnooze()

	snooze := make([]Entry, 0, len(prefs.SnoozeSelections))
	for _, selection := range prefs.SnoozeSelections {
		snooze = append(snooze, Checkbox{
			Label:   selection.Label(),
			Checked: snoozeActive && current == selection,
			OnClick: func() { c.snooze(selection) },
		})
	}

	return Submenu{
		Label: notificationPrefsLabel,
		Entries: []Entry{
			c.toggleEntry("Show Notifications", prefs.ShowNotifications),
			c.toggleEntry("Play Notification Sound", prefs.NotificationSounds),
			Separator{},
			c.toggleEntry("Display Sender in Notification", prefs.SenderPreviews),
			c.toggleEntry("Display Message Preview in Notification", prefs.MessagePreviews),
			Separator{},
			Submenu{Label: "Snooze Desktop Notifications", Entries: snooze},
		},
	}
}

// toggleEntry 通知子菜单同时出现在应用菜单和托盘菜单中,
// 翻转后重建两者,保证勾选状态一致
func (c *Controller) toggleEntry(label string, key prefs.Key) Checkbox {
	return Checkbox{
		Label:   label,
		Checked: c.prefs.Bool(key),
		OnClick: func() {
			c.toggle(key)
			c.Refresh()
		},
	}
}

// snooze 免打扰选项互斥,选择后重建菜单让其他选项取消勾选
func (c *Controller) snooze(selection prefs.SnoozeSelection) {
	if err := c.prefs.Snooze(selection); err != nil {
		c.logger.Error("保存免打扰设置失败", "selection", selection, "error", err)
	}
	c.Refresh()
}

func (c *Controller) template() []Entry {
	preferences := []Entry{
		c.notificationMenu(),
		Separator{},
		Checkbox{
			Label:   c.profile.TrayLabel,
			Checked: c.prefs.Bool(prefs.MinimizeToTray),
			OnClick: c.onMinimizeToTray,
		},
		Checkbox{
			Label:   c.profile.BadgeLabel,
			Checked: c.prefs.Bool(prefs.BadgeDockIcon),
			OnClick: c.onBadgeDockIcon,
		},
	}

	if locale.HasEnglish(c.host.Locale()) {
		preferences = append(preferences, Checkbox{
			Label:   "Use Spellcheck",
			Checked: c.prefs.Bool(prefs.UseSpellcheck),
			OnClick: c.onUseSpellcheck,
		})
	}
	if c.profile.OpenAtLogin {
		preferences = append(preferences, Checkbox{
			Label:   "Auto-Open at Login",
			Checked: c.prefs.Bool(prefs.OpenAtLogin),
			OnClick: c.onOpenAtLogin,
		})
	}
	if c.profile.AutoHideMenuBar {
		preferences = append(preferences, Checkbox{
			Label:   "Auto-hide Menu Bar",
			Checked: c.prefs.Bool(prefs.AutoHideMenuBar),
			OnClick: c.onAutoHideMenuBar,
		})
	}

	template := []Entry{
		Submenu{Label: "Preferences", Entries: preferences},
		Submenu{Label: "Edit", Entries: c.editMenu()},
		Submenu{Label: "View", Entries: c.viewMenu()},
		Submenu{Label: "Window", Role: RoleWindow, Entries: c.windowMenu()},
		Submenu{Label: "Help", Role: RoleHelp, Entries: c.helpMenu()},
	}

	if c.profile.AppMenu {
		template = append([]Entry{c.appMenu()}, template...)
	}
	return template
}

func (c *Controller) appMenu() Submenu {
	return Submenu{
		Label: c.host.AppName(),
		Entries: []Entry{
			Separator{},
			Action{Label: "Hide Pulse", Role: RoleHide},
			Action{Role: RoleHideOthers},
			Action{Role: RoleUnhide},
			Separator{},
			Action{
				Label:       "Quit Pulse",
				Role:        RoleQuit,
				Accelerator: c.profile.QuitAccelerator,
				OnClick:     func() { c.quit(c.conn, false) },
			},
		},
	}
}

func (c *Controller) editMenu() []Entry {
	edit := []Entry{
		Action{Role: RoleUndo},
		Action{Role: RoleRedo},
		Separator{},
		Action{Role: RoleCut},
		Action{Role: RoleCopy},
		Action{Role: RolePaste},
		Action{Role: RolePasteAndMatchStyle},
		Action{Role: RoleDelete},
		Action{Role: RoleSelectAll},
	}
	if c.profile.SpeechMenu {
		edit = append(edit,
			Separator{},
			Submenu{Label: "Speech", Role: RoleSpeech, Entries: []Entry{
				Action{Role: RoleStartSpeaking},
				Action{Role: RoleStopSpeaking},
			}},
		)
	}
	return edit
}

func (c *Controller) viewMenu() []Entry {
	return []Entry{
		Action{
			Label:       "Reload",
			Accelerator: "CmdOrCtrl+R",
			OnClick: func() {
				if b := c.windows.BrowserSurface(); b != nil {
					b.LoadURL(c.webURL)
				}
			},
		},
		Action{
			Label:       "Open Developer Tools",
			Accelerator: "CmdOrCtrl+I",
			OnClick: func() {
				if b := c.windows.BrowserSurface(); b != nil {
					b.OpenDevTools()
				}
			},
		},
		Separator{},
		Action{Role: RoleResetZoom},
		Action{Role: RoleZoomIn},
		Action{Role: RoleZoomOut},
		Separator{},
		Action{Role: RoleToggleFullscreen},
	}
}

func (c *Controller) windowMenu() []Entry {
	if !c.profile.MacWindowMenu {
		return []Entry{
			Action{Role: RoleMinimize},
			Action{Role: RoleClose},
		}
	}
	return []Entry{
		Action{Label: "Close", Accelerator: "CmdOrCtrl+W", Role: RoleClose},
		Action{Label: "Minimize", Accelerator: "CmdOrCtrl+M", Role: RoleMinimize},
		Action{Label: "Zoom", Role: RoleZoom},
		Separator{},
		Action{
			Label: "Bring All to Front",
			Role:  RoleFront,
			OnClick: func() {
				c.ShowWindow(c.windows)
				if w := c.windows.ReplyWindow(); w != nil {
					w.Show()
				}
			},
		},
	}
}

func (c *Controller) helpMenu() []Entry {
	return []Entry{
		Action{Label: c.host.Version(), OnClick: c.openURL(c.links.Releases)},
		Action{Label: "Get Help", OnClick: c.openURL(c.links.Help)},
		Action{Label: "Platform Support", OnClick: c.openURL(c.links.PlatformSupport)},
		Action{Label: "Get it on Google Play", OnClick: c.openURL(c.links.GooglePlay)},
		Separator{},
		Action{Label: "Check for Updates", OnClick: c.host.CheckForUpdates},
	}
}

func (c *Controller) openURL(url string) func() {
	return func() {
		c.host.OpenExternal(url)
	}
}

func (c *Controller) onMinimizeToTray() {
	toTray := c.toggle(prefs.MinimizeToTray)

	if !toTray {
		if c.tray != nil {
			c.tray.Destroy()
			c.tray = nil
			c.logger.Info("托盘图标已移除")
		}
		return
	}

	// 托盘最多只能有一个
	if c.tray != nil {
		c.tray.Destroy()
	}
	c.tray = c.BuildTray(c.windows, c.conn)
}

func (c *Controller) onBadgeDockIcon() {
	if c.toggle(prefs.BadgeDockIcon) {
		return
	}

	if c.profile.ClearBadgeCount {
		c.host.SetBadgeCount(0)
	}
	if c.profile.ClearTrayTitle && c.tray != nil {
		c.tray.SetTitle("")
	}
	if c.profile.ClearOverlayIcon {
		if w := c.windows.MainWindow(); w != nil {
			w.SetOverlayIcon("", noUnreadDescription)
		}
		if c.tray != nil {
			c.tray.SetImage(c.profile.TrayIcon)
		}
	}
}

func (c *Controller) onUseSpellcheck() {
	c.toggle(prefs.UseSpellcheck)
	c.promptRestart()
}

// promptRestart 提示重启以应用拼写检查设置
// 对话框显示失败不影响已经保存的设置,只记录日志
func (c *Controller) promptRestart() {
	box := MessageBox{
		Title:   "App Restart Required",
		Message: "This preference will not be applied until the app is restarted.",
		Detail:  `Hit "Restart", then re-open the app, to apply the preference.`,
		Buttons: []string{"Restart", "Later"},
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("显示对话框时发生 panic: %v", r)
			}
		}()
		return c.host.ShowMessageBox(box, func(button int) {
			if button == 0 {
				c.quit(c.conn, true)
			}
		})
	}()
	if err != nil {
		c.logger.Debug("重启提示框显示失败,设置将在下次启动时生效", "error", err)
	}
}

func (c *Controller) onOpenAtLogin() {
	autoOpen := c.toggle(prefs.OpenAtLogin)
	if err := c.host.SetOpenAtLogin(autoOpen); err != nil {
		c.logger.Warn("设置开机启动失败", "enabled", autoOpen, "error", err)
	}
}

func (c *Controller) onAutoHideMenuBar() {
	autoHide := c.toggle(prefs.AutoHideMenuBar)

	if w := c.windows.MainWindow(); w != nil {
		w.SetAutoHideMenuBar(autoHide)
		w.SetMenuBarVisibility(!autoHide)
	}
	if b := c.windows.BrowserSurface(); b != nil {
		b.FitToWindow()
	}
}
