package menu

import (
	"errors"
	"testing"

	"pulse/prefs"
)

type fakeWindow struct {
	shown, focused int
	menuBarVisible bool
	autoHide       bool
	overlayIcon    string
	overlayDesc    string
	overlayCleared bool
}

func (w *fakeWindow) Show()                       { w.shown++ }
func (w *fakeWindow) Focus()                      { w.focused++ }
func (w *fakeWindow) SetMenuBarVisibility(v bool) { w.menuBarVisible = v }
func (w *fakeWindow) SetAutoHideMenuBar(v bool)   { w.autoHide = v }
func (w *fakeWindow) SetOverlayIcon(icon, desc string) {
	w.overlayIcon = icon
	w.overlayDesc = desc
	w.overlayCleared = icon == ""
}

type fakeBrowser struct {
	loaded   []string
	devTools int
	fitted   int
}

func (b *fakeBrowser) LoadURL(url string) { b.loaded = append(b.loaded, url) }
func (b *fakeBrowser) OpenDevTools()      { b.devTools++ }
func (b *fakeBrowser) FitToWindow()       { b.fitted++ }

type fakeWindows struct {
	main, reply               *fakeWindow
	browser                   *fakeBrowser
	createdMain, createdReply int
}

func (p *fakeWindows) MainWindow() Window {
	if p.main == nil {
		return nil
	}
	return p.main
}

func (p *fakeWindows) BrowserSurface() BrowserSurface {
	if p.browser == nil {
		return nil
	}
	return p.browser
}

func (p *fakeWindows) CreateMainWindow() { p.createdMain++ }

func (p *fakeWindows) ReplyWindow() Window {
	if p.reply == nil {
		return nil
	}
	return p.reply
}

func (p *fakeWindows) CreateReplyWindow() { p.createdReply++ }

type fakeTray struct {
	icon        string
	pressed     string
	title       string
	tooltip     string
	menu        []Entry
	onClick     func()
	destroyed   bool
	menuUpdates int
}

func (t *fakeTray) SetTitle(title string)    { t.title = title }
func (t *fakeTray) SetImage(icon string)     { t.icon = icon }
func (t *fakeTray) SetPressedImage(i string) { t.pressed = i }
func (t *fakeTray) SetToolTip(tip string)    { t.tooltip = tip }
func (t *fakeTray) OnClick(fn func())        { t.onClick = fn }
func (t *fakeTray) Destroy()                 { t.destroyed = true }

func (t *fakeTray) SetContextMenu(e []Entry) {
	t.menu = e
	t.menuUpdates++
}

type fakeHost struct {
	locale      string
	installed   [][]Entry
	trays       []*fakeTray
	badgeCounts []int
	dockShown   int
	loginItem   []bool
	loginErr    error
	opened      []string
	updates     int

	dialogs     []MessageBox
	dialogErr   error
	dialogPanic bool
	respond     int // -1 表示不回调
}

func (h *fakeHost) InstallMenu(entries []Entry) { h.installed = append(h.installed, entries) }

func (h *fakeHost) NewTray(icon string) Tray {
	t := &fakeTray{icon: icon}
	h.trays = append(h.trays, t)
	return t
}

func (h *fakeHost) SetBadgeCount(n int) { h.badgeCounts = append(h.badgeCounts, n) }
func (h *fakeHost) ShowDock()           { h.dockShown++ }

func (h *fakeHost) SetOpenAtLogin(enabled bool) error {
	h.loginItem = append(h.loginItem, enabled)
	return h.loginErr
}

func (h *fakeHost) ShowMessageBox(box MessageBox, onResponse func(int)) error {
	h.dialogs = append(h.dialogs, box)
	if h.dialogPanic {
		panic("no window to attach dialog to")
	}
	if h.dialogErr != nil {
		return h.dialogErr
	}
	if h.respond >= 0 {
		onResponse(h.respond)
	}
	return nil
}

func (h *fakeHost) OpenExternal(url string) { h.opened = append(h.opened, url) }
func (h *fakeHost) CheckForUpdates()        { h.updates++ }
func (h *fakeHost) Locale() string          { return h.locale }
func (h *fakeHost) AppName() string         { return "Pulse SMS" }
func (h *fakeHost) Version() string         { return "v3.0.0" }

func (h *fakeHost) lastMenu(t *testing.T) []Entry {
	t.Helper()
	if len(h.installed) == 0 {
		t.Fatal("没有安装任何菜单")
	}
	return h.installed[len(h.installed)-1]
}

type shutdownCall struct {
	conn     Connection
	relaunch bool
}

type fakeLifecycle struct {
	calls []shutdownCall
}

func (l *fakeLifecycle) RequestShutdown(conn Connection, relaunch bool) {
	l.calls = append(l.calls, shutdownCall{conn: conn, relaunch: relaunch})
}

type fakeConn struct{ closed int }

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

var errDialog = errors.New("dialog unavailable")

type harness struct {
	ctrl      *Controller
	prefs     *prefs.Store
	host      *fakeHost
	windows   *fakeWindows
	lifecycle *fakeLifecycle
	conn      *fakeConn
}

func newHarness(t *testing.T, goos string) *harness {
	t.Helper()
	store, err := prefs.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("打开偏好设置失败: %v", err)
	}
	h := &harness{
		prefs:     store,
		host:      &fakeHost{locale: "en-US", respond: -1},
		windows:   &fakeWindows{main: &fakeWindow{}, browser: &fakeBrowser{}},
		lifecycle: &fakeLifecycle{},
		conn:      &fakeConn{},
	}
	h.ctrl = NewController(Options{
		Profile:   ProfileFor(goos),
		Prefs:     store,
		Host:      h.host,
		Lifecycle: h.lifecycle,
		WebURL:    "https://pulsesms.app",
	})
	return h
}

func (h *harness) build() {
	h.ctrl.BuildMenu(h.windows, h.ctrl.BuildTray(h.windows, h.conn), h.conn)
}

func click(t *testing.T, entries []Entry, path ...string) {
	t.Helper()
	switch e := Find(entries, path...).(type) {
	case Checkbox:
		e.OnClick()
	case Action:
		if e.OnClick == nil {
			t.Fatalf("%v 没有点击处理", path)
		}
		e.OnClick()
	case nil:
		t.Fatalf("找不到菜单项 %v", path)
	default:
		t.Fatalf("%v 不可点击: %T", path, e)
	}
}

func checked(t *testing.T, entries []Entry, path ...string) bool {
	t.Helper()
	cb, ok := Find(entries, path...).(Checkbox)
	if !ok {
		t.Fatalf("%v 不是复选框", path)
	}
	return cb.Checked
}
