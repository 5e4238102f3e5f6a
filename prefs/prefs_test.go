package prefs

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("打开偏好设置失败: %v", err)
	}
	return s
}

func TestOpenWritesDefaults(t *testing.T) {
	s := openTestStore(t)

	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("默认偏好设置文件未写入: %v", err)
	}
	for key, want := range Defaults() {
		if got := s.Bool(key); got != want {
			t.Errorf("%s 默认值期望 %v, 实际 %v", key, want, got)
		}
	}
	if s.IsSnoozeActive() {
		t.Error("默认不应处于免打扰状态")
	}
}

// 翻转一个偏好设置只改变它自己
func TestToggleInvertsOnlyThatKey(t *testing.T) {
	for _, key := range Keys {
		t.Run(string(key), func(t *testing.T) {
			s := openTestStore(t)
			before := make(map[Key]bool)
			for _, k := range Keys {
				before[k] = s.Bool(k)
			}

			got, err := s.Toggle(key)
			if err != nil {
				t.Fatalf("切换失败: %v", err)
			}
			if got != !before[key] {
				t.Errorf("Toggle 返回 %v, 期望 %v", got, !before[key])
			}
			for _, k := range Keys {
				want := before[k]
				if k == key {
					want = !want
				}
				if s.Bool(k) != want {
					t.Errorf("%s 期望 %v, 实际 %v", k, want, s.Bool(k))
				}
			}
		})
	}
}

func TestTogglePersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Toggle(AutoHideMenuBar); err != nil {
		t.Fatal(err)
	}
	if err := s.Snooze(Snooze3Hours); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("重新打开失败: %v", err)
	}
	if !reopened.Bool(AutoHideMenuBar) {
		t.Error("auto_hide_menu_bar 未持久化")
	}
	if !reopened.IsSnoozeActive() || reopened.CurrentSnooze() != Snooze3Hours {
		t.Errorf("免打扰状态未持久化: active=%v selection=%s", reopened.IsSnoozeActive(), reopened.CurrentSnooze())
	}
}

func TestUnknownKey(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Toggle(Key("nope")); err == nil {
		t.Error("未知键应返回错误")
	}
	if err := s.Set(Key("nope"), true); err == nil {
		t.Error("未知键应返回错误")
	}
}

func TestSnoozeSelection(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	if err := s.Snooze(Snooze30Mins); err != nil {
		t.Fatal(err)
	}
	if !s.IsSnoozeActive() || s.CurrentSnooze() != Snooze30Mins {
		t.Fatalf("期望 30_mins 激活, 实际 active=%v selection=%s", s.IsSnoozeActive(), s.CurrentSnooze())
	}
	if want := base.Add(30 * time.Minute); !s.SnoozeUntil().Equal(want) {
		t.Errorf("结束时间期望 %v, 实际 %v", want, s.SnoozeUntil())
	}

	// 选择其他时长替换当前时长
	if err := s.Snooze(Snooze12Hours); err != nil {
		t.Fatal(err)
	}
	if !s.IsSnoozeActive() || s.CurrentSnooze() != Snooze12Hours {
		t.Fatalf("期望 12_hours 激活, 实际 %s", s.CurrentSnooze())
	}

	// 再次选择同一时长取消免打扰
	if err := s.Snooze(Snooze12Hours); err != nil {
		t.Fatal(err)
	}
	if s.IsSnoozeActive() {
		t.Error("再次选择同一时长应取消免打扰")
	}
	if !s.SnoozeUntil().IsZero() {
		t.Error("未激活时结束时间应为零值")
	}

	if err := s.Snooze(SnoozeSelection("2_days")); err == nil {
		t.Error("未知时长应返回错误")
	}
}

func TestClearExpiredSnooze(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	if err := s.Snooze(Snooze1Hour); err != nil {
		t.Fatal(err)
	}

	changed, err := s.ClearExpiredSnooze(base.Add(59 * time.Minute))
	if err != nil || changed {
		t.Fatalf("未到期不应清除: changed=%v err=%v", changed, err)
	}

	changed, err = s.ClearExpiredSnooze(base.Add(time.Hour))
	if err != nil || !changed {
		t.Fatalf("到期应清除: changed=%v err=%v", changed, err)
	}
	if s.IsSnoozeActive() {
		t.Error("到期后仍处于免打扰状态")
	}
}

func TestReloadIgnoresOwnWrites(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	s.OnChange(func() { calls++ })

	if _, err := s.Toggle(SenderPreviews); err != nil {
		t.Fatal(err)
	}
	changed, err := s.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if changed || calls != 0 {
		t.Errorf("自身写入不应触发重新加载: changed=%v calls=%d", changed, calls)
	}
}

func TestReloadExternalEdit(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	s.OnChange(func() { calls++ })

	content := "values:\n  minimize_to_tray: false\n  unknown_key: true\nsnooze:\n  active: false\n"
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := s.Reload()
	if err != nil {
		t.Fatalf("重新加载失败: %v", err)
	}
	if !changed || calls != 1 {
		t.Fatalf("外部修改应触发回调: changed=%v calls=%d", changed, calls)
	}
	if s.Bool(MinimizeToTray) {
		t.Error("minimize_to_tray 应被外部修改为 false")
	}
	// 文件里缺失的键回到默认值
	if !s.Bool(ShowNotifications) {
		t.Error("缺失的键应使用默认值")
	}
}

func TestReloadInvalidFile(t *testing.T) {
	s := openTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("values: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Reload(); err == nil {
		t.Error("无效文件应返回错误")
	}
	// 解析失败时保留原来的值
	if !s.Bool(ShowNotifications) {
		t.Error("解析失败不应修改已有的值")
	}
}

func TestWatchReloadsOnExternalEdit(t *testing.T) {
	s := openTestStore(t)
	changed := make(chan struct{}, 1)
	s.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Watch(ctx); err != nil {
		t.Fatalf("启动监听失败: %v", err)
	}

	content := strings.Join([]string{
		"values:",
		"  badge_dock_icon: false",
		"",
	}, "\n")
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("等待外部修改通知超时")
	}
	if s.Bool(BadgeDockIcon) {
		t.Error("badge_dock_icon 应被重新加载为 false")
	}
}
