package main

import (
	"testing"
	"time"

	"pulse/prefs"
)

func TestSnoozeMonitorCheck(t *testing.T) {
	store, err := prefs.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("打开偏好设置失败: %v", err)
	}
	m := NewSnoozeMonitor(store, nil)

	if m.Check(time.Now()) {
		t.Fatal("未开启免打扰时不应报告到期")
	}

	if err := store.Snooze(prefs.Snooze30Mins); err != nil {
		t.Fatal(err)
	}
	if m.Check(time.Now()) {
		t.Fatal("免打扰未到期")
	}
	if !store.IsSnoozeActive() {
		t.Fatal("未到期时不应清除免打扰")
	}

	if !m.Check(store.SnoozeUntil().Add(time.Second)) {
		t.Fatal("超过结束时间后应报告到期")
	}
	if store.IsSnoozeActive() || !store.SnoozeUntil().IsZero() {
		t.Error("到期后应清除免打扰状态")
	}
}
