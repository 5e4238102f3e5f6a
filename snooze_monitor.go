package main

import (
	"context"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"pulse/prefs"
)

// snoozeCheckInterval 免打扰到期检查间隔
const snoozeCheckInterval = 30 * time.Second

// SnoozeMonitor 免打扰到期后清除状态并刷新菜单
type SnoozeMonitor struct {
	store     *prefs.Store
	onExpired func()
}

// NewSnoozeMonitor 创建免打扰监控
func NewSnoozeMonitor(store *prefs.Store, onExpired func()) *SnoozeMonitor {
	return &SnoozeMonitor{store: store, onExpired: onExpired}
}

// Check 检查一次,到期时返回 true
func (s *SnoozeMonitor) Check(now time.Time) bool {
	if !s.store.IsSnoozeActive() {
		return false
	}
	until := s.store.SnoozeUntil()
	cleared, err := s.store.ClearExpiredSnooze(now)
	if err != nil {
		MLog.Error("保存免打扰状态失败", "error", err)
	}
	if cleared {
		MLog.Info("免打扰结束,刷新菜单", "until", until.Format(time.RFC3339))
	}
	return cleared
}

// StartMonitor 启动后台监控,ctx 结束时停止
func (s *SnoozeMonitor) StartMonitor(ctx context.Context) {
	MLog.Info("启动免打扰监控", "interval", snoozeCheckInterval)

	// 启动时可能已经过期
	if s.Check(time.Now()) {
		application.InvokeAsync(s.onExpired)
	}

	ticker := time.NewTicker(snoozeCheckInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if s.Check(now) {
					application.InvokeAsync(s.onExpired)
				}
			}
		}
	}()
}
