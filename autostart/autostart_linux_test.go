//go:build !windows && !darwin

package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLinuxAutoStart(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	a := &AutoStart{appName: "com.klinkerapps.pulsetest", appPath: "/opt/pulse/pulse"}

	if a.State() {
		t.Fatal("初始状态应为未启用")
	}

	if err := a.Set(true); err != nil {
		t.Fatalf("启用开机启动失败: %v", err)
	}
	if !a.State() {
		t.Error("启用后状态应为已启用")
	}

	data, err := os.ReadFile(filepath.Join(configDir, "autostart", "com.klinkerapps.pulsetest.desktop"))
	if err != nil {
		t.Fatalf("读取 .desktop 文件失败: %v", err)
	}
	if !strings.Contains(string(data), `Exec="/opt/pulse/pulse" --hidden`) {
		t.Errorf(".desktop 内容不正确:\n%s", data)
	}

	if err := a.Set(false); err != nil {
		t.Fatalf("禁用开机启动失败: %v", err)
	}
	if a.State() {
		t.Error("禁用后状态应为未启用")
	}

	// 重复禁用不报错
	if err := a.Set(false); err != nil {
		t.Errorf("重复禁用不应报错: %v", err)
	}
}

func TestLinuxAutoStartSync(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	path := filepath.Join(configDir, "autostart", "com.klinkerapps.pulsetest.desktop")

	a := &AutoStart{appName: "com.klinkerapps.pulsetest", appPath: "/opt/pulse/pulse"}

	changed, err := a.Sync(false)
	if err != nil || changed {
		t.Fatalf("未启用时同步为关闭应无修改, changed=%v err=%v", changed, err)
	}

	changed, err = a.Sync(true)
	if err != nil || !changed {
		t.Fatalf("首次启用应写入启动项, changed=%v err=%v", changed, err)
	}

	// 状态一致时不再重写文件
	if err := os.WriteFile(path, []byte("marker\nExec=\"/opt/pulse/pulse\" --hidden\n"), 0644); err != nil {
		t.Fatal(err)
	}
	changed, err = a.Sync(true)
	if err != nil || changed {
		t.Fatalf("已启用时再次同步应无修改, changed=%v err=%v", changed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "marker") {
		t.Error("状态一致时不应重写启动项")
	}

	changed, err = a.Sync(false)
	if err != nil || !changed {
		t.Fatalf("关闭时应删除启动项, changed=%v err=%v", changed, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("关闭后启动项文件应被删除")
	}
}

func TestLinuxAutoStartStalePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	old := &AutoStart{appName: "com.klinkerapps.pulsetest", appPath: "/old/pulse"}
	if err := old.Set(true); err != nil {
		t.Fatalf("启用开机启动失败: %v", err)
	}

	moved := &AutoStart{appName: "com.klinkerapps.pulsetest", appPath: "/new/pulse"}
	if moved.State() {
		t.Error("启动项指向旧路径时应视为未启用")
	}
	if err := moved.Set(true); err != nil {
		t.Fatalf("重新启用失败: %v", err)
	}
	if !moved.State() {
		t.Error("重新启用后应指向新路径")
	}
}
