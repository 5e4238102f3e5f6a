//go:build !windows && !darwin

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// desktopEntryPath XDG autostart 目录下的 .desktop 文件
func (a *AutoStart) desktopEntryPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "autostart", a.appName+".desktop"), nil
}

func (a *AutoStart) desktopEntry() string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Pulse SMS
Exec="%s" --hidden
Terminal=false
X-GNOME-Autostart-enabled=true
`, a.appPath)
}

// isEnabled .desktop 文件存在且指向当前可执行文件时才算启用
func (a *AutoStart) isEnabled() (bool, error) {
	path, err := a.desktopEntryPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), fmt.Sprintf(`Exec="%s"`, a.appPath)), nil
}

// enable 写入 .desktop 文件
func (a *AutoStart) enable() error {
	path, err := a.desktopEntryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(a.desktopEntry()), 0644)
}

// disable 删除 .desktop 文件
func (a *AutoStart) disable() error {
	path, err := a.desktopEntryPath()
	if err != nil {
		return err
	}

	// 忽略文件不存在的错误
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
