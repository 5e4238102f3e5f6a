//go:build darwin

package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// launchAgentPath macOS LaunchAgent plist 文件路径
func (a *AutoStart) launchAgentPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	launchAgentsDir := filepath.Join(homeDir, "Library", "LaunchAgents")
	if err := os.MkdirAll(launchAgentsDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(launchAgentsDir, a.appName+".plist"), nil
}

// plistContent 登录时启动,带 --hidden 只保留托盘
func (a *AutoStart) plistContent() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>
        <string>--hidden</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>ProcessType</key>
    <string>Interactive</string>
</dict>
</plist>`, a.appName, a.appPath)
}

// isEnabled plist 存在且指向当前可执行文件时才算启用
func (a *AutoStart) isEnabled() (bool, error) {
	plistPath, err := a.launchAgentPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(plistPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), "<string>"+a.appPath+"</string>"), nil
}

// enable 写入或覆盖 plist
func (a *AutoStart) enable() error {
	plistPath, err := a.launchAgentPath()
	if err != nil {
		return err
	}
	return os.WriteFile(plistPath, []byte(a.plistContent()), 0644)
}

// disable 删除 plist,不存在时不报错
func (a *AutoStart) disable() error {
	plistPath, err := a.launchAgentPath()
	if err != nil {
		return err
	}
	if err := os.Remove(plistPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
