//go:build windows

package autostart

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// runKeyPath 当前用户的登录启动项
const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

func openRunKey(access uint32) (registry.Key, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, access)
	if err != nil {
		return 0, fmt.Errorf("打开注册表启动项失败: %w", err)
	}
	return key, nil
}

// commandLine 路径带引号以处理空格,登录启动时只保留托盘
func (a *AutoStart) commandLine() (string, error) {
	execPath, err := filepath.Abs(a.appPath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%s" --hidden`, execPath), nil
}

// isEnabled 启动项存在且指向当前可执行文件时才算启用
func (a *AutoStart) isEnabled() (bool, error) {
	key, err := openRunKey(registry.QUERY_VALUE)
	if err != nil {
		return false, err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(a.appName)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	want, err := a.commandLine()
	if err != nil {
		return false, err
	}
	return value == want, nil
}

// enable 写入或覆盖启动项,应用移动位置后也能修正
func (a *AutoStart) enable() error {
	cmdLine, err := a.commandLine()
	if err != nil {
		return err
	}

	key, err := openRunKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetStringValue(a.appName, cmdLine)
}

// disable 删除启动项,不存在时不报错
func (a *AutoStart) disable() error {
	key, err := openRunKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	if err := key.DeleteValue(a.appName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}
	return nil
}
