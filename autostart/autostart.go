package autostart

import (
	"os"

	"pulse/env"
)

// AutoStart 开机启动管理器
type AutoStart struct {
	appName string
	appPath string
}

// New 创建开机启动管理器
func New() *AutoStart {
	execPath, _ := os.Executable()
	appName := "com.klinkerapps.pulse"
	if !env.IsProduction() {
		appName = "com.klinkerapps.pulsedev"
	}
	return &AutoStart{
		appName: appName,
		appPath: execPath,
	}
}

// Set 按偏好设置启用或禁用
func (a *AutoStart) Set(enabled bool) error {
	if enabled {
		return a.enable()
	}
	return a.disable()
}

// State 读取失败时视为未启用
func (a *AutoStart) State() bool {
	enabled, err := a.isEnabled()
	if err != nil {
		return false
	}
	return enabled
}

// Sync 只有当前状态与期望不一致时才写入,返回是否发生了修改
func (a *AutoStart) Sync(enabled bool) (bool, error) {
	if a.State() == enabled {
		return false, nil
	}
	if err := a.Set(enabled); err != nil {
		return false, err
	}
	return true, nil
}
