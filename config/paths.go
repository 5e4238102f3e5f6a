package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName 应用数据目录名
const AppDirName = "pulse"

// EnvAppDataDir 覆盖应用数据目录,测试与便携模式使用
const EnvAppDataDir = "PULSE_HOME"

// GetAppDataDir 获取应用数据目录
// macOS: /Users/<user>/.config/pulse
// Windows: C:\Users\<user>\AppData\Roaming\pulse
// Linux: $XDG_CONFIG_HOME/pulse 或 ~/.config/pulse
func GetAppDataDir() (string, error) {
	appDir := os.Getenv(EnvAppDataDir)
	if appDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		switch runtime.GOOS {
		case "windows":
			if appData := os.Getenv("APPDATA"); appData != "" {
				appDir = filepath.Join(appData, AppDirName)
			} else {
				appDir = filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
			}
		case "darwin":
			appDir = filepath.Join(homeDir, ".config", AppDirName)
		default:
			configDir := os.Getenv("XDG_CONFIG_HOME")
			if configDir == "" {
				configDir = filepath.Join(homeDir, ".config")
			}
			appDir = filepath.Join(configDir, AppDirName)
		}
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return appDir, nil
}

func subDir(name string) (string, error) {
	appDir, err := GetAppDataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(appDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetLogsDir 日志目录
func GetLogsDir() (string, error) {
	return subDir("logs")
}

// GetConfigPath 获取配置文件路径(文件可以不存在)
func GetConfigPath() (string, error) {
	appDir, err := GetAppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "config.yaml"), nil
}

// InitAppDirs 初始化应用目录
func InitAppDirs() error {
	if _, err := GetAppDataDir(); err != nil {
		return err
	}
	_, err := GetLogsDir()
	return err
}
