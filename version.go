package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// 版本信息变量 - 通过构建时 ldflags 注入
var (
	// Version 应用版本号 (例如: v3.1.0 或 git describe 输出)
	Version = "dev"

	// BuildTime 构建时间 (ISO 8601 格式: 2025-01-16T10:30:00Z)
	BuildTime = "unknown"

	// GitCommit Git 提交哈希 (短格式, 例如: abc1234)
	GitCommit = "unknown"

	// GoVersion Go 编译器版本 (运行时自动获取)
	GoVersion = runtime.Version()

	// Platform 目标平台 (例如: darwin/arm64, windows/amd64)
	Platform = runtime.GOOS + "/" + runtime.GOARCH
)

// wailsModule 用于从构建信息中读取 wails 版本
const wailsModule = "github.com/wailsapp/wails/v3"

// GetWailsVersion 获取编译时依赖的 wails 版本
func GetWailsVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == wailsModule {
			return dep.Version
		}
	}
	return "unknown"
}

// GetVersion 返回简短版本信息
func GetVersion() string {
	return Version
}

// GetVersionInfo 返回完整的版本信息字符串
func GetVersionInfo() string {
	return fmt.Sprintf(
		"版本: %s\n构建时间: %s\n提交: %s\nGo 版本: %s\n平台: %s\nWails: %s",
		Version,
		BuildTime,
		GitCommit,
		GoVersion,
		Platform,
		GetWailsVersion(),
	)
}
