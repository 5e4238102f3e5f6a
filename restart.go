package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// RestartApplication 调度 1 秒后启动新进程,调用方随后应立即退出当前进程
func RestartApplication() error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("获取可执行文件路径失败: %w", err)
	}

	// 获取当前工作目录
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	switch runtime.GOOS {
	case "darwin":
		return restartMacOS(execPath, wd)
	case "windows":
		return restartWindows(execPath, wd)
	default:
		return restartUnix(execPath, wd)
	}
}

// restartMacOS .app 包使用 open 命令重新打开
func restartMacOS(execPath, workDir string) error {
	if i := strings.Index(execPath, ".app/Contents/MacOS/"); i >= 0 {
		appPath := execPath[:i+4]
		cmd := exec.Command("sh", "-c", "sleep 1 && open "+shellQuote(appPath))
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("启动 .app 失败: %w", err)
		}
		MLog.Info("已调度延迟启动 .app (1秒后)")
		return nil
	}
	return restartUnix(execPath, workDir)
}

// restartUnix 使用 shell 延迟启动,给旧进程时间释放单实例锁
func restartUnix(execPath, workDir string) error {
	script := "sleep 1 && " + shellCommandLine(execPath, os.Args[1:])
	cmd := exec.Command("sh", "-c", script)
	cmd.Dir = workDir

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("启动新进程失败: %w", err)
	}

	MLog.Info("已调度延迟启动新进程 (1秒后)")
	return nil
}

// restartWindows timeout /t 1 等待 1 秒后启动
func restartWindows(execPath, workDir string) error {
	cmd := exec.Command("cmd", windowsRestartArgs(execPath, os.Args[1:])...)
	cmd.Dir = workDir

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("启动新进程失败: %w", err)
	}

	MLog.Info("已调度延迟启动新进程 (1秒后)")
	return nil
}

// shellQuote 单引号包裹,内部的单引号写成 '\''
func shellQuote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func shellCommandLine(execPath string, args []string) string {
	parts := []string{shellQuote(execPath)}
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// windowsRestartArgs 每个参数单独传给 cmd,由 Go 按 Windows 规则转义
func windowsRestartArgs(execPath string, args []string) []string {
	out := []string{"/C", "timeout", "/t", "1", "/nobreak", ">", "nul", "&&", execPath}
	return append(out, args...)
}
