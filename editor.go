package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// EditorOpener 用系统默认程序打开偏好设置、配置文件或日志目录
type EditorOpener struct {
	// lookPath 与 start 便于替换
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// NewEditorOpener 创建编辑器打开器
func NewEditorOpener() *EditorOpener {
	return &EditorOpener{
		lookPath: exec.LookPath,
		start:    (*exec.Cmd).Start,
	}
}

// Open 先用系统默认方式打开,失败后退回文本编辑器
func (e *EditorOpener) Open(path string) error {
	MLog.Info("使用系统默认方式打开", "path", path)
	if err := e.start(e.systemDefault(path)); err == nil {
		return nil
	} else {
		MLog.Warn("系统默认方式打开失败,尝试文本编辑器", "error", err)
	}
	return e.openWithTextEditor(path)
}

// systemDefault 根据平台选择打开命令
func (e *EditorOpener) systemDefault(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("explorer.exe", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// openWithTextEditor 兜底方案
func (e *EditorOpener) openWithTextEditor(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-e", path)
	case "windows":
		cmd = exec.Command("notepad.exe", path)
	default:
		for _, editor := range []string{"gedit", "kate", "nano", "vim", "vi"} {
			if _, err := e.lookPath(editor); err == nil {
				cmd = exec.Command(editor, path)
				break
			}
		}
	}

	if cmd == nil {
		return fmt.Errorf("未找到可用的文本编辑器")
	}
	if err := e.start(cmd); err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	return nil
}
