package main

import (
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestShellCommandLineQuoting(t *testing.T) {
	got := shellCommandLine("/opt/Pulse SMS/pulse", []string{"--config", "/home/me/my config.yaml", "it's", "$(rm -rf ~)"})
	want := `'/opt/Pulse SMS/pulse' '--config' '/home/me/my config.yaml' 'it'\''s' '$(rm -rf ~)'`
	if got != want {
		t.Errorf("命令行期望\n%s\n实际\n%s", want, got)
	}
}

// 引号后的参数经过 sh 解析后应与原始参数完全一致
func TestShellCommandLineRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("需要 sh")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("找不到 sh")
	}

	args := []string{"--config", "/tmp/a b.yaml", "it's", "$HOME", "`id`", "a;b"}
	script := shellCommandLine("printf", append([]string{"%s\\n"}, args...))
	out, err := exec.Command(sh, "-c", script).Output()
	if err != nil {
		t.Fatalf("执行失败: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if len(got) != len(args) {
		t.Fatalf("参数个数期望 %d, 实际 %d: %q", len(args), len(got), got)
	}
	for i := range args {
		if got[i] != args[i] {
			t.Errorf("第 %d 个参数期望 %q, 实际 %q", i, args[i], got[i])
		}
	}
}

func TestWindowsRestartArgs(t *testing.T) {
	got := windowsRestartArgs(`C:\Program Files\Pulse\pulse.exe`, []string{"--config", `C:\Users\me\my config.yaml`})
	want := []string{"/C", "timeout", "/t", "1", "/nobreak", ">", "nul", "&&",
		`C:\Program Files\Pulse\pulse.exe`, "--config", `C:\Users\me\my config.yaml`}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("参数期望 %q, 实际 %q", want, got)
	}
}
