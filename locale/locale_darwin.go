//go:build darwin

package locale

import (
	"os/exec"
	"strings"
)

// candidates 从终端启动时环境变量优先,双击启动的 .app 通常没有 LANG
func candidates() []string {
	out := envCandidates()
	data, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err == nil {
		out = append(out, strings.TrimSpace(string(data)))
	}
	return out
}
