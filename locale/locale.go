// Package locale 检测操作系统的界面语言
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Fallback 无法检测时使用的语言
const Fallback = "en-US"

// Detect 返回当前用户的界面语言(BCP 47,例如 "en-US")
func Detect() string {
	for _, raw := range candidates() {
		if tag, ok := Normalize(raw); ok {
			return tag
		}
	}
	return Fallback
}

// envCandidates POSIX 约定的语言环境变量,按优先级排列
func envCandidates() []string {
	var out []string
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Normalize 把 "en_US.UTF-8"、"zh-Hans-CN" 之类的写法规范成 BCP 47
// "C" 和 "POSIX" 不是真实语言,返回 false
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return "", false
	}
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}

// HasEnglish 语言字符串中是否包含 "en"
func HasEnglish(locale string) bool {
	return strings.Contains(locale, "en")
}
