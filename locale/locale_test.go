package locale

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"en_US.UTF-8", "en-US", true},
		{"en_GB", "en-GB", true},
		{"de_DE@euro", "de-DE", true},
		{"fr", "fr", true},
		{"zh-Hans-CN", "zh-Hans-CN", true},
		{"C", "", false},
		{"POSIX", "", false},
		{"", "", false},
		{"not a locale!", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Normalize(%q) = (%q, %v), 期望 (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHasEnglish(t *testing.T) {
	tests := map[string]bool{
		"en-US": true,
		"en":    true,
		"de-DE": false,
		"fr-CA": false,
		"":      false,
	}
	for loc, want := range tests {
		if got := HasEnglish(loc); got != want {
			t.Errorf("HasEnglish(%q) = %v, 期望 %v", loc, got, want)
		}
	}
}

func TestDetectFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	got := Detect()
	// macOS/Windows 上系统设置可能排在后面,环境变量总是优先
	if got != "de-DE" {
		t.Errorf("Detect() = %q, 期望 de-DE", got)
	}
}

func TestDetectFallback(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	if got := Detect(); got == "" {
		t.Error("Detect() 不应返回空字符串")
	}
}
