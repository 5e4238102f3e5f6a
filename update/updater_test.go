package update

import (
	"testing"

	"github.com/blang/semver"
)

func TestGetVersion(t *testing.T) {
	tests := map[string]string{
		"v3.1.0": "v3.1.0",
		"dev":    "dev",
		"dev2":   "dev",
		"":       "dev",
	}
	for version, want := range tests {
		u := New(nil, version, "klinker-apps/messenger-desktop")
		if got := u.GetCurrentVersion(); got != want {
			t.Errorf("GetCurrentVersion(%q) = %s, 期望 %s", version, got, want)
		}
	}
}

func TestHasUpdate(t *testing.T) {
	latest := semver.MustParse("3.2.0")
	tests := []struct {
		current string
		want    bool
		wantErr bool
	}{
		{"v3.1.9", true, false},
		{"3.2.0", false, false},
		{"v3.3.0", false, false},
		{"dev", true, false},
		{"not-a-version", true, true},
	}
	for _, tt := range tests {
		got, err := HasUpdate(tt.current, latest)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("HasUpdate(%q) = (%v, %v), 期望 (%v, err=%v)", tt.current, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:             "512 B",
		2048:            "2.0 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %s, 期望 %s", in, got, want)
		}
	}
}

func TestGetPlatformInfo(t *testing.T) {
	u := New(nil, "v1.0.0", "klinker-apps/messenger-desktop")
	if u.GetPlatformInfo() == "" {
		t.Error("平台信息不应为空")
	}
}
