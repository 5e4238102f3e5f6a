//go:build windows

package locale

import (
	"golang.org/x/sys/windows"
)

func candidates() []string {
	out := envCandidates()
	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err == nil {
		out = append(out, langs...)
	}
	return out
}
