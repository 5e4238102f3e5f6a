//go:build !windows && !darwin

package locale

func candidates() []string {
	return envCandidates()
}
