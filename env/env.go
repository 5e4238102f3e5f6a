package env

import (
	"os"
	"strings"
	"sync/atomic"
)

// EnvDevMode 设置为 1 时以开发模式运行
const EnvDevMode = "PULSE_DEV"

var devMode atomic.Bool

func init() {
	if v := strings.TrimSpace(os.Getenv(EnvDevMode)); v == "1" || strings.EqualFold(v, "true") {
		devMode.Store(true)
	}
}

// SetDevMode 由命令行 --dev 覆盖
func SetDevMode(dev bool) {
	devMode.Store(dev)
}

// IsProduction 是否为生产环境
func IsProduction() bool {
	return !devMode.Load()
}
