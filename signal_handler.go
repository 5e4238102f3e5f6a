package main

import (
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler 收到终止信号时走与菜单退出相同的流程
func SetupSignalHandler(requestShutdown func()) {
	sigChan := make(chan os.Signal, 1)

	// 监听常见的终止信号
	signal.Notify(sigChan,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // 系统kill
	)

	go func() {
		sig := <-sigChan
		MLog.Info("收到退出信号,开始清理资源", "signal", sig.String())
		requestShutdown()
	}()
}
