// Package lifecycle 负责应用的有序退出
package lifecycle

import (
	"context"
	"io"
	"log/slog"
)

// Request 一次退出请求
type Request struct {
	Conn     io.Closer
	Relaunch bool
}

// Owner 应用生命周期的拥有者
// UI 只发出退出请求;Owner 先关闭连接,必要时调度重新启动,最后退出进程
type Owner struct {
	logger   *slog.Logger
	requests chan Request
	exit     func(code int)
	relaunch func() error
	cleanup  []func()
}

// New 创建生命周期拥有者
// exit 结束进程(生产环境为 os.Exit),relaunch 调度新进程启动,可以为 nil
func New(logger *slog.Logger, exit func(code int), relaunch func() error) *Owner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Owner{
		logger:   logger,
		requests: make(chan Request, 1),
		exit:     exit,
		relaunch: relaunch,
	}
}

// OnShutdown 注册在连接关闭之后、进程退出之前执行的清理函数
// 必须在 Run 之前调用
func (o *Owner) OnShutdown(fn func()) {
	o.cleanup = append(o.cleanup, fn)
}

// RequestShutdown 请求退出,不会阻塞
// 只有第一次请求生效,之后的请求被忽略
func (o *Owner) RequestShutdown(conn io.Closer, relaunch bool) {
	select {
	case o.requests <- Request{Conn: conn, Relaunch: relaunch}:
		o.logger.Info("收到退出请求", "relaunch", relaunch)
	default:
		o.logger.Debug("已有退出请求在处理中,忽略重复请求")
	}
}

// Run 等待第一次退出请求并执行退出流程
// ctx 结束时不做任何清理直接返回
func (o *Owner) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case req := <-o.requests:
		o.shutdown(req)
	}
}

func (o *Owner) shutdown(req Request) {
	if req.Conn != nil {
		o.logger.Info("正在关闭服务端连接...")
		if err := req.Conn.Close(); err != nil {
			o.logger.Warn("关闭服务端连接失败", "error", err)
		}
	}

	if req.Relaunch && o.relaunch != nil {
		if err := o.relaunch(); err != nil {
			o.logger.Error("调度重启失败,请手动重新打开应用", "error", err)
		}
	}

	for _, fn := range o.cleanup {
		fn()
	}

	o.logger.Info("退出应用")
	o.exit(0)
}
