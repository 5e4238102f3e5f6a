package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"github.com/wailsapp/wails/v3/pkg/services/dock"

	"pulse/autostart"
	appConfig "pulse/config"
	"pulse/env"
	"pulse/lifecycle"
	"pulse/menu"
	"pulse/prefs"
	"pulse/socket"
	"pulse/update"
)

var app *application.App

// runOptions 命令行参数
type runOptions struct {
	configPath string
	dev        bool
	hidden     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:          "pulse",
		Short:        "Pulse SMS desktop client",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "配置文件路径,默认为应用数据目录下的 config.yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "开发模式: 日志只输出到控制台")
	rootCmd.Flags().BoolVar(&opts.hidden, "hidden", false, "启动时不显示主窗口(开机启动使用)")

	rootCmd.AddCommand(versionCmd(), openCmd(&opts))
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), GetVersionInfo())
		},
	}
}

// openCmd 用系统默认程序打开偏好设置、配置文件或日志目录
func openCmd(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "open [prefs|config|logs]",
		Short:     "打开偏好设置文件、配置文件或日志目录",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"prefs", "config", "logs"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			switch args[0] {
			case "prefs":
				var dir string
				if dir, err = appConfig.GetAppDataDir(); err == nil {
					var store *prefs.Store
					if store, err = prefs.Open(dir, MLog); err == nil {
						path = store.Path()
					}
				}
			case "config":
				path = opts.configPath
				if path == "" {
					path, err = appConfig.GetConfigPath()
				}
			case "logs":
				path, err = appConfig.GetLogsDir()
			default:
				return fmt.Errorf("未知的目标 %q, 可选 prefs/config/logs", args[0])
			}
			if err != nil {
				return err
			}
			return NewEditorOpener().Open(path)
		},
	}
}

func run(opts runOptions) error {
	if opts.dev {
		env.SetDevMode(true)
	}

	// === 第一阶段: 基础初始化 ===
	if err := appConfig.InitAppDirs(); err != nil {
		return fmt.Errorf("初始化应用目录失败: %w", err)
	}

	cfg, err := appConfig.Load(opts.configPath)
	if err != nil {
		return err
	}

	if err := InitLogger(!env.IsProduction(), cfg.Log.Level); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}
	defer CloseLogger()
	ConfigureSocketLogger(cfg.Log.Level)

	MLog.Info("========== 应用启动 ==========", "version", GetVersion(), "platform", Platform)

	appDataDir, err := appConfig.GetAppDataDir()
	if err != nil {
		return fmt.Errorf("获取应用数据目录失败: %w", err)
	}
	store, err := prefs.Open(appDataDir, MLog.With("component", "prefs"))
	if err != nil {
		return fmt.Errorf("打开偏好设置失败: %w", err)
	}
	profile := menu.ProfileFor(runtime.GOOS)

	// === 第二阶段: 创建应用实例 ===
	dockService := dock.New()
	app = application.New(application.Options{
		Name:        appName,
		Description: "Pulse SMS desktop client",
		Icon:        Icon,
		Services: []application.Service{
			application.NewService(dockService),
		},
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: true,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 服务端连接,未配置时为 nil
	var conn menu.Connection
	var stream *socket.Connection
	if cfg.Socket.URL != "" {
		stream = socket.New(cfg.Socket.URL, nil, func(message []byte) {
			MLog.Debug("收到服务端消息", "bytes", len(message))
		})
		conn = stream
	}

	owner := lifecycle.New(MLog.With("component", "lifecycle"), func(code int) {
		CloseLogger()
		os.Exit(code)
	}, RestartApplication)
	owner.OnShutdown(cancel)
	owner.OnShutdown(func() {
		if stream == nil {
			return
		}
		// 等待后台循环退出,避免进程结束时连接还在写
		select {
		case <-stream.Done():
		case <-time.After(2 * time.Second):
			MLog.Warn("等待服务端连接退出超时", "connected", stream.Connected())
		}
	})

	updater := update.New(MLog.With("component", "update"), GetVersion(), cfg.Update.Slug())
	host := &wailsHost{
		dock:      dockService,
		autoStart: autostart.New(),
		checkForUpdates: func() {
			checkAndUpdateOrNotify(updater, func() {
				owner.RequestShutdown(conn, true)
			})
		},
	}

	controller := menu.NewController(menu.Options{
		Profile:   profile,
		Prefs:     store,
		Host:      host,
		Lifecycle: owner,
		Logger:    MLog.With("component", "menu"),
		WebURL:    cfg.Web.URL,
	})

	windows := &windowManager{
		mainURL:  cfg.Web.URL,
		popupURL: cfg.Web.PopupURL,
		prefs:    store,
		dock:     dockService,
		profile:  profile,
		onQuit: func() {
			owner.RequestShutdown(conn, false)
		},
	}

	// 登录项与偏好设置保持一致,状态相同时不重写
	if profile.OpenAtLogin {
		if err := host.SetOpenAtLogin(store.Bool(prefs.OpenAtLogin)); err != nil {
			MLog.Warn("同步开机启动状态失败", "error", err)
		}
	}

	tray := controller.BuildTray(windows, conn)
	controller.BuildMenu(windows, tray, conn)
	MLog.Info("菜单已安装", "platform", profile.Platform, "tray", tray != nil)

	// 偏好设置文件被外部修改后重建菜单
	store.OnChange(func() {
		application.InvokeAsync(controller.Refresh)
	})

	// === 第三阶段: 应用启动后的后台任务 ===
	app.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		// 隐藏启动且没有托盘时仍然显示窗口,否则用户无法打开应用
		if !opts.hidden || controller.Tray() == nil {
			windows.CreateMainWindow()
		} else if profile.ShowDockOnShow {
			dockService.HideAppIcon()
		}

		go func() {
			if err := store.Watch(ctx); err != nil {
				MLog.Warn("监听偏好设置文件失败", "error", err)
			}
		}()

		if stream != nil {
			if err := stream.Start(ctx); err != nil {
				MLog.Error("启动服务端连接失败", "error", err)
			}
		}

		NewSnoozeMonitor(store, controller.Refresh).StartMonitor(ctx)
		startBackgroundUpdateChecker(ctx, updater)
	})

	SetupSignalHandler(func() {
		owner.RequestShutdown(conn, false)
	})

	done := make(chan struct{})
	go func() {
		owner.Run(context.Background())
		close(done)
	}()

	MLog.Info("应用主循环启动")
	if err := app.Run(); err != nil {
		MLog.Error("应用运行失败", "error", err)
	}

	// 主循环被系统结束时同样按顺序关闭连接
	owner.RequestShutdown(conn, false)
	<-done
	return nil
}
