package update

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"pulse/config"
)

// EnvGitHubToken 提高 GitHub API 速率限制用的 token
const EnvGitHubToken = "GITHUB_TOKEN"

// tokenFileName 应用数据目录下保存 token 的文件
const tokenFileName = "github_token"

// UpdateInfo 更新信息
type UpdateInfo struct {
	Current      string
	Latest       string
	URL          string
	HasUpdate    bool
	ReleaseNotes string
}

// Updater 从 GitHub Releases 检查并应用更新
type Updater struct {
	logger  *slog.Logger
	version string
	slug    string
}

// New 创建更新器
// slug: GitHub 仓库,例如 "klinker-apps/messenger-desktop"
func New(logger *slog.Logger, version, slug string) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		logger:  logger,
		version: version,
		slug:    slug,
	}
}

// IsDevVersion 开发版本(dev、dev1 或空)总是认为有更新
func IsDevVersion(version string) bool {
	return version == "" || strings.HasPrefix(strings.ToLower(version), "dev")
}

// HasUpdate 比较版本号,当前版本无法解析时按开发版本处理
func HasUpdate(current string, latest semver.Version) (bool, error) {
	if IsDevVersion(current) {
		return true, nil
	}
	v, err := semver.ParseTolerant(current)
	if err != nil {
		return true, fmt.Errorf("无法解析当前版本 %q: %w", current, err)
	}
	return latest.GT(v), nil
}

// githubToken 优先读取应用数据目录下的文件,其次是环境变量
func githubToken() string {
	if dir, err := config.GetAppDataDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(dir, tokenFileName)); err == nil {
			if token := strings.TrimSpace(string(data)); token != "" {
				return token
			}
		}
	}
	return os.Getenv(EnvGitHubToken)
}

func (u *Updater) selfUpdater() *selfupdate.Updater {
	token := githubToken()
	updater, err := selfupdate.NewUpdater(selfupdate.Config{APIToken: token})
	if err != nil {
		u.logger.Warn("创建认证 Updater 失败,使用默认配置", "error", err)
		return selfupdate.DefaultUpdater()
	}
	if token == "" {
		u.logger.Debug("未找到 GitHub token,使用匿名访问", "速率限制", "60 req/hour")
	}
	return updater
}

func (u *Updater) detect(ctx context.Context) (*selfupdate.Release, *selfupdate.Updater, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	updater := u.selfUpdater()
	latest, found, err := updater.DetectLatest(u.slug)
	if err != nil {
		return nil, nil, fmt.Errorf("检测更新失败: %w", err)
	}
	if !found {
		return nil, nil, fmt.Errorf("未找到任何版本发布")
	}
	return latest, updater, nil
}

// CheckForUpdates 检查是否有新版本
func (u *Updater) CheckForUpdates(ctx context.Context) (*UpdateInfo, error) {
	u.logger.Info("检查更新中...", "当前版本", u.GetCurrentVersion(), "平台", u.GetPlatformInfo(), "仓库", u.slug)

	latest, _, err := u.detect(ctx)
	if err != nil {
		return nil, err
	}

	hasUpdate, err := HasUpdate(u.version, latest.Version)
	if err != nil {
		u.logger.Warn("当前版本无法解析,按开发版本处理", "error", err)
	}
	if hasUpdate {
		u.logger.Info("发现新版本", "最新版本", latest.Version.String())
	} else {
		u.logger.Info("当前已是最新版本")
	}

	return &UpdateInfo{
		Current:      u.GetCurrentVersion(),
		Latest:       latest.Version.String(),
		URL:          latest.AssetURL,
		HasUpdate:    hasUpdate,
		ReleaseNotes: latest.ReleaseNotes,
	}, nil
}

// ApplyUpdate 下载并替换当前可执行文件,完成后需要重启应用
func (u *Updater) ApplyUpdate(ctx context.Context) error {
	latest, updater, err := u.detect(ctx)
	if err != nil {
		return err
	}
	if ok, _ := HasUpdate(u.version, latest.Version); !ok {
		return fmt.Errorf("当前已是最新版本")
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("获取可执行文件路径失败: %w", err)
	}

	u.logger.Info("正在下载更新包...",
		"从", u.version,
		"到", latest.Version.String(),
		"文件大小", FormatBytes(int64(latest.AssetByteSize)))

	done := make(chan error, 1)
	go func() {
		done <- updater.UpdateTo(latest, exe)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("下载更新失败: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("下载更新超时: %w", ctx.Err())
	}

	u.logger.Info("更新成功,重启后生效")
	return nil
}

// GetCurrentVersion 获取当前版本
func (u *Updater) GetCurrentVersion() string {
	if IsDevVersion(u.version) {
		return "dev"
	}
	return u.version
}

// GetPlatformInfo 获取平台信息
func (u *Updater) GetPlatformInfo() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// FormatBytes 格式化字节数
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
