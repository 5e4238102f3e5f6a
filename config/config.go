package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置,所有字段都有默认值,配置文件可选
type Config struct {
	Web    WebConfig    `mapstructure:"web"`
	Socket SocketConfig `mapstructure:"socket"`
	Log    LogConfig    `mapstructure:"log"`
	Update UpdateConfig `mapstructure:"update"`
}

// WebConfig 网页客户端地址
type WebConfig struct {
	URL      string `mapstructure:"url"`
	PopupURL string `mapstructure:"popup_url"`
}

// SocketConfig 消息流连接
type SocketConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// UpdateConfig 自动更新使用的 GitHub 仓库
type UpdateConfig struct {
	RepoOwner string `mapstructure:"repo_owner"`
	RepoName  string `mapstructure:"repo_name"`
}

// Slug 返回 owner/name 形式
func (u UpdateConfig) Slug() string {
	return u.RepoOwner + "/" + u.RepoName
}

// EnvPrefix 环境变量前缀,例如 PULSE_WEB_URL
const EnvPrefix = "PULSE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("web.url", "https://pulsesms.app")
	v.SetDefault("web.popup_url", "https://pulsesms.app/reply")
	v.SetDefault("socket.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("update.repo_owner", "klinker-apps")
	v.SetDefault("update.repo_name", "messenger-desktop")
}

// Load 读取配置文件,path 为空时使用应用数据目录下的 config.yaml
// 文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("获取配置文件路径失败: %w", err)
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := validURL("web.url", c.Web.URL, "http", "https"); err != nil {
		return err
	}
	if c.Web.PopupURL != "" {
		if err := validURL("web.popup_url", c.Web.PopupURL, "http", "https"); err != nil {
			return err
		}
	}
	if c.Socket.URL != "" {
		if err := validURL("socket.url", c.Socket.URL, "ws", "wss"); err != nil {
			return err
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level 必须是 debug/info/warn/error, 当前为 %q", c.Log.Level)
	}
	if c.Update.RepoOwner == "" || c.Update.RepoName == "" {
		return fmt.Errorf("update.repo_owner 和 update.repo_name 不能为空")
	}
	return nil
}

func validURL(key, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s 无法解析: %w", key, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s 必须是 %s 地址: %q", key, strings.Join(schemes, "/"), raw)
}
