package prefs

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
)

// FileName 偏好设置文件名
const FileName = "preferences.yaml"

// Key 布尔型偏好设置的键
type Key string

const (
	ShowNotifications  Key = "show_notifications"
	NotificationSounds Key = "notification_sounds"
	SenderPreviews     Key = "notification_sender_previews"
	MessagePreviews    Key = "notification_message_previews"
	MinimizeToTray     Key = "minimize_to_tray"
	BadgeDockIcon      Key = "badge_dock_icon"
	UseSpellcheck      Key = "use_spellcheck"
	OpenAtLogin        Key = "open_at_login"
	AutoHideMenuBar    Key = "auto_hide_menu_bar"
)

// Keys 所有布尔型偏好设置
var Keys = []Key{
	ShowNotifications,
	NotificationSounds,
	SenderPreviews,
	MessagePreviews,
	MinimizeToTray,
	BadgeDockIcon,
	UseSpellcheck,
	OpenAtLogin,
	AutoHideMenuBar,
}

// SnoozeSelection 免打扰时长
type SnoozeSelection string

const (
	Snooze30Mins  SnoozeSelection = "30_mins"
	Snooze1Hour   SnoozeSelection = "1_hour"
	Snooze3Hours  SnoozeSelection = "3_hours"
	Snooze12Hours SnoozeSelection = "12_hours"
)

// SnoozeSelections 按菜单顺序排列的全部时长
var SnoozeSelections = []SnoozeSelection{Snooze30Mins, Snooze1Hour, Snooze3Hours, Snooze12Hours}

// Duration 返回时长,未知取值返回 0
func (s SnoozeSelection) Duration() time.Duration {
	switch s {
	case Snooze30Mins:
		return 30 * time.Minute
	case Snooze1Hour:
		return time.Hour
	case Snooze3Hours:
		return 3 * time.Hour
	case Snooze12Hours:
		return 12 * time.Hour
	}
	return 0
}

// Label 菜单显示文本
func (s SnoozeSelection) Label() string {
	switch s {
	case Snooze30Mins:
		return "30 mins"
	case Snooze1Hour:
		return "1 hour"
	case Snooze3Hours:
		return "3 hours"
	case Snooze12Hours:
		return "12 hours"
	}
	return string(s)
}

// SnoozeState 免打扰状态
type SnoozeState struct {
	Active    bool            `yaml:"active"`
	Selection SnoozeSelection `yaml:"selection,omitempty"`
	Until     time.Time       `yaml:"until,omitempty"`
}

// document 持久化到磁盘的结构
type document struct {
	Values map[Key]bool `yaml:"values"`
	Snooze SnoozeState  `yaml:"snooze"`
}

// Defaults 首次启动时的默认值
func Defaults() map[Key]bool {
	return map[Key]bool{
		ShowNotifications:  true,
		NotificationSounds: true,
		SenderPreviews:     true,
		MessagePreviews:    true,
		MinimizeToTray:     true,
		BadgeDockIcon:      true,
		UseSpellcheck:      true,
		OpenAtLogin:        false,
		AutoHideMenuBar:    false,
	}
}

// Store 进程级偏好设置,每次修改立即落盘
type Store struct {
	path   string
	logger *slog.Logger

	mu        sync.RWMutex
	values    map[Key]bool
	snooze    SnoozeState
	lastSaved []byte
	now       func() time.Time

	listenersMu sync.Mutex
	listeners   []func()
}

// Open 从 dir 加载偏好设置,文件不存在时使用默认值并写入
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建偏好设置目录失败: %w", err)
	}

	s := &Store{
		path:   filepath.Join(dir, FileName),
		logger: logger,
		values: Defaults(),
		now:    time.Now,
	}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		s.logger.Info("偏好设置文件不存在,使用默认值", "path", s.path)
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("读取偏好设置失败: %w", err)
	default:
		if err := s.apply(data); err != nil {
			return nil, err
		}
		s.lastSaved = data
	}

	return s, nil
}

// Path 偏好设置文件路径
func (s *Store) Path() string {
	return s.path
}

// apply 解析 data 覆盖内存中的值,缺失的键保留默认值
func (s *Store) apply(data []byte) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析偏好设置失败: %w", err)
	}

	values := Defaults()
	for k, v := range doc.Values {
		if _, ok := values[k]; !ok {
			s.logger.Warn("忽略未知的偏好设置", "key", k)
			continue
		}
		values[k] = v
	}

	snooze := doc.Snooze
	if snooze.Active && snooze.Selection.Duration() == 0 {
		s.logger.Warn("忽略无效的免打扰时长", "selection", snooze.Selection)
		snooze = SnoozeState{}
	}

	s.mu.Lock()
	s.values = values
	s.snooze = snooze
	s.mu.Unlock()
	return nil
}

// save 原子写入: 先写临时文件再重命名
func (s *Store) save() error {
	s.mu.RLock()
	doc := document{Values: make(map[Key]bool, len(s.values)), Snooze: s.snooze}
	for k, v := range s.values {
		doc.Values[k] = v
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("序列化偏好设置失败: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("写入偏好设置失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("写入偏好设置失败: %w", err)
	}

	s.mu.Lock()
	s.lastSaved = data
	s.mu.Unlock()

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("保存偏好设置失败: %w", err)
	}
	return nil
}

// Bool 读取布尔型偏好设置
func (s *Store) Bool(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set 设置并持久化布尔型偏好设置
func (s *Store) Set(key Key, value bool) error {
	if _, ok := Defaults()[key]; !ok {
		return fmt.Errorf("未知的偏好设置: %s", key)
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	if err := s.save(); err != nil {
		return err
	}
	s.logger.Debug("偏好设置已更新", "key", key, "value", value)
	return nil
}

// Toggle 读-改-写翻转一个布尔型偏好设置,返回新值
func (s *Store) Toggle(key Key) (bool, error) {
	if _, ok := Defaults()[key]; !ok {
		return false, fmt.Errorf("未知的偏好设置: %s", key)
	}

	s.mu.Lock()
	value := !s.values[key]
	s.values[key] = value
	s.mu.Unlock()

	if err := s.save(); err != nil {
		return value, err
	}
	s.logger.Debug("偏好设置已切换", "key", key, "value", value)
	return value, nil
}

// IsSnoozeActive 是否处于免打扰状态
func (s *Store) IsSnoozeActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snooze.Active
}

// CurrentSnooze 当前选中的免打扰时长
func (s *Store) CurrentSnooze() SnoozeSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snooze.Selection
}

// SnoozeUntil 免打扰结束时间,未激活时为零值
func (s *Store) SnoozeUntil() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.snooze.Active {
		return time.Time{}
	}
	return s.snooze.Until
}

// Snooze 选择免打扰时长
// 再次选择当前已激活的时长会取消免打扰,选择其他时长则替换
func (s *Store) Snooze(selection SnoozeSelection) error {
	d := selection.Duration()
	if d == 0 {
		return fmt.Errorf("未知的免打扰时长: %s", selection)
	}

	s.mu.Lock()
	if s.snooze.Active && s.snooze.Selection == selection {
		s.snooze = SnoozeState{Selection: selection}
	} else {
		s.snooze = SnoozeState{
			Active:    true,
			Selection: selection,
			Until:     s.now().Add(d),
		}
	}
	state := s.snooze
	s.mu.Unlock()

	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("免打扰状态已更新", "active", state.Active, "selection", state.Selection, "until", state.Until)
	return nil
}

// ClearExpiredSnooze 免打扰到期时取消,返回是否发生了变化
func (s *Store) ClearExpiredSnooze(now time.Time) (bool, error) {
	s.mu.Lock()
	if !s.snooze.Active || now.Before(s.snooze.Until) {
		s.mu.Unlock()
		return false, nil
	}
	s.snooze = SnoozeState{Selection: s.snooze.Selection}
	s.mu.Unlock()

	if err := s.save(); err != nil {
		return true, err
	}
	s.logger.Info("免打扰已到期")
	return true, nil
}

// OnChange 注册外部修改偏好设置文件后的回调
func (s *Store) OnChange(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Reload 从磁盘重新加载,内容与上次写入相同时忽略
// 返回是否真的发生了变化
func (s *Store) Reload() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("读取偏好设置失败: %w", err)
	}

	s.mu.RLock()
	same := bytes.Equal(data, s.lastSaved)
	s.mu.RUnlock()
	if same {
		return false, nil
	}

	if err := s.apply(data); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.lastSaved = data
	s.mu.Unlock()

	s.logger.Info("偏好设置文件已被外部修改,重新加载", "path", s.path)
	s.notify()
	return true, nil
}
