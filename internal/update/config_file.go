package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	PomodoroMinutes      int    `yaml:"pomodoro_minutes"`
	ShortBreakMinutes    int    `yaml:"short_break_minutes"`
	LongBreakMinutes     int    `yaml:"long_break_minutes"`
	LongBreakInterval    int    `yaml:"long_break_interval"`
	AdjustStepSeconds    int    `yaml:"adjust_step_seconds"`
	AlarmBuffer          int    `yaml:"alarm_buffer"`
	DesktopNotifications *bool  `yaml:"desktop_notifications"`
	Sounds               *bool  `yaml:"sounds"`
	AudioBackend         string `yaml:"audio_backend"`
	SoundCommand         string `yaml:"sound_command"`
	ClickSound           string `yaml:"click_sound"`
	CompleteSound        string `yaml:"complete_sound"`
	MusicCommand         string `yaml:"music_command"`
	MusicDir             string `yaml:"music_dir"`
	LibraryDB            string `yaml:"library_db"`
	DebugLog             string `yaml:"debug_log"`
}

// RuntimeConfigFromFile overlays the YAML file at path onto base.
// A missing file leaves base untouched.
func RuntimeConfigFromFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	applyYamlConfig(&cfg, fileData)
	return cfg, nil
}

// SaveRuntimeConfig writes cfg as YAML, creating the parent directory.
func SaveRuntimeConfig(path string, cfg RuntimeConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	desktop := cfg.DesktopNotifications
	sounds := cfg.Sounds
	fileData := yamlConfig{
		PomodoroMinutes:      cfg.PomodoroMinutes,
		ShortBreakMinutes:    cfg.ShortBreakMinutes,
		LongBreakMinutes:     cfg.LongBreakMinutes,
		LongBreakInterval:    cfg.LongBreakInterval,
		AdjustStepSeconds:    cfg.AdjustStepSeconds,
		AlarmBuffer:          cfg.SchedulerBuffer,
		DesktopNotifications: &desktop,
		Sounds:               &sounds,
		AudioBackend:         cfg.AudioBackend,
		SoundCommand:         cfg.SoundCommand,
		ClickSound:           cfg.ClickSound,
		CompleteSound:        cfg.CompleteSound,
		MusicCommand:         cfg.MusicCommand,
		MusicDir:             cfg.MusicDir,
		LibraryDB:            cfg.LibraryPath,
		DebugLog:             cfg.DebugLogPath,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func defaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "focusd", configFileName), nil
}

func applyYamlConfig(cfg *RuntimeConfig, fileData yamlConfig) {
	if fileData.PomodoroMinutes > 0 {
		cfg.PomodoroMinutes = fileData.PomodoroMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		cfg.ShortBreakMinutes = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		cfg.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.LongBreakInterval > 0 {
		cfg.LongBreakInterval = fileData.LongBreakInterval
	}
	if fileData.AdjustStepSeconds > 0 {
		cfg.AdjustStepSeconds = fileData.AdjustStepSeconds
	}
	if fileData.AlarmBuffer > 0 {
		cfg.SchedulerBuffer = fileData.AlarmBuffer
	}
	if fileData.DesktopNotifications != nil {
		cfg.DesktopNotifications = *fileData.DesktopNotifications
	}
	if fileData.Sounds != nil {
		cfg.Sounds = *fileData.Sounds
	}
	if backend, ok := parseAudioBackend(fileData.AudioBackend); ok {
		cfg.AudioBackend = backend
	}
	setIfPresent(&cfg.SoundCommand, fileData.SoundCommand)
	setIfPresent(&cfg.ClickSound, fileData.ClickSound)
	setIfPresent(&cfg.CompleteSound, fileData.CompleteSound)
	setIfPresent(&cfg.MusicCommand, fileData.MusicCommand)
	setIfPresent(&cfg.MusicDir, fileData.MusicDir)
	setIfPresent(&cfg.LibraryPath, fileData.LibraryDB)
	setIfPresent(&cfg.DebugLogPath, fileData.DebugLog)
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
