package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Audio backends. Beep decodes in process; exec shells out to external players.
const (
	AudioBackendBeep = "beep"
	AudioBackendExec = "exec"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	PomodoroMinutes      int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	LongBreakInterval    int
	AdjustStepSeconds    int
	SchedulerBuffer      int
	Sounds               bool
	AudioBackend         string
	SoundCommand         string
	ClickSound           string
	CompleteSound        string
	MusicCommand         string
	MusicDir             string
	LibraryPath          string
	DebugLogPath         string
}

func DefaultRuntimeConfig() RuntimeConfig {
	d := model.DefaultDurations()
	return RuntimeConfig{
		DesktopNotifications: false,
		PomodoroMinutes:      d.Pomodoro / 60,
		ShortBreakMinutes:    d.ShortBreak / 60,
		LongBreakMinutes:     d.LongBreak / 60,
		LongBreakInterval:    model.DefaultLongBreakInterval,
		AdjustStepSeconds:    300,
		SchedulerBuffer:      16,
		Sounds:               true,
		AudioBackend:         AudioBackendBeep,
	}
}

// Durations converts the configured minutes into registry seconds.
func (c RuntimeConfig) Durations() model.Durations {
	return model.Durations{
		Pomodoro:   c.PomodoroMinutes * 60,
		ShortBreak: c.ShortBreakMinutes * 60,
		LongBreak:  c.LongBreakMinutes * 60,
	}
}

// ConfigPathFromEnv returns FOCUSD_CONFIG, or the per-user default location.
func ConfigPathFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("FOCUSD_CONFIG")); v != "" {
		return v
	}
	path, err := defaultConfigPath()
	if err != nil {
		return ""
	}
	return path
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("FOCUSD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSD_POMODORO_MINUTES"); ok && v > 0 {
		cfg.PomodoroMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.ShortBreakMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.LongBreakMinutes = v
	}
	if v, ok := getEnvInt("FOCUSD_LONG_BREAK_INTERVAL"); ok && v > 0 {
		cfg.LongBreakInterval = v
	}
	if v, ok := getEnvInt("FOCUSD_ADJUST_STEP_SECONDS"); ok && v > 0 {
		cfg.AdjustStepSeconds = v
	}
	if v, ok := getEnvInt("FOCUSD_ALARM_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("FOCUSD_SOUNDS"); ok {
		cfg.Sounds = v
	}
	if v, ok := getEnvString("FOCUSD_AUDIO_BACKEND"); ok {
		if backend, valid := parseAudioBackend(v); valid {
			cfg.AudioBackend = backend
		}
	}
	if v, ok := getEnvString("FOCUSD_SOUND_COMMAND"); ok {
		cfg.SoundCommand = v
	}
	if v, ok := getEnvString("FOCUSD_CLICK_SOUND"); ok {
		cfg.ClickSound = v
	}
	if v, ok := getEnvString("FOCUSD_COMPLETE_SOUND"); ok {
		cfg.CompleteSound = v
	}
	if v, ok := getEnvString("FOCUSD_MUSIC_COMMAND"); ok {
		cfg.MusicCommand = v
	}
	if v, ok := getEnvString("FOCUSD_MUSIC_DIR"); ok {
		cfg.MusicDir = v
	}
	if v, ok := getEnvString("FOCUSD_LIBRARY_DB"); ok {
		cfg.LibraryPath = v
	}
	if v, ok := getEnvString("FOCUSD_DEBUG_LOG"); ok {
		cfg.DebugLogPath = v
	}
	return cfg
}

func parseAudioBackend(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case AudioBackendBeep:
		return AudioBackendBeep, true
	case AudioBackendExec:
		return AudioBackendExec, true
	default:
		return "", false
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
