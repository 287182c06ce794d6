package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/music"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/sound"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/timer"
	"github.com/sandeepkv93/focusd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := update.ConfigPathFromEnv()
	cfg, err := update.RuntimeConfigFromFile(configPath, update.DefaultRuntimeConfig())
	if err != nil {
		return err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	if cfg.DebugLogPath != "" {
		f, err := tea.LogToFile(cfg.DebugLogPath, "focusd")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		// Stray log output would corrupt the terminal UI.
		log.SetOutput(io.Discard)
	}

	tracks := model.DefaultTracks()
	var library storage.TrackRepository
	if cfg.LibraryPath != "" {
		repo, err := storage.OpenSQLite(cfg.LibraryPath)
		if err != nil {
			return fmt.Errorf("open track library: %w", err)
		}
		defer repo.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		tracks, err = storage.LoadPlaylist(ctx, repo)
		cancel()
		if err != nil {
			return fmt.Errorf("load playlist: %w", err)
		}
		library = repo
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	player, backend := newAudio(cfg)
	defer backend.Pause()

	var desktop update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop = update.ExecDesktopNotifier{}
	}

	m, err := update.NewModelWithConfig(update.Dependencies{
		Scheduler:  engine,
		Desktop:    desktop,
		Sounds:     player,
		Music:      backend,
		Tracks:     tracks,
		Library:    library,
		ConfigPath: configPath,
	}, cfg)
	if err != nil {
		return err
	}

	log.Printf("focusd starting: pomodoro=%dm short=%dm long=%dm interval=%d tracks=%d",
		cfg.PomodoroMinutes, cfg.ShortBreakMinutes, cfg.LongBreakMinutes, cfg.LongBreakInterval, len(tracks))
	program := tea.NewProgram(m)
	_, err = program.Run()
	log.Printf("alarm engine: pending=%d dropped=%d", engine.Pending(), engine.Dropped())
	return err
}

// newAudio prefers the in-process speaker and falls back to external players
// when the audio device or an effect file cannot be opened.
func newAudio(cfg update.RuntimeConfig) (timer.Notifier, music.Backend) {
	soundCfg := sound.Config{
		Enabled:      cfg.Sounds,
		ClickFile:    cfg.ClickSound,
		CompleteFile: cfg.CompleteSound,
	}
	if cfg.AudioBackend == update.AudioBackendBeep {
		player, err := sound.NewBeepPlayer(soundCfg)
		if err == nil {
			var backend *music.BeepBackend
			backend, err = music.NewBeepBackend(cfg.MusicDir)
			if err == nil {
				return player, backend
			}
		}
		log.Printf("beep audio unavailable, using external players: %v", err)
	}

	soundCfg.Command = cfg.SoundCommand
	if soundCfg.Command == "" {
		soundCfg.Command = sound.DefaultCommand()
	}
	musicCommand := cfg.MusicCommand
	if musicCommand == "" {
		musicCommand = music.DefaultCommand()
	}
	return sound.NewPlayer(soundCfg), music.NewExecBackend(musicCommand, cfg.MusicDir)
}
