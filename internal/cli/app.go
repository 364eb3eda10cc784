package cli

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"tagtodo/internal/config"
	"tagtodo/internal/storage"
	"tagtodo/internal/task"
)

// fileFS backs the "file" storage backend.
var fileFS afero.Fs = afero.NewOsFs()

// app is everything a command needs once config is loaded.
type app struct {
	cfg     config.Config
	repo    *task.Repository
	backend storage.Backend
}

func (a *app) Close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func openApp(cfg config.Config) *app {
	backend := openBackend(cfg)

	def := task.DefaultState()
	if cfg.DefaultFilter != "" {
		f, ok := task.ParseFilter(cfg.DefaultFilter)
		if !ok {
			log.Printf("config: unknown default_filter %q, using %s", cfg.DefaultFilter, f)
		}
		def.Filter = f
	}

	cell := storage.NewPersisted(backend, task.StoreKey, def, storage.WithValidator(task.Validate))
	repo := task.NewRepository(cell)
	if cfg.SeedOnEmpty {
		repo.SeedIfEmpty(task.SeedTasks(time.Now(), uuid.NewString))
	}
	return &app{cfg: cfg, repo: repo, backend: backend}
}

// openBackend never fails: a backend that cannot be opened degrades to
// memory so the list stays usable for the session.
func openBackend(cfg config.Config) storage.Backend {
	var (
		backend storage.Backend
		err     error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryBackend()
	case config.BackendFile:
		backend, err = storage.NewFileBackend(fileFS, filepath.Join(filepath.Dir(cfg.DBPath), "state"))
	default:
		backend, err = storage.Open(cfg.DBPath)
	}
	if err != nil {
		log.Printf("storage: %s backend unavailable (%v); changes will not be saved", cfg.Backend, err)
		return storage.NewMemoryBackend()
	}
	return backend
}

// redirectLog keeps log output off the terminal while the TUI owns it.
func redirectLog(path string) (func(), error) {
	prevOut, prevPrefix := log.Writer(), log.Prefix()
	restore := func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}
	f, err := tea.LogToFile(path, "tagtodo")
	if err != nil {
		return func() {}, fmt.Errorf("open log file %s: %w", path, err)
	}
	return func() {
		restore()
		f.Close()
	}, nil
}
