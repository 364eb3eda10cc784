package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tagtodo.db"
	EnvConfigPath         = "TAGTODO_CONFIG"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	defaultDebounceMS = 120
	defaultRowHeight  = 3
	defaultOverscan   = 8
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Search      string `toml:"search"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	PageUp      string `toml:"page_up"`
	PageDown    string `toml:"page_down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Edit        string `toml:"edit"`
	TagSearch   string `toml:"tag_search"`
	FilterNext  string `toml:"filter_next"`
	ClearDone   string `toml:"clear_done"`
	NextField   string `toml:"next_field"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
	PriorityFwd string `toml:"priority_next"`
	PriorityBck string `toml:"priority_prev"`
}

type Config struct {
	DBPath           string `toml:"db_path"`
	Backend          string `toml:"backend"`
	DefaultFilter    string `toml:"default_filter"`
	SeedOnEmpty      bool   `toml:"seed_on_empty"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	RowHeight        int    `toml:"row_height"`
	Overscan         int    `toml:"overscan"`
	ConfirmDelete    bool   `toml:"confirm_delete"`
	LogFile          string `toml:"log_file"`
	Keys             Keymap `toml:"keys"`
}

// ResolveConfigPath picks $TAGTODO_CONFIG when set, else the per-user config dir.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "tagtodo", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg.resolve(path), err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg.resolve(path), err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default().resolve(path), err
	}
	return cfg.resolve(path), nil
}

// resolve fills blanks, clamps out-of-range numbers and anchors a relative
// db path to the directory holding the config file.
func (c Config) resolve(path string) Config {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(filepath.Dir(path), c.DBPath)
	}
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		c.Backend = def.Backend
	}
	if c.SearchDebounceMS <= 0 {
		c.SearchDebounceMS = def.SearchDebounceMS
	}
	if c.RowHeight <= 0 {
		c.RowHeight = def.RowHeight
	}
	if c.Overscan < 0 {
		c.Overscan = def.Overscan
	}
	c.Keys = c.Keys.withDefaults(def.Keys)
	return c
}

func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, dv string) {
		if *v == "" {
			*v = dv
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.Search, d.Search)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.PageUp, d.PageUp)
	fill(&k.PageDown, d.PageDown)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.Edit, d.Edit)
	fill(&k.TagSearch, d.TagSearch)
	fill(&k.FilterNext, d.FilterNext)
	fill(&k.ClearDone, d.ClearDone)
	fill(&k.NextField, d.NextField)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.PriorityFwd, d.PriorityFwd)
	fill(&k.PriorityBck, d.PriorityBck)
	return k
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DBPath:           DefaultDBName,
		Backend:          BackendSQLite,
		DefaultFilter:    "all",
		SeedOnEmpty:      true,
		SearchDebounceMS: defaultDebounceMS,
		RowHeight:        defaultRowHeight,
		Overscan:         defaultOverscan,
		ConfirmDelete:    true,
		Keys: Keymap{
			Quit:        "q",
			Add:         "/",
			Search:      "ctrl+k",
			Up:          "k",
			Down:        "j",
			PageUp:      "pgup",
			PageDown:    "pgdown",
			Toggle:      " ",
			Delete:      "d",
			Edit:        "e",
			TagSearch:   "t",
			FilterNext:  "f",
			ClearDone:   "C",
			NextField:   "tab",
			Confirm:     "enter",
			Cancel:      "esc",
			PriorityFwd: "right",
			PriorityBck: "left",
		},
	}
}
