package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "ajanda.db"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	SmartAdd  string `toml:"smart_add"`
	Search    string `toml:"search"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	MoveToday string `toml:"move_today"`
	Postpone  string `toml:"postpone"`
	Theme     string `toml:"theme"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	MonthBack string `toml:"month_back"`
	MonthFwd  string `toml:"month_forward"`
}

type Gemini struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type Config struct {
	DBPath         string `toml:"db_path"`
	NotifyLeadMins int    `toml:"notify_lead_minutes"`
	Gemini         Gemini `toml:"gemini"`
	Keys           Keymap `toml:"keys"`
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.NotifyLeadMins <= 0 {
		cfg.NotifyLeadMins = 10
	}
	return applyEnv(cfg), nil
}

// ResolveConfigPath returns the config file location under the user config
// dir, falling back to the working directory when none is available.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "ajanda", DefaultConfigFileName)
}

// GEMINI_API_KEY overrides the config file so the credential can stay out of
// a dotfile.
func applyEnv(cfg Config) Config {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	return cfg
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:         filepath.Join(dir, DefaultDBName),
		NotifyLeadMins: 10,
		Gemini: Gemini{
			Model: "gemini-2.0-flash",
		},
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			SmartAdd:  "i",
			Search:    "/",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			MoveToday: "t",
			Postpone:  "u",
			Theme:     "T",
			Confirm:   "enter",
			Cancel:    "esc",
			MonthBack: "[",
			MonthFwd:  "]",
		},
	}
}
