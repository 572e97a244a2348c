package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

// AppName is used for config directory resolution and log prefixes
const AppName = "tdl"

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeyConfig     `toml:"keys"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty discards logs while the TUI runs
}

type UIConfig struct {
	Theme         string `toml:"theme"`
	Placeholder   string `toml:"placeholder"`
	CharLimit     int    `toml:"char_limit"`
	MaxWidth      int    `toml:"max_width"`
	ConfirmDelete bool   `toml:"confirm_delete"`
}

// KeyConfig overrides default key bindings. Each value is a comma separated
// list of keys, e.g. "e,enter".
type KeyConfig struct {
	Submit     string `toml:"submit"`
	Edit       string `toml:"edit"`
	Delete     string `toml:"delete"`
	Copy       string `toml:"copy"`
	FocusInput string `toml:"focus_input"`
	Help       string `toml:"help"`
	Quit       string `toml:"quit"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme:       "tokyo-night",
			Placeholder: "Add a new task...",
			CharLimit:   200,
			MaxWidth:    80,
		},
	}
}

// Load reads the TOML file at path on top of defaults. A missing or empty
// file yields the defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	switch strings.ToLower(strings.TrimSpace(c.UI.Theme)) {
	case "", "tokyo-night", "slate":
	default:
		return fmt.Errorf("invalid ui.theme: %q", c.UI.Theme)
	}
	if c.UI.CharLimit < 0 {
		return errors.New("ui.char_limit must be >= 0")
	}
	if c.UI.MaxWidth != 0 && c.UI.MaxWidth < 30 {
		return errors.New("ui.max_width must be 0 or >= 30")
	}

	bindings := map[string]string{
		"submit":      c.Keys.Submit,
		"edit":        c.Keys.Edit,
		"delete":      c.Keys.Delete,
		"copy":        c.Keys.Copy,
		"focus_input": c.Keys.FocusInput,
		"help":        c.Keys.Help,
		"quit":        c.Keys.Quit,
	}
	for name, value := range bindings {
		if value == "" {
			continue
		}
		for _, k := range strings.Split(value, ",") {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("keys.%s has an empty entry: %q", name, value)
			}
		}
	}

	return nil
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("user home dir: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName, "config.toml"), nil
}

// ResolvePath picks the config path from the flag, then TDL_CONFIG, then the default
func ResolvePath(flagPath string) (string, error) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv("TDL_CONFIG")); p != "" {
		return p, nil
	}
	return DefaultPath()
}
