package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	WelcomeMessage  string `toml:"welcome-message"`
	StatusTimeoutMS int    `toml:"status-timeout-ms"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	MessageForeground    string `toml:"message-foreground"`
	FringeForeground     string `toml:"fringe-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			WelcomeMessage:  "vted -- version " + Version,
			StatusTimeoutMS: 5000,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#3F3F3F",
			StatuslineBackground: "#EFEFEF",
			MessageForeground:    "#B3B1AD",
			FringeForeground:     "#3E4B59",
		},
	}
}

// Version is the user-visible release string, shown in the welcome banner.
const Version = "0.1.0"

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.WelcomeMessage != "" {
		cfg.Editor.WelcomeMessage = userCfg.Editor.WelcomeMessage
	}
	if userCfg.Editor.StatusTimeoutMS > 0 {
		cfg.Editor.StatusTimeoutMS = userCfg.Editor.StatusTimeoutMS
	}
	if userCfg.Theme.Foreground != "" {
		cfg.Theme.Foreground = userCfg.Theme.Foreground
	}
	if userCfg.Theme.Background != "" {
		cfg.Theme.Background = userCfg.Theme.Background
	}
	if userCfg.Theme.StatuslineForeground != "" {
		cfg.Theme.StatuslineForeground = userCfg.Theme.StatuslineForeground
	}
	if userCfg.Theme.StatuslineBackground != "" {
		cfg.Theme.StatuslineBackground = userCfg.Theme.StatuslineBackground
	}
	if userCfg.Theme.MessageForeground != "" {
		cfg.Theme.MessageForeground = userCfg.Theme.MessageForeground
	}
	if userCfg.Theme.FringeForeground != "" {
		cfg.Theme.FringeForeground = userCfg.Theme.FringeForeground
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VTED_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vted"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vted"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
