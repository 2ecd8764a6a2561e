package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the first existing config file among the
// standard locations, or "" when there is none:
//
//	$XDG_CONFIG_HOME/flake/config.{toml,json}
//	~/.config/flake/config.{toml,json}
//	/etc/flake/config.{toml,json}
func DefaultConfigPath() string {
	for _, dir := range configDirs() {
		for _, name := range []string{"config.toml", "config.json"} {
			p := filepath.Join(dir, name)
			if isFile(p) {
				return p
			}
		}
	}
	return ""
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "flake"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "flake"))
	}
	return append(dirs, "/etc/flake")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
