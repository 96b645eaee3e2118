// Package configpaths locates padcan configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "padcan"

// SystemDir holds machine-wide configuration on unix systems.
const SystemDir = "/etc/padcan"

// baseNames are the file names (without extension) probed in each directory.
var baseNames = []string{appName, "config", "drive"}

// DefaultConfigDir returns the per-user configuration directory for padcan.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// NormalizeFormat maps a format name or alias to "json", "yaml" or "toml".
// Unknown formats yield "".
func NormalizeFormat(f string) string {
	switch f {
	case "json", "JSON":
		return "json"
	case "yaml", "yml", "YAML", "YML":
		return "yaml"
	case "toml", "TOML":
		return "toml"
	default:
		return ""
	}
}

// Ext returns the file extension used for a normalized format.
func Ext(format string) string {
	if format == "" {
		return "json"
	}
	return format
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format, in
// priority order. If userPath is provided, it comes first and is routed to
// the loader matching its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, SystemDir)
	}

	for _, dir := range dirs {
		for _, base := range baseNames {
			jsonPaths = append(jsonPaths, filepath.Join(dir, base+".json"))
			yamlPaths = append(yamlPaths, filepath.Join(dir, base+".yaml"), filepath.Join(dir, base+".yml"))
			tomlPaths = append(tomlPaths, filepath.Join(dir, base+".toml"))
		}
	}
	return
}
