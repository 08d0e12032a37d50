// Package configpaths resolves where relaconctl looks for configuration
// files on each platform.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the directory name used under the platform config root.
const appDir = "relaconctl"

// DefaultConfigDir returns the per-user configuration directory:
// %AppData%\Relacon on Windows, $XDG_CONFIG_HOME/relaconctl or
// ~/.config/relaconctl elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appdata := os.Getenv("AppData")
		if appdata == "" {
			return "", errors.New("AppData not set")
		}
		return filepath.Join(appdata, "Relacon"), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appDir), nil
	}
	return "", errors.New("HOME not set")
}

// EnsureDir creates the parent directory of a file path if needed.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths lists the config files each kong loader should try,
// most specific first: an explicit user path (routed to its loader by
// extension), then the working directory, the user config directory and,
// outside Windows, /etc/relacon.
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
	if cfgDir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, cfgDir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, filepath.Join("/etc", "relacon"))
	}

	for _, dir := range dirs {
		for _, base := range []string{appDir, "config"} {
			jsonPaths = append(jsonPaths, filepath.Join(dir, base+".json"))
			yamlPaths = append(yamlPaths,
				filepath.Join(dir, base+".yaml"),
				filepath.Join(dir, base+".yml"))
			tomlPaths = append(tomlPaths, filepath.Join(dir, base+".toml"))
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
