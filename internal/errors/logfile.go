package errors

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

const (
	logFileName    = "settingskit.log"
	maxLogSize     = 10 * 1024 * 1024
	maxLogBackups  = 4
	logDirFileMode = 0750
)

// logEnv holds the environment overrides of the log location.
type logEnv struct {
	LogDir string `env:"SETTINGSKIT_LOG_DIR"`
}

// standardLogDir returns where settingskit keeps its log on this OS, unless
// SETTINGSKIT_LOG_DIR names another directory.
func standardLogDir() (string, error) {
	var overrides logEnv
	if err := env.Parse(&overrides); err != nil {
		return "", fmt.Errorf("failed to read log environment: %w", err)
	}
	if overrides.LogDir != "" {
		return overrides.LogDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "SettingsKit"), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// XDG data home
		return filepath.Join(home, ".local", "share", "settingskit", "logs"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "SettingsKit", "logs"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "SettingsKit", "logs"), nil
	default:
		return filepath.Join(home, ".settingskit", "logs"), nil
	}
}

// writableDir creates dir if needed and checks a file can be written there.
func writableDir(dir string) error {
	if err := os.MkdirAll(dir, logDirFileMode); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		slog.Warn("Failed to close write check file", "path", name, "error", err)
	}
	return os.Remove(name)
}

// resolveLogDir returns the standard log directory, or the working directory
// when the standard one cannot be used. The bool reports the fallback.
func resolveLogDir() (string, bool, error) {
	dir, err := standardLogDir()
	if err == nil {
		if err = writableDir(dir); err == nil {
			return dir, false, nil
		}
		err = fmt.Errorf("cannot access standard log directory %s: %w", dir, err)
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", true, fmt.Errorf("cannot determine current directory for fallback logging: %w", cwdErr)
	}
	fmt.Fprintf(os.Stderr, "Warning: %v. Falling back to current directory for logging.\n", err)
	return cwd, true, nil
}

// rotateLog shifts path to path.1, path.1 to path.2 and so on, dropping the
// backup beyond maxLogBackups.
func rotateLog(path string) error {
	backup := func(n int) string { return fmt.Sprintf("%s.%d", path, n) }

	if err := os.Remove(backup(maxLogBackups)); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove old log file", "path", backup(maxLogBackups), "error", err)
	}
	for n := maxLogBackups - 1; n > 0; n-- {
		if err := os.Rename(backup(n), backup(n+1)); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to rotate log file", "old", backup(n), "new", backup(n+1), "error", err)
		}
	}

	if err := os.Rename(path, backup(1)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// rotateIfLarge rotates path once it reached maxLogSize. A missing file is
// not an error.
func rotateIfLarge(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() < maxLogSize {
		return nil
	}
	return rotateLog(path)
}

func openLogFile() (*os.File, error) {
	dir, _, err := resolveLogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if err := rotateIfLarge(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to rotate log file: %v\n", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}
