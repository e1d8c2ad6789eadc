/* pkg/logger/paths.go */

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap/zapcore"
)

const logFileName = "abverify.log"

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdgStatePath(logFileName),
			filepath.Join(".", logFileName),
			filepath.Join("/tmp/abverify", logFileName),
		}
	case "linux":
		return []string{
			filepath.Join("/var/log/abverify", logFileName), // best if writable
			xdgStatePath(logFileName),                       // e.g. ~/.local/state/abverify/abverify.log
			filepath.Join(".", logFileName),                 // current working dir, ideal for devs
			filepath.Join("/tmp/abverify", logFileName),     // ephemeral
		}
	default:
		return []string{filepath.Join(".", logFileName)}
	}
}

func xdgStatePath(name string) string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "abverify", name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", name)
	}
	return filepath.Join(home, ".local", "state", "abverify", name)
}

// GetLogFileWriter tries to create a file writer at the specified path.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return zapcore.AddSync(os.Stderr), fmt.Errorf("log directory error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return zapcore.AddSync(os.Stderr), fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// FindWritableLogPath returns the first usable log path for this platform.
func FindWritableLogPath() (string, error) {
	for _, path := range PlatformLogPaths() {
		if _, err := GetLogFileWriter(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no writable log path found")
}
