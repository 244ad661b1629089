// Package logging sets up the application log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"projdeck/internal/config"
)

// fileName is the log file created under the config directory.
const fileName = "projdeck.log"

// Setup returns the application logger and a close function. A TUI owns the
// terminal, so logs always go to a file, never to stderr. When disabled the
// logger discards everything and the close function is a no-op.
func Setup(enabled bool) (zerolog.Logger, func(), error) {
	if !enabled {
		return zerolog.New(io.Discard), func() {}, nil
	}

	dir := config.Dir()
	if dir == "" {
		return zerolog.New(io.Discard), func() {}, fmt.Errorf("no config directory available")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.New(io.Discard), func() {}, err
	}

	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), func() {}, err
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

// Path returns the log file location, for surfacing in help output.
func Path() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fileName)
}
