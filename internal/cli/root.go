package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/lifetrack/internal/backup"
	"github.com/julianstephens/lifetrack/internal/config"
	apperrors "github.com/julianstephens/lifetrack/internal/errors"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Tracker *tracker.Store
	Store   storage.Provider
	Config  config.Config

	// Out receives command output. Nil means stdout.
	Out io.Writer
	// ErrOut receives warnings. Nil means stderr.
	ErrOut io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) warn(err error) {
	w := c.ErrOut
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, apperrors.Warning(err))
}

// Load opens the store and reads the saved entries. Only an uninitialized
// store is an error. A store that cannot be opened is swapped for an
// in-memory one so the session starts empty and never writes to the broken
// location; unreadable entry data starts the session empty as well.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		if errors.Is(err, storage.ErrNotInitialized) {
			return err
		}
		location := c.Store.GetConfigPath()
		logger.Warn("Store unavailable, using memory for this session", "location", location, "error", err)
		c.warn(fmt.Errorf("could not open %s, changes will not be saved this session: %w", location, err))

		if cerr := c.Store.Close(); cerr != nil {
			logger.Warn("Failed to close store", "error", cerr)
		}
		c.Store = storage.NewMemoryStore()
		c.Tracker.SwitchProvider(c.Store)
		return nil
	}
	logger.Debug("Loaded store", "location", c.Store.GetConfigPath())

	if err := c.Tracker.Load(); err != nil {
		if errors.Is(err, tracker.ErrCorruptState) || errors.Is(err, tracker.ErrPersistence) {
			c.warn(err)
			return nil
		}
		return err
	}
	return nil
}

// PerformAutomaticBackup creates a backup of a file-backed store and logs any
// failure as a warning. Database servers and the in-memory store are skipped.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !config.IsFilePath(path) {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
