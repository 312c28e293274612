package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete an existing store file before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Force {
		if !config.IsFilePath(path) {
			return fmt.Errorf("--force only applies to file stores, not %s", path)
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		if errors.Is(err, storage.ErrAlreadyInitialized) {
			ctx.printf("Storage already initialized at: %s\n", path)
			return nil
		}
		return err
	}
	ctx.printf("Initialized lifetrack storage at: %s\n", path)

	ctx.PerformAutomaticBackup()
	return nil
}
