package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/lifetrack/internal/backup"
	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/lock"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/utils"
	"github.com/julianstephens/lifetrack/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}

	// Check 1: catalog integrity
	result := validation.CheckCatalog(catalog.ListSections())
	if result.HasConflicts() {
		fail("Section catalog", fmt.Errorf("%d problem(s)\n%s", len(result.Conflicts), result.FormatReport()))
	} else {
		ctx.printf("✓ Section catalog: OK (%d sections)\n", len(catalog.ListSections()))
	}

	// Check 2: storage reachable
	reachable := false
	if err := ctx.Store.Load(); err != nil {
		fail("Storage reachable", err)
	} else {
		ctx.printf("✓ Storage reachable: OK (%s)\n", ctx.Store.GetConfigPath())
		reachable = true
	}

	// Check 3: stored entries readable (only if storage is reachable)
	if reachable {
		if err := ctx.Tracker.Load(); err != nil {
			fail("Stored entries", err)
		} else {
			ctx.printf("✓ Stored entries: OK (%d entries)\n", ctx.Tracker.Len())
			if n := checkEntries(ctx); n > 0 {
				ctx.printf("⚠ Entry contents: WARNING\n")
				ctx.printf("   %d entries have an unknown section or missing required fields\n", n)
			}
		}
	} else {
		ctx.printf("⊘ Stored entries: SKIPPED (storage not reachable)\n")
	}

	// Check 4: last recorded write, for providers that keep history
	if hp, ok := ctx.Store.(storage.HistoryProvider); ok && reachable {
		records, err := hp.History(constants.StorageKey, 1)
		switch {
		case err != nil:
			fail("Write history", err)
		case len(records) == 0:
			ctx.printf("ℹ Write history: no writes recorded yet\n")
		default:
			last := records[0]
			ctx.printf("✓ Write history: last write %s (%d bytes)\n", last.WrittenAt.Local().Format("2006-01-02 15:04:05"), last.Size)
		}
	}

	// File stores only: lock owner and backups
	path := ctx.Store.GetConfigPath()
	if config.IsFilePath(path) {
		checkLock(ctx, path)

		if err := checkBackupsPresent(path); err != nil {
			ctx.printf("⚠ Backups present: WARNING\n")
			ctx.printf("   %v\n", err)
		} else {
			ctx.printf("✓ Backups present: OK\n")
		}
	}

	// Check 5: clock and timezone
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.printf("✓ Clock/timezone: OK (today is %s in %s)\n", ctx.Tracker.Today(), ctx.Tracker.Location())
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

// checkEntries counts stored entries that would not pass validation today.
func checkEntries(ctx *Context) int {
	bad := 0
	for _, e := range ctx.Tracker.Entries() {
		section, ok := catalog.Get(e.SectionID)
		if !ok || len(validation.MissingRequired(section, e.Data)) > 0 {
			bad++
		}
	}
	return bad
}

func checkLock(ctx *Context, path string) {
	pid, running := lock.Holder(path)
	switch {
	case pid == 0:
		ctx.printf("ℹ Store lock: not held\n")
	case pid == os.Getpid():
		ctx.printf("✓ Store lock: held by this process (pid %d)\n", pid)
	case running:
		ctx.printf("⚠ Store lock: WARNING\n")
		ctx.printf("   held by another lifetrack process (pid %d)\n", pid)
	default:
		ctx.printf("ℹ Store lock: stale lockfile from pid %d\n", pid)
	}
}

func checkBackupsPresent(path string) error {
	mgr := backup.NewManager(path)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'lifetrack backup create'")
	}

	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}

	return nil
}
