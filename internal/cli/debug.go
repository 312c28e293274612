package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/query"
	"github.com/julianstephens/lifetrack/internal/storage"
)

type DebugCmd struct {
	StorePath   *DebugStorePathCmd   `cmd:"" help:"Show the store location."`
	DumpEntries *DebugDumpEntriesCmd `cmd:"" help:"Dump entries as JSON."`
	DumpEntry   *DebugDumpEntryCmd   `cmd:"" help:"Dump one entry as JSON."`
	History     *DebugHistoryCmd     `cmd:"" help:"Show recorded writes (SQL stores only)."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	return printJSON(ctx, output)
}

type DebugDumpEntriesCmd struct {
	Date string `short:"d" help:"Only entries for this date (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpEntriesCmd) Run(ctx *Context) error {
	entries := ctx.Tracker.Entries()
	if cmd.Date != "" {
		date, err := resolveDate(ctx, cmd.Date)
		if err != nil {
			return err
		}
		entries = query.EntriesByDate(entries, date)
	}
	return printJSON(ctx, entries)
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *Context) error {
	for _, e := range ctx.Tracker.Entries() {
		if e.ID == cmd.ID {
			return printJSON(ctx, e)
		}
	}
	return fmt.Errorf("entry not found: %s", cmd.ID)
}

type DebugHistoryCmd struct {
	Limit int `short:"n" help:"Number of writes to show." default:"10"`
}

func (cmd *DebugHistoryCmd) Run(ctx *Context) error {
	hp, ok := ctx.Store.(storage.HistoryProvider)
	if !ok {
		return fmt.Errorf("write history is not recorded for %s", ctx.Store.GetConfigPath())
	}
	records, err := hp.History(constants.StorageKey, cmd.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ctx.println("No writes recorded.")
		return nil
	}
	for _, r := range records {
		ctx.printf("%s  %8d bytes\n", r.WrittenAt.Local().Format("2006-01-02 15:04:05.000"), r.Size)
	}
	return nil
}

func printJSON(ctx *Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}
