package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/query"
	"github.com/julianstephens/lifetrack/internal/summary"
	"github.com/julianstephens/lifetrack/internal/tracker"
	"github.com/julianstephens/lifetrack/internal/utils"
	"github.com/julianstephens/lifetrack/internal/validation"
)

type AddCmd struct {
	Section string            `arg:"" help:"Section id (see 'lifetrack sections')."`
	Set     map[string]string `short:"s" help:"Field value as field=value. Repeat for each field."`
}

func (c *AddCmd) Run(ctx *Context) error {
	section, ok := catalog.Get(c.Section)
	if !ok {
		return unknownSectionError(c.Section)
	}

	data, err := validation.BuildEntryData(section, c.Set)
	if err != nil {
		return fmt.Errorf("%s: %w", section.Name, err)
	}

	entry, err := ctx.Tracker.CreateEntry(section.ID, data)
	if err != nil {
		if errors.Is(err, tracker.ErrPersistence) {
			return fmt.Errorf("entry %s was not saved: %w", entry.ID, err)
		}
		return err
	}

	ctx.printf("✓ Added %s entry for %s\n", section.Name, entry.Date)
	ctx.printf("  ID: %s\n", entry.ID)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	removed, err := ctx.Tracker.DeleteEntry(c.ID)
	if err != nil {
		return fmt.Errorf("entry %s was removed but the change was not saved: %w", c.ID, err)
	}
	if !removed {
		ctx.printf("No entry with id %s.\n", c.ID)
		return nil
	}
	ctx.printf("✓ Deleted entry %s\n", c.ID)
	return nil
}

type EntriesCmd struct {
	Date    string `short:"d" help:"Only entries for this date (YYYY-MM-DD or 'today')."`
	Section string `short:"s" help:"Only entries for this section id."`
}

func (c *EntriesCmd) Run(ctx *Context) error {
	entries := ctx.Tracker.Entries()

	if c.Date != "" {
		date, err := resolveDate(ctx, c.Date)
		if err != nil {
			return err
		}
		entries = query.EntriesByDate(entries, date)
	}
	if c.Section != "" {
		if _, ok := catalog.Get(c.Section); !ok {
			return unknownSectionError(c.Section)
		}
		entries = query.EntriesBySection(entries, c.Section)
	}

	if len(entries) == 0 {
		ctx.println("No entries found.")
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	for i, e := range entries {
		if i > 0 {
			ctx.println()
		}
		printEntry(ctx, e)
	}
	return nil
}

func printEntry(ctx *Context, e models.Entry) {
	ctx.printf("%s  %s  %s\n", e.Date, catalog.Name(e.SectionID), e.ID)
	section, ok := catalog.Get(e.SectionID)
	if !ok {
		section = models.Section{ID: e.SectionID}
	}
	for _, line := range summary.EntryLines(section, e) {
		ctx.printf("    %s: %s\n", line.Name, line.Value)
	}
}

// resolveDate accepts YYYY-MM-DD or "today".
func resolveDate(ctx *Context, date string) (string, error) {
	if date == "" || date == "today" {
		return ctx.Tracker.Today(), nil
	}
	if !utils.ValidateDate(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}
	return date, nil
}

func unknownSectionError(id string) error {
	sections := catalog.ListSections()
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return fmt.Errorf("unknown section %q (valid: %s)", id, strings.Join(ids, ", "))
}
