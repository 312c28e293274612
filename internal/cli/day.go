package cli

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/summary"
	"github.com/julianstephens/lifetrack/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	Prev bool   `help:"Show the day before the given date." xor:"shift"`
	Next bool   `help:"Show the day after the given date." xor:"shift"`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}
	switch {
	case c.Prev:
		date, err = utils.ShiftDate(date, -1)
	case c.Next:
		date, err = utils.ShiftDate(date, 1)
	}
	if err != nil {
		return err
	}

	day := summary.Daily(catalog.ListSections(), ctx.Tracker.Entries(), date)

	ctx.printf("%s\n", day.LongDate)
	ctx.printf("%d of %d sections completed (%d%%)\n\n", len(day.Completion.Completed), day.Completion.Total(), day.Percent())

	for _, s := range day.Sections {
		mark := "○"
		detail := ""
		if s.Completed {
			mark = "✓"
			detail = "1 entry"
			if s.Entries > 1 {
				detail = fmt.Sprintf("%d entries", s.Entries)
			}
		}
		ctx.printf("  %s %-24s %s\n", mark, s.Section.Name, detail)
	}
	return nil
}
