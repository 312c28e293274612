package cli

import (
	"strconv"
	"strings"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/summary"
)

type WeekCmd struct {
	Date string `arg:"" optional:"" help:"Last day of the week to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	week, err := summary.WeeklyFor(catalog.ListSections(), ctx.Tracker.Entries(), date)
	if err != nil {
		return err
	}

	ctx.printf("Week %s to %s\n\n", week.Window[0], week.Window[len(week.Window)-1])

	ctx.printf("Study hours (total %s)\n", formatNumber(week.StudyHours.Sum()))
	for i, d := range week.StudyHours {
		ctx.printf("  %s  %-6s %s\n", week.Weekdays[i], formatNumber(d.Total), bar(d.Total))
	}

	ctx.printf("\nJob applications (total %s)\n", formatNumber(week.JobApplications.Sum()))
	for i, d := range week.JobApplications {
		ctx.printf("  %s  %-6s %s\n", week.Weekdays[i], formatNumber(d.Total), bar(d.Total))
	}

	ctx.printf("\nMoney (spent %s, earned %s)\n", formatNumber(week.Money.TotalA), formatNumber(week.Money.TotalB))
	for i, d := range week.Money.Days {
		ctx.printf("  %s  -%-8s +%s\n", week.Weekdays[i], formatNumber(d.A), formatNumber(d.B))
	}

	ctx.printf("\nDiet streak: current %d, best %d\n", week.DietStreak.Current, week.DietStreak.Max)

	ctx.println("\nMost active sections")
	if len(week.Activity) == 0 {
		ctx.println("  No entries this week.")
	}
	for _, sc := range week.Activity {
		ctx.printf("  %-24s %d\n", sc.Name, sc.Count)
	}
	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// bar draws one block per whole unit, capped so a typo cannot flood the terminal.
func bar(n float64) string {
	const maxWidth = 40
	w := int(n)
	if w < 0 {
		w = 0
	}
	if w > maxWidth {
		w = maxWidth
	}
	return strings.Repeat("█", w)
}
