package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/models"
)

type SectionsCmd struct {
	Fields bool `short:"f" help:"Show each section's fields."`
}

func (c *SectionsCmd) Run(ctx *Context) error {
	for _, s := range catalog.ListSections() {
		line := "  " + s.ID + "  " + s.Name
		if s.Frequency != "" {
			line += " (" + s.Frequency + ")"
		}
		ctx.println(line)
		if !c.Fields {
			continue
		}
		for _, f := range s.Fields {
			ctx.printf("      %-14s %-9s %s%s\n", f.ID, f.Type, f.Name, fieldNote(f))
		}
	}
	return nil
}

func fieldNote(f models.Field) string {
	var notes []string
	if f.Required {
		notes = append(notes, "required")
	}
	if n := len(f.Options); n > 0 {
		first, last := f.Options[0], f.Options[n-1]
		notes = append(notes, fmt.Sprintf("%d=%s .. %d=%s", first.Value, first.Label, last.Value, last.Label))
	}
	if len(notes) == 0 {
		return ""
	}
	return " [" + strings.Join(notes, "; ") + "]"
}
