package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/validation"
)

// ValidateCmd checks the section catalog and every stored entry against it.
type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	ctx.println("Validating section catalog...")
	result := validation.CheckCatalog(catalog.ListSections())

	ctx.println("Validating stored entries...")
	for _, e := range ctx.Tracker.Entries() {
		section, ok := catalog.Get(e.SectionID)
		if !ok {
			result.Conflicts = append(result.Conflicts, validation.Conflict{
				Type:        validation.ConflictUnknownSection,
				Description: fmt.Sprintf("entry %s (%s) belongs to unknown section %q", e.ID, e.Date, e.SectionID),
				SectionID:   e.SectionID,
			})
			continue
		}
		if missing := validation.MissingRequired(section, e.Data); len(missing) > 0 {
			result.Conflicts = append(result.Conflicts, validation.Conflict{
				Type:        validation.ConflictMissingRequired,
				Description: fmt.Sprintf("%s entry %s (%s) is missing: %s", section.Name, e.ID, e.Date, strings.Join(missing, ", ")),
				SectionID:   section.ID,
			})
		}
	}

	ctx.println()
	ctx.println(result.FormatReport())

	// conflicts are reported, not treated as a failure
	return nil
}
