package validation

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/models"
)

// ConflictType represents the type of catalog problem
type ConflictType string

const (
	ConflictDuplicateSectionID ConflictType = "duplicate_section_id"
	ConflictDuplicateFieldID   ConflictType = "duplicate_field_id"
	ConflictInvalidFieldType   ConflictType = "invalid_field_type"
	ConflictMissingOptions     ConflictType = "missing_options"
	ConflictEmptySection       ConflictType = "empty_section"
	ConflictUnknownSection     ConflictType = "unknown_section"
	ConflictMissingRequired    ConflictType = "missing_required"
)

// Conflict represents a detected problem in the section catalog
type Conflict struct {
	Type        ConflictType
	Description string
	SectionID   string
	FieldID     string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// CheckCatalog verifies section and field ids are unique and every field is
// well formed.
func CheckCatalog(sections []models.Section) ValidationResult {
	var result ValidationResult
	seenSections := make(map[string]bool)

	for _, section := range sections {
		if seenSections[section.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSectionID,
				Description: fmt.Sprintf("section id %q is used more than once", section.ID),
				SectionID:   section.ID,
			})
		}
		seenSections[section.ID] = true

		if len(section.Fields) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptySection,
				Description: fmt.Sprintf("section %q has no fields", section.ID),
				SectionID:   section.ID,
			})
		}

		seenFields := make(map[string]bool)
		for _, field := range section.Fields {
			if seenFields[field.ID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateFieldID,
					Description: fmt.Sprintf("field id %q is used more than once in section %q", field.ID, section.ID),
					SectionID:   section.ID,
					FieldID:     field.ID,
				})
			}
			seenFields[field.ID] = true

			if !field.Type.IsValid() {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidFieldType,
					Description: fmt.Sprintf("field %s.%s has invalid type %q", section.ID, field.ID, field.Type),
					SectionID:   section.ID,
					FieldID:     field.ID,
				})
			}
			if field.Type == models.FieldRating && len(field.Options) == 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictMissingOptions,
					Description: fmt.Sprintf("rating field %s.%s has no options", section.ID, field.ID),
					SectionID:   section.ID,
					FieldID:     field.ID,
				})
			}
		}
	}

	return result
}
