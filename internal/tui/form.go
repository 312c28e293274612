package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/validation"
)

// EntryForm holds the values bound to a section's generated form.
type EntryForm struct {
	Section models.Section
	text    map[string]*string
	bools   map[string]*bool
}

func NewEntryForm(section models.Section) *EntryForm {
	fm := &EntryForm{
		Section: section,
		text:    make(map[string]*string),
		bools:   make(map[string]*bool),
	}
	for _, f := range section.Fields {
		if f.Type == models.FieldBoolean {
			fm.bools[f.ID] = new(bool)
		} else {
			fm.text[f.ID] = new(string)
		}
	}
	return fm
}

// Set fills a field as if typed into the form.
func (fm *EntryForm) Set(fieldID, value string) {
	if b, ok := fm.bools[fieldID]; ok {
		*b, _ = validation.ParseBool(value)
		return
	}
	if s, ok := fm.text[fieldID]; ok {
		*s = value
	}
}

// Raw returns the form values keyed by field id, ready for
// validation.BuildEntryData.
func (fm *EntryForm) Raw() map[string]string {
	raw := make(map[string]string, len(fm.Section.Fields))
	for _, f := range fm.Section.Fields {
		if b, ok := fm.bools[f.ID]; ok {
			raw[f.ID] = strconv.FormatBool(*b)
			continue
		}
		raw[f.ID] = *fm.text[f.ID]
	}
	return raw
}

// Data validates the form values and converts them to entry data.
func (fm *EntryForm) Data() (models.Data, error) {
	return validation.BuildEntryData(fm.Section, fm.Raw())
}

// Form builds the huh form. Values stay bound to fm, so rebuilding the form
// after a failed submit keeps what the user typed.
func (fm *EntryForm) Form() *huh.Form {
	fields := make([]huh.Field, 0, len(fm.Section.Fields))
	for _, f := range fm.Section.Fields {
		fields = append(fields, fm.field(f))
	}
	return huh.NewForm(
		huh.NewGroup(fields...).
			Title(fm.Section.Name).
			Description(fm.Section.Description),
	).WithTheme(huh.ThemeDracula())
}

func (fm *EntryForm) field(f models.Field) huh.Field {
	title := f.Name
	if f.Required {
		title += " *"
	}

	switch f.Type {
	case models.FieldBoolean:
		return huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(fm.bools[f.ID])

	case models.FieldRating:
		opts := make([]huh.Option[string], 0, len(f.Options)+1)
		if !f.Required {
			opts = append(opts, huh.NewOption("Not provided", ""))
		} else if *fm.text[f.ID] == "" && len(f.Options) > 0 {
			*fm.text[f.ID] = strconv.Itoa(f.Options[0].Value)
		}
		for _, o := range f.Options {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d - %s", o.Value, o.Label), strconv.Itoa(o.Value)))
		}
		return huh.NewSelect[string]().
			Title(title).
			Options(opts...).
			Value(fm.text[f.ID])

	case models.FieldLongText:
		return huh.NewText().
			Title(title).
			Placeholder(f.Placeholder).
			Value(fm.text[f.ID]).
			Validate(requiredText(f))

	case models.FieldNumber:
		return huh.NewInput().
			Title(title).
			Placeholder(f.Placeholder).
			Value(fm.text[f.ID]).
			Validate(func(s string) error {
				if err := requiredText(f)(s); err != nil {
					return err
				}
				if strings.TrimSpace(s) == "" {
					return nil
				}
				if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
					return fmt.Errorf("%s must be a number", f.Name)
				}
				return nil
			})

	default:
		return huh.NewInput().
			Title(title).
			Placeholder(f.Placeholder).
			Value(fm.text[f.ID]).
			Validate(requiredText(f))
	}
}

func requiredText(f models.Field) func(string) error {
	return func(s string) error {
		if f.Required && strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", f.Name)
		}
		return nil
	}
}
