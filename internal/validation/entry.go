package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/lifetrack/internal/models"
)

// MissingFieldsError is returned when required fields have no value. Fields
// holds the field display names in schema order.
type MissingFieldsError struct {
	Section string
	Fields  []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("please fill in: %s", strings.Join(e.Fields, ", "))
}

// FieldError reports a value that could not be coerced to its field's type.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

// ParseBool accepts the spellings a user is likely to type.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	case "false", "f", "no", "n", "0", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no")
	}
}

// CoerceValue converts raw form input into a value of the field's type.
func CoerceValue(field models.Field, raw string) (models.Value, error) {
	raw = strings.TrimSpace(raw)
	switch field.Type {
	case models.FieldText:
		return models.TextValue(raw), nil
	case models.FieldLongText:
		return models.LongTextValue(raw), nil
	case models.FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Value{}, &FieldError{Field: field.Name, Value: raw, Reason: "expected a number"}
		}
		return models.NumberValue(n), nil
	case models.FieldBoolean:
		b, err := ParseBool(raw)
		if err != nil {
			return models.Value{}, &FieldError{Field: field.Name, Value: raw, Reason: err.Error()}
		}
		return models.BoolValue(b), nil
	case models.FieldRating:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Value{}, &FieldError{Field: field.Name, Value: raw, Reason: "expected a whole number"}
		}
		if _, ok := field.Option(n); !ok {
			return models.Value{}, &FieldError{Field: field.Name, Value: raw, Reason: fmt.Sprintf("must be one of %s", optionRange(field))}
		}
		return models.RatingValue(n), nil
	default:
		return models.Value{}, &FieldError{Field: field.Name, Value: raw, Reason: fmt.Sprintf("unknown field type %q", field.Type)}
	}
}

func optionRange(field models.Field) string {
	vals := make([]string, len(field.Options))
	for i, opt := range field.Options {
		vals[i] = strconv.Itoa(opt.Value)
	}
	return strings.Join(vals, ", ")
}

// inferValue types a value for a key the schema does not declare.
func inferValue(raw string) models.Value {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberValue(n)
	}
	switch strings.ToLower(raw) {
	case "true", "yes":
		return models.BoolValue(true)
	case "false", "no":
		return models.BoolValue(false)
	}
	return models.TextValue(raw)
}

// BuildEntryData turns raw form input into typed entry data for a section and
// checks required fields. Empty inputs are left out so they read as "not
// provided"; a boolean answered "no" is kept as false. Keys the schema does not declare are kept with
// an inferred type.
func BuildEntryData(section models.Section, raw map[string]string) (models.Data, error) {
	data := make(models.Data, len(raw))
	for _, field := range section.Fields {
		input, ok := raw[field.ID]
		if !ok {
			continue
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		v, err := CoerceValue(field, input)
		if err != nil {
			return nil, err
		}
		data[field.ID] = v
	}

	extra := make([]string, 0)
	for key := range raw {
		if _, declared := section.Field(key); !declared {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		if strings.TrimSpace(raw[key]) == "" {
			continue
		}
		data[key] = inferValue(raw[key])
	}

	if missing := MissingRequired(section, data); len(missing) > 0 {
		return nil, &MissingFieldsError{Section: section.ID, Fields: missing}
	}
	return data, nil
}

// MissingRequired returns the names of required fields without a value.
// An explicit false or 0 is a value.
func MissingRequired(section models.Section, data models.Data) []string {
	var missing []string
	for _, field := range section.Fields {
		if !field.Required {
			continue
		}
		v, ok := data[field.ID]
		if !ok || v.IsBlank() {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
