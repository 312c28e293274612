package models

import (
	"fmt"
	"strings"
)

// FieldType is the declared input type of a section field
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldLongText FieldType = "longtext"
	FieldNumber   FieldType = "number"
	FieldBoolean  FieldType = "boolean"
	FieldRating   FieldType = "rating"
)

func (t FieldType) IsValid() bool {
	switch t {
	case FieldText, FieldLongText, FieldNumber, FieldBoolean, FieldRating:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of this type aggregate as numbers.
func (t FieldType) IsNumeric() bool {
	return t == FieldNumber || t == FieldRating
}

// ParseFieldType parses a field type name. "textarea" is accepted as an alias
// for longtext.
func ParseFieldType(input string) (FieldType, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "textarea" {
		return FieldLongText, nil
	}
	t := FieldType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid field type: %q", input)
	}
	return t, nil
}

// Option is one allowed value of a rating field
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Field describes one typed input within a section's schema
type Field struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
}

// Option returns the rating option with the given value.
func (f Field) Option(value int) (Option, bool) {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Section is one trackable category with its entry form schema
type Section struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Fields      []Field `json:"fields"`
	Frequency   string  `json:"frequency,omitempty"` // advisory only, e.g. "2x/week"
}

// Field returns the field with the given id.
func (s Section) Field(id string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy so callers cannot alias catalog slices.
func (s Section) Clone() Section {
	out := s
	out.Fields = make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		out.Fields[i] = f
		if f.Options != nil {
			out.Fields[i].Options = append([]Option(nil), f.Options...)
		}
	}
	return out
}
