package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a single field value. Kind selects which of Text, Number or Bool
// holds the payload; rating values are stored in Number.
//
// Stored data keeps only the bare scalar, so Kind after a load is inferred
// from the JSON token: a rating comes back as FieldNumber and long text as
// FieldText. Code that renders or validates a loaded value should go by the
// section's Field.Type, not Kind.
type Value struct {
	Kind   FieldType
	Text   string
	Number float64
	Bool   bool
}

func TextValue(s string) Value {
	return Value{Kind: FieldText, Text: s}
}

func LongTextValue(s string) Value {
	return Value{Kind: FieldLongText, Text: s}
}

func NumberValue(n float64) Value {
	return Value{Kind: FieldNumber, Number: n}
}

func BoolValue(b bool) Value {
	return Value{Kind: FieldBoolean, Bool: b}
}

func RatingValue(n int) Value {
	return Value{Kind: FieldRating, Number: float64(n)}
}

// IsBlank reports whether the value counts as "not filled in" on a form.
// False and numeric zero are real answers; only an unset Kind and
// whitespace-only text are blank.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case FieldText, FieldLongText:
		return strings.TrimSpace(v.Text) == ""
	case FieldBoolean, FieldNumber, FieldRating:
		return false
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Kind {
	case FieldText, FieldLongText:
		return v.Text
	case FieldNumber, FieldRating:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case FieldBoolean:
		if v.Bool {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// MarshalJSON writes the bare scalar so stored data stays a plain
// field id -> value mapping.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldText, FieldLongText:
		return json.Marshal(v.Text)
	case FieldNumber, FieldRating:
		return json.Marshal(v.Number)
	case FieldBoolean:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON infers the kind from the JSON token. Numbers decode as
// FieldNumber since ratings are indistinguishable once stored.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case 'n':
		return fmt.Errorf("null value")
	case '{', '[':
		return fmt.Errorf("unsupported value: %s", data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	}
	return nil
}
