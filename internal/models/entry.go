package models

import (
	"encoding/json"
	"time"
)

// Data maps field ids to values. A missing key means "not provided", which is
// distinct from an explicit false or 0.
type Data map[string]Value

func (d Data) Has(id string) bool {
	_, ok := d[id]
	return ok
}

// Number returns a numeric or rating value.
func (d Data) Number(id string) (float64, bool) {
	v, ok := d[id]
	if !ok || !v.Kind.IsNumeric() {
		return 0, false
	}
	return v.Number, true
}

func (d Data) Bool(id string) (bool, bool) {
	v, ok := d[id]
	if !ok || v.Kind != FieldBoolean {
		return false, false
	}
	return v.Bool, true
}

func (d Data) Text(id string) (string, bool) {
	v, ok := d[id]
	if !ok || (v.Kind != FieldText && v.Kind != FieldLongText) {
		return "", false
	}
	return v.Text, true
}

func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// UnmarshalJSON keeps every value it can decode and drops the rest, so a
// record written by a different version still loads.
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Data, len(raw))
	for k, msg := range raw {
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		out[k] = v
	}
	*d = out
	return nil
}

// Entry is one dated record submitted against a section
type Entry struct {
	ID        string    `json:"id"`
	SectionID string    `json:"sectionId"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Data      Data      `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e Entry) Clone() Entry {
	out := e
	out.Data = e.Data.Clone()
	return out
}
