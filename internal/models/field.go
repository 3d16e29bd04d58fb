package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Well-known field names consumed by the scoring engine. The default
// questionnaire uses these as question ids so that answers flow straight
// into scheme matching without a mapping layer.
const (
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldCategory     = "category"
	FieldOccupation   = "occupation"
	FieldAnnualIncome = "annual_income"
	FieldBPL          = "is_bpl"
	FieldDisability   = "has_disability"
)

// FieldKind identifies the type of a field value
type FieldKind string

const (
	// KindBool is a yes/no answer
	KindBool FieldKind = "bool"
	// KindNumber is an integer or float answer
	KindNumber FieldKind = "number"
	// KindText is a free-text or single-select answer
	KindText FieldKind = "text"
)

// FieldValue is the typed value of an answered field
type FieldValue struct {
	Kind   FieldKind
	Bool   bool
	Number float64
	Text   string
}

// BoolValue creates a boolean field value
func BoolValue(v bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: v}
}

// NumberValue creates a numeric field value
func NumberValue(v float64) FieldValue {
	return FieldValue{Kind: KindNumber, Number: v}
}

// TextValue creates a text field value
func TextValue(v string) FieldValue {
	return FieldValue{Kind: KindText, Text: v}
}

// String returns a human-readable rendering of the value
func (v FieldValue) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// fieldValueJSON is the wire form used for session persistence
type fieldValueJSON struct {
	Kind   FieldKind       `json:"kind"`
	Value  json.RawMessage `json:"value"`
	Source string          `json:"source,omitempty"`
}

// Field is a single answered field with its origin section
type Field struct {
	Name          string
	Value         FieldValue
	SourceSection string
}

// FieldStore is a flat mapping of answered field names to typed values.
// It is the only mutable entity in the questionnaire core: later writes
// overwrite earlier ones. Lookups against unanswered fields report
// missing explicitly so that condition evaluation can fail closed.
type FieldStore struct {
	fields map[string]Field
}

// NewFieldStore creates an empty field store
func NewFieldStore() *FieldStore {
	return &FieldStore{fields: make(map[string]Field)}
}

// Set records a value for the named field, overwriting any earlier value
func (fs *FieldStore) Set(name string, value FieldValue, sourceSection string) {
	fs.fields[name] = Field{Name: name, Value: value, SourceSection: sourceSection}
}

// Get returns the value for the named field and whether it has been answered
func (fs *FieldStore) Get(name string) (FieldValue, bool) {
	f, ok := fs.fields[name]
	return f.Value, ok
}

// Number returns the named field as a float64.
// Returns false if the field is unanswered or not numeric.
func (fs *FieldStore) Number(name string) (float64, bool) {
	f, ok := fs.fields[name]
	if !ok || f.Value.Kind != KindNumber {
		return 0, false
	}
	return f.Value.Number, true
}

// Bool returns the named field as a boolean.
// Returns false if the field is unanswered or not boolean.
func (fs *FieldStore) Bool(name string) (bool, bool) {
	f, ok := fs.fields[name]
	if !ok || f.Value.Kind != KindBool {
		return false, false
	}
	return f.Value.Bool, true
}

// Text returns the named field as a string.
// Returns false if the field is unanswered or not text.
func (fs *FieldStore) Text(name string) (string, bool) {
	f, ok := fs.fields[name]
	if !ok || f.Value.Kind != KindText {
		return "", false
	}
	return f.Value.Text, true
}

// Len returns the number of answered fields
func (fs *FieldStore) Len() int {
	return len(fs.fields)
}

// Names returns all answered field names in sorted order for deterministic output
func (fs *FieldStore) Names() []string {
	names := make([]string, 0, len(fs.fields))
	for name := range fs.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextFields returns all free-text and select answers keyed by field name.
// Used for keyword matching against scheme criteria.
func (fs *FieldStore) TextFields() map[string]string {
	out := make(map[string]string)
	for name, f := range fs.fields {
		if f.Value.Kind == KindText && f.Value.Text != "" {
			out[name] = f.Value.Text
		}
	}
	return out
}

// Merge copies every field from other into this store, overwriting duplicates
func (fs *FieldStore) Merge(other *FieldStore) {
	if other == nil {
		return
	}
	for name, f := range other.fields {
		fs.fields[name] = f
	}
}

// Clone returns an independent copy of the store
func (fs *FieldStore) Clone() *FieldStore {
	clone := NewFieldStore()
	for name, f := range fs.fields {
		clone.fields[name] = f
	}
	return clone
}

// MarshalJSON encodes the store as a name -> {kind, value, source} object
func (fs *FieldStore) MarshalJSON() ([]byte, error) {
	out := make(map[string]fieldValueJSON, len(fs.fields))
	for name, f := range fs.fields {
		var raw []byte
		var err error
		switch f.Value.Kind {
		case KindBool:
			raw, err = json.Marshal(f.Value.Bool)
		case KindNumber:
			raw, err = json.Marshal(f.Value.Number)
		case KindText:
			raw, err = json.Marshal(f.Value.Text)
		default:
			err = fmt.Errorf("unknown field kind %q", f.Value.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", name, err)
		}
		out[name] = fieldValueJSON{Kind: f.Value.Kind, Value: raw, Source: f.SourceSection}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON
func (fs *FieldStore) UnmarshalJSON(data []byte) error {
	var in map[string]fieldValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	fs.fields = make(map[string]Field, len(in))
	for name, fj := range in {
		var value FieldValue
		switch fj.Kind {
		case KindBool:
			var b bool
			if err := json.Unmarshal(fj.Value, &b); err != nil {
				return fmt.Errorf("unmarshal field %s: %w", name, err)
			}
			value = BoolValue(b)
		case KindNumber:
			var n float64
			if err := json.Unmarshal(fj.Value, &n); err != nil {
				return fmt.Errorf("unmarshal field %s: %w", name, err)
			}
			value = NumberValue(n)
		case KindText:
			var s string
			if err := json.Unmarshal(fj.Value, &s); err != nil {
				return fmt.Errorf("unmarshal field %s: %w", name, err)
			}
			value = TextValue(s)
		default:
			return fmt.Errorf("field %s: unknown kind %q", name, fj.Kind)
		}
		fs.fields[name] = Field{Name: name, Value: value, SourceSection: fj.Source}
	}
	return nil
}
