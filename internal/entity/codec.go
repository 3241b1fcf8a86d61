package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("entity: stored record does not match the character schema")

// SchemaError reports a stored record that cannot be decoded into a
// Character. Records are never silently defaulted.
type SchemaError struct {
	Field string // Offending field, empty when the record is not an object
	Err   error  // Underlying decode failure, nil for a missing field
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("entity: invalid character record: %v", e.Err)
	case e.Err == nil:
		return fmt.Sprintf("entity: character record is missing field %q", e.Field)
	default:
		return fmt.Sprintf("entity: character field %q: %v", e.Field, e.Err)
	}
}

// Unwrap returns the underlying decode failure.
func (e *SchemaError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSchema) hold for any *SchemaError.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// record is the self-describing form of a Character. Pointer fields tell a
// missing field apart from a zero value.
type record struct {
	Name       *string   `json:"name"`
	Class      *string   `json:"class"`
	HP         *uint32   `json:"hp"`
	MaxHP      *uint32   `json:"maxHp"`
	MP         *uint32   `json:"mp"`
	MaxMP      *uint32   `json:"maxMp"`
	Level      *uint8    `json:"level"`
	Experience *uint32   `json:"experience"`
	Inventory  *[]string `json:"inventory"`
}

// Marshal encodes c as a JSON object with named fields.
func Marshal(c Character) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	inventory := c.Inventory
	if inventory == nil {
		inventory = []string{}
	}
	return json.Marshal(record{
		Name:       &c.Name,
		Class:      &c.Class,
		HP:         &c.HP,
		MaxHP:      &c.MaxHP,
		MP:         &c.MP,
		MaxMP:      &c.MaxMP,
		Level:      &c.Level,
		Experience: &c.Experience,
		Inventory:  &inventory,
	})
}

// fieldNames lists the record keys exactly as Marshal writes them.
var fieldNames = []string{"name", "class", "hp", "maxHp", "mp", "maxMp", "level", "experience", "inventory"}

// Unmarshal decodes a record produced by Marshal. Every field must be
// present under its exact name and the record must be the only value in b;
// anything else fails with a *SchemaError.
func Unmarshal(b []byte) (Character, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&fields); err != nil {
		return Character{}, decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Character{}, &SchemaError{Err: errors.New("trailing data after record")}
	}
	if key, ok := misnamedField(fields); ok {
		return Character{}, &SchemaError{Field: key, Err: errors.New("field name does not match schema case")}
	}

	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return Character{}, decodeError(err)
	}

	for _, f := range []struct {
		name    string
		present bool
	}{
		{"name", r.Name != nil},
		{"class", r.Class != nil},
		{"hp", r.HP != nil},
		{"maxHp", r.MaxHP != nil},
		{"mp", r.MP != nil},
		{"maxMp", r.MaxMP != nil},
		{"level", r.Level != nil},
		{"experience", r.Experience != nil},
		{"inventory", r.Inventory != nil},
	} {
		if !f.present {
			return Character{}, &SchemaError{Field: f.name}
		}
	}

	return Character{
		Name:       *r.Name,
		Class:      *r.Class,
		HP:         *r.HP,
		MaxHP:      *r.MaxHP,
		MP:         *r.MP,
		MaxMP:      *r.MaxMP,
		Level:      *r.Level,
		Experience: *r.Experience,
		Inventory:  *r.Inventory,
	}, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaError{Field: typeErr.Field, Err: err}
	}
	return &SchemaError{Err: err}
}

// misnamedField reports the first key, in sorted order, that differs from a
// schema field only by case. encoding/json would otherwise accept it.
func misnamedField(fields map[string]json.RawMessage) (string, bool) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, name := range fieldNames {
			if k != name && strings.EqualFold(k, name) {
				return k, true
			}
		}
	}
	return "", false
}
