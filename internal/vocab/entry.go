package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Field names recognized in a vocabulary entry
const (
	FieldID           = "id"
	FieldTerm         = "term"
	FieldPartOfSpeech = "partOfSpeech"
	FieldDefinition   = "definition"
	FieldEtymology    = "etymology"

	FieldPartOfSpeechES = "partOfSpeech_es"
	FieldDefinitionES   = "definition_es"
	FieldEtymologyES    = "etymology_es"
)

var (
	// ErrMalformed is returned when a vocabulary file is not a JSON array of objects
	ErrMalformed = errors.New("malformed vocabulary")

	// ErrNotString is returned when a field is present but does not hold a string
	ErrNotString = errors.New("field is not a string")
)

// Entry is a single vocabulary record backed by its raw JSON object
type Entry struct {
	raw []byte
}

// NewEntry wraps a raw JSON object
func NewEntry(raw []byte) (*Entry, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("%w: entry is not a JSON object", ErrMalformed)
	}
	return &Entry{raw: bytes.Clone(raw)}, nil
}

// Has reports whether the field key is present, regardless of its value
func (e *Entry) Has(field string) bool {
	return gjson.GetBytes(e.raw, field).Exists()
}

// Text returns the string value of field
func (e *Entry) Text(field string) (string, error) {
	res := gjson.GetBytes(e.raw, field)
	if !res.Exists() {
		return "", fmt.Errorf("field %q not found", field)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("%w: %q holds %s", ErrNotString, field, res.Type)
	}
	return res.String(), nil
}

// Set stores value under field. New fields are appended after the existing ones.
func (e *Entry) Set(field, value string) error {
	encoded, err := marshalString(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", field, err)
	}

	raw, err := sjson.SetRawBytes(e.raw, field, encoded)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", field, err)
	}
	e.raw = raw
	return nil
}

// ID returns the entry id for log output, falling back to the 1-based position
func (e *Entry) ID(position int) string {
	if res := gjson.GetBytes(e.raw, FieldID); res.Exists() {
		return res.String()
	}
	return strconv.Itoa(position)
}

// Term returns the entry term for log output
func (e *Entry) Term() string {
	if res := gjson.GetBytes(e.raw, FieldTerm); res.Exists() {
		return res.String()
	}
	return "unknown"
}

// IsTranslated reports whether the entry already carries both the Spanish part
// of speech and definition. The Spanish etymology is not considered.
func (e *Entry) IsTranslated() bool {
	return e.Has(FieldPartOfSpeechES) && e.Has(FieldDefinitionES)
}

// Clone returns an independent copy of the entry
func (e *Entry) Clone() *Entry {
	return &Entry{raw: bytes.Clone(e.raw)}
}

// Bytes returns the raw JSON object
func (e *Entry) Bytes() []byte {
	return e.raw
}

// marshalString encodes s as a JSON string literal, leaving non-ASCII and HTML
// characters unescaped.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
