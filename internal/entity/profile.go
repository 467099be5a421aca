package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aeveltstra/lammpster/constants"
)

// Field is one mapped profile value. A nil value means the field was mapped
// but the store row had no content for it.
type Field struct {
	Key   string
	Value *string
}

// Profile is a flat, ordered record describing one case, built from a store
// row via the configured field mapping. It is immutable by convention once
// the mapper and the derived-field step have run.
type Profile struct {
	fields []Field
	index  map[string]int
}

// NewProfile creates an empty profile.
func NewProfile() *Profile {
	return &Profile{index: make(map[string]int)}
}

// Set assigns a value to key. A repeated key keeps its original position.
func (p *Profile) Set(key string, value *string) {
	if i, ok := p.index[key]; ok {
		p.fields[i].Value = value
		return
	}
	p.index[key] = len(p.fields)
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

// Lookup returns the value stored under key and whether the key exists.
// The value is nil for a present-but-empty field.
func (p *Profile) Lookup(key string) (*string, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.fields[i].Value, true
}

// Get returns the value under key, or "" when the key is absent or empty.
func (p *Profile) Get(key string) string {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return ""
	}
	return *v
}

// Keys returns the field keys in record order.
func (p *Profile) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.fields))
	for i, f := range p.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields.
func (p *Profile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.fields)
}

// CaseID returns the case identifier field, or "" when the mapping did not
// produce one.
func (p *Profile) CaseID() string {
	return p.Get(constants.ProfileKeyCaseID)
}

// MarshalJSON encodes the profile as a flat JSON object preserving record
// order. Empty fields encode as null.
func (p *Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if f.Value == nil {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(*f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object, keeping the document's key order.
func (p *Profile) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("profile: decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("profile: expected a JSON object, got %v", tok)
	}
	if p.index == nil {
		p.index = make(map[string]int)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("profile: decode key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("profile: expected a string key, got %v", keyTok)
		}
		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("profile: decode value for %q: %w", key, err)
		}
		p.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("profile: decode: %w", err)
	}
	return nil
}
