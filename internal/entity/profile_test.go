package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestProfileKeepsRecordOrder(t *testing.T) {
	p := NewProfile()
	p.Set("case_id", strptr("abc123"))
	p.Set("name", strptr("Jordan"))
	p.Set("eyes", nil)

	assert.Equal(t, []string{"case_id", "name", "eyes"}, p.Keys())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "abc123", p.CaseID())

	// Re-setting an existing key keeps its position.
	p.Set("name", strptr("Sam"))
	assert.Equal(t, []string{"case_id", "name", "eyes"}, p.Keys())
	assert.Equal(t, "Sam", p.Get("name"))
}

func TestProfileLookupDistinguishesEmptyFromAbsent(t *testing.T) {
	p := NewProfile()
	p.Set("hair", nil)

	v, ok := p.Lookup("hair")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = p.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", p.Get("missing"))
}

func TestProfileNilGuards(t *testing.T) {
	var p *Profile
	assert.Equal(t, "", p.Get("anything"))
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Keys())
}

func TestProfileJSONRoundTripPreservesOrderAndNulls(t *testing.T) {
	p := NewProfile()
	p.Set("case_id", strptr("abc123"))
	p.Set("birth_year", nil)
	p.Set("name", strptr("Jordan"))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"case_id":"abc123","birth_year":null,"name":"Jordan"}`, string(data))

	decoded := NewProfile()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, p.Keys(), decoded.Keys())
	assert.Equal(t, "abc123", decoded.Get("case_id"))
	v, ok := decoded.Lookup("birth_year")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestProfileUnmarshalRejectsNonObject(t *testing.T) {
	p := NewProfile()
	assert.Error(t, json.Unmarshal([]byte(`["not", "an", "object"]`), p))
}

func TestNewFieldMappingSortsKeys(t *testing.T) {
	mapping := NewFieldMapping(map[string]string{
		"name":    "Chosen Name",
		"case_id": "Case ID",
		"eyes":    "Eyes",
	})
	require.Len(t, mapping, 3)
	assert.Equal(t, MapEntry{Key: "case_id", SourceField: "Case ID"}, mapping[0])
	assert.Equal(t, MapEntry{Key: "eyes", SourceField: "Eyes"}, mapping[1])
	assert.Equal(t, MapEntry{Key: "name", SourceField: "Chosen Name"}, mapping[2])
	assert.Equal(t, []string{"Case ID", "Eyes", "Chosen Name"}, mapping.SourceFields())

	assert.Nil(t, NewFieldMapping(nil))
}
