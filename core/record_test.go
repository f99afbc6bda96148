package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDefaults(t *testing.T) {
	var f Field
	assert.False(t, f.IsFound())
	assert.Equal(t, NotAvailable, f.String())
	assert.Equal(t, "x", f.Or("x"))

	f = Found("Virtual")
	v, ok := f.Get()
	assert.True(t, ok)
	assert.Equal(t, "Virtual", v)
	assert.Equal(t, "Virtual", f.String())
}

func TestFieldJSON(t *testing.T) {
	rec := RoundRecord{Number: 1, Mode: Found("Virtual")}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"Virtual"`)
	assert.Contains(t, string(data), `"duration":null`)

	var back RoundRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Found("Virtual"), back.Mode)
	assert.Equal(t, NotFound, back.Duration)
}

func TestParseDifficulty(t *testing.T) {
	tests := map[string]Difficulty{
		"Easy":      Easy,
		" moderate": Moderate,
		"HARD":      Hard,
		"medium":    Unknown,
		"":          Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseDifficulty(in), "input %q", in)
	}
}
