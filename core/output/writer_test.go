package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

func TestStem(t *testing.T) {
	tests := []struct {
		company, role, want string
	}{
		{"Amazon", "SDE - 1", "amazon_sde_1"},
		{"  Goldman Sachs ", "", "goldman_sachs"},
		{"", "SDE-2", "sde_2"},
		{"", "", "interviews"},
		{"***", "---", "interviews"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stem(tt.company, tt.role), "%q/%q", tt.company, tt.role)
	}
}

func TestBatchRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	items := []core.RawInterview{{Company: "Amazon", Role: "SDE - 1", URL: "https://x.com/1", Description: "text"}}
	path, err := w.WriteBatch("Amazon", "SDE - 1", items)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "amazon_sde_1.json"), path)

	got, err := ReadBatch(path)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestWriteEmptyBatch(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteBatch("", "", nil)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestReadBatchErrors(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = ReadBatch(bad)
	assert.ErrorContains(t, err, "decoding batch")
}
