package flavour

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	content := `
nsw:
  "Suburb Newtown": "Inner West, high enrolment density."
  "Postcode 2000": "Sydney CBD."
vic:
  "Suburb Fitzroy": "Inner Melbourne."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadNotes(path)
	require.NoError(t, err)

	assert.Equal(t, "Inner West, high enrolment density.", p.Note("Suburb Newtown", "nsw"))
	assert.Equal(t, "Sydney CBD.", p.Note("Postcode 2000", "NSW"))
	assert.Equal(t, "", p.Note("Suburb Newtown", "vic"))
	assert.Equal(t, "", p.Note("Suburb Nowhere", "nsw"))
}

func TestLoadNotes_MissingFile(t *testing.T) {
	_, err := LoadNotes(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadNotes_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`[not, a, map`), 0o644))

	_, err := LoadNotes(path)
	require.Error(t, err)
}

func TestNote_NilProvider(t *testing.T) {
	var p *Provider
	assert.Equal(t, "", p.Note("Suburb Newtown", "nsw"))
}
