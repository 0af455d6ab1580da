package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		f, err := Parse([]byte(`
participants:
  - email: a@example.com
    fields:
      name: Asha
      gender: female
      year: "3"
`))
		require.NoError(t, err)
		require.Len(t, f.Participants, 1)
		assert.Equal(t, map[string]interface{}{"name": "Asha", "gender": "female", "year": "3"}, f.Participants[0].Values())
	})

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "participants:\n  - email: a@example.com\n    fields: {name: A}\n    team: X\n", "field team not found"},
		{"bad email", "participants:\n  - email: not-an-email\n    fields: {name: A}\n", "invalid fixtures"},
		{"missing fields", "participants:\n  - email: a@example.com\n", "invalid fixtures"},
		{"repeated email", "participants:\n  - email: a@example.com\n    fields: {name: A}\n  - email: A@example.com\n    fields: {name: B}\n", "repeats"},
		{"not yaml", "participants: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("shipped fixtures", func(t *testing.T) {
		f, err := Load(filepath.Join("..", "..", "configs", "fixtures.yaml"))
		require.NoError(t, err)
		assert.Len(t, f.Participants, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
