package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file loads as empty", func(t *testing.T) {
		s := NewFileStore[identity.Participant](filepath.Join(t.TempDir(), "users.json"))

		got, err := s.Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("save then load round trips and creates the directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "users.json")
		s := NewFileStore[identity.Participant](path)

		require.NoError(t, s.Save(ctx, identity.DefaultParticipants()))
		got, err := s.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, identity.DefaultParticipants(), got)
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must not be left behind")
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewFileStore[identity.Participant](path).Load(ctx)

		assert.Error(t, err)
	})
}
