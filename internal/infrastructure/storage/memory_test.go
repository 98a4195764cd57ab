package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryObjectStorage()

	payload := []byte("%PDF-1.4")
	require.NoError(t, s.Upload(ctx, "atas/m1/Ata - Weekly.pdf", payload, "application/pdf"))
	payload[0] = 'X'

	data, contentType, err := s.Download(ctx, "atas/m1/Ata - Weekly.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data), "stored bytes are a copy")
	assert.Equal(t, "application/pdf", contentType)

	u, _, err := s.GenerateDownloadURL(ctx, "atas/m1/Ata - Weekly.pdf", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://storage.local/atas%2Fm1%2FAta%20-%20Weekly.pdf?expires="), u)

	assert.Equal(t, []string{"atas/m1/Ata - Weekly.pdf"}, s.Keys())

	require.NoError(t, s.DeleteObject(ctx, "atas/m1/Ata - Weekly.pdf"))
	_, _, err = s.Download(ctx, "atas/m1/Ata - Weekly.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, _, err = s.GenerateDownloadURL(ctx, "atas/m1/Ata - Weekly.pdf", 0)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Error(t, s.Upload(ctx, "", nil, ""))
}
