package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/orbita/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		assert.ErrorContains(t, err, "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.ObjectStorageConfig{AccessKey: "k", SecretKey: "s"})
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.ObjectStorageConfig{Bucket: "atas", SecretKey: "s"})
		assert.ErrorContains(t, err, "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.ObjectStorageConfig{Bucket: "atas", AccessKey: "k"})
		assert.ErrorContains(t, err, "secret key is required")
	})

	t.Run("defaults presign expiration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.ObjectStorageConfig{Bucket: "atas", AccessKey: "k", SecretKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, "atas", s.GetBucket())
		assert.Equal(t, defaultPresignExpiration, s.presignExpiration)
	})

	t.Run("option overrides config", func(t *testing.T) {
		s, err := NewS3ObjectStorage(
			&config.ObjectStorageConfig{Bucket: "atas", AccessKey: "k", SecretKey: "s", PresignTTL: time.Minute},
			WithPresignExpiration(time.Hour),
			WithLogger(zaptest.NewLogger(t)),
		)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestS3ObjectStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(&config.ObjectStorageConfig{
		Endpoint:     "http://localhost:9000",
		Bucket:       "atas",
		AccessKey:    "k",
		SecretKey:    "s",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	u, expiresAt, err := s.GenerateDownloadURL(context.Background(), "atas/m1/ata.pdf", 5*time.Minute)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/atas/atas/m1/ata.pdf?"), u)
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=300")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)

	_, _, err = s.GenerateDownloadURL(context.Background(), "", 0)
	assert.Error(t, err)
}

// fakeS3 serves path-style object requests for a single bucket
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.URL.Path
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[key] = data
		f.types[key] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		data, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			}
			return
		}
		w.Header().Set("Content-Type", f.types[key])
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3ObjectStorage_ObjectLifecycle(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewS3ObjectStorage(&config.ObjectStorageConfig{
		Endpoint:     srv.URL,
		Bucket:       "atas",
		AccessKey:    "k",
		SecretKey:    "s",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "anexos/m1/a1/plan.txt", []byte("hello"), "text/plain"))
	assert.Contains(t, fake.objects, "/atas/anexos/m1/a1/plan.txt")

	data, contentType, err := s.Download(ctx, "anexos/m1/a1/plan.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "text/plain", contentType)

	exists, err := s.ObjectExists(ctx, "anexos/m1/a1/plan.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "anexos/m1/a1/plan.txt"))

	exists, err = s.ObjectExists(ctx, "anexos/m1/a1/plan.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = s.Download(ctx, "anexos/m1/a1/plan.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(&config.ObjectStorageConfig{Bucket: "atas", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, s.Upload(ctx, "", nil, ""))
	assert.Error(t, s.DeleteObject(ctx, ""))
	_, _, err = s.Download(ctx, "")
	assert.Error(t, err)
	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
}
