package storage

import (
	"testing"

	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ImageStore_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ImageStore(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:      "test-bucket",
			AccessKeyID: "test-key",
		}
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config builds store", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "product-images",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "http://localhost:9000",
			PublicBaseURL:   "https://cdn.example.com/",
			UsePathStyle:    true,
		}
		store, err := NewS3ImageStore(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, "https://cdn.example.com/images/p1.png", store.publicURL("images/p1.png"))
	})
}
