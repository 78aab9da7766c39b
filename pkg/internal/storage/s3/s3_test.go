package s3_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/storage/s3"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "csv/12/people.csv", s3.ObjectKey("csv/", 12, "people.csv"))
	assert.Equal(t, "3/a.csv", s3.ObjectKey("", 3, "a.csv"))
}

// 设置 ENABLE_MINIO_TEST=1 启用，MINIO_ENDPOINT 默认 localhost:9000.
func TestArchive(t *testing.T) {
	if os.Getenv("ENABLE_MINIO_TEST") == "" {
		t.Skip("set ENABLE_MINIO_TEST=1 to enable")
	}

	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = configs.DefaultS3Endpoint
	}

	ctx := context.Background()

	client, err := s3.New(ctx, configs.S3Config{
		Endpoint:        endpoint,
		AccessKeyID:     configs.DefaultS3AccessKeyID,
		SecretAccessKey: configs.DefaultS3SecretAccessKey,
		Bucket:          "csvvault-test",
		Region:          configs.DefaultS3Region,
	})
	require.NoError(t, err)
	require.NoError(t, client.HealthCheck(ctx))

	file := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(file, []byte("name,age\nalice,30\n"), 0o600))

	key := s3.ObjectKey("test/", 1, "people.csv")

	info, err := client.Archive(ctx, key, file, map[string]string{"file-id": "1"})
	require.NoError(t, err)
	assert.EqualValues(t, 19, info.Size)

	require.NoError(t, client.Remove(ctx, key))
}
