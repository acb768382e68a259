package artifacts

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Parallel()

	a, b := Name("123"), Name("123")
	assert.Regexp(t, regexp.MustCompile(`^123_[0-9a-f]{32}\.json$`), a)
	assert.NotEqual(t, a, b)
}

func TestFileStore_SaveJSON(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "error_logs")
	store := NewFileStore(dir)

	path, err := SaveJSON(context.Background(), store, "p7", map[string]any{"project_id": "p7"})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id": "p7"}`, string(data))
}

type fakePutter struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakePutter) PutObject(_ context.Context, bucket, key string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket, f.key, f.contentType = bucket, key, opts.ContentType
	f.body, _ = io.ReadAll(r)
	return minio.UploadInfo{Bucket: bucket, Key: key}, f.err
}

func TestObjectStore_Save(t *testing.T) {
	t.Parallel()

	putter := &fakePutter{}
	store := &ObjectStore{client: putter, bucket: "runs", prefix: "error_logs"}

	loc, err := store.Save(context.Background(), "p1_abc.json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "s3://runs/error_logs/p1_abc.json", loc)
	assert.Equal(t, "error_logs/p1_abc.json", putter.key)
	assert.Equal(t, "application/json", putter.contentType)
	assert.Equal(t, []byte(`{}`), putter.body)

	putter.err = errors.New("denied")
	_, err = store.Save(context.Background(), "p1_def.json", []byte(`{}`))
	assert.ErrorContains(t, err, "denied")
}

func TestObjectStoreConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.Error(t, ObjectStoreConfig{}.Validate())
	assert.NoError(t, ObjectStoreConfig{Endpoint: "localhost:9000", Bucket: "b"}.Validate())
	_, err := NewObjectStore(ObjectStoreConfig{Bucket: "b"})
	assert.Error(t, err)
}
