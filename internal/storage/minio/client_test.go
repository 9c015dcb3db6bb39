package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookshelf-server/internal/config"
)

// memoryAPI is an objectAPI backed by a map.
type memoryAPI struct {
	buckets map[string]bool
	objects map[string][]byte
	puts    []minioLib.PutObjectOptions

	bucketExistsErr error
	makeBucketErr   error
	putErr          error
	statErr         error
}

func newMemoryAPI() *memoryAPI {
	return &memoryAPI{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryAPI) BucketExists(_ context.Context, bucket string) (bool, error) {
	return m.buckets[bucket], m.bucketExistsErr
}

func (m *memoryAPI) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	if m.makeBucketErr != nil {
		return m.makeBucketErr
	}
	m.buckets[bucket] = true
	return nil
}

func (m *memoryAPI) PutObject(_ context.Context, bucket, name string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if m.putErr != nil {
		return minioLib.UploadInfo{}, m.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	m.objects[bucket+"/"+name] = body
	m.puts = append(m.puts, opts)
	return minioLib.UploadInfo{Bucket: bucket, Key: name, Size: int64(len(body))}, nil
}

func (m *memoryAPI) GetObject(_ context.Context, bucket, name string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	body, ok := m.objects[bucket+"/"+name]
	if !ok {
		return nil, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (m *memoryAPI) RemoveObject(_ context.Context, bucket, name string, _ minioLib.RemoveObjectOptions) error {
	delete(m.objects, bucket+"/"+name)
	return nil
}

func (m *memoryAPI) StatObject(_ context.Context, bucket, name string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	if m.statErr != nil {
		return minioLib.ObjectInfo{}, m.statErr
	}
	if _, ok := m.objects[bucket+"/"+name]; !ok {
		return minioLib.ObjectInfo{}, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return minioLib.ObjectInfo{Key: name}, nil
}

func TestNewSnapshotStore_CreatesBucket(t *testing.T) {
	api := newMemoryAPI()

	s, err := newSnapshotStore(context.Background(), api, "snapshots")
	require.NoError(t, err)
	assert.Equal(t, "snapshots", s.bucket)
	assert.True(t, api.buckets["snapshots"])
}

func TestNewSnapshotStore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		api     *memoryAPI
		bucket  string
		wantMsg string
	}{
		{name: "empty bucket", api: newMemoryAPI(), bucket: "", wantMsg: "bucket name is empty"},
		{name: "exists fails", api: &memoryAPI{bucketExistsErr: errors.New("boom")}, bucket: "b", wantMsg: "failed to check bucket existence"},
		{name: "make fails", api: &memoryAPI{buckets: map[string]bool{}, makeBucketErr: errors.New("boom")}, bucket: "b", wantMsg: "failed to create bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := newSnapshotStore(context.Background(), tt.api, tt.bucket)
			assert.Nil(t, s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSnapshotStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	api := newMemoryAPI()
	s, err := newSnapshotStore(ctx, api, "b")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "catalog/books.json")
	require.NoError(t, err)
	assert.False(t, exists)

	payload := []byte(`{"version":1,"books":[]}`)
	require.NoError(t, s.Upload(ctx, "catalog/books.json", bytes.NewReader(payload), int64(len(payload))))
	assert.Contains(t, api.objects, "b/bookshelf/catalog/books.json")
	require.Len(t, api.puts, 1)
	assert.Equal(t, "application/json", api.puts[0].ContentType)

	exists, err = s.Exists(ctx, "catalog/books.json")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, "catalog/books.json")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, payload, got)

	require.NoError(t, s.Delete(ctx, "catalog/books.json"))
	exists, err = s.Exists(ctx, "catalog/books.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSnapshotStore_UploadError(t *testing.T) {
	api := newMemoryAPI()
	s, err := newSnapshotStore(context.Background(), api, "b")
	require.NoError(t, err)

	api.putErr = errors.New("network down")
	err = s.Upload(context.Background(), "k", bytes.NewReader(nil), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload snapshot")
}

func TestSnapshotStore_StatError(t *testing.T) {
	api := newMemoryAPI()
	s, err := newSnapshotStore(context.Background(), api, "b")
	require.NoError(t, err)

	api.statErr = errors.New("access denied")
	_, err = s.Exists(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat snapshot")
}

func TestSnapshotStore_DownloadMissing(t *testing.T) {
	s, err := newSnapshotStore(context.Background(), newMemoryAPI(), "b")
	require.NoError(t, err)

	_, err = s.Download(context.Background(), "missing")
	assert.Error(t, err)
}

func TestNewSnapshotStore_BadEndpoint(t *testing.T) {
	_, err := NewSnapshotStore(context.Background(), config.Snapshot{Endpoint: "http://bad endpoint", Bucket: "b"})
	assert.Error(t, err)
}
