package blob_test

import (
	"context"
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/blob"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var s blob.Store = blob.NewMemoryStore()

	n, err := s.PutObject(ctx, "big2fit/b.json", []byte(`{}`), "application/json")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	_, err = s.PutObject(ctx, "big2fit/a.json", []byte(`[]`), "application/json")
	require.NoError(t, err)
	_, err = s.PutObject(ctx, "other/c.json", []byte(`1`), "application/json")
	require.NoError(t, err)

	keys, err := s.ListObjects(ctx, "big2fit/")
	require.NoError(t, err)
	assert.Equal(t, []string{"big2fit/a.json", "big2fit/b.json"}, keys)

	got, err := s.GetObject(ctx, "big2fit/a.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.DeleteObject(ctx, "big2fit/a.json"))
	_, err = s.GetObject(ctx, "big2fit/a.json")
	assert.Error(t, err)
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	t.Parallel()
	_, err := blob.NewS3Store(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "bucket")
}

func TestNewS3StoreWithStaticCredentials(t *testing.T) {
	t.Parallel()
	s, err := blob.NewS3Store(context.Background(), config.S3Config{
		Endpoint:    "http://127.0.0.1:9000",
		Region:      "us-east-1",
		Bucket:      "backups",
		AccessKeyID: "id",
		SecretKey:   "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
