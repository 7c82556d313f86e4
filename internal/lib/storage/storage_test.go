package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/deppfellow/nzwalks/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "tongariro.jpg", strings.NewReader("first"), 5, "image/jpeg"))
	require.NoError(t, store.Save(context.Background(), "tongariro.jpg", strings.NewReader("second"), 6, "image/jpeg"))

	content, err := os.ReadFile(filepath.Join(dir, "tongariro.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	assert.Equal(t, "http://localhost:8080/images/tongariro.jpg", store.URL("http://localhost:8080/", "tongariro.jpg"))
	assert.Equal(t, "http://localhost:8080/images/mt%20cook.png", store.URL("http://localhost:8080", "mt cook.png"))
}

func TestLocalRejectsPathKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.jpg", "nested/key.jpg"} {
		assert.Error(t, store.Save(context.Background(), key, strings.NewReader("x"), 1, ""), key)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLocalSaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	body := io.MultiReader(strings.NewReader("partial"), failingReader{})
	assert.ErrorContains(t, store.Save(context.Background(), "abel-tasman.jpg", body, 0, "image/jpeg"), "connection reset")

	_, err = os.Stat(filepath.Join(dir, "abel-tasman.jpg"))
	assert.True(t, os.IsNotExist(err))
}

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3SaveAndURL(t *testing.T) {
	client := &fakePutObject{}
	store := NewS3(client, "nzwalks-images", "https://cdn.example.com/%s")

	require.NoError(t, store.Save(context.Background(), "milford.png", strings.NewReader("png"), 3, "image/png"))

	assert.Equal(t, "nzwalks-images", aws.ToString(client.input.Bucket))
	assert.Equal(t, "milford.png", aws.ToString(client.input.Key))
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "png", client.body)

	assert.Equal(t, "https://cdn.example.com/milford%20track.png", store.URL("ignored", "milford track.png"))
}

func TestS3SaveError(t *testing.T) {
	store := NewS3(&fakePutObject{err: errors.New("access denied")}, "b", "https://cdn/%s")
	assert.ErrorContains(t, store.Save(context.Background(), "k.jpg", strings.NewReader(""), 0, ""), "access denied")
}

func TestNewSelectsDriver(t *testing.T) {
	store, err := New(context.Background(), &config.StorageConfig{Driver: config.StorageDriverLocal, LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, store)

	_, err = New(context.Background(), &config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
