package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory API implementation. ListObjectsV2 pages two keys
// at a time to exercise the paginator.
type fakeS3 struct {
	objects map[string][]byte
	getErr  error
	puts    []*s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var names []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) && k > aws.ToString(in.ContinuationToken) {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	out := &s3.ListObjectsV2Output{}
	for i, k := range names {
		if i == 2 {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(names[i-1])
			break
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

var _ API = (*fakeS3)(nil)

func TestKVStore_SetGetDelete(t *testing.T) {
	fake := newFakeS3()
	store := NewKVStore(fake, "bucket", "tpp")
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "2024")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "2024", `[[]]`))
	assert.Contains(t, fake.objects, "tpp/2024.json")
	assert.Equal(t, "application/json", aws.ToString(fake.puts[0].ContentType))

	got, ok, err := store.Get(ctx, "2024")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[[]]`, got)

	require.NoError(t, store.Delete(ctx, "2024"))
	_, ok, err = store.Get(ctx, "2024")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_GetError(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("access denied")
	store := NewKVStore(fake, "bucket", "")

	_, _, err := store.Get(context.Background(), "2024")

	assert.ErrorContains(t, err, "s3://bucket/2024.json")
	assert.ErrorContains(t, err, "access denied")
}

func TestKVStore_KeysPaginates(t *testing.T) {
	fake := newFakeS3()
	store := NewKVStore(fake, "bucket", "tpp/")
	ctx := context.Background()

	for _, k := range []string{"2022", "2023", "2024", "onboarding", "2025"} {
		require.NoError(t, store.Set(ctx, k, "{}"))
	}
	fake.objects["tpp/backup/2020.json"] = []byte("{}")
	fake.objects["tpp/README.txt"] = []byte("hi")
	fake.objects["other/2019.json"] = []byte("{}")

	keys, err := store.Keys(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"2022", "2023", "2024", "2025", "onboarding"}, keys)
}
