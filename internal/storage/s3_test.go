package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Uploader_Upload(t *testing.T) {
	t.Parallel()

	t.Run("puts the object and returns the public url", func(t *testing.T) {
		putter := &mockPutter{}
		putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return *in.Bucket == "photos" && *in.Key == "abc.png" &&
				*in.ContentType == "image/png" && string(body) == "png-bytes"
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		uploader := &S3Uploader{client: putter, bucket: "photos", region: "eu-west-1", publicURL: "https://cdn.example.com"}
		url, err := uploader.Upload(context.Background(), "abc.png", "image/png", []byte("png-bytes"))
		require.NoError(t, err)
		require.Equal(t, "https://cdn.example.com/abc.png", url)
		putter.AssertExpectations(t)
	})

	t.Run("falls back to the bucket url", func(t *testing.T) {
		putter := &mockPutter{}
		putter.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		uploader := &S3Uploader{client: putter, bucket: "photos", region: "eu-west-1"}
		url, err := uploader.Upload(context.Background(), "k.jpg", "image/jpeg", []byte("x"))
		require.NoError(t, err)
		require.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com/k.jpg", url)
	})

	t.Run("wraps client errors", func(t *testing.T) {
		putter := &mockPutter{}
		putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		uploader := &S3Uploader{client: putter, bucket: "photos", region: "eu-west-1"}
		_, err := uploader.Upload(context.Background(), "k.jpg", "image/jpeg", []byte("x"))
		require.ErrorContains(t, err, "access denied")
	})
}
