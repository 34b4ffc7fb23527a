package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simpleupdown/updown/pkg/storage"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client storage.S3Client, cfg storage.S3Config) *storage.S3Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "archive"
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	s, err := storage.NewS3Storage(context.Background(), cfg, storage.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	_, err := storage.NewS3Storage(context.Background(), storage.S3Config{Region: "auto"})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)

	s := newS3(t, new(MockS3Client), storage.S3Config{Endpoint: "https://acct.r2.cloudflarestorage.com/"})
	assert.Equal(t, "archive", s.Bucket())
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com/archive/k/a%20b.txt", s.URL("k/a b.txt"))

	awsStore := newS3(t, new(MockS3Client), storage.S3Config{Region: "eu-west-1", Prefix: "/updown/"})
	assert.Equal(t, "https://archive.s3.eu-west-1.amazonaws.com/updown/k", awsStore.URL("k"))
	assert.Empty(t, awsStore.URL("../k"))
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	t.Run("uploads with length and prefix", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return aws.ToString(in.Bucket) == "archive" &&
				aws.ToString(in.Key) == "updown/abc/f.txt" &&
				aws.ToString(in.ContentType) == "text/plain" &&
				aws.ToInt64(in.ContentLength) == 5 &&
				string(body) == "hello"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		s := newS3(t, client, storage.S3Config{Prefix: "updown"})
		obj, err := s.Put(context.Background(), "abc/f.txt", strings.NewReader("hello"), 5, "text/plain")
		require.NoError(t, err)
		assert.Equal(t, "abc/f.txt", obj.Key)
		client.AssertExpectations(t)
	})

	t.Run("unknown size is buffered", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			_, seekable := in.Body.(io.Seeker)
			return seekable && aws.ToInt64(in.ContentLength) == 5 &&
				aws.ToString(in.ContentType) == "application/octet-stream"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		s := newS3(t, client, storage.S3Config{})
		body := struct{ io.Reader }{strings.NewReader("hello")}
		obj, err := s.Put(context.Background(), "f", body, -1, "")
		require.NoError(t, err)
		assert.Equal(t, int64(5), obj.Size)
		client.AssertExpectations(t)
	})

	t.Run("unreadable body", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newS3(t, client, storage.S3Config{})
		_, err := s.Put(context.Background(), "f", iotest.ErrReader(errors.New("reset")), -1, "")
		assert.ErrorIs(t, err, storage.ErrFailedToWriteFile)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		s := newS3(t, client, storage.S3Config{})
		_, err := s.Put(context.Background(), "f", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, storage.ErrAccessDenied)
	})

	t.Run("invalid key never reaches S3", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		s := newS3(t, client, storage.S3Config{})
		_, err := s.Put(context.Background(), "../f", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headErr error
		want    bool
		wantErr error
	}{
		{name: "present"},
		{name: "not found", headErr: &types.NotFound{}, want: false},
		{name: "no such key", headErr: &types.NoSuchKey{}, want: false},
		{name: "throttled", headErr: &smithy.GenericAPIError{Code: "SlowDown"}, wantErr: storage.ErrServiceUnavailable},
		{name: "missing bucket", headErr: &types.NoSuchBucket{}, wantErr: storage.ErrBucketNotFound},
		{name: "deadline", headErr: context.DeadlineExceeded, wantErr: storage.ErrOperationTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			if tt.headErr != nil {
				client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.headErr)
			} else {
				client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
			}

			s := newS3(t, client, storage.S3Config{})
			ok, err := s.Exists(context.Background(), "k")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.headErr == nil, ok)
		})
	}
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
			return aws.ToString(in.Key) == "k"
		}), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return aws.ToString(in.Key) == "k"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		s := newS3(t, client, storage.S3Config{})
		require.NoError(t, s.Delete(context.Background(), "k"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

		s := newS3(t, client, storage.S3Config{})
		err := s.Delete(context.Background(), "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unclassified error keeps cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection reset")
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		s := newS3(t, client, storage.S3Config{})
		err := s.Delete(context.Background(), "k")
		assert.ErrorIs(t, err, cause)
	})
}
