package backup

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 accepts PUTs and records them by path
type fakeS3 struct {
	status int
	puts   map[string][]byte
	types  map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.status != 0 {
		body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`
		return &http.Response{
			StatusCode: f.status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Content-Type": {"application/xml"}},
			Request:    req,
		}, nil
	}
	if req.Method != http.MethodPut {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: http.NoBody, Header: http.Header{}, Request: req}, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	f.puts[req.URL.Path] = data
	f.types[req.URL.Path] = req.Header.Get("Content-Type")
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       http.NoBody,
		Header:     http.Header{"Etag": {`"etag"`}},
		Request:    req,
	}, nil
}

func newFakeUploader(t *testing.T, rt *fakeS3) *S3Uploader {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.RetryMaxAttempts = 1
	})
	return NewS3UploaderWithClient(client, "vista-backups")
}

func TestS3Uploader_Upload(t *testing.T) {
	rt := &fakeS3{puts: map[string][]byte{}, types: map[string]string{}}
	up := newFakeUploader(t, rt)

	err := up.Upload(context.Background(), "snapshots/a.msgpack", []byte("payload"), "application/msgpack")
	require.NoError(t, err)

	assert.Equal(t, []byte("payload"), rt.puts["/vista-backups/snapshots/a.msgpack"])
	assert.Equal(t, "application/msgpack", rt.types["/vista-backups/snapshots/a.msgpack"])
	assert.Equal(t, "vista-backups", up.Bucket())
}

func TestS3Uploader_APIError(t *testing.T) {
	rt := &fakeS3{status: http.StatusForbidden, puts: map[string][]byte{}, types: map[string]string{}}
	up := newFakeUploader(t, rt)

	err := up.Upload(context.Background(), "snapshots/a.msgpack", []byte("payload"), "application/msgpack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
	assert.Empty(t, rt.puts)
}

func TestNewS3Uploader(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3Config{})
	assert.EqualError(t, err, ErrMsgBucketEmpty)

	up, err := NewS3Uploader(context.Background(), S3Config{
		Bucket:          "bkt",
		Region:          "eu-central-1",
		Endpoint:        "http://localhost:9000",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)
	assert.Equal(t, "bkt", up.Bucket())
}
