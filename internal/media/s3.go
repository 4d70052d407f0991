// Package media removes accommodation images from S3.
package media

import (
	"context"
	"fmt"
	"strings"

	"accommodations/internal/accommodation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 allows up to 1000 objects per delete request
const maxKeysPerRequest = 1000

type S3API interface {
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// FailedObject is a key S3 refused to delete inside an otherwise successful batch.
type FailedObject struct {
	Key     string
	Code    string
	Message string
}

// DeleteError reports the per-object failures of a DeleteObjects call.
type DeleteError struct {
	Bucket string
	Failed []FailedObject
}

func (e *DeleteError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		parts = append(parts, fmt.Sprintf("%s (%s: %s)", f.Key, f.Code, f.Message))
	}
	return fmt.Sprintf("failed to delete %d object(s) from %s: %s", len(e.Failed), e.Bucket, strings.Join(parts, ", "))
}

// S3Store deletes objects from the accommodation bucket.
type S3Store struct {
	client S3API
	bucket string
}

var _ accommodation.MediaStore = (*S3Store)(nil)

func NewS3Store(client S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: strings.TrimSpace(bucket)}
}

// DeleteMany skips blank keys. SDK errors are returned unwrapped so their
// message reaches the API response as S3 wrote it.
func (s *S3Store) DeleteMany(ctx context.Context, keys []string) error {
	keys = nonBlank(keys)
	if len(keys) == 0 {
		return nil
	}
	if s.bucket == "" {
		return fmt.Errorf("ACCOMMODATION_MEDIA_BUCKET not set")
	}

	var failed []FailedObject
	for start := 0; start < len(keys); start += maxKeysPerRequest {
		end := min(start+maxKeysPerRequest, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}

		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return err
		}

		for _, e := range out.Errors {
			failed = append(failed, FailedObject{
				Key:     aws.ToString(e.Key),
				Code:    aws.ToString(e.Code),
				Message: aws.ToString(e.Message),
			})
		}
	}

	if len(failed) > 0 {
		return &DeleteError{Bucket: s.bucket, Failed: failed}
	}
	return nil
}

func nonBlank(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			out = append(out, k)
		}
	}
	return out
}
