// Package archive persists hydration payloads to object storage. Archived
// payloads feed replay tooling: a stored payload can be fed back through a
// Source to reproduce a client bootstrap exactly as it happened.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	errs "github.com/lumina-dev/lumina/internal/errors"
	"github.com/lumina-dev/lumina/pkg/hydrate"
)

// Archiver stores and retrieves payloads by key.
type Archiver interface {
	Store(ctx context.Context, key string, p *hydrate.Payload) error
	Load(ctx context.Context, key string) (*hydrate.Payload, error)
}

// objectAPI is the slice of the S3 client the archive uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Archive stores payloads as JSON objects in an S3 bucket.
type S3Archive struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3Archive creates an archive over an S3 client. Keys are namespaced
// under prefix when one is given.
func NewS3Archive(client *s3.Client, bucket, prefix string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

// Store writes the payload under key.
func (a *S3Archive) Store(ctx context.Context, key string, p *hydrate.Payload) error {
	if p == nil {
		p = hydrate.EmptyPayload()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return errs.New("L020").Wrap(err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.objectKey(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive payload %q: %w", key, err)
	}
	return nil
}

// Load reads the payload stored under key.
func (a *S3Archive) Load(ctx context.Context, key string) (*hydrate.Payload, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.objectKey(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch payload %q: %w", key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read payload %q: %w", key, err)
	}

	p, err, _ := hydrate.NewSource(raw).Take()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (a *S3Archive) objectKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return path.Join(a.prefix, key)
}
