// Package output delivers a rendered report to its destination: stdout, a
// local file, or an S3 object. Reports are rendered in memory first, so a
// destination is only touched once the complete report exists.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	awspkg "github.com/guimove/ocpfleet/internal/aws"
)

// Destination receives a complete rendered report.
type Destination interface {
	Write(ctx context.Context, data []byte) error
	String() string
}

// Uploader stores objects in a bucket.
type Uploader interface {
	Upload(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Options configures Resolve.
type Options struct {
	Stdout      io.Writer
	ContentType string

	// Called lazily, only for s3:// destinations
	NewUploader func(ctx context.Context) (Uploader, error)
}

// Resolve maps a destination string to a Destination:
// "" or "-" is stdout, "s3://bucket/key" is an S3 object, anything else a
// local file path.
func Resolve(dest string, opts Options) (Destination, error) {
	dest = strings.TrimSpace(dest)

	switch {
	case dest == "" || dest == "-":
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		return &WriterDestination{w: w}, nil
	case strings.HasPrefix(dest, "s3://"):
		bucket, key, ok := awspkg.ParseS3URL(dest)
		if !ok {
			return nil, fmt.Errorf("invalid S3 destination %q, expected s3://bucket/key", dest)
		}
		if opts.NewUploader == nil {
			return nil, fmt.Errorf("S3 destination %q: no uploader configured", dest)
		}
		return &S3Destination{
			Bucket:      bucket,
			Key:         key,
			ContentType: opts.ContentType,
			newUploader: opts.NewUploader,
		}, nil
	default:
		return &FileDestination{Path: dest}, nil
	}
}

// WriterDestination writes to an io.Writer, typically stdout.
type WriterDestination struct {
	w io.Writer
}

func (d *WriterDestination) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.w.Write(data)
	return err
}

func (d *WriterDestination) String() string { return "stdout" }

// FileDestination writes a local file atomically: the data goes to a
// temporary file in the same directory which is renamed over Path.
type FileDestination struct {
	Path string
}

func (d *FileDestination) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(d.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		return fmt.Errorf("replacing output file: %w", err)
	}
	return nil
}

func (d *FileDestination) String() string { return d.Path }

// S3Destination uploads to s3://Bucket/Key.
type S3Destination struct {
	Bucket      string
	Key         string
	ContentType string

	newUploader func(ctx context.Context) (Uploader, error)
}

func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := d.newUploader(ctx)
	if err != nil {
		return fmt.Errorf("creating S3 uploader: %w", err)
	}
	return u.Upload(ctx, d.Bucket, d.Key, data, d.ContentType)
}

func (d *S3Destination) String() string {
	return fmt.Sprintf("s3://%s/%s", d.Bucket, d.Key)
}
