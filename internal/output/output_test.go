package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Stdout(t *testing.T) {
	var buf bytes.Buffer
	for _, dest := range []string{"", "-"} {
		d, err := Resolve(dest, Options{Stdout: &buf})
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", dest, err)
		}
		if d.String() != "stdout" {
			t.Errorf("Resolve(%q) = %s, want stdout", dest, d)
		}
	}

	d, _ := Resolve("-", Options{Stdout: &buf})
	if err := d.Write(context.Background(), []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFileDestination_WritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Resolve(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Write(context.Background(), []byte("new")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected new content, got %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file to be cleaned up, found %d entries", len(entries))
	}
}

func TestFileDestination_CanceledLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &FileDestination{Path: path}
	if err := d.Write(ctx, []byte("partial")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Errorf("destination was modified: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file to be cleaned up, found %d entries", len(entries))
	}
}

func TestFileDestination_MissingDir(t *testing.T) {
	d := &FileDestination{Path: filepath.Join(t.TempDir(), "nope", "report.csv")}
	if err := d.Write(context.Background(), []byte("x")); err == nil {
		t.Error("expected error for missing directory")
	}
}

// fakeUploader records a single upload.
type fakeUploader struct {
	bucket, key, contentType string
	body                     []byte
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	f.bucket, f.key, f.body, f.contentType = bucket, key, body, contentType
	return nil
}

func TestResolve_S3(t *testing.T) {
	up := &fakeUploader{}
	created := 0
	opts := Options{
		ContentType: "text/csv",
		NewUploader: func(ctx context.Context) (Uploader, error) {
			created++
			return up, nil
		},
	}

	d, err := Resolve("s3://reports/fleet/ops.csv", opts)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if created != 0 {
		t.Error("uploader should be created lazily")
	}
	if d.String() != "s3://reports/fleet/ops.csv" {
		t.Errorf("unexpected destination %s", d)
	}

	if err := d.Write(context.Background(), []byte("a,b\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if up.bucket != "reports" || up.key != "fleet/ops.csv" || up.contentType != "text/csv" || string(up.body) != "a,b\n" {
		t.Errorf("unexpected upload %+v", up)
	}
}

func TestResolve_InvalidS3(t *testing.T) {
	if _, err := Resolve("s3://bucket-only", Options{NewUploader: func(context.Context) (Uploader, error) { return nil, nil }}); err == nil {
		t.Error("expected error for S3 URL without key")
	}
	if _, err := Resolve("s3://bucket/key", Options{}); err == nil {
		t.Error("expected error without uploader factory")
	}
}
