package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *MinioStorage {
	t.Helper()
	s, err := NewMinioStorage(Options{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "file-share-app-uploads",
		Region:    "us-east-1",
	})
	if err != nil {
		t.Fatalf("NewMinioStorage: %v", err)
	}
	return s
}

func TestSignUploadAndDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sign func(context.Context, string, time.Duration) (string, error)
	}{
		{"upload", s.SignUpload},
		{"download", s.SignDownload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.sign(ctx, "a1b2c3_report.pdf", 15*time.Minute)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("parse %q: %v", raw, err)
			}
			if !strings.HasSuffix(u.Path, "/file-share-app-uploads/a1b2c3_report.pdf") {
				t.Errorf("path = %q, want bucket/key", u.Path)
			}
			q := u.Query()
			if q.Get("X-Amz-Expires") != "900" {
				t.Errorf("X-Amz-Expires = %q, want 900", q.Get("X-Amz-Expires"))
			}
			if q.Get("X-Amz-Signature") == "" {
				t.Errorf("missing X-Amz-Signature in %q", raw)
			}
		})
	}
}

func TestNewMinioStorageRequiresBucket(t *testing.T) {
	if _, err := NewMinioStorage(Options{Endpoint: "localhost:9000"}); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}
