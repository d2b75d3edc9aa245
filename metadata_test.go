package hoard

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMimeType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.yaml", YAMLMimeType},
		{"a.json", "application/json"},
		{"index.html", "text/html"},
		{"img.png", "image/png"},
		{"a", DefaultMimeType},
		{"a.zzunknownext", DefaultMimeType},
		{"data.persisted", DefaultMimeType},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MimeType(tt.path); got != tt.want {
				t.Errorf("MimeType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewMetadata(t *testing.T) {
	mod := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3600))
	path := filepath.Join("store", "reports", "q3.json")

	meta := newMetadata(path, 128, true, mod)

	if meta.FullPath != path {
		t.Errorf("FullPath = %q", meta.FullPath)
	}
	if meta.FileName != "q3" {
		t.Errorf("FileName = %q, want %q", meta.FileName, "q3")
	}
	if meta.Directory != filepath.Join("store", "reports") {
		t.Errorf("Directory = %q", meta.Directory)
	}
	if meta.Extension != ".json" {
		t.Errorf("Extension = %q", meta.Extension)
	}
	if meta.Size != 128 || !meta.IsEncrypted {
		t.Errorf("Size=%d IsEncrypted=%v", meta.Size, meta.IsEncrypted)
	}
	if meta.MimeType != "application/json" {
		t.Errorf("MimeType = %q", meta.MimeType)
	}
	if meta.LastModified.Location() != time.UTC || !meta.LastModified.Equal(mod) {
		t.Errorf("LastModified = %v, want %v in UTC", meta.LastModified, mod)
	}
}

func TestNewMetadata_NoExtension(t *testing.T) {
	meta := newMetadata("dir/README", 0, false, time.Now())
	if meta.FileName != "README" || meta.Extension != "" || meta.MimeType != DefaultMimeType {
		t.Errorf("meta = %+v", meta)
	}
}
