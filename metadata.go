package hoard

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// YAMLMimeType is reported for .yaml files regardless of the system MIME
// table.
const YAMLMimeType = "application/x-yaml"

// DefaultMimeType is reported when an extension has no known MIME type.
const DefaultMimeType = "application/octet-stream"

// Metadata describes a stored file. It is derived from the filesystem and
// signature detection on every access and never persisted on its own.
type Metadata struct {
	FullPath     string    // Path as given to the store
	FileName     string    // Base name without extension
	Directory    string    // Parent directory
	Extension    string    // Extension including the dot, or ""
	Size         int64     // Transformed payload length, signature excluded
	IsEncrypted  bool      // Signature present or filesystem-level encryption
	MimeType     string    // Derived from Extension
	LastModified time.Time // Modification time, UTC
}

func newMetadata(path string, size int64, encrypted bool, modTime time.Time) Metadata {
	ext := filepath.Ext(path)
	return Metadata{
		FullPath:     path,
		FileName:     strings.TrimSuffix(filepath.Base(path), ext),
		Directory:    filepath.Dir(path),
		Extension:    ext,
		Size:         size,
		IsEncrypted:  encrypted,
		MimeType:     MimeType(path),
		LastModified: modTime.UTC(),
	}
}

// MimeType returns the MIME type for path's extension, without parameters.
func MimeType(path string) string {
	ext := filepath.Ext(path)
	if ext == ExtYAML {
		return YAMLMimeType
	}
	if ext == "" {
		return DefaultMimeType
	}
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return DefaultMimeType
	}
	if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
		return mediaType
	}
	return typ
}
