package hoard

// OverwritePolicy controls what Save does when the destination exists.
type OverwritePolicy int

const (
	// AllowOverwrite replaces an existing file.
	AllowOverwrite OverwritePolicy = iota

	// NoOverwrite fails with ErrConflict when the file exists.
	NoOverwrite
)

func (p OverwritePolicy) String() string {
	switch p {
	case AllowOverwrite:
		return "allow-overwrite"
	case NoOverwrite:
		return "no-overwrite"
	default:
		return "unknown"
	}
}

// SaveOptions governs a single Save call.
type SaveOptions struct {
	// Encrypt runs cryptographic transforms and frames the file with the
	// storage signature. Requires at least one KindCryptographic transform.
	Encrypt bool

	// Overwrite decides whether an existing file may be replaced.
	Overwrite OverwritePolicy
}

// SearchOptions filters List results.
type SearchOptions struct {
	// Extension keeps only files with this extension. Empty keeps all files.
	Extension string
}

func (o *SearchOptions) extension() string {
	if o == nil {
		return ""
	}
	return normalizeExtension(o.Extension)
}
