package hoard

// Kind tags a Transform with how the chain treats it.
type Kind string

const (
	// KindPlain transforms always run (compression, encoding).
	KindPlain Kind = "plain"

	// KindCryptographic transforms run only when encryption is requested on
	// write, or detected on read.
	KindCryptographic Kind = "cryptographic"

	// KindIntegrity transforms always run. They add and verify checksums.
	KindIntegrity Kind = "integrity"
)

// validKinds contains all valid transform kinds for registration checks.
var validKinds = map[Kind]bool{
	KindPlain:         true,
	KindCryptographic: true,
	KindIntegrity:     true,
}

// IsValidKind returns true if k is a known transform kind.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// gated reports whether a transform of kind k must be skipped when the
// payload is not encrypted.
func (k Kind) gated() bool {
	return k == KindCryptographic
}
