package hoard

import (
	"bytes"
	"errors"
	"io"
)

// signature prefixes every file whose payload went through the encryption
// path. It is fixed and unversioned.
var signature = []byte("__hoard.sealed__")

// frame returns the on-disk bytes for payload.
func frame(payload []byte, encrypted bool) []byte {
	if !encrypted {
		return payload
	}
	out := make([]byte, 0, len(signature)+len(payload))
	out = append(out, signature...)
	return append(out, payload...)
}

// detect reads exactly len(signature) bytes from the head of r. When they
// match, the signature stays consumed and detect reports true. Otherwise r
// is rewound to the start.
func detect(r io.ReadSeeker) (bool, error) {
	head := make([]byte, len(signature))
	_, err := io.ReadFull(r, head)
	switch {
	case err == nil && bytes.Equal(head, signature):
		return true, nil
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if _, serr := r.Seek(0, io.SeekStart); serr != nil {
			return false, serr
		}
		return false, nil
	default:
		return false, err
	}
}
