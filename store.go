package hoard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Store saves and loads values on the local filesystem.
//
// A Store is safe for concurrent use. Calls on different paths are
// independent; concurrent saves to the same path are not coordinated and
// the last rename wins.
type Store struct {
	cfg *Config
}

// New creates a Store that runs with cfg.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, argumentError("config")
	}
	emitStoreCreated(context.Background(), len(cfg.transforms), len(cfg.extensions.entries))
	return &Store{cfg: cfg}, nil
}

// Config returns the configuration the store runs with.
func (s *Store) Config() *Config {
	return s.cfg
}

// Save serializes value with the codec for path, runs the transform chain
// and writes the result to path.
//
// The write goes to a temporary file in the same directory that is renamed
// over path only after every step has succeeded, so a failed or cancelled
// Save leaves any previous file untouched.
//
// The returned Metadata describes the file as written; Size is the length
// of the transformed payload.
func (s *Store) Save(ctx context.Context, value any, path string, opts *SaveOptions) (meta Metadata, err error) {
	if isNil(value) {
		return Metadata{}, argumentError("value")
	}
	if path == "" {
		return Metadata{}, argumentError("path")
	}
	if opts == nil {
		return Metadata{}, argumentError("save options")
	}

	start := time.Now()
	emitSaveStart(ctx, path)

	codec := s.cfg.Resolve(path)
	var res chainResult
	defer func() {
		emitSaveComplete(ctx, path, codec.ContentType(), len(res.data), time.Since(start), res, err)
	}()

	if err = ctx.Err(); err != nil {
		return Metadata{}, err
	}

	if opts.Overwrite == NoOverwrite {
		exists, serr := pathExists(path)
		if serr != nil {
			return Metadata{}, serr
		}
		if exists {
			return Metadata{}, fmt.Errorf("%w: a file already exists at %s and overwriting was not allowed (use AllowOverwrite)", ErrConflict, path)
		}
	}

	if opts.Encrypt && !s.cfg.CanEncrypt() {
		return Metadata{}, fmt.Errorf("%w: encryption was requested but no cryptographic transform is configured", ErrPreconditionFailed)
	}

	if dir := filepath.Dir(path); dir != "" {
		if merr := os.MkdirAll(dir, 0o755); merr != nil {
			return Metadata{}, ioError("mkdir", dir, merr)
		}
	}

	data, merr := codec.Marshal(value)
	if merr != nil {
		return Metadata{}, newCodecError(ErrMarshal, codec.ContentType(), merr)
	}

	res, err = forward(ctx, s.cfg.transforms, data, opts.Encrypt)
	if err != nil {
		return Metadata{}, err
	}

	if err = writeAtomic(ctx, path, frame(res.data, opts.Encrypt), opts.Overwrite); err != nil {
		return Metadata{}, err
	}

	f, oerr := os.Open(path)
	if oerr != nil {
		return Metadata{}, ioError("open", path, oerr)
	}
	defer f.Close()
	info, serr := f.Stat()
	if serr != nil {
		return Metadata{}, ioError("stat", path, serr)
	}

	return newMetadata(path, int64(len(res.data)), opts.Encrypt || fileEncrypted(f), info.ModTime()), nil
}

// Get opens path and returns a lazy Object. The Object owns the open file
// until it is closed; the caller must call Close.
func (s *Store) Get(ctx context.Context, path string) (obj *Object, err error) {
	if path == "" {
		return nil, argumentError("path")
	}

	start := time.Now()
	var size int64
	defer func() {
		emitGetComplete(ctx, path, int(size), time.Since(start), err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	f, meta, signed, err := s.open(path)
	if err != nil {
		return nil, err
	}
	size = meta.Size
	return newObject(s.cfg, f, meta, signed), nil
}

// List returns metadata for the regular files directly inside dir,
// optionally filtered by extension. Symlinks to regular files are listed
// under the link's name. It does not recurse.
//
// A failure reading any single file aborts the whole listing; no partial
// result is returned.
func (s *Store) List(ctx context.Context, dir string, opts *SearchOptions) (out []Metadata, err error) {
	if dir == "" {
		return nil, argumentError("directory path")
	}
	ext := opts.extension()

	start := time.Now()
	defer func() {
		emitListComplete(ctx, dir, ext, len(out), time.Since(start), err)
	}()

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrNotFound, dir)
		}
		return nil, ioError("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioError("readdir", dir, err)
	}

	result := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if ext != "" && filepath.Ext(entry.Name()) != ext {
			continue
		}

		// Stat follows symlinks, so a link to a regular file is listed and a
		// dangling link fails the listing.
		path := filepath.Join(dir, entry.Name())
		fi, serr := os.Stat(path)
		if serr != nil {
			err = ioError("stat", path, serr)
			return nil, err
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		f, meta, _, derr := s.open(path)
		if derr != nil {
			err = derr
			return nil, err
		}
		_ = f.Close()
		result = append(result, meta)
	}
	return result, nil
}

// ListExtension is List with only an extension filter.
func (s *Store) ListExtension(ctx context.Context, dir, extension string) ([]Metadata, error) {
	return s.List(ctx, dir, &SearchOptions{Extension: extension})
}

// Delete removes the file at path. Deleting an empty path, a missing file,
// or a directory succeeds without doing anything.
func (s *Store) Delete(ctx context.Context, path string) (err error) {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return ioError("stat", path, err)
	}
	if info.IsDir() {
		return nil
	}

	defer func() {
		emitDeleteComplete(ctx, path, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
		return ioError("remove", path, rerr)
	}
	return nil
}

// open opens path, detects the storage signature and builds its metadata.
// On success the returned file is positioned at the start of the payload.
func (s *Store) open(path string) (*os.File, Metadata, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Metadata{}, false, fmt.Errorf("%w: file %s does not exist", ErrNotFound, path)
		}
		return nil, Metadata{}, false, ioError("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Metadata{}, false, ioError("stat", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, Metadata{}, false, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	signed, err := detect(f)
	if err != nil {
		_ = f.Close()
		return nil, Metadata{}, false, ioError("read", path, err)
	}

	size := info.Size()
	if signed {
		size -= int64(len(signature))
	}
	return f, newMetadata(path, size, signed || fileEncrypted(f), info.ModTime()), signed, nil
}

// writeAtomic writes data to a temporary sibling of path and moves it into
// place. A symlink at path is followed so the link target is replaced. With
// NoOverwrite the move is a hard link, which fails if path appeared since the
// caller checked. The temporary file is always removed.
func writeAtomic(ctx context.Context, path string, data []byte, policy OverwritePolicy) (err error) {
	target, err := resolveTarget(path)
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ioError("create", tmp, err)
	}
	committed := false
	defer func() {
		if !committed || policy == NoOverwrite {
			_ = os.Remove(tmp)
		}
	}()

	if _, werr := f.Write(data); werr != nil {
		_ = f.Close()
		return ioError("write", tmp, werr)
	}
	if serr := f.Sync(); serr != nil {
		_ = f.Close()
		return ioError("sync", tmp, serr)
	}
	if cerr := f.Close(); cerr != nil {
		return ioError("close", tmp, cerr)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	if policy == NoOverwrite {
		if lerr := os.Link(tmp, target); lerr != nil {
			if errors.Is(lerr, fs.ErrExist) {
				return fmt.Errorf("%w: a file already exists at %s and overwriting was not allowed (use AllowOverwrite)", ErrConflict, path)
			}
			return ioError("link", target, lerr)
		}
		committed = true
		return nil
	}
	if rerr := os.Rename(tmp, target); rerr != nil {
		return ioError("rename", target, rerr)
	}
	committed = true
	return nil
}

// resolveTarget returns the file a write to path should replace: path
// itself, or the final target when path is an existing symlink.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		return "", ioError("stat", path, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", ioError("resolve", path, err)
	}
	return target, nil
}

// pathExists reports whether anything exists at path.
func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, ioError("stat", path, err)
}

// isNil reports whether v is nil or a nil pointer or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
