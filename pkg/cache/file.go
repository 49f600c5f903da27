package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a root directory. It is the
// default backend: captured snapshots survive across runs, so rendering the
// same environment twice skips the second pipdeptree invocation.
type FileCache struct {
	root string
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// entry is the on-disk envelope around a cached payload. The expiry lives in
// the file rather than in its mtime, so copying a cache directory around does
// not extend entry lifetimes.
type entry struct {
	Payload []byte    `json:"payload"`
	Expires time.Time `json:"expires"`
}

func (e entry) expired() bool {
	return !e.Expires.IsZero() && time.Now().After(e.Expires)
}

// Get returns the payload stored under key. Expired or unreadable entries
// count as misses and are removed on the way out; a pip install since the
// last capture makes stale trees worse than no cache at all.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired() {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set stores the payload under key. A ttl of zero means the entry never
// expires. The write goes through a temp file and rename, so a crash
// mid-write leaves the old entry or nothing, never a truncated file.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Payload: data}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry under key if present.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op; entry files need no teardown.
func (c *FileCache) Close() error { return nil }

// path maps a key to its entry file, sharded by the first digest byte so a
// busy cache does not pile every entry into one directory.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.root, sum[:2], sum[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
