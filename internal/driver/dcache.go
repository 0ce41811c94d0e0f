package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when diskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores evaluated reports keyed by the script's content hash.
// Only rendered text and statistics are cached; the type graph itself is
// never serialized. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload is the on-disk form of a Report.
type diskPayload struct {
	Schema  uint16
	Entries []Entry
	Stats   cachedStats
}

// cachedStats mirrors types.Stats field for field, so the cache format stays
// stable even if the store's Stats type grows.
type cachedStats struct {
	Nodes     int
	Integers  int
	Functions int
	Structs   int
	Arrays    int
	Vectors   int
	Pointers  int
	Opaques   uint64
}

// OpenDiskCache initializes a disk cache at the standard user cache location
// (or XDG_CACHE_HOME when set).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		var err error
		base, err = os.UserCacheDir()
		if err != nil {
			return nil, err
		}
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(content []byte) string {
	sum := sha256.Sum256(content)
	return filepath.Join(c.dir, "reports", hex.EncodeToString(sum[:])+".mp")
}

// Put serializes and writes a report keyed by the script content.
func (c *DiskCache) Put(content []byte, rep *Report) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(content)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := diskPayload{
		Schema:  diskCacheSchemaVersion,
		Entries: rep.Entries,
		Stats:   statsToPayload(rep.Stats),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a cached report for the given script content. The boolean is
// false on a clean miss.
func (c *DiskCache) Get(content []byte) (*Report, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(content))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &Report{
		Entries: payload.Entries,
		Stats:   payloadToStats(payload.Stats),
	}, true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "reports"))
}
