package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pycheck/internal/diag"
	"pycheck/internal/project"
	"pycheck/internal/source"
)

// Current schema version - increment when CheckPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest keys cached check results by file content and configuration.
type Digest [sha256.Size]byte

// DiskCache хранит результаты проверок по Digest на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CheckPayload stores cached diagnostics for a single file.
type CheckPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Diags []CachedDiag
}

// CachedDiag is a Diagnostic with spans reduced to byte offsets; the FileID is
// reassigned on restore since it differs between runs.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedNote struct {
	Message string
	Start   uint32
	End     uint32
}

type CachedFix struct {
	ID          string
	Title       string
	IsPreferred bool
	Edits       []CachedEdit
}

type CachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
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

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "checks".
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CheckPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload with a
// stale schema counts as a miss.
func (c *DiskCache) Get(key Digest, out *CheckPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey derives the cache key from file content and the parts of the
// configuration that influence diagnostics.
func cacheKey(content []byte, cfg *project.Config) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d;max-blank=%d;", diskCacheSchemaVersion, cfg.Check.MaxBlankLines)
	writeSortedList(h, "select", cfg.Check.Select)
	writeSortedList(h, "ignore", cfg.Check.Ignore)
	h.Write(content)

	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}

func writeSortedList(h io.Writer, label string, ids []string) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	fmt.Fprintf(h, "%s=%v;", label, sorted)
}

// payloadFromBag converts collected diagnostics to their cacheable form.
func payloadFromBag(bag *diag.Bag) *CheckPayload {
	payload := &CheckPayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		cached := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cached.Notes = append(cached.Notes, CachedNote{
				Message: n.Msg,
				Start:   n.Span.Start,
				End:     n.Span.End,
			})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{ID: f.ID, Title: f.Title, IsPreferred: f.IsPreferred}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{
					Start:   e.Span.Start,
					End:     e.Span.End,
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			cached.Fixes = append(cached.Fixes, cf)
		}
		payload.Diags = append(payload.Diags, cached)
	}
	return payload
}

// bagFromPayload restores diagnostics, rebinding spans to fileID.
func bagFromPayload(payload *CheckPayload, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cached := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cached.Severity),
			Code:     diag.Code(cached.Code),
			Message:  cached.Message,
			Primary:  source.Span{File: fileID, Start: cached.Start, End: cached.End},
		}
		for _, n := range cached.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: fileID, Start: n.Start, End: n.End},
				Msg:  n.Message,
			})
		}
		for _, cf := range cached.Fixes {
			f := diag.Fix{ID: cf.ID, Title: cf.Title, IsPreferred: cf.IsPreferred}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{
					Span:    source.Span{File: fileID, Start: e.Start, End: e.End},
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
	return bag
}
