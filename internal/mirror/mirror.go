package mirror

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/noa-physics/dcsdata/internal/fileutil"
	"golang.org/x/sync/errgroup"
)

const (
	// LockFileName is the lock file created in the data directory.
	LockFileName = ".dcsdata.lock"

	// IndexFileName is the SQLite index created in the data directory.
	IndexFileName = ".dcsdata-index.db"

	// DefaultConcurrency is the number of parallel fetches when
	// Config.Concurrency is zero.
	DefaultConcurrency = 4
)

// File is one artifact the mirror should provide locally.
type File struct {
	Name string // artifact name, recorded in the index
	Path string // local path; must lie inside Config.DataDir
}

// Config configures a Mirror.
type Config struct {
	DataDir     string       // local directory the mirror maintains
	Source      Source       // remote store
	Concurrency int          // parallel fetches; zero uses DefaultConcurrency
	Logger      *slog.Logger // nil uses slog.Default
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return DefaultConcurrency
}

func (c Config) validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir must not be empty"))
	}
	if c.Source == nil {
		errs = append(errs, errors.New("source must not be nil"))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	return errors.Join(errs...)
}

// Result summarizes a Sync. Each slice holds artifact names.
type Result struct {
	Fetched  []string // downloaded from the source
	UpToDate []string // already present with a matching index entry
	Adopted  []string // present locally without an index entry; digest recorded
	Skipped  []string // path outside the data dir; left to the loader
}

// Mirror synchronizes a local data directory from a Source.
type Mirror struct {
	cfg Config
}

// New returns a Mirror for cfg.
func New(cfg Config) (*Mirror, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid mirror config: %w", err)
	}
	return &Mirror{cfg: cfg}, nil
}

// plan is the per-file decision made under the lock.
type plan struct {
	file File
	key  string
}

// Sync makes every file in files present and intact under the data
// directory, fetching from the source where needed. It holds the mirror lock
// for its whole duration.
func (m *Mirror) Sync(ctx context.Context, files []File) (Result, error) {
	log := m.cfg.logger()
	start := time.Now()

	if err := fileutil.EnsureDir(m.cfg.DataDir); err != nil {
		return Result{}, err
	}

	lock, err := acquireLock(ctx, filepath.Join(m.cfg.DataDir, LockFileName))
	if err != nil {
		return Result{}, err
	}
	defer releaseLock(log, lock)

	ix, err := openIndex(ctx, filepath.Join(m.cfg.DataDir, IndexFileName), log)
	if err != nil {
		return Result{}, err
	}
	defer ix.close()

	var (
		res     Result
		pending []plan
	)
	for _, f := range files {
		key, ok := m.keyFor(f.Path)
		if !ok {
			log.Debug("artifact outside mirror data dir, not mirrored", "name", f.Name, "path", f.Path)
			res.Skipped = append(res.Skipped, f.Name)
			continue
		}

		state, err := m.check(ctx, ix, f, key)
		if err != nil {
			return res, err
		}
		switch state {
		case stateUpToDate:
			res.UpToDate = append(res.UpToDate, f.Name)
		case stateAdopted:
			res.Adopted = append(res.Adopted, f.Name)
		case stateNeedsFetch:
			pending = append(pending, plan{file: f, key: key})
		}
	}

	fetched, err := m.fetchAll(ctx, ix, pending)
	res.Fetched = fetched
	if err != nil {
		return res, err
	}

	log.Info("mirror synchronized",
		"source", m.cfg.Source.String(),
		"fetched", len(res.Fetched),
		"up_to_date", len(res.UpToDate),
		"adopted", len(res.Adopted),
		"skipped", len(res.Skipped),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// keyFor returns the slash-separated key of path relative to the data dir,
// or ok=false if path is not inside it. Both sides are made absolute first,
// so a relative data dir still matches absolute artifact paths.
func (m *Mirror) keyFor(path string) (string, bool) {
	dir, err := filepath.Abs(m.cfg.DataDir)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

type fileState int

const (
	stateNeedsFetch fileState = iota
	stateUpToDate
	stateAdopted
)

// check classifies a local file against the index. A file without an index
// entry is adopted as-is so that hand-placed data is never overwritten.
func (m *Mirror) check(ctx context.Context, ix *index, f File, key string) (fileState, error) {
	sum, size, err := fileDigest(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return stateNeedsFetch, nil
	}
	if err != nil {
		return stateNeedsFetch, err
	}

	entry, ok, err := ix.lookup(ctx, key)
	if err != nil {
		return stateNeedsFetch, err
	}
	if !ok {
		err := ix.record(ctx, indexEntry{
			Key: key, Name: f.Name, SHA256: sum, Size: size, Source: "local", FetchedAt: time.Now(),
		})
		return stateAdopted, err
	}
	if entry.SHA256 != sum || entry.Size != size {
		m.cfg.logger().Warn("mirrored artifact changed on disk, fetching again",
			"name", f.Name, "path", f.Path, "want_sha256", entry.SHA256, "got_sha256", sum)
		return stateNeedsFetch, nil
	}
	return stateUpToDate, nil
}

// fetchAll downloads every pending file with bounded concurrency and returns
// the names fetched successfully.
func (m *Mirror) fetchAll(ctx context.Context, ix *index, pending []plan) ([]string, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		fetched []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.concurrency())

	for _, p := range pending {
		g.Go(func() error {
			if err := m.fetchOne(gctx, ix, p); err != nil {
				return fmt.Errorf("fetch %s: %w", p.file.Name, err)
			}
			mu.Lock()
			fetched = append(fetched, p.file.Name)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return fetched, err
}

// fetchOne streams one object to its local path and records its digest.
func (m *Mirror) fetchOne(ctx context.Context, ix *index, p plan) error {
	log := m.cfg.logger()
	start := time.Now()

	h := sha256.New()
	n, err := fileutil.WriteFileAtomic(p.file.Path, func(w io.Writer) error {
		return m.cfg.Source.Fetch(ctx, p.key, io.MultiWriter(w, h))
	})
	if err != nil {
		return err
	}

	log.Debug("fetched reference artifact",
		"name", p.file.Name, "key", p.key, "bytes", n, "elapsed", time.Since(start).Round(time.Millisecond))

	return ix.record(ctx, indexEntry{
		Key:       p.key,
		Name:      p.file.Name,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		Size:      n,
		Source:    m.cfg.Source.String(),
		FetchedAt: time.Now(),
	})
}

// Verify recomputes the digest of every indexed file in files and returns the
// names whose content no longer matches the index. Files that are missing or
// were never indexed are reported too.
func (m *Mirror) Verify(ctx context.Context, files []File) ([]string, error) {
	ix, err := openIndex(ctx, filepath.Join(m.cfg.DataDir, IndexFileName), m.cfg.logger())
	if err != nil {
		return nil, err
	}
	defer ix.close()

	var bad []string
	for _, f := range files {
		key, ok := m.keyFor(f.Path)
		if !ok {
			continue
		}
		entry, found, err := ix.lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		sum, size, err := fileDigest(f.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if !found || err != nil || entry.SHA256 != sum || entry.Size != size {
			bad = append(bad, f.Name)
		}
	}
	return bad, nil
}
