package store

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/RekaCodes/anscombes-quartet/server/internal/analysis"
	"github.com/RekaCodes/anscombes-quartet/server/internal/dataset"
)

// Snapshot is one load of the data file. Exactly one of Report or Err is set.
// Snapshots are immutable once published.
type Snapshot struct {
	Path     string
	Dataset  *dataset.Dataset
	Report   *analysis.Report
	Err      error
	Version  uint64
	LoadedAt time.Time
}

// OK reports whether the snapshot holds usable data.
func (s *Snapshot) OK() bool { return s != nil && s.Err == nil && s.Report != nil }

// Store is a thread-safe holder of the current Snapshot for one file.
type Store struct {
	path string
	load func(string) (*dataset.Dataset, error)

	mu   sync.RWMutex
	snap *Snapshot
	subs []func(*Snapshot)
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store for path. The file is not read until Reload is called.
func New(path string) *Store {
	return &Store{
		path: path,
		load: dataset.Load,
		now:  time.Now,
	}
}

// Path returns the file the store reads.
func (s *Store) Path() string { return s.path }

// Current returns the latest snapshot, loading the file on first use.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap
	}
	return s.Reload()
}

// Reload reads the file again, publishes the resulting snapshot and notifies
// subscribers. A failed read replaces the previous snapshot with an error one.
func (s *Store) Reload() *Snapshot {
	next := &Snapshot{Path: s.path}
	ds, err := s.load(s.path)
	if err == nil {
		next.Dataset = ds
		next.Report, err = analysis.Analyze(ds)
	}
	next.Err = err

	s.mu.Lock()
	next.LoadedAt = s.now()
	if s.snap != nil {
		next.Version = s.snap.Version + 1
	} else {
		next.Version = 1
	}
	s.snap = next
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	if next.Err != nil {
		slog.Error("store: dataset load failed", "path", s.path, "version", next.Version, "err", next.Err)
	} else {
		slog.Info("store: dataset loaded", "path", s.path, "version", next.Version, "rows", ds.Len())
	}

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// OnReload registers fn to be called with every newly published snapshot.
// fn runs on the reloading goroutine and must not block.
func (s *Store) OnReload(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
