// internal/archive/memory/memory.go
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/magcot/magcot/internal/archive/snapshot"
	"github.com/magcot/magcot/internal/config"
)

// Backend keeps the newest snapshot of each name in memory and writes every
// saved snapshot to a JSON file in the output directory.
type Backend struct {
	cfg       config.MemoryConfig
	snapshots map[string]*snapshot.Snapshot
	lastPath  string
	mu        sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:       cfg,
		snapshots: make(map[string]*snapshot.Snapshot),
	}
}

// Init loads the snapshots already present in the output directory.
func (b *Backend) Init() error {
	found, err := b.readDir()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range found {
		b.keep(s)
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// Save writes s to disk and makes it the current snapshot of its name.
func (b *Backend) Save(s *snapshot.Snapshot) error {
	if err := snapshot.ValidateName(s.Name); err != nil {
		return err
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	path, err := b.export(s)
	if err != nil {
		return err
	}
	b.lastPath = path
	b.keep(s)
	return nil
}

// Load returns the newest snapshot saved under name.
func (b *Backend) Load(name string) (*snapshot.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.snapshots[name]
	if !ok {
		return nil, snapshot.NotFound(name)
	}
	cp := *s
	return &cp, nil
}

// List describes the current snapshot of each name, sorted by name.
func (b *Backend) List() ([]snapshot.Info, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	infos := make([]snapshot.Info, 0, len(b.snapshots))
	for _, s := range b.snapshots {
		infos = append(infos, s.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// LastPath returns the file written by the most recent Save.
func (b *Backend) LastPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastPath
}

// keep must be called with the lock held.
func (b *Backend) keep(s *snapshot.Snapshot) {
	if cur, ok := b.snapshots[s.Name]; ok && cur.CreatedAt.After(s.CreatedAt) {
		return
	}
	b.snapshots[s.Name] = s
}
