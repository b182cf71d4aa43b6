// internal/archive/archive.go
package archive

import (
	"github.com/magcot/magcot/internal/archive/snapshot"
)

// Backend is the interface all snapshot archives must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Save stores s as the newest snapshot of its name.
	Save(s *snapshot.Snapshot) error
	// Load returns the newest snapshot of name, or a core.NotFoundError.
	Load(name string) (*snapshot.Snapshot, error)
	// List describes the newest snapshot of each name, sorted by name.
	List() ([]snapshot.Info, error)
}

// Dumper is an optional interface for backends that can copy their whole
// database to a file.
type Dumper interface {
	Dump(path string) error
}
