// Package gormarchive stores snapshots in a SQL database through gorm.
package gormarchive

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/magcot/magcot/internal/archive/snapshot"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SnapshotRecord is the table row of one saved snapshot. Every Save adds a
// row; the newest row of a name is the current snapshot.
type SnapshotRecord struct {
	ID         uint      `gorm:"primarykey"`
	Name       string    `gorm:"size:128;index:idx_snapshot_name_created"`
	CreatedAt  time.Time `gorm:"index:idx_snapshot_name_created"`
	Document   datatypes.JSON
	Statements string
	Markup     string
}

func (SnapshotRecord) TableName() string { return "snapshots" }

func (r *SnapshotRecord) snapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Name:       r.Name,
		CreatedAt:  r.CreatedAt.UTC(),
		Document:   []byte(r.Document),
		Statements: r.Statements,
		Markup:     r.Markup,
	}
}

// Backend is a gorm-backed snapshot archive.
type Backend struct {
	db     *gorm.DB
	logger zerolog.Logger
	mu     sync.Mutex
}

// New wraps an open database.
func New(db *gorm.DB, log zerolog.Logger) *Backend {
	return &Backend{db: db, logger: log}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.db == nil {
		return fmt.Errorf("db not valid")
	}
	b.logger.Debug().Str("dialect", b.db.Dialector.Name()).Msg("Migrating schema")
	if err := b.db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// Save inserts s as the newest snapshot of its name.
func (b *Backend) Save(s *snapshot.Snapshot) error {
	if err := snapshot.ValidateName(s.Name); err != nil {
		return err
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	rec := SnapshotRecord{
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		Document:   datatypes.JSON(s.Document),
		Statements: s.Statements,
		Markup:     s.Markup,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", s.Name, err)
	}
	b.logger.Info().Str("name", s.Name).Uint("id", rec.ID).Msg("Saved snapshot")
	return nil
}

// Load returns the newest snapshot saved under name.
func (b *Backend) Load(name string) (*snapshot.Snapshot, error) {
	var rec SnapshotRecord
	err := b.db.Where("name = ?", name).
		Order("created_at DESC").Order("id DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, snapshot.NotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}
	return rec.snapshot(), nil
}

// List describes the newest snapshot of each name, sorted by name.
func (b *Backend) List() ([]snapshot.Info, error) {
	var recs []SnapshotRecord
	err := b.db.Model(&SnapshotRecord{}).
		Select("name", "created_at", "id").
		Order("name").Order("created_at DESC").Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	infos := make([]snapshot.Info, 0, len(recs))
	for _, r := range recs {
		if n := len(infos); n > 0 && infos[n-1].Name == r.Name {
			continue
		}
		infos = append(infos, snapshot.Info{Name: r.Name, CreatedAt: r.CreatedAt.UTC()})
	}
	return infos, nil
}

// Dump writes a sqlite database to path with VACUUM INTO, replacing any
// existing file.
func (b *Backend) Dump(path string) error {
	if b.db.Dialector.Name() != "sqlite" {
		return fmt.Errorf("dump needs a sqlite database, not %s", b.db.Dialector.Name())
	}

	if exists, err := os.Stat(path); err == nil && exists != nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	start := time.Now()
	err := b.db.Exec("VACUUM INTO '" + strings.ReplaceAll(path, "'", "''") + "';").Error
	if err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}

	b.logger.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Dumped DB to disk")
	return nil
}
