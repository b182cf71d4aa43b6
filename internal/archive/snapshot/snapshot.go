// Package snapshot defines the records kept by the archive backends.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/magcot/magcot/internal/export/markup"
	"github.com/magcot/magcot/internal/export/statement"
	"github.com/magcot/magcot/pkg/core"
)

// TimeFormat stamps snapshot file names.
const TimeFormat = "20060102_150405"

// Snapshot is one archived export of an annotation session.
type Snapshot struct {
	Name       string          `json:"name"`
	CreatedAt  time.Time       `json:"createdAt"`
	Document   json.RawMessage `json:"document"`
	Statements string          `json:"statements,omitempty"`
	Markup     string          `json:"markup,omitempty"`
}

// Info describes an archived snapshot without its payload.
type Info struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Source is what Capture renders. *annotation.Session satisfies it.
type Source interface {
	EncodeDocument(w io.Writer) error
	Statements(order statement.Order) (string, error)
	Markup(coloring markup.Coloring, indent int) (string, error)
}

// ValidateName checks that name can key a snapshot and name a file.
func ValidateName(name string) error {
	if _, err := core.ValidateID(name); err != nil {
		return fmt.Errorf("snapshot name: %w", err)
	}
	return nil
}

// Capture renders src into a snapshot stamped with now.
func Capture(name string, src Source, order statement.Order, coloring markup.Coloring, now time.Time) (*Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var doc bytes.Buffer
	if err := src.EncodeDocument(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	stmts, err := src.Statements(order)
	if err != nil {
		return nil, fmt.Errorf("failed to render statements: %w", err)
	}
	mk, err := src.Markup(coloring, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to render markup: %w", err)
	}

	return &Snapshot{
		Name:       name,
		CreatedAt:  now.UTC().Truncate(time.Second),
		Document:   json.RawMessage(bytes.TrimSpace(doc.Bytes())),
		Statements: stmts,
		Markup:     mk,
	}, nil
}

// Info returns the snapshot's description.
func (s *Snapshot) Info() Info {
	return Info{Name: s.Name, CreatedAt: s.CreatedAt}
}

// NotFound is returned by backends when no snapshot has the name.
func NotFound(name string) error {
	return &core.NotFoundError{What: "snapshot", Key: name}
}
