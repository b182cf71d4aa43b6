package snapshot

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/magcot/magcot/internal/export/markup"
	"github.com/magcot/magcot/internal/export/statement"
	"github.com/magcot/magcot/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	doc      string
	docErr   error
	stmtErr  error
	order    statement.Order
	coloring markup.Coloring
}

func (f *fakeSource) EncodeDocument(w io.Writer) error {
	if f.docErr != nil {
		return f.docErr
	}
	_, err := io.WriteString(w, f.doc)
	return err
}

func (f *fakeSource) Statements(order statement.Order) (string, error) {
	f.order = order
	return "stmts", f.stmtErr
}

func (f *fakeSource) Markup(coloring markup.Coloring, indent int) (string, error) {
	f.coloring = coloring
	return "markup", nil
}

func TestCapture(t *testing.T) {
	src := &fakeSource{doc: "{\"elements\":[]}\n"}
	now := time.Date(2024, 3, 1, 12, 0, 0, 500, time.FixedZone("CET", 3600))

	s, err := Capture("gui", src, statement.ByAnnotationOrder, markup.Order, now)
	require.NoError(t, err)

	assert.Equal(t, "gui", s.Name)
	assert.Equal(t, `{"elements":[]}`, string(s.Document))
	assert.Equal(t, "stmts", s.Statements)
	assert.Equal(t, "markup", s.Markup)
	assert.Equal(t, time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC), s.CreatedAt)
	assert.Equal(t, statement.ByAnnotationOrder, src.order)
	assert.Equal(t, markup.Order, src.coloring)
	assert.Equal(t, Info{Name: "gui", CreatedAt: s.CreatedAt}, s.Info())
}

func TestCapture_Errors(t *testing.T) {
	_, err := Capture("bad name", &fakeSource{}, statement.ByKind, markup.Groupwise, time.Now())
	assert.ErrorIs(t, err, core.ErrValidation)

	boom := errors.New("boom")
	_, err = Capture("gui", &fakeSource{docErr: boom}, statement.ByKind, markup.Groupwise, time.Now())
	assert.ErrorIs(t, err, boom)

	_, err = Capture("gui", &fakeSource{stmtErr: boom}, statement.ByKind, markup.Groupwise, time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestNotFound(t *testing.T) {
	err := NotFound("gui")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), `"gui"`)
}
