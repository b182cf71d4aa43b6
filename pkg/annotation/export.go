package annotation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magcot/magcot/internal/export/document"
	"github.com/magcot/magcot/internal/export/markup"
	"github.com/magcot/magcot/internal/export/statement"
	"github.com/magcot/magcot/internal/page"
	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/texture"
)

type (
	// Document is the structured export of a session.
	Document = document.Document
	// StatementOrder arranges exported statements.
	StatementOrder = statement.Order
	// StatementTemplate is the layout of exported statements.
	StatementTemplate = statement.Template
	// Signature places the type name in a statement.
	Signature = statement.Signature
	// Coloring chooses how overlay markers are colored.
	Coloring = markup.Coloring
	// PageOptions control page assembly.
	PageOptions = page.Options
)

const (
	ByKind            = statement.ByKind
	ByAnnotationOrder = statement.ByAnnotationOrder
	Groupwise         = markup.Groupwise
	Order             = markup.Order
)

// Default output extensions.
const (
	ExtDocument  = ".json"
	ExtStatement = ".java"
	ExtMarkup    = ".html"
)

// DefaultStatementTemplate is "private static final T v = new T(...);".
func DefaultStatementTemplate() StatementTemplate {
	return statement.DefaultTemplate()
}

// DefaultPageOptions embeds every page source.
func DefaultPageOptions() PageOptions {
	return page.DefaultOptions()
}

// Document collects the textures, groups and elements.
func (s *Session) Document() (*Document, error) {
	return document.Build(s)
}

// EncodeDocument writes the document as indented JSON.
func (s *Session) EncodeDocument(w io.Writer) error {
	doc, err := s.Document()
	if err != nil {
		return err
	}
	return document.Write(w, doc)
}

// WriteDocument writes the document to p, a file path or a resource
// location. Resource locations without an extension get ".json".
func (s *Session) WriteDocument(p string) (string, error) {
	var buf bytes.Buffer
	if err := s.EncodeDocument(&buf); err != nil {
		return "", err
	}
	return s.writeOutput(p, ExtDocument, buf.Bytes())
}

// Statements renders the statement fragment.
func (s *Session) Statements(order StatementOrder) (string, error) {
	e, err := statement.NewExporter(s.cfg.template)
	if err != nil {
		return "", err
	}
	return e.Fragment(s, order)
}

// WriteStatements writes the statement fragment to p, with ".java" as the
// default extension of resource locations.
func (s *Session) WriteStatements(p string, order StatementOrder) (string, error) {
	text, err := s.Statements(order)
	if err != nil {
		return "", err
	}
	return s.writeOutput(p, ExtStatement, []byte(text))
}

// Markup renders the overlay fragment with every non-blank line indented by
// indent tabs.
func (s *Session) Markup(coloring Coloring, indent int) (string, error) {
	return markup.Fragment(s, coloring, indent, s.cfg.markup)
}

// WriteMarkup writes the overlay fragment to p, with ".html" as the
// default extension of resource locations.
func (s *Session) WriteMarkup(p string, coloring Coloring, indent int) (string, error) {
	text, err := s.Markup(coloring, indent)
	if err != nil {
		return "", err
	}
	return s.writeOutput(p, ExtMarkup, []byte(text))
}

// AssemblePage renders a standalone page showing the groupwise overlay.
func (s *Session) AssemblePage(opts PageOptions) (string, error) {
	fragment, err := s.Markup(Groupwise, page.FragmentIndent)
	if err != nil {
		return "", err
	}
	return page.Assemble(fragment, opts)
}

// WritePage writes the page to p. Linked pages get their sources copied
// next to them.
func (s *Session) WritePage(p string, opts PageOptions) (string, error) {
	fragment, err := s.Markup(Groupwise, page.FragmentIndent)
	if err != nil {
		return "", err
	}
	file, err := s.cfg.registry.Resolve(p, ExtMarkup, "")
	if err != nil {
		return "", err
	}
	if err := page.Write(file, fragment, opts); err != nil {
		return "", err
	}
	s.cfg.logger.Info("page written", "path", file, "embed", opts.Embed, "lang", opts.Lang)
	return file, nil
}

func (s *Session) writeOutput(p, ext string, data []byte) (string, error) {
	file, err := s.cfg.registry.Resolve(p, ext, "")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(file), err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", file, err)
	}
	s.cfg.logger.Info("export written", "path", file, "bytes", len(data))
	return file, nil
}

// FromDocument rebuilds a session from a decoded document. Textures are
// registered in document order, the first being the main texture.
func FromDocument(doc *Document, opts ...Option) (*Session, error) {
	names, paths, err := doc.TexturePaths()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 || names[0] != MainTexture {
		return nil, fmt.Errorf("%w: the document has no main texture", core.ErrValidation)
	}
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		t := texture.New(paths[name], texture.WithRegistry(s.cfg.registry))
		if err := s.AddTexture(t, name); err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
	}

	groupNames, members, err := doc.GroupMembers()
	if err != nil {
		return nil, err
	}
	groupOf := make(map[string]string)
	for _, g := range groupNames {
		if err := s.SwitchGroup(g); err != nil {
			return nil, err
		}
		for _, id := range members[g] {
			groupOf[id] = g
		}
	}
	s.ClearGroup()

	for _, obj := range doc.Elements {
		el, err := document.DecodeElement(obj, s)
		if err != nil {
			return nil, err
		}
		if g, ok := groupOf[el.ID()]; ok {
			err = s.SwitchGroup(g)
		} else {
			s.ClearGroup()
		}
		if err != nil {
			return nil, err
		}
		if err := s.Annotate(el); err != nil {
			return nil, err
		}
	}
	s.ClearGroup()

	for _, g := range groupNames {
		if !sameIDs(s.groups[g], members[g]) {
			s.groups[g] = reorder(s.groups[g], members[g])
		}
	}
	return s, nil
}

// ReadDocument decodes a document and rebuilds its session.
func ReadDocument(r io.Reader, opts ...Option) (*Session, error) {
	doc, err := document.Read(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, opts...)
}

// LoadDocument rebuilds the session stored in the document file at p.
func LoadDocument(p string, opts ...Option) (*Session, error) {
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &core.NotFoundError{What: "document", Key: p}
	}
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()
	return ReadDocument(f, opts...)
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reorder keeps the member order of the document for ids that were
// annotated.
func reorder(got, want []string) []string {
	present := make(map[string]bool, len(got))
	for _, id := range got {
		present[id] = true
	}
	out := make([]string, 0, len(got))
	for _, id := range want {
		if present[id] {
			out = append(out, id)
		}
	}
	return out
}

var _ element.Context = (*Session)(nil)
