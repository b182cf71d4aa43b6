// Package annotation is the authoring API: a Session collects textures and
// annotated elements and renders them as a document, a statement fragment or
// an HTML overlay.
package annotation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magcot/magcot/internal/export/markup"
	"github.com/magcot/magcot/internal/export/statement"
	"github.com/magcot/magcot/internal/palette"
	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/resource"
	"github.com/magcot/magcot/pkg/texture"
)

// MainTexture is the name the main texture is registered under.
const MainTexture = ""

// Session owns the textures, elements and groups of one annotated GUI. It
// is not safe for concurrent use.
type Session struct {
	textures     map[string]*texture.Texture
	textureNames []string

	elements map[string]element.Element
	order    []string

	groups     map[string][]string
	groupNames []string
	groupOf    map[string]string
	ungrouped  []string

	active    string
	hasActive bool

	cfg settings
}

type settings struct {
	registry *resource.Registry
	markup   markup.Options
	template statement.Template
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*settings)

// WithRegistry sets the namespace registry used for resource locations.
func WithRegistry(r *resource.Registry) Option {
	return func(s *settings) {
		s.registry = r
	}
}

// WithZIndex sets where point and patch markers start stacking.
func WithZIndex(point, patch int) Option {
	return func(s *settings) {
		s.markup.PointZ = point
		s.markup.PatchZ = patch
	}
}

// WithElementStep sets the z-index distance between consecutive elements
// on one texture.
func WithElementStep(step int) Option {
	return func(s *settings) {
		s.markup.ElementStep = step
	}
}

// WithOrdinalStyle sets the symbol series markers are labelled with.
func WithOrdinalStyle(style string) Option {
	return func(s *settings) {
		s.markup.OrdinalStyle = style
	}
}

// WithColorSeries sets the color series groups take in turn.
func WithColorSeries(names ...string) Option {
	return func(s *settings) {
		s.markup.Series = names
	}
}

// WithColorSeed seeds the color generator.
func WithColorSeed(seed uint64) Option {
	return func(s *settings) {
		s.markup.Seed = seed
	}
}

// WithStatementTemplate sets the layout of exported statements.
func WithStatementTemplate(t StatementTemplate) Option {
	return func(s *settings) {
		s.template = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

func newSession(opts []Option) (*Session, error) {
	cfg := settings{
		registry: resource.Default,
		markup:   markup.DefaultOptions(),
		template: statement.DefaultTemplate(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := palette.NewOrdinals(cfg.markup.OrdinalStyle); err != nil {
		return nil, err
	}
	if err := palette.ValidateSeries(cfg.markup.Series); err != nil {
		return nil, err
	}
	if _, err := statement.NewExporter(cfg.template); err != nil {
		return nil, err
	}
	return &Session{
		textures: make(map[string]*texture.Texture),
		elements: make(map[string]element.Element),
		groups:   make(map[string][]string),
		groupOf:  make(map[string]string),
		cfg:      cfg,
	}, nil
}

// New starts a session on the main texture.
func New(main *texture.Texture, opts ...Option) (*Session, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	if err := s.AddTexture(main, MainTexture); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromPath starts a session on the main texture at p, a file path or a
// resource location.
func NewFromPath(p string, opts ...Option) (*Session, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	if err := s.AddTexturePath(p, MainTexture); err != nil {
		return nil, err
	}
	return s, nil
}

// AddTexture registers t under name. The texture must exist and keeps
// name as its shortcut.
func (s *Session) AddTexture(t *texture.Texture, name string) error {
	if t == nil {
		return fmt.Errorf("%w: nil texture", core.ErrValidation)
	}
	if _, ok := s.textures[name]; ok {
		return &core.DuplicateNameError{Name: name}
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := t.BindShortcut(name); err != nil {
		return err
	}
	s.textures[name] = t
	s.textureNames = append(s.textureNames, name)
	s.cfg.logger.Debug("texture added", "name", name, "path", t.PreferredPath())
	return nil
}

// AddTexturePath registers the texture at p under name.
func (s *Session) AddTexturePath(p, name string) error {
	if _, ok := s.textures[name]; ok {
		return &core.DuplicateNameError{Name: name}
	}
	return s.AddTexture(texture.New(p, texture.WithRegistry(s.cfg.registry)), name)
}

// Context returns the option that binds textured elements to this session.
func (s *Session) Context() element.Option {
	return element.WithContext(s)
}

// Annotate registers el in the active group, or as ungrouped when no group
// is active.
func (s *Session) Annotate(el element.Element) error {
	if el == nil {
		return fmt.Errorf("%w: nil element", core.ErrValidation)
	}
	id := el.ID()
	if _, ok := s.elements[id]; ok {
		return &core.DuplicateIDError{ID: id}
	}
	s.elements[id] = el
	s.order = append(s.order, id)
	if s.hasActive {
		s.groups[s.active] = append(s.groups[s.active], id)
		s.groupOf[id] = s.active
	} else {
		s.ungrouped = append(s.ungrouped, id)
	}
	s.cfg.logger.Debug("element annotated", "id", id, "kind", el.Kind(), "group", s.active)
	return nil
}

// AnnotateAll registers every element in order, stopping at the first
// error.
func (s *Session) AnnotateAll(els ...element.Element) error {
	for _, el := range els {
		if err := s.Annotate(el); err != nil {
			return err
		}
	}
	return nil
}

// SwitchGroup makes name the active group, creating it on first use.
func (s *Session) SwitchGroup(name string) error {
	if _, err := core.ValidateID(name); err != nil {
		return err
	}
	if _, ok := s.groups[name]; !ok {
		s.groups[name] = []string{}
		s.groupNames = append(s.groupNames, name)
	}
	s.active = name
	s.hasActive = true
	return nil
}

// ClearGroup deactivates the active group.
func (s *Session) ClearGroup() {
	s.active = ""
	s.hasActive = false
}

// ActiveGroup returns the active group, if any.
func (s *Session) ActiveGroup() (string, bool) {
	return s.active, s.hasActive
}

// Lookup returns the element with the given id.
func (s *Session) Lookup(id string) (element.Element, error) {
	el, ok := s.elements[id]
	if !ok {
		return nil, &core.NotFoundError{What: "element", Key: id}
	}
	return el, nil
}

// LookupGroup returns the elements of a group, given as "#name", in the
// order they were annotated.
func (s *Session) LookupGroup(key string) ([]element.Element, error) {
	name, ok := strings.CutPrefix(key, "#")
	if !ok {
		return nil, fmt.Errorf("%w: group keys start with '#', got %q", core.ErrValidation, key)
	}
	ids, ok := s.groups[name]
	if !ok {
		return nil, &core.NotFoundError{What: "group", Key: name}
	}
	out := make([]element.Element, len(ids))
	for i, id := range ids {
		out[i] = s.elements[id]
	}
	return out, nil
}

// Texture returns the texture registered under name.
func (s *Session) Texture(name string) (*texture.Texture, bool) {
	t, ok := s.textures[name]
	return t, ok
}

// TextureNames lists the texture names in registration order.
func (s *Session) TextureNames() []string {
	return append([]string(nil), s.textureNames...)
}

// GroupNames lists the groups in creation order.
func (s *Session) GroupNames() []string {
	return append([]string(nil), s.groupNames...)
}

// GroupMembers lists the ids of a group in annotation order.
func (s *Session) GroupMembers(name string) []string {
	return append([]string(nil), s.groups[name]...)
}

// Element returns the element with the given id.
func (s *Session) Element(id string) (element.Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Elements lists every element in annotation order.
func (s *Session) Elements() []element.Element {
	out := make([]element.Element, len(s.order))
	for i, id := range s.order {
		out[i] = s.elements[id]
	}
	return out
}

// Ungrouped lists the elements annotated while no group was active.
func (s *Session) Ungrouped() []element.Element {
	out := make([]element.Element, len(s.ungrouped))
	for i, id := range s.ungrouped {
		out[i] = s.elements[id]
	}
	return out
}

// Len is the number of elements.
func (s *Session) Len() int {
	return len(s.order)
}
