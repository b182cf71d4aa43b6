// Package texture describes the images that annotations are anchored to.
package texture

import (
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path"
	"path/filepath"

	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/resource"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture is an image file, given either by a filesystem path or by a
// deferred resource location. Both validation and size reading are lazy and
// happen at most once.
type Texture struct {
	path     string
	location *resource.Location
	registry *resource.Registry

	shortcut string
	bound    bool

	validated bool

	sizeRead bool
	width    int
	height   int
}

// Option configures a Texture.
type Option func(*Texture)

// WithRegistry sets the namespace registry used to resolve resource
// locations. resource.Default is used otherwise.
func WithRegistry(r *resource.Registry) Option {
	return func(t *Texture) {
		t.registry = r
	}
}

// New creates a texture from a filesystem path or a resource location.
func New(p string, opts ...Option) *Texture {
	if loc, ok := resource.Parse(p); ok {
		return FromLocation(loc.Namespace, loc.Path, opts...)
	}
	return FromPath(p, opts...)
}

// FromPath creates a texture from a filesystem path, stored as an absolute
// path.
func FromPath(p string, opts ...Option) *Texture {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	t := &Texture{path: p, registry: resource.Default}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromLocation creates a texture from a namespace and a path relative to
// "<assets>/<namespace>/textures". Nothing is resolved until Validate.
func FromLocation(namespace, rel string, opts ...Option) *Texture {
	t := &Texture{
		location: &resource.Location{Namespace: namespace, Path: rel},
		registry: resource.Default,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Texture) String() string {
	if t.location != nil {
		return fmt.Sprintf("Texture(%q)", t.location.String())
	}
	return fmt.Sprintf("Texture(%q)", t.path)
}

// BindShortcut binds the name the texture is registered under. A texture
// keeps its first name for its lifetime; binding another name fails.
func (t *Texture) BindShortcut(name string) error {
	if t.bound && t.shortcut != name {
		return fmt.Errorf("%w: texture %s is already bound to %q", core.ErrValidation, t, t.shortcut)
	}
	t.shortcut = name
	t.bound = true
	return nil
}

// Shortcut returns the bound name, if any.
func (t *Texture) Shortcut() (string, bool) {
	return t.shortcut, t.bound
}

// Validated reports whether Validate has succeeded.
func (t *Texture) Validated() bool {
	return t.validated
}

// Validate checks that the file exists, resolving the resource location if
// needed. Once it succeeds it never checks again.
func (t *Texture) Validate() error {
	if t.validated {
		return nil
	}
	if t.location == nil {
		if !isFile(t.path) {
			return &core.NotFoundError{What: "texture file", Key: t.path}
		}
		t.path = filepath.ToSlash(t.path)
		t.validated = true
		return nil
	}

	rel := t.location.Path
	if path.Ext(rel) == "" {
		rel += ".png"
	}
	full, err := t.registry.Resolve(t.location.Namespace+":"+rel, ".png", "textures")
	if err != nil {
		return err
	}
	if !isFile(full) {
		return &core.NotFoundError{What: "resource location", Key: t.location.Namespace + ":" + rel}
	}
	t.path = full
	t.validated = true
	return nil
}

// Path returns the filesystem path. It is empty for resource locations that
// have not been validated yet.
func (t *Texture) Path() string {
	return t.path
}

// Location returns the resource location, if the texture was created from
// one.
func (t *Texture) Location() (resource.Location, bool) {
	if t.location == nil {
		return resource.Location{}, false
	}
	return *t.location, true
}

// PreferredPath returns the resource location if defined, otherwise the
// filesystem path. It is empty until the texture is validated.
func (t *Texture) PreferredPath() string {
	if !t.validated {
		return ""
	}
	if t.location != nil {
		return t.location.String()
	}
	return t.path
}

// Size returns the pixel width and height, read from the image header the
// first time it is asked for.
func (t *Texture) Size() (int, int, error) {
	if t.sizeRead {
		return t.width, t.height, nil
	}
	if err := t.Validate(); err != nil {
		return 0, 0, err
	}

	f, err := os.Open(t.path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening texture %s: %w", t.path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("reading texture header %s: %w", t.path, err)
	}
	t.width, t.height = cfg.Width, cfg.Height
	t.sizeRead = true
	return t.width, t.height, nil
}

// DataURL reads the texture file into a base64 data URL.
func (t *Texture) DataURL() (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return FileDataURL(t.path)
}

// FileDataURL reads any file into a base64 data URL, sniffing its MIME type
// from the content.
func FileDataURL(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return DataURL(data), nil
}

// DataURL encodes data as a base64 data URL. The MIME type falls back to
// image/png when it cannot be detected.
func DataURL(data []byte) string {
	mime := "image/png"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
