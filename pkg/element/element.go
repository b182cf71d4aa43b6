// Package element defines the named GUI regions an annotation is made of.
//
// An element is an immutable aggregate of markers. Untextured elements
// (Corner, Rectangle, ItemSlot, FluidTank) are drawn on the main texture of
// a session; textured ones (Crop, ProgressBar, Atlas) carry a TextureBinding.
package element

import (
	"sort"

	"github.com/magcot/magcot/pkg/core"
)

// Kind is the type tag of an element variant, as written in documents.
type Kind string

const (
	KindCorner      Kind = "corner"
	KindRectangle   Kind = "rectangle"
	KindItemSlot    Kind = "itemslot"
	KindFluidTank   Kind = "fluidtank"
	KindCrop        Kind = "crop"
	KindProgressBar Kind = "progressbar"
	KindAtlas       Kind = "atlas"
)

var kindNames = map[Kind]string{
	KindCorner:      "Corner",
	KindRectangle:   "Rectangle",
	KindItemSlot:    "ItemSlot",
	KindFluidTank:   "FluidTank",
	KindCrop:        "Crop",
	KindProgressBar: "ProgressBar",
	KindAtlas:       "Atlas",
}

// Name returns the display name of the kind, e.g. "ItemSlot".
func (k Kind) Name() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return string(k)
}

// Textured reports whether elements of this kind bind a texture.
func (k Kind) Textured() bool {
	return k == KindCrop || k == KindProgressBar || k == KindAtlas
}

// Kinds returns every known kind.
func Kinds() []Kind {
	return []Kind{KindCorner, KindRectangle, KindItemSlot, KindFluidTank, KindCrop, KindProgressBar, KindAtlas}
}

// Element is a named, possibly textured GUI region made of markers.
type Element interface {
	ID() string
	Kind() Kind
	// Markers returns the markers in rendering order: patches and grids
	// first, then points, then offsets.
	Markers() []NamedMarker
	// Binding is nil for untextured elements.
	Binding() *TextureBinding
}

// NamedMarker is a marker together with the field name it is stored under.
type NamedMarker struct {
	Name   string
	Marker core.Marker
}

// ReferencePoint returns the "ul" point of el, which offsets are relative to.
func ReferencePoint(el Element) (core.Point, bool) {
	for _, nm := range el.Markers() {
		if p, ok := nm.Marker.(core.Point); ok && nm.Name == "ul" {
			return p, true
		}
	}
	return core.Point{}, false
}

type base struct {
	id      string
	offsets []NamedMarker
}

func (b *base) ID() string { return b.id }

func (b *base) withOffsets(markers ...NamedMarker) []NamedMarker {
	areas := make([]NamedMarker, 0, len(markers)+len(b.offsets))
	var points []NamedMarker
	for _, nm := range markers {
		if nm.Marker.Kind().IsArea() {
			areas = append(areas, nm)
		} else {
			points = append(points, nm)
		}
	}
	areas = append(areas, points...)
	return append(areas, b.offsets...)
}

// Option configures element construction.
type Option func(*options)

type options struct {
	ctx     Context
	ref     TextureRef
	offsets map[string]core.Offset
}

// WithContext sets the context textured elements resolve their texture in.
func WithContext(ctx Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithTexture sets how a textured element finds its texture. The default is
// the context's main texture.
func WithTexture(ref TextureRef) Option {
	return func(o *options) {
		o.ref = ref
	}
}

// WithOffset adds an offset marker relative to the element's "ul" point.
func WithOffset(name string, at core.Coord) Option {
	return func(o *options) {
		if o.offsets == nil {
			o.offsets = make(map[string]core.Offset)
		}
		o.offsets[name] = core.NewOffset(at)
	}
}

func newBase(id string, opts []Option) (base, *options, error) {
	o := &options{ref: DefaultTexture()}
	for _, opt := range opts {
		opt(o)
	}
	valid, err := core.ValidateID(id)
	if err != nil {
		return base{}, nil, err
	}
	b := base{id: valid}
	names := make([]string, 0, len(o.offsets))
	for name := range o.offsets {
		if _, err := core.ValidateID(name); err != nil {
			return base{}, nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.offsets = append(b.offsets, NamedMarker{Name: name, Marker: o.offsets[name]})
	}
	return b, o, nil
}
