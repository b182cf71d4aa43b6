package element

import "github.com/magcot/magcot/pkg/core"

// ItemSlotSize is the size of the region an item stack is rendered in.
var ItemSlotSize = core.C(16, 16)

// Corner is a single point.
type Corner struct {
	base
	at core.Point
}

// NewCorner creates a Corner at the given point.
func NewCorner(id string, at core.Coord, opts ...Option) (*Corner, error) {
	b, _, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &Corner{base: b, at: core.NewPoint(at)}, nil
}

func (e *Corner) Kind() Kind               { return KindCorner }
func (e *Corner) Binding() *TextureBinding { return nil }
func (e *Corner) At() core.Point           { return e.at }
func (e *Corner) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"at", e.at})
}

// Rectangle is a single patch.
type Rectangle struct {
	base
	area core.Patch
}

// NewRectangle creates a Rectangle from its upper left point and size.
func NewRectangle(id string, ul, size core.Coord, opts ...Option) (*Rectangle, error) {
	b, _, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &Rectangle{base: b, area: core.NewPatch(ul, size)}, nil
}

func (e *Rectangle) Kind() Kind               { return KindRectangle }
func (e *Rectangle) Binding() *TextureBinding { return nil }
func (e *Rectangle) Area() core.Patch         { return e.area }
func (e *Rectangle) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"area", e.area})
}

// ItemSlot marks the actual 16×16 region an item stack is rendered on,
// decorative margins excluded. The patch is derived from the point.
type ItemSlot struct {
	base
	ul   core.Point
	area core.Patch
}

// NewItemSlot creates an ItemSlot at the given upper left point.
func NewItemSlot(id string, ul core.Coord, opts ...Option) (*ItemSlot, error) {
	b, _, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return newItemSlot(b, core.NewPoint(ul)), nil
}

func newItemSlot(b base, ul core.Point) *ItemSlot {
	return &ItemSlot{base: b, ul: ul, area: core.NewPatch(ul.At, ItemSlotSize)}
}

func (e *ItemSlot) Kind() Kind               { return KindItemSlot }
func (e *ItemSlot) Binding() *TextureBinding { return nil }
func (e *ItemSlot) UL() core.Point           { return e.ul }
func (e *ItemSlot) Area() core.Patch         { return e.area }
func (e *ItemSlot) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"ul", e.ul}, NamedMarker{"area", e.area})
}

// FluidTank marks the actual region fluid is rendered in.
type FluidTank struct {
	base
	ul   core.Point
	area core.ClippablePatch
}

// NewFluidTank creates a FluidTank. direction is one of "+x", "-x", "+y",
// "-y".
func NewFluidTank(id string, ul, size core.Coord, direction string, opts ...Option) (*FluidTank, error) {
	dir, err := core.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	b, _, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &FluidTank{base: b, ul: core.NewPoint(ul), area: core.NewClippablePatch(ul, size, dir)}, nil
}

func (e *FluidTank) Kind() Kind                { return KindFluidTank }
func (e *FluidTank) Binding() *TextureBinding  { return nil }
func (e *FluidTank) UL() core.Point            { return e.ul }
func (e *FluidTank) Area() core.ClippablePatch { return e.area }
func (e *FluidTank) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"ul", e.ul}, NamedMarker{"area", e.area})
}

// Crop is a texture clip to paste around, e.g. a decorative part of a GUI.
type Crop struct {
	base
	binding *TextureBinding
	ul      core.Point
	area    core.Patch
}

// NewCrop creates a Crop. The texture is resolved from WithTexture and
// WithContext.
func NewCrop(id string, ul, size core.Coord, opts ...Option) (*Crop, error) {
	b, o, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &Crop{
		base:    b,
		binding: bind(o.ref, o.ctx),
		ul:      core.NewPoint(ul),
		area:    core.NewPatch(ul, size),
	}, nil
}

func (e *Crop) Kind() Kind               { return KindCrop }
func (e *Crop) Binding() *TextureBinding { return e.binding }
func (e *Crop) UL() core.Point           { return e.ul }
func (e *Crop) Area() core.Patch         { return e.area }
func (e *Crop) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"ul", e.ul}, NamedMarker{"area", e.area})
}

// ProgressBar is a texture clip that grows towards one direction according
// to a scalar value.
type ProgressBar struct {
	base
	binding *TextureBinding
	ul      core.Point
	area    core.ClippablePatch
}

// NewProgressBar creates a ProgressBar. direction is one of "+x", "-x",
// "+y", "-y".
func NewProgressBar(id string, ul, size core.Coord, direction string, opts ...Option) (*ProgressBar, error) {
	dir, err := core.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	b, o, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &ProgressBar{
		base:    b,
		binding: bind(o.ref, o.ctx),
		ul:      core.NewPoint(ul),
		area:    core.NewClippablePatch(ul, size, dir),
	}, nil
}

func (e *ProgressBar) Kind() Kind                { return KindProgressBar }
func (e *ProgressBar) Binding() *TextureBinding  { return e.binding }
func (e *ProgressBar) UL() core.Point            { return e.ul }
func (e *ProgressBar) Area() core.ClippablePatch { return e.area }
func (e *ProgressBar) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"ul", e.ul}, NamedMarker{"area", e.area})
}

// Atlas is a set of texture clips arranged in a regular grid.
type Atlas struct {
	base
	binding *TextureBinding
	ul      core.Point
	grid    core.Grid
}

// NewAtlas creates an Atlas of grid columns×rows clips, each clip in size.
func NewAtlas(id string, ul, grid, clip core.Coord, opts ...Option) (*Atlas, error) {
	b, o, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}
	return &Atlas{
		base:    b,
		binding: bind(o.ref, o.ctx),
		ul:      core.NewPoint(ul),
		grid:    core.NewGrid(ul, grid, clip),
	}, nil
}

func (e *Atlas) Kind() Kind               { return KindAtlas }
func (e *Atlas) Binding() *TextureBinding { return e.binding }
func (e *Atlas) UL() core.Point           { return e.ul }
func (e *Atlas) Grid() core.Grid          { return e.grid }
func (e *Atlas) Markers() []NamedMarker {
	return e.withOffsets(NamedMarker{"ul", e.ul}, NamedMarker{"grid", e.grid})
}
