// pkg/core/marker.go
package core

import (
	"fmt"
	"strings"
)

// MarkerKind names a marker variant.
type MarkerKind string

const (
	KindPoint          MarkerKind = "Point"
	KindOffset         MarkerKind = "Offset"
	KindPatch          MarkerKind = "Patch"
	KindClippablePatch MarkerKind = "ClippablePatch"
	KindGrid           MarkerKind = "Grid"
)

// markerFields lists the fields each variant declares, in declaration order.
var markerFields = map[MarkerKind][]string{
	KindPoint:          {"at"},
	KindOffset:         {"at"},
	KindPatch:          {"ul", "size"},
	KindClippablePatch: {"ul", "size", "direction"},
	KindGrid:           {"ul", "grid", "clip"},
}

// Marker is a typed bundle of coordinates describing one geometric primitive.
type Marker interface {
	Kind() MarkerKind
	String() string
}

// Point marks a single point.
type Point struct {
	At Coord
}

// Offset marks a point relative to a reference point, usually the upper left
// point of the element it belongs to.
type Offset struct {
	At Coord
}

// Patch marks a rectangular region.
type Patch struct {
	UL   Coord
	Size Coord
}

// ClippablePatch marks a rectangular region that is clipped according to a
// value, like a progress bar. Only the signs of Direction are meaningful.
type ClippablePatch struct {
	UL        Coord
	Size      Coord
	Direction Coord
}

// Grid marks a regular grid of Count.X columns by Count.Y rows, each cell
// being Clip wide and high.
type Grid struct {
	UL    Coord
	Count Coord
	Clip  Coord
}

func NewPoint(at Coord) Point            { return Point{At: at} }
func NewOffset(at Coord) Offset          { return Offset{At: at} }
func NewPatch(ul, size Coord) Patch      { return Patch{UL: ul, Size: size} }
func NewGrid(ul, count, clip Coord) Grid { return Grid{UL: ul, Count: count, Clip: clip} }
func NewClippablePatch(ul, size, direction Coord) ClippablePatch {
	return ClippablePatch{UL: ul, Size: size, Direction: direction}
}

func (Point) Kind() MarkerKind          { return KindPoint }
func (Offset) Kind() MarkerKind         { return KindOffset }
func (Patch) Kind() MarkerKind          { return KindPatch }
func (ClippablePatch) Kind() MarkerKind { return KindClippablePatch }
func (Grid) Kind() MarkerKind           { return KindGrid }

func (m Point) String() string  { return fmt.Sprintf("Point(at %s)", m.At) }
func (m Offset) String() string { return fmt.Sprintf("Offset(at %s)", m.At) }
func (m Patch) String() string  { return fmt.Sprintf("Patch(ul %s; size %s)", m.UL, m.Size) }
func (m Grid) String() string {
	return fmt.Sprintf("Grid(ul %s; grid %s; clip %s)", m.UL, m.Count, m.Clip)
}
func (m ClippablePatch) String() string {
	return fmt.Sprintf("ClippablePatch(ul %s; size %s; direction %s)", m.UL, m.Size, m.Direction)
}

// ClipDirection resolves the direction vector of the patch.
func (m ClippablePatch) ClipDirection() (ClipDirection, bool) {
	return ResolveClipDirection(m.Direction)
}

// Patch drops the clip direction.
func (m ClippablePatch) Patch() Patch {
	return Patch{UL: m.UL, Size: m.Size}
}

// IsArea reports whether markers of this kind cover a region (patches and
// grids) rather than a single point.
func (k MarkerKind) IsArea() bool {
	return k == KindPatch || k == KindClippablePatch || k == KindGrid
}

// Fields returns the field names declared by the kind.
func (k MarkerKind) Fields() []string {
	return append([]string(nil), markerFields[k]...)
}

// NewMarker builds a marker of the given kind from named coordinate-like
// values. Every declared field must be present; values are coerced with
// CoordFromPair. Extra keys are ignored.
func NewMarker(kind MarkerKind, fields map[string]any) (Marker, error) {
	declared, ok := markerFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown marker kind %q", ErrValidation, kind)
	}

	var missing []string
	for _, name := range declared {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Kind: string(kind), Missing: missing}
	}

	coords := make([]Coord, len(declared))
	for i, name := range declared {
		c, err := CoordFromPair(fields[name])
		if err != nil {
			return nil, fmt.Errorf("field %q of %s: %w", name, kind, err)
		}
		coords[i] = c
	}

	switch kind {
	case KindPoint:
		return NewPoint(coords[0]), nil
	case KindOffset:
		return NewOffset(coords[0]), nil
	case KindPatch:
		return NewPatch(coords[0], coords[1]), nil
	case KindClippablePatch:
		return NewClippablePatch(coords[0], coords[1], coords[2]), nil
	default:
		return NewGrid(coords[0], coords[1], coords[2]), nil
	}
}

// describeKinds is used in error messages listing acceptable kinds.
func describeKinds(kinds ...MarkerKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

// ExpectKind returns a TypeMismatchError when m is not one of kinds.
// Only the value marker types are accepted, so callers may type-assert m
// to the struct of its kind once the check passes.
func ExpectKind(field string, m Marker, kinds ...MarkerKind) error {
	switch m.(type) {
	case Point, Offset, Patch, ClippablePatch, Grid:
	case nil:
		return &TypeMismatchError{Field: field, Expected: describeKinds(kinds...), Actual: "nil"}
	default:
		return &TypeMismatchError{Field: field, Expected: describeKinds(kinds...), Actual: fmt.Sprintf("%T", m)}
	}
	for _, k := range kinds {
		if m.Kind() == k {
			return nil
		}
	}
	return &TypeMismatchError{Field: field, Expected: describeKinds(kinds...), Actual: string(m.Kind())}
}
