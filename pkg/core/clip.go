package core

import "fmt"

// Axis is the axis a clippable patch is clipped along.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// ClipDirection is the axis and side a clippable patch grows towards.
// Positive is true when the non-zero component of the direction is > 0.
type ClipDirection struct {
	Axis     Axis
	Positive bool
}

// ResolveClipDirection maps a direction vector to its clip direction. Only the
// signs are considered; x is checked first and y only when x is exactly zero.
// The second result is false when both components are zero.
func ResolveClipDirection(dir Coord) (ClipDirection, bool) {
	if dir.X != 0 {
		return ClipDirection{Axis: AxisX, Positive: dir.X > 0}, true
	}
	if dir.Y != 0 {
		return ClipDirection{Axis: AxisY, Positive: dir.Y > 0}, true
	}
	return ClipDirection{}, false
}

// Keyword returns the markup keyword of the direction: x maps to
// left/right and y maps to bottom/top.
func (d ClipDirection) Keyword() string {
	switch d.Axis {
	case AxisX:
		if d.Positive {
			return "right"
		}
		return "left"
	case AxisY:
		if d.Positive {
			return "top"
		}
		return "bottom"
	}
	return ""
}

func (d ClipDirection) String() string {
	if d.Positive {
		return "+" + string(d.Axis)
	}
	return "-" + string(d.Axis)
}

// ParseDirection turns "+x", "-x", "+y" or "-y" into a unit direction vector.
func ParseDirection(s string) (Coord, error) {
	switch s {
	case "+x":
		return C(1, 0), nil
	case "-x":
		return C(-1, 0), nil
	case "+y":
		return C(0, 1), nil
	case "-y":
		return C(0, -1), nil
	}
	return Coord{}, fmt.Errorf("%w: unsupported direction %q", ErrValidation, s)
}
