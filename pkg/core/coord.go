// pkg/core/coord.go
package core

import (
	"fmt"

	"github.com/spf13/cast"
)

// Coord is a pair of integers, used for a point, a width-by-height size,
// or an x-y offset.
type Coord struct {
	X int
	Y int
}

// C builds a Coord from two integers.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// CoordFromPair builds a Coord from any sequence of at least two values that
// can be coerced to integers. Elements after the second are ignored.
func CoordFromPair(v any) (Coord, error) {
	var items []any
	switch p := v.(type) {
	case Coord:
		return p, nil
	case *Coord:
		if p == nil {
			return Coord{}, fmt.Errorf("%w: cannot convert nil into Coord", ErrTypeConversion)
		}
		return *p, nil
	case [2]int:
		return C(p[0], p[1]), nil
	case []int:
		items = make([]any, len(p))
		for i, n := range p {
			items[i] = n
		}
	case []int64:
		items = make([]any, len(p))
		for i, n := range p {
			items[i] = n
		}
	case []float64:
		items = make([]any, len(p))
		for i, n := range p {
			items[i] = n
		}
	case []string:
		items = make([]any, len(p))
		for i, n := range p {
			items[i] = n
		}
	case []any:
		items = p
	default:
		return Coord{}, fmt.Errorf("%w: cannot convert %T into Coord", ErrTypeConversion, v)
	}

	if len(items) < 2 {
		return Coord{}, fmt.Errorf("%w: need 2 components, got %d", ErrTypeConversion, len(items))
	}
	x, err := cast.ToIntE(items[0])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %v", ErrTypeConversion, err)
	}
	y, err := cast.ToIntE(items[1])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %v", ErrTypeConversion, err)
	}
	return C(x, y), nil
}

// Add returns c + o, component-wise.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o, component-wise.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Pair returns the coordinate as a two-element slice.
func (c Coord) Pair() []int {
	return []int{c.X, c.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("@(%d, %d)", c.X, c.Y)
}
