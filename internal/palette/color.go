package palette

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/magcot/magcot/pkg/core"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	defaultThreshold = 1.0 / 40
	// memory is how many previous colors a new one is compared against.
	memory = 5
	// maxFatigue is how many colors in a row may be rejected before the
	// next one is accepted anyway.
	maxFatigue = 30
)

type span struct{ lo, hi float64 }

type seriesSpec struct {
	h, s, v   span
	threshold float64
}

var series = map[string]seriesSpec{
	"crimson": {span{5.0 / 6, 1}, span{0.6, 1}, span{0.5, 1}, 1.0 / 30},
	"red":     {span{-1.0 / 12, 1.0 / 12}, span{0.6, 0.95}, span{0.3, 0.95}, 1.0 / 20},
	"orange":  {span{1.0 / 20, 1.0 / 9}, span{0.4, 0.95}, span{0.7, 1}, 1.0 / 25},
	"earthy":  {span{1.0 / 20, 1.0 / 9}, span{0.3, 0.65}, span{0.2, 0.65}, 1.0 / 20},
	"yellow":  {span{1.0 / 9, 1.0 / 6}, span{0.4, 0.95}, span{0.7, 0.975}, 1.0 / 20},
	"green":   {span{1.0 / 6, 5.0 / 12}, span{0.4, 0.95}, span{0.3, 0.95}, 1.0 / 15},
	"cyan":    {span{5.0 / 12, 13.0 / 24}, span{0.4, 0.95}, span{0.3, 1}, 1.0 / 25},
	"blue":    {span{13.0 / 24, 2.0 / 3}, span{0.4, 0.95}, span{0.3, 0.95}, 1.0 / 20},
	"indigo":  {span{2.0 / 3, 17.0 / 24}, span{0.3, 0.8}, span{0.2, 0.65}, 1.0 / 25},
	"purple":  {span{3.0 / 4, 5.0 / 6}, span{0.4, 0.95}, span{0.3, 0.95}, 1.0 / 20},
	"dim":     {span{0, 1}, span{0, 0.25}, span{0.1, 0.9}, 1.0 / 15},
	"any":     {span{-1.0 / 3, 3.0 / 12}, span{0.25, 0.95}, span{0.3, 0.95}, defaultThreshold},
}

// DefaultSeries is the order groups take their color series in.
var DefaultSeries = []string{
	"red", "green", "blue", "yellow", "purple", "orange",
	"cyan", "crimson", "earthy", "indigo", "dim",
}

// SeriesNames lists the known color series.
func SeriesNames() []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateSeries checks that every name is a known series.
func ValidateSeries(names []string) error {
	for _, name := range names {
		if _, ok := series[name]; !ok {
			return &core.NotFoundError{What: "color series", Key: name}
		}
	}
	return nil
}

type hsv struct{ h, s, v float64 }

// ColorSeries yields random colors from one HSV subspace, avoiding colors
// close to the last few it produced.
type ColorSeries struct {
	spec    seriesSpec
	rng     *rand.Rand
	recent  []hsv
	fatigue int
}

// NewColorSeries starts the series name drawing from rng.
func NewColorSeries(name string, rng *rand.Rand) (*ColorSeries, error) {
	spec, ok := series[name]
	if !ok {
		return nil, &core.NotFoundError{What: "color series", Key: name}
	}
	return &ColorSeries{spec: spec, rng: rng}, nil
}

// NewRand returns the deterministic generator colors are drawn from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (c *ColorSeries) uniform(sp span) float64 {
	return sp.lo + (sp.hi-sp.lo)*c.rng.Float64()
}

// NextHSV draws the next accepted color. Hue is in [0, 1).
func (c *ColorSeries) NextHSV() (h, s, v float64) {
	for {
		cand := hsv{
			h: math.Mod(c.uniform(c.spec.h), 1),
			s: c.uniform(c.spec.s),
			v: c.uniform(c.spec.v),
		}
		if cand.h < 0 {
			cand.h++
		}
		if c.fatigue < maxFatigue && c.tooClose(cand) {
			c.fatigue++
			continue
		}
		c.fatigue = 0
		c.recent = append(c.recent, cand)
		if len(c.recent) > memory {
			c.recent = c.recent[1:]
		}
		return cand.h, cand.s, cand.v
	}
}

func (c *ColorSeries) tooClose(cand hsv) bool {
	for _, prev := range c.recent {
		dh := math.Abs(cand.h - prev.h)
		// hue wraps around
		dist := math.Sqrt(sq(math.Min(dh, 1-dh)) + sq(cand.s-prev.s) + sq(cand.v-prev.v))
		if dist < c.spec.threshold {
			return true
		}
	}
	return false
}

func sq(x float64) float64 { return x * x }

// Next returns the next color as a CSS "rgb(r,g,b)" value.
func (c *ColorSeries) Next() string {
	h, s, v := c.NextHSV()
	r, g, b := colorful.Hsv(h*360, s, v).RGB255()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// Cycle hands out series names in order, starting over at the end.
type Cycle struct {
	names []string
	next  int
}

// NewCycle cycles through names, or DefaultSeries when names is empty.
func NewCycle(names []string) (*Cycle, error) {
	if len(names) == 0 {
		names = DefaultSeries
	}
	if err := ValidateSeries(names); err != nil {
		return nil, err
	}
	return &Cycle{names: append([]string(nil), names...)}, nil
}

// Next returns the next series name.
func (c *Cycle) Next() string {
	name := c.names[c.next]
	c.next = (c.next + 1) % len(c.names)
	return name
}
