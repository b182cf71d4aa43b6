package palette

import (
	"math"
	"regexp"
	"testing"

	"github.com/magcot/magcot/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinals_Cycle(t *testing.T) {
	o, err := NewOrdinals("latin")
	require.NoError(t, err)
	require.Equal(t, 52, o.Len())

	assert.Equal(t, "a", o.Next())
	assert.Equal(t, "b", o.Next())
	for i := 2; i < o.Len(); i++ {
		o.Next()
	}
	assert.Equal(t, "a", o.Next())
}

func TestOrdinals_MultiByte(t *testing.T) {
	o, err := NewOrdinals(DefaultOrdinalStyle)
	require.NoError(t, err)
	assert.Equal(t, "天", o.Next())
	assert.Equal(t, "地", o.Next())

	g, err := NewOrdinals("greek")
	require.NoError(t, err)
	assert.Equal(t, "α", g.Next())
}

func TestOrdinals_Unknown(t *testing.T) {
	_, err := NewOrdinals("klingon")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestOrdinalStyles(t *testing.T) {
	assert.Equal(t, []string{"greek", "latin", "qianziwen"}, OrdinalStyles())
}

var rgbPattern = regexp.MustCompile(`^rgb\((\d{1,3}),(\d{1,3}),(\d{1,3})\)$`)

func TestColorSeries_Format(t *testing.T) {
	for _, name := range SeriesNames() {
		c, err := NewColorSeries(name, NewRand(1))
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			assert.Regexp(t, rgbPattern, c.Next(), name)
		}
	}
}

func TestColorSeries_StaysInSubspace(t *testing.T) {
	c, err := NewColorSeries("green", NewRand(7))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		h, s, v := c.NextHSV()
		assert.GreaterOrEqual(t, h, 1.0/6)
		assert.Less(t, h, 5.0/12)
		assert.GreaterOrEqual(t, s, 0.4)
		assert.LessOrEqual(t, v, 0.95)
	}

	red, err := NewColorSeries("red", NewRand(7))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		h, _, _ := red.NextHSV()
		assert.True(t, h < 1.0/12 || h >= 11.0/12, "hue %f", h)
	}
}

func TestColorSeries_AvoidsRecentColors(t *testing.T) {
	c, err := NewColorSeries("green", NewRand(3))
	require.NoError(t, err)

	var drawn []hsv
	for i := 0; i < 40; i++ {
		h, s, v := c.NextHSV()
		drawn = append(drawn, hsv{h, s, v})
	}
	for i := range drawn {
		for j := max(0, i-memory); j < i; j++ {
			dh := math.Abs(drawn[i].h - drawn[j].h)
			dist := math.Sqrt(sq(math.Min(dh, 1-dh)) + sq(drawn[i].s-drawn[j].s) + sq(drawn[i].v-drawn[j].v))
			assert.GreaterOrEqual(t, dist, 1.0/15)
		}
	}
}

func TestColorSeries_FatigueAcceptsAnyway(t *testing.T) {
	c := &ColorSeries{
		spec: seriesSpec{h: span{0, 0}, s: span{0, 0}, v: span{0, 0}, threshold: 1},
		rng:  NewRand(1),
	}
	assert.Equal(t, "rgb(0,0,0)", c.Next())
	// every later candidate is identical, so only fatigue lets it through
	assert.Equal(t, "rgb(0,0,0)", c.Next())
	assert.Equal(t, 0, c.fatigue)
}

func TestColorSeries_Deterministic(t *testing.T) {
	a, err := NewColorSeries("any", NewRand(42))
	require.NoError(t, err)
	b, err := NewColorSeries("any", NewRand(42))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestColorSeries_Unknown(t *testing.T) {
	_, err := NewColorSeries("beige", NewRand(1))
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCycle(t *testing.T) {
	c, err := NewCycle([]string{"red", "blue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "blue", "red"}, []string{c.Next(), c.Next(), c.Next()})

	d, err := NewCycle(nil)
	require.NoError(t, err)
	assert.Equal(t, "red", d.Next())
	assert.Equal(t, "green", d.Next())

	_, err = NewCycle([]string{"red", "beige"})
	require.ErrorIs(t, err, core.ErrNotFound)
}
