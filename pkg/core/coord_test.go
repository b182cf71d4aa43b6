package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoord_AddSub(t *testing.T) {
	pairs := [][2]Coord{
		{C(0, 0), C(0, 0)},
		{C(1, 2), C(3, 4)},
		{C(-5, 7), C(5, -7)},
		{C(1000, -1), C(-999, 42)},
	}
	for _, p := range pairs {
		x, y := p[0], p[1]
		assert.Equal(t, C(x.X+y.X, x.Y+y.Y), x.Add(y))
		assert.Equal(t, x, x.Add(y).Sub(y))
	}
}

func TestCoord_AddDoesNotMutate(t *testing.T) {
	a := C(1, 1)
	_ = a.Add(C(5, 5))
	assert.Equal(t, C(1, 1), a)
}

func TestCoordFromPair(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Coord
	}{
		{"ints", []int{3, 4}, C(3, 4)},
		{"array", [2]int{-1, 2}, C(-1, 2)},
		{"floats", []float64{16, 16.9}, C(16, 16)},
		{"strings", []string{"10", "20"}, C(10, 20)},
		{"mixed", []any{1, "2"}, C(1, 2)},
		{"extra elements ignored", []int{1, 2, 3, 4}, C(1, 2)},
		{"coord", C(7, 8), C(7, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoordFromPair(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordFromPair_DecodedJSON(t *testing.T) {
	var v any
	require.NoError(t, json.Unmarshal([]byte(`[5, 6]`), &v))

	got, err := CoordFromPair(v)
	require.NoError(t, err)
	assert.Equal(t, C(5, 6), got)
}

func TestCoordFromPair_Errors(t *testing.T) {
	for _, in := range []any{
		"12",
		[]int{1},
		[]string{"a", "b"},
		map[string]int{"x": 1},
		nil,
	} {
		_, err := CoordFromPair(in)
		require.Error(t, err, "input %#v", in)
		assert.True(t, errors.Is(err, ErrTypeConversion), "input %#v", in)
	}
}

func TestCoord_String(t *testing.T) {
	assert.Equal(t, "@(3, -4)", C(3, -4).String())
}

func TestValidateID(t *testing.T) {
	for _, id := range []string{"slot1", "A_b_9", "_"} {
		got, err := ValidateID(id)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
	for _, id := range []string{"", "a-b", "a b", "slot.1", "é"} {
		_, err := ValidateID(id)
		require.Error(t, err, id)
		assert.ErrorIs(t, err, ErrValidation)
		var invalid *InvalidIDError
		assert.ErrorAs(t, err, &invalid)
	}
}
