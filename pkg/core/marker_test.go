package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarker_AllKinds(t *testing.T) {
	m, err := NewMarker(KindPoint, map[string]any{"at": []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, NewPoint(C(1, 2)), m)

	m, err = NewMarker(KindOffset, map[string]any{"at": C(3, 4)})
	require.NoError(t, err)
	assert.Equal(t, NewOffset(C(3, 4)), m)

	m, err = NewMarker(KindPatch, map[string]any{"ul": []int{0, 0}, "size": []int{16, 16}})
	require.NoError(t, err)
	assert.Equal(t, NewPatch(C(0, 0), C(16, 16)), m)

	m, err = NewMarker(KindClippablePatch, map[string]any{
		"ul": []int{1, 1}, "size": []int{10, 40}, "direction": []int{0, 1},
	})
	require.NoError(t, err)
	cp, ok := m.(ClippablePatch)
	require.True(t, ok)
	dir, ok := cp.ClipDirection()
	require.True(t, ok)
	assert.Equal(t, AxisY, dir.Axis)
	assert.True(t, dir.Positive)

	m, err = NewMarker(KindGrid, map[string]any{
		"ul": []int{0, 0}, "grid": []int{4, 2}, "clip": []int{18, 18},
	})
	require.NoError(t, err)
	assert.Equal(t, NewGrid(C(0, 0), C(4, 2), C(18, 18)), m)
}

func TestNewMarker_MissingFieldsListsEveryField(t *testing.T) {
	_, err := NewMarker(KindGrid, map[string]any{"grid": []int{1, 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"ul", "clip"}, missing.Missing)
	assert.Contains(t, err.Error(), "ul, clip")
}

func TestNewMarker_BadCoordinate(t *testing.T) {
	_, err := NewMarker(KindPoint, map[string]any{"at": "nowhere"})
	assert.ErrorIs(t, err, ErrTypeConversion)
}

func TestNewMarker_UnknownKind(t *testing.T) {
	_, err := NewMarker("Circle", map[string]any{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarkerKind_IsArea(t *testing.T) {
	assert.True(t, KindPatch.IsArea())
	assert.True(t, KindClippablePatch.IsArea())
	assert.True(t, KindGrid.IsArea())
	assert.False(t, KindPoint.IsArea())
	assert.False(t, KindOffset.IsArea())
}

func TestExpectKind(t *testing.T) {
	assert.NoError(t, ExpectKind("area", NewPatch(C(0, 0), C(1, 1)), KindPatch))

	err := ExpectKind("area", NewPoint(C(0, 0)), KindPatch)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Patch", mismatch.Expected)
	assert.Equal(t, "Point", mismatch.Actual)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExpectKind_RejectsPointerMarkers(t *testing.T) {
	p := NewPoint(C(1, 1))
	err := ExpectKind("at", &p, KindPoint)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "*core.Point", mismatch.Actual)

	var nilPatch *Patch
	err = ExpectKind("area", nilPatch, KindPatch)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "*core.Patch", mismatch.Actual)
}

func TestMarker_String(t *testing.T) {
	assert.Equal(t, "Patch(ul @(1, 2); size @(3, 4))", NewPatch(C(1, 2), C(3, 4)).String())
}
