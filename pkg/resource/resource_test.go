package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magcot/magcot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocation(t *testing.T) {
	assert.True(t, IsLocation("minecraft:gui/container"))
	assert.True(t, IsLocation("my_mod:x.png"))
	assert.False(t, IsLocation("gui/container.png"))
	assert.False(t, IsLocation(`C:\textures\a.png`))
	assert.False(t, IsLocation("C:/textures/a.png"))
	assert.False(t, IsLocation("a:b:c"))
}

func newAssets(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

func TestRegistry_Define(t *testing.T) {
	r := NewRegistry()
	dir := newAssets(t)

	require.NoError(t, r.Define("mymod", dir))
	got, err := r.Lookup("mymod")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(dir), got)
	assert.Equal(t, []string{"mymod"}, r.Namespaces())
}

func TestRegistry_Define_Errors(t *testing.T) {
	r := NewRegistry()
	dir := newAssets(t)

	err := r.Define("mymod", filepath.Dir(dir))
	assert.ErrorIs(t, err, core.ErrValidation, "folder not named assets")

	err = r.Define("mymod", filepath.Join(t.TempDir(), "missing", "assets"))
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = r.Define("MyMod", dir)
	assert.ErrorIs(t, err, core.ErrValidation, "upper case namespace")
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	dir := newAssets(t)
	require.NoError(t, r.Define("mymod", dir))
	base := filepath.ToSlash(dir)

	got, err := r.Resolve("mymod:gui/furnace", ".png", "textures")
	require.NoError(t, err)
	assert.Equal(t, base+"/mymod/textures/gui/furnace.png", got)

	got, err = r.Resolve("mymod:out/furnace.json", ".json", "")
	require.NoError(t, err)
	assert.Equal(t, base+"/mymod/out/furnace.json", got)

	got, err = r.Resolve("plain/file.json", ".json", "")
	require.NoError(t, err)
	assert.Equal(t, "plain/file.json", got)

	_, err = r.Resolve("other:file", ".json", "")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
