// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WritePNG writes a blank w×h PNG named name into dir and returns its path.
func WritePNG(t testing.TB, dir, name string, w, h int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))

	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return p
}
