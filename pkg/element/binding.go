package element

import "github.com/magcot/magcot/pkg/texture"

// Context is what a textured element needs from the session it belongs to.
// Elements only read from it and never own it.
type Context interface {
	Texture(name string) (*texture.Texture, bool)
}

type refKind int

const (
	refDefault refKind = iota
	refExplicit
	refNamed
)

// TextureRef says where a textured element gets its texture from.
type TextureRef struct {
	kind refKind
	tex  *texture.Texture
	name string
}

// TextureOf refers to a texture instance directly.
func TextureOf(t *texture.Texture) TextureRef {
	return TextureRef{kind: refExplicit, tex: t}
}

// TextureNamed refers to a texture by its key in the context.
func TextureNamed(name string) TextureRef {
	return TextureRef{kind: refNamed, name: name}
}

// DefaultTexture refers to the main texture of the context.
func DefaultTexture() TextureRef {
	return TextureRef{kind: refDefault}
}

func (r TextureRef) resolve(ctx Context) *texture.Texture {
	switch r.kind {
	case refExplicit:
		return r.tex
	case refNamed:
		if ctx == nil {
			return nil
		}
		t, _ := ctx.Texture(r.name)
		return t
	default:
		if ctx == nil {
			return nil
		}
		t, _ := ctx.Texture("")
		return t
	}
}

// TextureBinding is the texture capability of an element. The texture is
// nil when it could not be resolved, which is not an error.
type TextureBinding struct {
	texture *texture.Texture
}

func bind(ref TextureRef, ctx Context) *TextureBinding {
	return &TextureBinding{texture: ref.resolve(ctx)}
}

// Texture returns the bound texture or nil.
func (b *TextureBinding) Texture() *texture.Texture {
	if b == nil {
		return nil
	}
	return b.texture
}

// Shortcut returns the name the bound texture is registered under.
func (b *TextureBinding) Shortcut() (string, bool) {
	if b == nil || b.texture == nil {
		return "", false
	}
	return b.texture.Shortcut()
}
