package document

import (
	"fmt"

	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
)

// Element renders one element as an ordered object with the fixed key set
// of its variant: "type" and "name" first, then its geometry, then
// "texture" for textured variants.
func Element(el element.Element) (Object, error) {
	obj := Object{
		{Key: "type", Value: string(el.Kind())},
		{Key: "name", Value: el.ID()},
	}

	switch e := el.(type) {
	case *element.Corner:
		obj = append(obj, Field{"at", e.At().At})
	case *element.Rectangle:
		obj = append(obj, Field{"ul", e.Area().UL}, Field{"size", e.Area().Size})
	case *element.ItemSlot:
		obj = append(obj, Field{"ul", e.UL().At})
	case *element.FluidTank:
		obj = append(obj, Field{"ul", e.Area().UL}, Field{"size", e.Area().Size})
		obj = append(obj, clipFields(e.Area())...)
	case *element.Crop:
		obj = append(obj, Field{"ul", e.UL().At}, Field{"size", e.Area().Size})
		obj = append(obj, textureField(e.Binding()))
	case *element.ProgressBar:
		obj = append(obj, Field{"ul", e.UL().At}, Field{"size", e.Area().Size})
		obj = append(obj, clipFields(e.Area())...)
		obj = append(obj, textureField(e.Binding()))
	case *element.Atlas:
		obj = append(obj,
			Field{"ul", e.UL().At},
			Field{"grid", e.Grid().Count},
			Field{"clip", e.Grid().Clip},
		)
		obj = append(obj, textureField(e.Binding()))
	default:
		return nil, fmt.Errorf("%w: unsupported element %T", core.ErrNotSerializable, el)
	}
	return obj, nil
}

func clipFields(p core.ClippablePatch) []Field {
	dir, ok := p.ClipDirection()
	if !ok {
		return []Field{{"axis", nil}, {"sign", nil}}
	}
	return []Field{{"axis", dir.Axis}, {"sign", dir.Positive}}
}

func textureField(b *element.TextureBinding) Field {
	if name, ok := b.Shortcut(); ok {
		return Field{"texture", name}
	}
	return Field{"texture", nil}
}

// DecodeElement rebuilds an element from an object written by Element.
// Textured elements look their texture up in ctx; a null texture stays
// unresolved.
func DecodeElement(obj Object, ctx element.Context) (element.Element, error) {
	kindValue, _ := obj.Get("type")
	kindName, ok := kindValue.(string)
	if !ok {
		return nil, fmt.Errorf("%w: element without a type", core.ErrValidation)
	}
	kind := element.Kind(kindName)
	nameValue, _ := obj.Get("name")
	id, ok := nameValue.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s element without a name", core.ErrValidation, kind)
	}

	opts := []element.Option{element.WithContext(ctx)}
	if kind.Textured() {
		if tex, _ := obj.Get("texture"); tex != nil {
			name, ok := tex.(string)
			if !ok {
				return nil, fmt.Errorf("%w: texture of %q must be a string", core.ErrTypeConversion, id)
			}
			opts = append(opts, element.WithTexture(element.TextureNamed(name)))
		} else {
			opts = append(opts, element.WithTexture(element.TextureOf(nil)))
		}
	}

	markers := map[string]core.Marker{}
	build := func(name string, kind core.MarkerKind, fields map[string]string) error {
		values := map[string]any{}
		for field, key := range fields {
			if v, ok := obj.Get(key); ok {
				values[field] = v
			}
		}
		m, err := core.NewMarker(kind, values)
		if err != nil {
			return fmt.Errorf("element %q: %w", id, err)
		}
		markers[name] = m
		return nil
	}
	direction := func() (core.Coord, error) {
		axis, _ := obj.Get("axis")
		sign, _ := obj.Get("sign")
		if axis == nil {
			return core.Coord{}, nil
		}
		positive, _ := sign.(bool)
		s := "-"
		if positive {
			s = "+"
		}
		a, _ := axis.(string)
		return core.ParseDirection(s + a)
	}

	var err error
	switch kind {
	case element.KindCorner:
		err = build("at", core.KindPoint, map[string]string{"at": "at"})
	case element.KindRectangle:
		err = build("area", core.KindPatch, map[string]string{"ul": "ul", "size": "size"})
	case element.KindItemSlot:
		err = build("ul", core.KindPoint, map[string]string{"at": "ul"})
	case element.KindFluidTank, element.KindProgressBar:
		if err = build("ul", core.KindPoint, map[string]string{"at": "ul"}); err != nil {
			break
		}
		var dir core.Coord
		if dir, err = direction(); err != nil {
			break
		}
		if err = build("area", core.KindPatch, map[string]string{"ul": "ul", "size": "size"}); err != nil {
			break
		}
		p := markers["area"].(core.Patch)
		markers["area"] = core.NewClippablePatch(p.UL, p.Size, dir)
	case element.KindCrop:
		if err = build("ul", core.KindPoint, map[string]string{"at": "ul"}); err != nil {
			break
		}
		err = build("area", core.KindPatch, map[string]string{"ul": "ul", "size": "size"})
	case element.KindAtlas:
		if err = build("ul", core.KindPoint, map[string]string{"at": "ul"}); err != nil {
			break
		}
		err = build("grid", core.KindGrid, map[string]string{"ul": "ul", "grid": "grid", "clip": "clip"})
	default:
		err = fmt.Errorf("%w: unknown element type %q", core.ErrValidation, kindName)
	}
	if err != nil {
		return nil, err
	}
	return element.New(kind, id, markers, opts...)
}
