package statement

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/texture"

	"github.com/iancoleman/strcase"
)

// Order arranges the statements of a fragment.
type Order string

const (
	// ByKind groups statements by class, each group under a comment line.
	ByKind Order = "class"
	// ByAnnotationOrder keeps the order elements were annotated in.
	ByAnnotationOrder Order = "elementorder"
)

// Statement classes.
const (
	ClassPoint      = "Point"
	ClassRect       = "Rect"
	ClassUV         = "UV"
	ClassTexturedUV = "TexturedUV"
	ClassAtlasUV    = "AtlasUV"
)

var starterClasses = []string{ClassPoint, ClassRect, ClassUV, ClassTexturedUV, ClassAtlasUV}

const (
	header    = "// This is a fragment. Paste this to where it should be."
	mapHeader = "HashMap<String, String> textures = new HashMap<String, String>();"
	wrapWidth = 79
)

// Source is what the fragment is built from. Every listing is in
// registration order.
type Source interface {
	TextureNames() []string
	Texture(name string) (*texture.Texture, bool)
	Elements() []element.Element
}

// Exporter renders statements with one template.
type Exporter struct {
	tmpl      Template
	providers map[string]*Provider
}

// NewExporter checks the template and returns an exporter using it.
func NewExporter(t Template) (*Exporter, error) {
	e := &Exporter{tmpl: t, providers: make(map[string]*Provider)}
	for _, class := range starterClasses {
		p, err := NewProvider(class, t)
		if err != nil {
			return nil, err
		}
		e.providers[class] = p
	}
	return e, nil
}

// VarName is the variable an element is assigned to: the id in lower camel
// case, keeping capitals inside words ("FuelTank_left" gives "fuelTankLeft").
func VarName(id string) string {
	return strcase.ToLowerCamel(id)
}

// Line renders the statement of one element and the class it belongs to.
func (e *Exporter) Line(el element.Element) (string, string, error) {
	name := VarName(el.ID())
	switch el := el.(type) {
	case *element.Corner:
		at := el.At().At
		return ClassPoint, e.providers[ClassPoint].Statement(name, at.X, at.Y), nil
	case *element.Rectangle:
		return ClassRect, e.rect(name, el.Area()), nil
	case *element.ItemSlot:
		return ClassRect, e.rect(name, el.Area()), nil
	case *element.FluidTank:
		return ClassRect, e.rect(name, el.Area().Patch()), nil
	case *element.Crop:
		return e.texturedUV(el, el.Area())
	case *element.ProgressBar:
		return e.texturedUV(el, el.Area().Patch())
	case *element.Atlas:
		params, err := textureParams(el.Binding())
		if err != nil {
			return "", "", fmt.Errorf("element %q: %w", el.ID(), err)
		}
		g := el.Grid()
		args := []any{params[0], g.UL.X, g.UL.Y,
			g.Count.X * g.Clip.X, g.Count.Y * g.Clip.Y,
			g.Count.X, g.Count.X * g.Count.Y,
			params[1], params[2]}
		return ClassAtlasUV, e.providers[ClassAtlasUV].Statement(name, args...), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported element %T", core.ErrNotSerializable, el)
	}
}

func (e *Exporter) rect(name string, p core.Patch) string {
	return e.providers[ClassRect].Statement(name, p.UL.X, p.UL.Y, p.Size.X, p.Size.Y)
}

func (e *Exporter) texturedUV(el element.Element, p core.Patch) (string, string, error) {
	params, err := textureParams(el.Binding())
	if err != nil {
		return "", "", fmt.Errorf("element %q: %w", el.ID(), err)
	}
	line := e.providers[ClassTexturedUV].Statement(VarName(el.ID()),
		params[0], p.UL.X, p.UL.Y, p.Size.X, p.Size.Y, params[1], params[2])
	return ClassTexturedUV, line, nil
}

// textureParams returns the texture expression and its width and height,
// all null when the binding is unresolved.
func textureParams(b *element.TextureBinding) ([3]any, error) {
	tex := b.Texture()
	if tex == nil {
		return [3]any{nil, nil, nil}, nil
	}
	w, h, err := tex.Size()
	if err != nil {
		return [3]any{}, err
	}
	shortcut, _ := tex.Shortcut()
	return [3]any{RawExp(fmt.Sprintf("textures.get(%q)", shortcut)), w, h}, nil
}

// wrap breaks a statement longer than wrapWidth characters after its first
// opening parenthesis.
func wrap(line string) string {
	if utf8.RuneCountInString(line) <= wrapWidth {
		return line
	}
	if i := strings.Index(line, "("); i > 0 {
		return line[:i+1] + "\n\t" + line[i+1:]
	}
	return line
}

// Fragment renders the whole source.
func (e *Exporter) Fragment(src Source, order Order) (string, error) {
	lines := []string{header, mapHeader}
	for _, name := range src.TextureNames() {
		tex, _ := src.Texture(name)
		lines = append(lines, fmt.Sprintf("textures.put(%q, %q);", name, tex.PreferredPath()))
	}
	lines = append(lines, "")

	switch order {
	case ByKind:
		classes := append([]string{}, starterClasses...)
		buckets := make(map[string][]string)
		for _, el := range src.Elements() {
			class, line, err := e.Line(el)
			if err != nil {
				return "", err
			}
			if _, ok := buckets[class]; !ok && !contains(classes, class) {
				classes = append(classes, class)
			}
			buckets[class] = append(buckets[class], wrap(line))
		}
		for _, class := range classes {
			if len(buckets[class]) == 0 {
				continue
			}
			lines = append(lines, "// "+class)
			lines = append(lines, buckets[class]...)
		}
	case ByAnnotationOrder:
		for _, el := range src.Elements() {
			_, line, err := e.Line(el)
			if err != nil {
				return "", err
			}
			lines = append(lines, wrap(line))
		}
	default:
		return "", fmt.Errorf("%w: unsupported statement order %q", core.ErrValidation, order)
	}
	return strings.Join(lines, "\n"), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
