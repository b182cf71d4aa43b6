// Package markup renders annotations as HTML overlays placed on top of
// their textures.
package markup

import (
	"fmt"
	"strings"

	"github.com/magcot/magcot/internal/palette"
	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/texture"
)

// Coloring chooses how elements get their colors.
type Coloring string

const (
	// Groupwise gives every group its own color series. Ungrouped elements
	// come last and are dimmed.
	Groupwise Coloring = "groupwise"
	// Order colors elements in annotation order from one series.
	Order Coloring = "order"
)

// Options are the layout constants of the overlay.
type Options struct {
	PointZ int
	PatchZ int
	// ElementStep separates the z-index of consecutive elements on one
	// texture. Markers of one element are one apart.
	ElementStep  int
	OrdinalStyle string
	Series       []string
	Seed         uint64
}

// DefaultOptions returns the layout used unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		PointZ:       300,
		PatchZ:       100,
		ElementStep:  10,
		OrdinalStyle: palette.DefaultOrdinalStyle,
		Series:       palette.DefaultSeries,
		Seed:         1,
	}
}

const markerStep = 1

// Source is what the overlay is built from. Every listing is in
// registration order.
type Source interface {
	TextureNames() []string
	Texture(name string) (*texture.Texture, bool)
	GroupNames() []string
	GroupMembers(name string) []string
	Element(id string) (element.Element, bool)
	Elements() []element.Element
	Ungrouped() []element.Element
}

// render is the state of one Fragment call. Ordinals and colors start over
// with every call.
type render struct {
	src      Source
	opts     Options
	ordinals *palette.Ordinals
	seq      *palette.Cycle
	blocks   map[string][]string
	counts   map[string]int
	newColor func(series string) (*palette.ColorSeries, error)
}

// Fragment renders the overlay of every texture of src, each non-blank line
// indented with indent tabs.
func Fragment(src Source, coloring Coloring, indent int, opts Options) (string, error) {
	ordinals, err := palette.NewOrdinals(opts.OrdinalStyle)
	if err != nil {
		return "", err
	}
	seq, err := palette.NewCycle(opts.Series)
	if err != nil {
		return "", err
	}
	rng := palette.NewRand(opts.Seed)
	r := &render{
		src:      src,
		opts:     opts,
		ordinals: ordinals,
		seq:      seq,
		blocks:   make(map[string][]string),
		counts:   make(map[string]int),
		newColor: func(series string) (*palette.ColorSeries, error) {
			return palette.NewColorSeries(series, rng)
		},
	}

	switch coloring {
	case Groupwise:
		err = r.groupwise()
	case Order:
		err = r.order()
	default:
		err = fmt.Errorf("%w: unsupported coloring %q", core.ErrValidation, coloring)
	}
	if err != nil {
		return "", err
	}

	parts := []string{"<script>var allGroupData = " + r.groupData() + "</script>"}
	for _, name := range src.TextureNames() {
		block, err := r.textureBlock(name)
		if err != nil {
			return "", err
		}
		parts = append(parts, block)
	}
	return Indent(strings.Join(parts, "\n\n"), indent), nil
}

func (r *render) groupwise() error {
	for _, group := range r.src.GroupNames() {
		colors, err := r.newColor(r.seq.Next())
		if err != nil {
			return err
		}
		for _, id := range r.src.GroupMembers(group) {
			el, ok := r.src.Element(id)
			if !ok {
				return &core.NotFoundError{What: "element", Key: id}
			}
			if err := r.add(el, colors, []string{"g--" + group}); err != nil {
				return err
			}
		}
	}
	dim, err := r.newColor("dim")
	if err != nil {
		return err
	}
	for _, el := range r.src.Ungrouped() {
		if err := r.add(el, dim, nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *render) order() error {
	colors, err := r.newColor("any")
	if err != nil {
		return err
	}
	for _, el := range r.src.Elements() {
		var classes []string
		for _, group := range r.src.GroupNames() {
			for _, id := range r.src.GroupMembers(group) {
				if id == el.ID() {
					classes = append(classes, "g--"+group)
					break
				}
			}
		}
		if err := r.add(el, colors, classes); err != nil {
			return err
		}
	}
	return nil
}

// textureOf returns the registered texture name el is drawn on.
func (r *render) textureOf(el element.Element) (string, bool) {
	name := ""
	if b := el.Binding(); b != nil {
		shortcut, ok := b.Shortcut()
		if !ok {
			return "", false
		}
		name = shortcut
	}
	_, ok := r.src.Texture(name)
	return name, ok
}

func (r *render) add(el element.Element, colors *palette.ColorSeries, classes []string) error {
	tex, ok := r.textureOf(el)
	if !ok {
		return nil
	}
	r.counts[tex]++
	lk := look{color: colors.Next(), symbol: r.ordinals.Next(), classes: classes}
	block, err := r.elementBlock(el, lk, r.opts.ElementStep*r.counts[tex])
	if err != nil {
		return err
	}
	r.blocks[tex] = append(r.blocks[tex], block)
	return nil
}

// elementBlock renders a comment line followed by every marker of el.
func (r *render) elementBlock(el element.Element, lk look, elementZ int) (string, error) {
	lines := []string{fmt.Sprintf("<!-- %s `%s` -->", el.Kind().Name(), el.ID())}
	for i, nm := range el.Markers() {
		start := r.opts.PointZ
		if nm.Marker.Kind().IsArea() {
			start = r.opts.PatchZ
		}
		line, err := markerHTML(el, nm, lk, start+elementZ+i*markerStep)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *render) textureBlock(name string) (string, error) {
	tex, _ := r.src.Texture(name)
	w, h, err := tex.Size()
	if err != nil {
		return "", err
	}
	url, err := tex.DataURL()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="tex--%s texwrap" data='{"w":%d,"h":%d,"path":"%s"}'>`,
		name, w, h, tex.PreferredPath())
	fmt.Fprintf(&b, "\n<img src=\"%s\">\n\n", url)
	b.WriteString(strings.Join(r.blocks[name], "\n\n"))
	b.WriteString("\n</div>")
	return b.String(), nil
}

// groupData lists the members of every group as a script literal.
func (r *render) groupData() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, group := range r.src.GroupNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: [", group)
		for j, id := range r.src.GroupMembers(group) {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", id)
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}

// Indent prefixes every non-blank line of text with n tabs.
func Indent(text string, n int) string {
	if n <= 0 {
		return text
	}
	prefix := strings.Repeat("\t", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
