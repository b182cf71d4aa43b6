package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
)

type datum struct {
	key   string
	value any
}

// jsonLiteral formats the values markers carry. Strings are ids, marker
// names, colors and keywords, none of which need escaping.
func jsonLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return `"` + v + `"`
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// tag renders one marker div.
func tag(id, classes, onclick, content string, data []datum) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s" class="%s" onclick="%s(this)"`, id, classes, onclick)
	if len(data) > 0 {
		b.WriteString(` data='{`)
		for i, d := range data {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `"%s":%s`, d.key, jsonLiteral(d.value))
		}
		b.WriteString(`}'`)
	}
	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</div>")
	return b.String()
}

type style struct {
	class   string
	onclick string
}

var styles = map[core.MarkerKind]style{
	core.KindPoint:          {"element point", "logPointInfo"},
	core.KindOffset:         {"element point", "logOffsetInfo"},
	core.KindPatch:          {"element area patch", "logPatchInfo"},
	core.KindClippablePatch: {"element area cpatch", "logClippablePatchInfo"},
	core.KindGrid:           {"element area grid", "logGridInfo"},
}

// look is how one element is drawn.
type look struct {
	color   string
	symbol  string
	classes []string
}

// markerHTML renders the marker named name of el. Offsets are placed
// relative to the element's "ul" point.
func markerHTML(el element.Element, nm element.NamedMarker, lk look, z int) (string, error) {
	data := []datum{{"z_index", z}, {"suffix", nm.Name}, {"color", lk.color}}
	switch m := nm.Marker.(type) {
	case core.Point:
		data = append(data, datum{"x", m.At.X}, datum{"y", m.At.Y})
	case core.Offset:
		ref, ok := element.ReferencePoint(el)
		if !ok {
			return "", fmt.Errorf("%w: offset %q of %q needs a \"ul\" point", core.ErrValidation, nm.Name, el.ID())
		}
		at := m.At.Add(ref.At)
		data = append(data, datum{"x", at.X}, datum{"y", at.Y})
	case core.Patch:
		data = append(data, datum{"x", m.UL.X}, datum{"y", m.UL.Y},
			datum{"w", m.Size.X}, datum{"h", m.Size.Y})
	case core.ClippablePatch:
		var direction any
		if dir, ok := m.ClipDirection(); ok {
			direction = dir.Keyword()
		}
		data = append(data, datum{"x", m.UL.X}, datum{"y", m.UL.Y},
			datum{"w", m.Size.X}, datum{"h", m.Size.Y}, datum{"direction", direction})
	case core.Grid:
		data = append(data, datum{"x", m.UL.X}, datum{"y", m.UL.Y},
			datum{"clip_w", m.Clip.X}, datum{"clip_h", m.Clip.Y},
			datum{"grid_x", m.Count.X}, datum{"grid_y", m.Count.Y})
	default:
		return "", fmt.Errorf("%w: unsupported marker %T", core.ErrNotSerializable, nm.Marker)
	}

	st := styles[nm.Marker.Kind()]
	classes := st.class
	if len(lk.classes) > 0 {
		classes += " " + strings.Join(lk.classes, " ")
	}
	return tag(el.ID()+"--"+nm.Name, classes, st.onclick, lk.symbol, data), nil
}
