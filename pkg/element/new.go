package element

import (
	"fmt"

	"github.com/magcot/magcot/pkg/core"
)

type fieldSpec struct {
	name  string
	kinds []core.MarkerKind
}

// declaredFields lists the user-supplied markers of each variant.
var declaredFields = map[Kind][]fieldSpec{
	KindCorner:      {{"at", []core.MarkerKind{core.KindPoint}}},
	KindRectangle:   {{"area", []core.MarkerKind{core.KindPatch}}},
	KindItemSlot:    {{"ul", []core.MarkerKind{core.KindPoint}}},
	KindFluidTank:   {{"ul", []core.MarkerKind{core.KindPoint}}, {"area", []core.MarkerKind{core.KindClippablePatch}}},
	KindCrop:        {{"ul", []core.MarkerKind{core.KindPoint}}, {"area", []core.MarkerKind{core.KindPatch}}},
	KindProgressBar: {{"ul", []core.MarkerKind{core.KindPoint}}, {"area", []core.MarkerKind{core.KindClippablePatch}}},
	KindAtlas:       {{"ul", []core.MarkerKind{core.KindPoint}}, {"grid", []core.MarkerKind{core.KindGrid}}},
}

// New creates an element of the given kind from already built markers.
// Every declared field must be present and of the declared marker kind;
// markers under undeclared names are ignored.
func New(kind Kind, id string, markers map[string]core.Marker, opts ...Option) (Element, error) {
	specs, ok := declaredFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown element kind %q", core.ErrValidation, kind)
	}

	var missing []string
	for _, spec := range specs {
		if _, ok := markers[spec.name]; !ok {
			missing = append(missing, spec.name)
		}
	}
	if len(missing) > 0 {
		return nil, &core.MissingFieldError{Kind: kind.Name(), Missing: missing}
	}
	for _, spec := range specs {
		if err := core.ExpectKind(spec.name, markers[spec.name], spec.kinds...); err != nil {
			return nil, err
		}
	}

	b, o, err := newBase(id, opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindCorner:
		return &Corner{base: b, at: markers["at"].(core.Point)}, nil
	case KindRectangle:
		return &Rectangle{base: b, area: markers["area"].(core.Patch)}, nil
	case KindItemSlot:
		return newItemSlot(b, markers["ul"].(core.Point)), nil
	case KindFluidTank:
		return &FluidTank{base: b, ul: markers["ul"].(core.Point), area: markers["area"].(core.ClippablePatch)}, nil
	case KindCrop:
		return &Crop{
			base: b, binding: bind(o.ref, o.ctx),
			ul: markers["ul"].(core.Point), area: markers["area"].(core.Patch),
		}, nil
	case KindProgressBar:
		return &ProgressBar{
			base: b, binding: bind(o.ref, o.ctx),
			ul: markers["ul"].(core.Point), area: markers["area"].(core.ClippablePatch),
		}, nil
	default:
		return &Atlas{
			base: b, binding: bind(o.ref, o.ctx),
			ul: markers["ul"].(core.Point), grid: markers["grid"].(core.Grid),
		}, nil
	}
}
